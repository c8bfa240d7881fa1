package main

import (
	"os"

	"github.com/zeras-code/shopcart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
