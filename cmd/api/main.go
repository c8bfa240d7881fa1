package main

import (
	"go.uber.org/fx"

	"github.com/zeras-code/shopcart/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
