package http

import (
	"go.uber.org/fx"

	authtransport "github.com/zeras-code/shopcart/internal/transport/http/auth"
	carttransport "github.com/zeras-code/shopcart/internal/transport/http/cart"
	"github.com/zeras-code/shopcart/internal/transport/http/middleware"
	ordertransport "github.com/zeras-code/shopcart/internal/transport/http/order"
	producttransport "github.com/zeras-code/shopcart/internal/transport/http/product"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	middleware.Module,
	authtransport.Module,
	producttransport.Module,
	carttransport.Module,
	ordertransport.Module,
)
