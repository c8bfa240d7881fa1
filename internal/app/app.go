package app

import (
	"go.uber.org/fx"

	"github.com/zeras-code/shopcart/internal/cache"
	"github.com/zeras-code/shopcart/internal/config"
	"github.com/zeras-code/shopcart/internal/database"
	"github.com/zeras-code/shopcart/internal/logger"
	"github.com/zeras-code/shopcart/internal/messaging"
	"github.com/zeras-code/shopcart/internal/observability"
	repositorycart "github.com/zeras-code/shopcart/internal/repository/cart"
	repositoryorder "github.com/zeras-code/shopcart/internal/repository/order"
	repositoryproduct "github.com/zeras-code/shopcart/internal/repository/product"
	repositoryuser "github.com/zeras-code/shopcart/internal/repository/user"
	grpcserver "github.com/zeras-code/shopcart/internal/server/grpc"
	httpserver "github.com/zeras-code/shopcart/internal/server/http"
	serviceauth "github.com/zeras-code/shopcart/internal/service/auth"
	servicecart "github.com/zeras-code/shopcart/internal/service/cart"
	serviceorder "github.com/zeras-code/shopcart/internal/service/order"
	serviceproduct "github.com/zeras-code/shopcart/internal/service/product"
	transporthttp "github.com/zeras-code/shopcart/internal/transport/http"
	"github.com/zeras-code/shopcart/internal/worker"
	workerorder "github.com/zeras-code/shopcart/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryuser.Module,
	repositoryproduct.Module,
	repositorycart.Module,
	repositoryorder.Module,
	serviceauth.Module,
	serviceproduct.Module,
	servicecart.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Full adds the gRPC server (health checks only for now) next to HTTP.
var Full = fx.Options(
	HTTP,
	grpcserver.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
