package auth

import "go.uber.org/fx"

// Module provides the auth service and token manager to Fx.
var Module = fx.Provide(NewService, NewTokenManager)
