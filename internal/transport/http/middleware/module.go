package middleware

import "go.uber.org/fx"

// Module provides shared HTTP middleware to Fx.
var Module = fx.Provide(NewAuthenticator)
