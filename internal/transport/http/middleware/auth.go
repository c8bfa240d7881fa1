package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zeras-code/shopcart/internal/entity"
	"github.com/zeras-code/shopcart/internal/presentation/http/response"
	"github.com/zeras-code/shopcart/internal/service/auth"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

const claimsContextKey = "auth.claims"

// Authenticator guards routes behind bearer token verification.
type Authenticator struct {
	tokens *auth.TokenManager
}

// NewAuthenticator constructs an Authenticator.
func NewAuthenticator(tokens *auth.TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Require rejects requests without a valid bearer token and stores the
// verified claims on the request context.
func (a *Authenticator) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return response.New(c).WithError(errorbank.Unauthorized("missing bearer token")).Build()
		}

		claims, err := a.tokens.Verify(token)
		if err != nil {
			return response.New(c).WithError(errorbank.Unauthorized("invalid or expired token")).Build()
		}

		c.Set(claimsContextKey, claims)
		return next(c)
	}
}

// RequireAdmin additionally rejects tokens without the admin role. It must
// run after Require.
func (a *Authenticator) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := Claims(c)
		if claims == nil || claims.Role != entity.RoleAdmin {
			return response.New(c).WithError(errorbank.Unauthorized("admin access required")).Build()
		}
		return next(c)
	}
}

// Claims returns the verified token claims for the request, or nil when the
// route did not pass through Require.
func Claims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}
