// Package middleware provides shared request processing: the
// authentication context populator, the auth/admin guards, and the
// Redis token-bucket rate limiter.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rdrx/rdrx/internal/auth"
)

const claimsKey = "claims"

// Authenticate extracts the bearer credential (Authorization header
// or auth_token cookie) and, when it verifies, stores the claims in
// the request context. It never rejects a request: a missing or bad
// credential simply leaves the request unauthenticated, and the
// guards below decide whether that matters.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tok, ok := auth.ExtractCredential(c.Request()); ok {
				if claims, err := auth.VerifySession(tok, secret); err == nil {
					c.Set(claimsKey, claims)
				}
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the authenticated claims, if any.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := ClaimsFrom(c); !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "authentication required"})
		}
		return next(c)
	}
}

// RequireAdmin rejects requests whose session lacks the admin claim.
// Layered after RequireAuth-style checks: unauthenticated gets 401,
// authenticated non-admin gets 403.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "authentication required"})
		}
		if !claims.IsAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "admin access required"})
		}
		return next(c)
	}
}
