// Package router wires handlers onto the Echo instance. Routes are
// registered per scope: public, authenticated API, admin and dev.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rdrx/rdrx/internal/handler"
)

// RegisterPublic registers the routes that need no session: signup,
// login, email verification, password recovery, bio pages, health and
// the catch-all shortcode redirect. The rate limiter guards the two
// abuse-prone routes, login and redirect.
func RegisterPublic(e *echo.Echo, a *handler.AuthHandler, b *handler.BioHandler, r *handler.RedirectHandler, h *handler.HealthHandler, limit echo.MiddlewareFunc) {
	e.GET("/healthz", h.Check)

	e.POST("/api/auth/signup", a.Signup)
	e.POST("/api/auth/login", a.Login, limit)
	e.POST("/api/auth/logout", a.Logout)
	e.GET("/verify", a.Verify)
	e.POST("/api/auth/reset/request", a.RequestReset)
	e.POST("/api/auth/reset/confirm", a.ConfirmReset)

	e.GET("/bio/:id", b.Get)

	// Catch-all resolver; must stay last so named routes win.
	e.GET("/:code", r.Resolve, limit)
}
