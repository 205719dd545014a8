package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rdrx/rdrx/internal/handler"
	"github.com/rdrx/rdrx/internal/middleware"
)

// RegisterAPI registers the session-scoped endpoints under /api. The
// group requires a valid session; identity extraction itself happens
// in the global Authenticate middleware.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, l *handler.LinkHandler, b *handler.BioHandler) {
	g := e.Group("/api", middleware.RequireAuth)

	g.GET("/auth/me", a.Me)

	g.POST("/shorten", l.Shorten)
	g.GET("/links", l.List)
	g.DELETE("/links/:code", l.Delete)

	g.POST("/bio", b.Save)

	// Unlock and file metadata stay public: protected codes gate on
	// their own password, not on a session.
	e.POST("/api/links/:code/unlock", l.Unlock)
	e.GET("/api/files/:code", l.FileMeta)
}
