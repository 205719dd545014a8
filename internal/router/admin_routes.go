package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rdrx/rdrx/internal/handler"
	"github.com/rdrx/rdrx/internal/middleware"
)

// RegisterAdmin registers the admin panel endpoints. The guard returns
// 401 without a session and 403 for non-admin accounts.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler) {
	g := e.Group("/api/admin", middleware.RequireAdmin)

	g.GET("/stats", a.Stats)
	g.GET("/users", a.ListUsers)
}

// RegisterDev registers the development conveniences. Outside dev and
// test the routes are simply not mounted.
func RegisterDev(e *echo.Echo, d *handler.DevHandler, env string) {
	if env != "dev" && env != "test" {
		return
	}
	e.POST("/api/create-test-user", d.CreateTestUser)
	e.POST("/api/init-db", d.InitDB)
}
