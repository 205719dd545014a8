package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/apperror"
	"github.com/rdrx/rdrx/internal/service"
)

// AdminHandler serves the admin panel's aggregate views. Routes are
// mounted behind the admin guard.
type AdminHandler struct {
	Users  service.UserStore
	Links  service.LinkStore
	Clicks service.ClickStore
	Log    *zap.Logger
}

func NewAdminHandler(users service.UserStore, links service.LinkStore, clicks service.ClickStore, log *zap.Logger) *AdminHandler {
	return &AdminHandler{Users: users, Links: links, Clicks: clicks, Log: log}
}

// Stats returns shortcode counts per kind, total recorded clicks and
// the top click countries.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	byKind, err := h.Links.CountByKind(ctx)
	if err != nil {
		return fail(c, apperror.NewPersistence("count links", err))
	}
	totalClicks, err := h.Clicks.CountAll(ctx)
	if err != nil {
		return fail(c, apperror.NewPersistence("count clicks", err))
	}
	countries, err := h.Clicks.TopCountries(ctx, 10)
	if err != nil {
		return fail(c, apperror.NewPersistence("top countries", err))
	}

	kinds := echo.Map{}
	for k, n := range byKind {
		kinds[string(k)] = n
	}
	topCountries := make([]echo.Map, 0, len(countries))
	for _, cc := range countries {
		topCountries = append(topCountries, echo.Map{"country": cc.Country, "clicks": cc.Count})
	}
	return respond(c, http.StatusOK, echo.Map{
		"stats": echo.Map{
			"links_by_kind": kinds,
			"total_clicks":  totalClicks,
			"top_countries": topCountries,
		},
	})
}

// ListUsers returns every registered account without password data.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return fail(c, apperror.NewPersistence("list users", err))
	}

	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, echo.Map{
			"id":             u.ID,
			"email":          u.Email,
			"username":       u.Username,
			"is_admin":       u.IsAdmin,
			"email_verified": u.EmailVerified,
			"created_at":     u.CreatedAt,
		})
	}
	return respond(c, http.StatusOK, echo.Map{"users": out})
}
