package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/service"
)

// RedirectHandler resolves shortcodes on the public path and records
// the click before redirecting.
type RedirectHandler struct {
	Shortener *service.ShortenerService
	Clicks    *service.ClickService
	Log       *zap.Logger
}

func NewRedirectHandler(shortener *service.ShortenerService, clicks *service.ClickService, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{Shortener: shortener, Clicks: clicks, Log: log}
}

// Resolve serves GET /:code. Protected codes accept the password from
// the query string or the X-Link-Password header. Bio codes redirect
// to the page route instead of an external target.
func (h *RedirectHandler) Resolve(c echo.Context) error {
	code := c.Param("code")
	password := c.QueryParam("password")
	if password == "" {
		password = c.Request().Header.Get("X-Link-Password")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	link, err := h.Shortener.Resolve(ctx, code, password)
	if err != nil {
		return fail(c, err)
	}

	var country *string
	if v := c.Request().Header.Get("CF-IPCountry"); v != "" {
		country = &v
	}
	// Recording must never delay or fail the redirect.
	go func(shortcode, target string, country *string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.Clicks.Track(ctx, shortcode, target, country)
	}(link.Shortcode, link.TargetURL, country)

	return c.Redirect(http.StatusFound, link.TargetURL)
}
