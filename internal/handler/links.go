package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/apperror"
	"github.com/rdrx/rdrx/internal/middleware"
	"github.com/rdrx/rdrx/internal/service"
)

// LinkHandler serves shortcode creation, listing, deletion and the
// password-unlock endpoint.
type LinkHandler struct {
	Shortener *service.ShortenerService
	BaseURL   string
	Log       *zap.Logger
}

func NewLinkHandler(svc *service.ShortenerService, baseURL string, log *zap.Logger) *LinkHandler {
	return &LinkHandler{Shortener: svc, BaseURL: baseURL, Log: log}
}

type shortenRequest struct {
	URL        string       `json:"url"`
	CustomCode string       `json:"custom_code"`
	Kind       string       `json:"kind"`
	Password   string       `json:"password"`
	File       *fileRequest `json:"file"`
}

type fileRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageKey  string `json:"storage_key"`
}

// Shorten creates or updates a shortcode for the caller.
func (h *LinkHandler) Shorten(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, apperror.NewAuth("authentication required"))
	}

	var req shortenRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperror.NewValidation("invalid request body"))
	}

	in := service.ShortenInput{
		TargetURL:  req.URL,
		CustomCode: req.CustomCode,
		Kind:       req.Kind,
		Password:   req.Password,
		CreatorID:  &claims.UserID,
	}
	if req.File != nil {
		in.File = &service.FileMeta{
			FileName:    req.File.FileName,
			ContentType: req.File.ContentType,
			SizeBytes:   req.File.SizeBytes,
			StorageKey:  req.File.StorageKey,
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	link, err := h.Shortener.Shorten(ctx, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, echo.Map{
		"shortcode": link.Shortcode,
		"short_url": h.BaseURL + "/" + link.Shortcode,
		"kind":      string(link.Kind),
	})
}

// List returns the caller's shortcodes with view counts.
func (h *LinkHandler) List(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, apperror.NewAuth("authentication required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Shortener.ListMine(ctx, claims.UserID)
	if err != nil {
		return fail(c, err)
	}

	links := make([]echo.Map, 0, len(rows))
	for _, r := range rows {
		links = append(links, echo.Map{
			"shortcode":    r.Link.Shortcode,
			"url":          r.Link.TargetURL,
			"kind":         string(r.Link.Kind),
			"is_protected": r.Link.IsProtected,
			"views":        r.Views,
			"created_at":   r.Link.CreatedAt,
		})
	}
	return respond(c, http.StatusOK, echo.Map{"links": links})
}

// Delete removes a shortcode the caller owns (admins may delete any).
func (h *LinkHandler) Delete(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, apperror.NewAuth("authentication required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Shortener.Delete(ctx, c.Param("code"), claims); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "shortcode deleted"})
}

type unlockRequest struct {
	Password string `json:"password"`
}

// Unlock checks a protected shortcode's password and returns the
// target without redirecting, for clients that render a gate page.
func (h *LinkHandler) Unlock(c echo.Context) error {
	var req unlockRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperror.NewValidation("invalid request body"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	link, err := h.Shortener.Resolve(ctx, c.Param("code"), req.Password)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"url": link.TargetURL, "kind": string(link.Kind)})
}

// FileMeta returns the stored descriptor for a file shortcode.
func (h *LinkHandler) FileMeta(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	meta, err := h.Shortener.FileMetadata(ctx, c.Param("code"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{
		"file": echo.Map{
			"shortcode":    meta.Shortcode,
			"file_name":    meta.FileName,
			"content_type": meta.ContentType,
			"size_bytes":   meta.SizeBytes,
			"storage_key":  meta.StorageKey,
		},
	})
}
