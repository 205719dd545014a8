package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/apperror"
	"github.com/rdrx/rdrx/internal/middleware"
	"github.com/rdrx/rdrx/internal/model"
	"github.com/rdrx/rdrx/internal/service"
)

// BioHandler serves bio-page authoring and public rendering.
type BioHandler struct {
	Bio *service.BioService
	Log *zap.Logger
}

func NewBioHandler(svc *service.BioService, log *zap.Logger) *BioHandler {
	return &BioHandler{Bio: svc, Log: log}
}

type bioRequest struct {
	Shortcode         string             `json:"shortcode"`
	Title             string             `json:"title"`
	Description       *string            `json:"description"`
	ProfilePictureURL *string            `json:"profile_picture_url"`
	Theme             string             `json:"theme"`
	BioLinks          []model.BioEntry   `json:"bio_links"`
	SocialLinks       []model.SocialLink `json:"social_links"`
}

// Save creates or replaces the caller's bio page.
func (h *BioHandler) Save(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, apperror.NewAuth("authentication required"))
	}

	var req bioRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperror.NewValidation("invalid request body"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Bio.Save(ctx, claims.UserID, service.BioInput{
		Shortcode:         req.Shortcode,
		Title:             req.Title,
		Description:       req.Description,
		ProfilePictureURL: req.ProfilePictureURL,
		Theme:             req.Theme,
		BioLinks:          req.BioLinks,
		SocialLinks:       req.SocialLinks,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, echo.Map{
		"shortcode": profile.ShortID,
		"bio":       bioPayload(profile),
	})
}

// Get renders a bio page by shortcode or by its typed public id.
func (h *BioHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Bio.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"bio": bioPayload(profile)})
}

func bioPayload(p model.BioProfile) echo.Map {
	return echo.Map{
		"public_id":           service.BioPublicIDPrefix + p.PublicID,
		"shortcode":           p.ShortID,
		"title":               p.Title,
		"description":         p.Description,
		"profile_picture_url": p.ProfilePictureURL,
		"theme":               p.Theme,
		"bio_links":           p.BioLinks,
		"social_links":        p.SocialLinks,
		"updated_at":          p.UpdatedAt,
	}
}
