package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/apperror"
	"github.com/rdrx/rdrx/internal/cache"
	"github.com/rdrx/rdrx/internal/model"
	"github.com/rdrx/rdrx/internal/repository"
)

// BioPublicIDPrefix is the typed identifier scheme for direct profile
// lookups: "bio:<uuid>". It replaces shape-sniffing of the identifier,
// which misroutes shortcodes that happen to contain hyphens.
const BioPublicIDPrefix = "bio:"

// BioInput is the editable surface of a bio page.
type BioInput struct {
	Shortcode         string
	Title             string
	Description       *string
	ProfilePictureURL *string
	Theme             string
	BioLinks          []model.BioEntry
	SocialLinks       []model.SocialLink
}

// BioService maintains bio profiles and the single bio-kind short
// link each one hangs off.
type BioService struct {
	bios  BioStore
	links LinkStore
	cache *cache.LinkCache
	log   *zap.Logger
}

func NewBioService(bios BioStore, links LinkStore, c *cache.LinkCache, log *zap.Logger) *BioService {
	return &BioService{bios: bios, links: links, cache: c, log: log}
}

// Save upserts the caller's bio page. A user has at most one bio
// link: when the desired shortcode differs from the current one the
// old short_urls row is deleted before the new one is created; when
// it matches, the row is reused. The profile row itself is keyed by
// user id and upserted either way.
func (s *BioService) Save(ctx context.Context, userID uint64, in BioInput) (model.BioProfile, error) {
	if in.Title == "" || in.Shortcode == "" {
		return model.BioProfile{}, apperror.NewValidation("title and shortcode are required")
	}
	code := strings.TrimSpace(in.Shortcode)
	if model.DeriveKind(code) != model.KindBio {
		code = model.KindPrefix(model.KindBio) + code
	}

	// The code must be free or already ours.
	if existing, err := s.links.GetByShortcode(ctx, code); err == nil {
		if !sameCreator(existing.CreatorID, &userID) {
			return model.BioProfile{}, apperror.NewConflict("shortcode already in use")
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.BioProfile{}, apperror.NewPersistence("lookup shortcode", err)
	}

	current, err := s.links.FindBioByCreator(ctx, userID)
	switch {
	case err == nil && current.Shortcode != code:
		if err := s.links.DeleteByShortcode(ctx, current.Shortcode); err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.log.Error("delete old bio link failed", zap.String("code", current.Shortcode), zap.Error(err))
			return model.BioProfile{}, apperror.NewPersistence("replace bio link", err)
		}
		s.cache.Invalidate(ctx, current.Shortcode)
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return model.BioProfile{}, apperror.NewPersistence("lookup bio link", err)
	}

	// PublicID survives re-saves; it is minted on first save only.
	publicID := ""
	if prof, err := s.bios.GetByUserID(ctx, userID); err == nil {
		publicID = prof.PublicID
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.BioProfile{}, apperror.NewPersistence("load bio profile", err)
	}
	if publicID == "" {
		publicID = uuid.NewString()
	}

	if err := s.links.Upsert(ctx, model.ShortLink{
		Shortcode: code,
		TargetURL: "/bio/" + BioPublicIDPrefix + publicID,
		Kind:      model.KindBio,
		CreatorID: &userID,
	}); err != nil {
		s.log.Error("save bio link failed", zap.String("code", code), zap.Error(err))
		return model.BioProfile{}, apperror.NewPersistence("save bio link", err)
	}
	s.cache.Invalidate(ctx, code)

	theme := in.Theme
	if theme == "" {
		theme = "default"
	}
	profile := model.BioProfile{
		UserID:            userID,
		PublicID:          publicID,
		ShortID:           code,
		Title:             in.Title,
		Description:       in.Description,
		ProfilePictureURL: in.ProfilePictureURL,
		Theme:             theme,
		BioLinks:          in.BioLinks,
		SocialLinks:       in.SocialLinks,
	}
	if err := s.bios.Upsert(ctx, profile); err != nil {
		s.log.Error("save bio profile failed", zap.Uint64("user_id", userID), zap.Error(err))
		return model.BioProfile{}, apperror.NewPersistence("save bio profile", err)
	}
	return profile, nil
}

// Get fetches a bio page by either identifier form: "bio:<uuid>" goes
// straight to the profile, anything else is treated as a bio
// shortcode and resolved through the link's creator.
func (s *BioService) Get(ctx context.Context, identifier string) (model.BioProfile, error) {
	if strings.HasPrefix(identifier, BioPublicIDPrefix) {
		prof, err := s.bios.GetByPublicID(ctx, strings.TrimPrefix(identifier, BioPublicIDPrefix))
		if errors.Is(err, repository.ErrNotFound) {
			return model.BioProfile{}, apperror.NewNotFound("unknown bio page")
		}
		if err != nil {
			return model.BioProfile{}, apperror.NewPersistence("load bio profile", err)
		}
		return prof, nil
	}

	link, err := s.links.GetByShortcode(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && link.Kind != model.KindBio) {
		return model.BioProfile{}, apperror.NewNotFound("unknown bio page")
	}
	if err != nil {
		return model.BioProfile{}, apperror.NewPersistence("load bio link", err)
	}
	if link.CreatorID == nil {
		return model.BioProfile{}, apperror.NewNotFound("unknown bio page")
	}
	prof, err := s.bios.GetByUserID(ctx, *link.CreatorID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.BioProfile{}, apperror.NewNotFound("unknown bio page")
	}
	if err != nil {
		return model.BioProfile{}, apperror.NewPersistence("load bio profile", err)
	}
	return prof, nil
}
