package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/teris-io/shortid"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/apperror"
	"github.com/rdrx/rdrx/internal/auth"
	"github.com/rdrx/rdrx/internal/cache"
	"github.com/rdrx/rdrx/internal/model"
	"github.com/rdrx/rdrx/internal/repository"
)

// ShortenInput is everything a create/update request may carry.
type ShortenInput struct {
	TargetURL  string
	CustomCode string
	Kind       string // "", "link", "snippet", "file", "bio"
	Password   string
	CreatorID  *uint64
	File       *FileMeta // descriptor for kind=file, optional
}

// FileMeta describes an uploaded object living in external storage.
type FileMeta struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
}

// ShortenerService creates, resolves and deletes shortcodes. Resolution
// is cache-aside over Redis; every write invalidates the cached row.
type ShortenerService struct {
	links      LinkStore
	files      FileStore
	clicks     ClickStore
	cache      *cache.LinkCache
	bcryptCost int
	log        *zap.Logger
}

func NewShortenerService(links LinkStore, files FileStore, clicks ClickStore, c *cache.LinkCache, bcryptCost int, log *zap.Logger) *ShortenerService {
	return &ShortenerService{links: links, files: files, clicks: clicks, cache: c, bcryptCost: bcryptCost, log: log}
}

// Shorten upserts a short link. The kind is explicit when the request
// names one; otherwise it is derived from the custom code's prefix,
// defaulting to a plain link. Generated and custom codes for non-plain
// kinds always carry the legacy prefix so old URLs keep resolving.
func (s *ShortenerService) Shorten(ctx context.Context, in ShortenInput) (model.ShortLink, error) {
	if in.TargetURL == "" {
		return model.ShortLink{}, apperror.NewValidation("url is required")
	}
	if u, err := url.ParseRequestURI(in.TargetURL); err != nil || u.Scheme == "" || u.Host == "" {
		return model.ShortLink{}, apperror.NewValidation("url must be absolute")
	}

	kind, err := resolveKind(in.Kind, in.CustomCode)
	if err != nil {
		return model.ShortLink{}, err
	}

	code := strings.TrimSpace(in.CustomCode)
	if code == "" {
		generated, err := shortid.Generate()
		if err != nil {
			return model.ShortLink{}, apperror.NewInternal("generate shortcode", err)
		}
		code = model.KindPrefix(kind) + generated
	} else if model.DeriveKind(code) != kind {
		code = model.KindPrefix(kind) + code
	}

	// Upsert replaces an existing row, but only for its owner.
	if existing, err := s.links.GetByShortcode(ctx, code); err == nil {
		if !sameCreator(existing.CreatorID, in.CreatorID) {
			return model.ShortLink{}, apperror.NewConflict("shortcode already in use")
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("lookup shortcode failed", zap.String("code", code), zap.Error(err))
		return model.ShortLink{}, apperror.NewPersistence("lookup shortcode", err)
	}

	link := model.ShortLink{
		Shortcode: code,
		TargetURL: in.TargetURL,
		Kind:      kind,
		CreatorID: in.CreatorID,
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password, s.bcryptCost)
		if err != nil {
			return model.ShortLink{}, apperror.NewInternal("hash link password", err)
		}
		link.PasswordHash = &hash
		link.IsProtected = true
	}

	if err := s.links.Upsert(ctx, link); err != nil {
		s.log.Error("save shortcode failed", zap.String("code", code), zap.Error(err))
		return model.ShortLink{}, apperror.NewPersistence("save shortcode", err)
	}
	s.cache.Invalidate(ctx, code)

	if kind == model.KindFile && in.File != nil {
		err := s.files.Put(ctx, model.FileUpload{
			Shortcode:   code,
			FileName:    in.File.FileName,
			ContentType: in.File.ContentType,
			SizeBytes:   in.File.SizeBytes,
			StorageKey:  in.File.StorageKey,
		})
		if err != nil {
			s.log.Error("save file metadata failed", zap.String("code", code), zap.Error(err))
			return model.ShortLink{}, apperror.NewPersistence("save file metadata", err)
		}
	}
	return link, nil
}

// Resolve returns the link behind a code, consulting the cache first.
// Protected links require the matching per-link password: absent gives
// an Auth error ("password required"), mismatched gives Auth too.
func (s *ShortenerService) Resolve(ctx context.Context, code, password string) (model.ShortLink, error) {
	link, hit := s.cache.Get(ctx, code)
	if !hit {
		var err error
		link, err = s.links.GetByShortcode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return model.ShortLink{}, apperror.NewNotFound("unknown shortcode")
		}
		if err != nil {
			// Read path degrades to not-found, but the cause is logged.
			s.log.Error("resolve shortcode failed", zap.String("code", code), zap.Error(err))
			return model.ShortLink{}, apperror.NewNotFound("unknown shortcode")
		}
		s.cache.Put(ctx, link)
	}

	if link.IsProtected {
		if password == "" {
			return model.ShortLink{}, apperror.NewAuth("password required")
		}
		if link.PasswordHash == nil || !auth.VerifyPassword(*link.PasswordHash, password) {
			return model.ShortLink{}, apperror.NewAuth("invalid link password")
		}
	}
	return link, nil
}

// Delete removes a code. Only the owner or an admin may delete.
func (s *ShortenerService) Delete(ctx context.Context, code string, actor *auth.Claims) error {
	link, err := s.links.GetByShortcode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFound("unknown shortcode")
	}
	if err != nil {
		return apperror.NewPersistence("lookup shortcode", err)
	}
	if !actor.IsAdmin && !sameCreator(link.CreatorID, &actor.UserID) {
		return apperror.NewForbidden("not your shortcode")
	}
	if err := s.links.DeleteByShortcode(ctx, code); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("delete shortcode failed", zap.String("code", code), zap.Error(err))
		return apperror.NewPersistence("delete shortcode", err)
	}
	s.cache.Invalidate(ctx, code)
	return nil
}

// LinkWithStats pairs a link with its total view count for listings.
type LinkWithStats struct {
	Link  model.ShortLink
	Views int64
}

// ListMine returns the caller's links with view counts, newest first.
// Count failures zero the stat rather than failing the listing.
func (s *ShortenerService) ListMine(ctx context.Context, userID uint64) ([]LinkWithStats, error) {
	links, err := s.links.ListByCreator(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistence("list links", err)
	}
	out := make([]LinkWithStats, 0, len(links))
	for _, l := range links {
		views, err := s.clicks.CountByShortcode(ctx, l.Shortcode)
		if err != nil {
			views = 0
		}
		out = append(out, LinkWithStats{Link: l, Views: views})
	}
	return out, nil
}

// FileMetadata returns the descriptor for a file-kind code.
func (s *ShortenerService) FileMetadata(ctx context.Context, code string) (model.FileUpload, error) {
	f, err := s.files.Get(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return model.FileUpload{}, apperror.NewNotFound("unknown file")
	}
	if err != nil {
		return model.FileUpload{}, apperror.NewPersistence("load file metadata", err)
	}
	return f, nil
}

func resolveKind(explicit, customCode string) (model.LinkKind, error) {
	switch explicit {
	case "":
		if customCode != "" {
			return model.DeriveKind(customCode), nil
		}
		return model.KindLink, nil
	case string(model.KindLink), string(model.KindSnippet), string(model.KindFile), string(model.KindBio):
		return model.LinkKind(explicit), nil
	default:
		return "", apperror.NewValidation("unknown kind")
	}
}

func sameCreator(a, b *uint64) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
