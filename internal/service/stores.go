// Package service implements the application logic between handlers
// and the persistence gateway: account lifecycle, shortcode creation
// and resolution, bio pages, and view tracking. Services accept
// narrow store interfaces so tests can swap the gateway for fakes.
package service

import (
	"context"
	"time"

	"github.com/rdrx/rdrx/internal/model"
	"github.com/rdrx/rdrx/internal/repository"
)

// UserStore is the slice of the gateway the auth service needs.
// Implemented by repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, email, username, passwordHash, verificationToken string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	VerifyByToken(ctx context.Context, token string) error
	SetResetToken(ctx context.Context, email, token string, expires time.Time) error
	ResetPassword(ctx context.Context, token, newHash string) error
	UpdatePasswordHash(ctx context.Context, id uint64, hash string) error
	List(ctx context.Context) ([]model.User, error)
}

// LinkStore is implemented by repository.LinkRepo.
type LinkStore interface {
	GetByShortcode(ctx context.Context, code string) (model.ShortLink, error)
	Upsert(ctx context.Context, l model.ShortLink) error
	DeleteByShortcode(ctx context.Context, code string) error
	FindBioByCreator(ctx context.Context, userID uint64) (model.ShortLink, error)
	ListByCreator(ctx context.Context, userID uint64) ([]model.ShortLink, error)
	CountByKind(ctx context.Context) (map[model.LinkKind]int64, error)
}

// BioStore is implemented by repository.BioRepo.
type BioStore interface {
	GetByUserID(ctx context.Context, userID uint64) (model.BioProfile, error)
	GetByPublicID(ctx context.Context, publicID string) (model.BioProfile, error)
	Upsert(ctx context.Context, p model.BioProfile) error
}

// ClickStore is implemented by repository.ClickRepo.
type ClickStore interface {
	Insert(ctx context.Context, e model.ClickEvent) error
	CountByShortcode(ctx context.Context, code string) (int64, error)
	RecentByShortcode(ctx context.Context, code string, limit int) ([]model.ClickEvent, error)
	TopCountries(ctx context.Context, limit int) ([]repository.CountryCount, error)
	CountAll(ctx context.Context) (int64, error)
}

// FileStore is implemented by repository.FileRepo.
type FileStore interface {
	Put(ctx context.Context, f model.FileUpload) error
	Get(ctx context.Context, code string) (model.FileUpload, error)
}
