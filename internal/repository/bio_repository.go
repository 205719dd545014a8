package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rdrx/rdrx/internal/model"
)

// BioRepo persists bio_profiles rows. The ordered link lists are
// stored as JSON text columns; marshal errors are treated as caller
// bugs and surface directly.
type BioRepo struct{ DB *sql.DB }

func NewBioRepo(db *sql.DB) *BioRepo { return &BioRepo{DB: db} }

const bioColumns = "user_id,public_id,short_id,title,description,profile_picture_url,theme,bio_links,social_links,created_at,updated_at"

func scanBio(row *sql.Row) (model.BioProfile, error) {
	var (
		p                    model.BioProfile
		bioLinks, socials    []byte
		createdAt, updatedAt string
	)
	err := row.Scan(&p.UserID, &p.PublicID, &p.ShortID, &p.Title, &p.Description,
		&p.ProfilePictureURL, &p.Theme, &bioLinks, &socials, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return model.BioProfile{}, ErrNotFound
	}
	if err != nil {
		return model.BioProfile{}, err
	}
	if len(bioLinks) > 0 {
		_ = json.Unmarshal(bioLinks, &p.BioLinks)
	}
	if len(socials) > 0 {
		_ = json.Unmarshal(socials, &p.SocialLinks)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return model.BioProfile{}, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return model.BioProfile{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return p, nil
}

// GetByUserID fetches the profile owned by a user.
func (r *BioRepo) GetByUserID(ctx context.Context, userID uint64) (model.BioProfile, error) {
	return scanBio(r.DB.QueryRowContext(ctx,
		"SELECT "+bioColumns+" FROM bio_profiles WHERE user_id=? LIMIT 1", userID))
}

// GetByPublicID fetches a profile by its stable public uuid.
func (r *BioRepo) GetByPublicID(ctx context.Context, publicID string) (model.BioProfile, error) {
	return scanBio(r.DB.QueryRowContext(ctx,
		"SELECT "+bioColumns+" FROM bio_profiles WHERE public_id=? LIMIT 1", publicID))
}

// Upsert inserts or replaces the profile keyed by user id. updated_at
// is refreshed on every save; created_at and public_id stick to the
// first insert.
func (r *BioRepo) Upsert(ctx context.Context, p model.BioProfile) error {
	bioLinks, err := json.Marshal(p.BioLinks)
	if err != nil {
		return err
	}
	socials, err := json.Marshal(p.SocialLinks)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO bio_profiles
		   (user_id, public_id, short_id, title, description, profile_picture_url, theme, bio_links, social_links, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   short_id=VALUES(short_id), title=VALUES(title), description=VALUES(description),
		   profile_picture_url=VALUES(profile_picture_url), theme=VALUES(theme),
		   bio_links=VALUES(bio_links), social_links=VALUES(social_links), updated_at=VALUES(updated_at)`,
		p.UserID, p.PublicID, p.ShortID, p.Title, p.Description, p.ProfilePictureURL,
		p.Theme, bioLinks, socials, now, now)
	return err
}
