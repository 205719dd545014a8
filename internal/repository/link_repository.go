package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rdrx/rdrx/internal/model"
)

// LinkRepo persists short_urls rows. created_at is kept as an
// ISO-8601 string column for compatibility with the previous schema,
// so it is formatted and parsed here rather than relying on driver
// time handling.
type LinkRepo struct{ DB *sql.DB }

func NewLinkRepo(db *sql.DB) *LinkRepo { return &LinkRepo{DB: db} }

const linkColumns = "shortcode,target_url,kind,creator_id,password_hash,is_password_protected,created_at"

func scanLink(row *sql.Row) (model.ShortLink, error) {
	var (
		l         model.ShortLink
		kind      string
		createdAt string
	)
	err := row.Scan(&l.Shortcode, &l.TargetURL, &kind, &l.CreatorID, &l.PasswordHash, &l.IsProtected, &createdAt)
	if err == sql.ErrNoRows {
		return model.ShortLink{}, ErrNotFound
	}
	if err != nil {
		return model.ShortLink{}, err
	}
	l.Kind = model.LinkKind(kind)
	l.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return model.ShortLink{}, fmt.Errorf("parse created_at: %w", err)
	}
	return l, nil
}

// GetByShortcode returns the row for a code, ErrNotFound when absent.
func (r *LinkRepo) GetByShortcode(ctx context.Context, code string) (model.ShortLink, error) {
	return scanLink(r.DB.QueryRowContext(ctx,
		"SELECT "+linkColumns+" FROM short_urls WHERE shortcode=? LIMIT 1", code))
}

// Upsert inserts or replaces the row keyed by shortcode. The legacy
// is_snippet/is_file/is_bio flag columns are written alongside the
// kind column so readers of the old schema keep working. created_at
// is preserved on re-save.
func (r *LinkRepo) Upsert(ctx context.Context, l model.ShortLink) error {
	isSnippet := l.Kind == model.KindSnippet
	isFile := l.Kind == model.KindFile
	isBio := l.Kind == model.KindBio
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO short_urls
		   (shortcode, target_url, kind, creator_id, is_snippet, is_file, is_bio, password_hash, is_password_protected, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   target_url=VALUES(target_url), kind=VALUES(kind), creator_id=VALUES(creator_id),
		   is_snippet=VALUES(is_snippet), is_file=VALUES(is_file), is_bio=VALUES(is_bio),
		   password_hash=VALUES(password_hash), is_password_protected=VALUES(is_password_protected)`,
		l.Shortcode, l.TargetURL, string(l.Kind), l.CreatorID,
		isSnippet, isFile, isBio, l.PasswordHash, l.IsProtected,
		createdAt.Format(time.RFC3339))
	return err
}

// DeleteByShortcode removes a row; ErrNotFound when nothing matched.
func (r *LinkRepo) DeleteByShortcode(ctx context.Context, code string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM short_urls WHERE shortcode=?", code)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// FindBioByCreator returns the user's bio link, if any. Every user
// has at most one; the service layer maintains that invariant.
func (r *LinkRepo) FindBioByCreator(ctx context.Context, userID uint64) (model.ShortLink, error) {
	return scanLink(r.DB.QueryRowContext(ctx,
		"SELECT "+linkColumns+" FROM short_urls WHERE creator_id=? AND kind=? LIMIT 1",
		userID, string(model.KindBio)))
}

// ListByCreator returns a user's links, newest first.
func (r *LinkRepo) ListByCreator(ctx context.Context, userID uint64) ([]model.ShortLink, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+linkColumns+" FROM short_urls WHERE creator_id=? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ShortLink
	for rows.Next() {
		var (
			l         model.ShortLink
			kind      string
			createdAt string
		)
		if err := rows.Scan(&l.Shortcode, &l.TargetURL, &kind, &l.CreatorID, &l.PasswordHash, &l.IsProtected, &createdAt); err != nil {
			return nil, err
		}
		l.Kind = model.LinkKind(kind)
		if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountByKind returns row counts per kind for the admin stats page.
func (r *LinkRepo) CountByKind(ctx context.Context) (map[model.LinkKind]int64, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT kind, COUNT(*) FROM short_urls GROUP BY kind")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[model.LinkKind]int64)
	for rows.Next() {
		var (
			kind string
			n    int64
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[model.LinkKind(kind)] = n
	}
	return out, rows.Err()
}
