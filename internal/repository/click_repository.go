package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rdrx/rdrx/internal/model"
)

// ClickRepo appends and aggregates view-analytics events. The table
// is append-only; there is no update or delete path.
type ClickRepo struct{ DB *sql.DB }

func NewClickRepo(db *sql.DB) *ClickRepo { return &ClickRepo{DB: db} }

// Insert appends one event.
func (r *ClickRepo) Insert(ctx context.Context, e model.ClickEvent) error {
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO clicks (shortcode, target_url, country, occurred_at) VALUES (?,?,?,?)",
		e.Shortcode, e.TargetURL, e.Country, occurred.Format(time.RFC3339))
	return err
}

// CountByShortcode returns the total views of a code.
func (r *ClickRepo) CountByShortcode(ctx context.Context, code string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM clicks WHERE shortcode=?", code).Scan(&n)
	return n, err
}

// RecentByShortcode returns the latest events for a code, newest first.
func (r *ClickRepo) RecentByShortcode(ctx context.Context, code string, limit int) ([]model.ClickEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, shortcode, target_url, country, occurred_at FROM clicks WHERE shortcode=? ORDER BY id DESC LIMIT ?",
		code, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ClickEvent
	for rows.Next() {
		var (
			e        model.ClickEvent
			occurred string
		)
		if err := rows.Scan(&e.ID, &e.Shortcode, &e.TargetURL, &e.Country, &occurred); err != nil {
			return nil, err
		}
		if e.OccurredAt, err = time.Parse(time.RFC3339, occurred); err != nil {
			return nil, fmt.Errorf("parse occurred_at: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountryCount is one row of the admin country breakdown.
type CountryCount struct {
	Country string
	Count   int64
}

// TopCountries aggregates views per country across all codes.
func (r *ClickRepo) TopCountries(ctx context.Context, limit int) ([]CountryCount, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT country, COUNT(*) AS n FROM clicks WHERE country IS NOT NULL GROUP BY country ORDER BY n DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CountryCount
	for rows.Next() {
		var cc CountryCount
		if err := rows.Scan(&cc.Country, &cc.Count); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// CountAll returns the total number of recorded views.
func (r *ClickRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM clicks").Scan(&n)
	return n, err
}
