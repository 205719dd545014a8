package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rdrx/rdrx/internal/model"
)

// FileRepo stores descriptors for file-kind shortcodes. The blob
// lives in external object storage; the row only records what was
// uploaded and where.
type FileRepo struct{ DB *sql.DB }

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{DB: db} }

// Put inserts or replaces the descriptor for a shortcode.
func (r *FileRepo) Put(ctx context.Context, f model.FileUpload) error {
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO file_uploads (shortcode, file_name, content_type, size_bytes, storage_key, created_at)
		 VALUES (?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   file_name=VALUES(file_name), content_type=VALUES(content_type),
		   size_bytes=VALUES(size_bytes), storage_key=VALUES(storage_key)`,
		f.Shortcode, f.FileName, f.ContentType, f.SizeBytes, f.StorageKey,
		createdAt.Format(time.RFC3339))
	return err
}

// Get fetches the descriptor for a shortcode.
func (r *FileRepo) Get(ctx context.Context, code string) (model.FileUpload, error) {
	var (
		f         model.FileUpload
		createdAt string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT shortcode, file_name, content_type, size_bytes, storage_key, created_at FROM file_uploads WHERE shortcode=? LIMIT 1",
		code).Scan(&f.Shortcode, &f.FileName, &f.ContentType, &f.SizeBytes, &f.StorageKey, &createdAt)
	if err == sql.ErrNoRows {
		return model.FileUpload{}, ErrNotFound
	}
	if err != nil {
		return model.FileUpload{}, err
	}
	if f.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return model.FileUpload{}, fmt.Errorf("parse created_at: %w", err)
	}
	return f, nil
}
