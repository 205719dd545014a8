package model

import "time"

// ClickEvent is one resolved redirect, appended to the `clicks`
// table. Rows are never updated or deleted.
type ClickEvent struct {
	ID         uint64    // clicks.id
	Shortcode  string    // clicks.shortcode
	TargetURL  string    // clicks.target_url
	Country    *string   // clicks.country (nullable, edge-supplied)
	OccurredAt time.Time // clicks.occurred_at (ISO-8601 string column)
}

// FileUpload holds metadata for a file-kind shortcode. The blob
// itself lives in external object storage; only the descriptor is
// kept relationally.
type FileUpload struct {
	Shortcode   string    // file_uploads.shortcode
	FileName    string    // file_uploads.file_name
	ContentType string    // file_uploads.content_type
	SizeBytes   int64     // file_uploads.size_bytes
	StorageKey  string    // file_uploads.storage_key
	CreatedAt   time.Time // file_uploads.created_at (ISO-8601 string column)
}
