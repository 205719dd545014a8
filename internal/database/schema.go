package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Boolean columns are TINYINT(1) 0/1. Timestamps are ISO-8601 string
// columns except users.created_at/reset_token_expires, which use the
// store's native DATETIME handling — both choices mirror the schema
// this service inherited.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(190) NOT NULL UNIQUE,
		username VARCHAR(80) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_admin TINYINT(1) NOT NULL DEFAULT 0,
		email_verified TINYINT(1) NOT NULL DEFAULT 0,
		verification_token VARCHAR(64) NULL,
		reset_token VARCHAR(64) NULL,
		reset_token_expires DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS short_urls (
		shortcode VARCHAR(64) PRIMARY KEY,
		target_url TEXT NOT NULL,
		kind VARCHAR(16) NOT NULL DEFAULT 'link',
		creator_id BIGINT UNSIGNED NULL,
		is_snippet TINYINT(1) NOT NULL DEFAULT 0,
		is_file TINYINT(1) NOT NULL DEFAULT 0,
		is_bio TINYINT(1) NOT NULL DEFAULT 0,
		password_hash VARCHAR(255) NULL,
		is_password_protected TINYINT(1) NOT NULL DEFAULT 0,
		created_at VARCHAR(40) NOT NULL,
		INDEX idx_short_urls_creator (creator_id)
	)`,
	`CREATE TABLE IF NOT EXISTS bio_profiles (
		user_id BIGINT UNSIGNED PRIMARY KEY,
		public_id CHAR(36) NOT NULL UNIQUE,
		short_id VARCHAR(64) NOT NULL,
		title VARCHAR(190) NOT NULL,
		description TEXT NULL,
		profile_picture_url TEXT NULL,
		theme VARCHAR(40) NOT NULL DEFAULT 'default',
		bio_links TEXT NOT NULL,
		social_links TEXT NOT NULL,
		created_at VARCHAR(40) NOT NULL,
		updated_at VARCHAR(40) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clicks (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		shortcode VARCHAR(64) NOT NULL,
		target_url TEXT NOT NULL,
		country VARCHAR(8) NULL,
		occurred_at VARCHAR(40) NOT NULL,
		INDEX idx_clicks_shortcode (shortcode)
	)`,
	`CREATE TABLE IF NOT EXISTS file_uploads (
		shortcode VARCHAR(64) PRIMARY KEY,
		file_name VARCHAR(255) NOT NULL,
		content_type VARCHAR(120) NOT NULL,
		size_bytes BIGINT NOT NULL DEFAULT 0,
		storage_key VARCHAR(255) NOT NULL,
		created_at VARCHAR(40) NOT NULL
	)`,
}

// Bootstrap creates the five tables if they do not exist. Safe to run
// any number of times; must run once before any other gateway
// operation in a fresh environment.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
