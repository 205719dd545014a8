package model

import (
	"strings"
	"time"
)

// LinkKind classifies what a shortcode points at. It is stored in
// the `kind` column of short_urls and assigned once at creation.
type LinkKind string

const (
	KindLink    LinkKind = "link"
	KindSnippet LinkKind = "snippet"
	KindFile    LinkKind = "file"
	KindBio     LinkKind = "bio"
)

// Shortcode prefixes kept for backward compatibility with URLs minted
// by older deployments. New codes for non-plain kinds still carry the
// prefix so old bookmarks resolve, but the source of truth is the
// kind column, not the string shape.
const (
	prefixSnippet = "c-"
	prefixFile    = "f-"
	prefixBio     = "b-"
)

// DeriveKind maps a shortcode to its kind using the legacy prefix
// convention. Codes without a known prefix are plain links.
func DeriveKind(code string) LinkKind {
	switch {
	case strings.HasPrefix(code, prefixSnippet):
		return KindSnippet
	case strings.HasPrefix(code, prefixFile):
		return KindFile
	case strings.HasPrefix(code, prefixBio):
		return KindBio
	default:
		return KindLink
	}
}

// KindPrefix returns the boundary prefix for a kind, empty for plain links.
func KindPrefix(k LinkKind) string {
	switch k {
	case KindSnippet:
		return prefixSnippet
	case KindFile:
		return prefixFile
	case KindBio:
		return prefixBio
	default:
		return ""
	}
}

// ShortLink mirrors a row of the `short_urls` table.
//
// Fields:
//  Shortcode    – unique key identifying the record.
//  TargetURL    – where the code resolves to.
//  Kind         – explicit record kind (link/snippet/file/bio).
//  CreatorID    – owning user, nil for anonymous codes.
//  PasswordHash – per-link password hash, nil unless protected.
//  IsProtected  – true when a password gate applies; implies PasswordHash set.
//  CreatedAt    – creation time, persisted as an ISO-8601 string.
type ShortLink struct {
	Shortcode    string    // short_urls.shortcode
	TargetURL    string    // short_urls.target_url
	Kind         LinkKind  // short_urls.kind
	CreatorID    *uint64   // short_urls.creator_id (nullable)
	PasswordHash *string   // short_urls.password_hash (nullable)
	IsProtected  bool      // short_urls.is_password_protected
	CreatedAt    time.Time // short_urls.created_at (ISO-8601 string column)
}
