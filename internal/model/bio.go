package model

import "time"

// BioEntry is one ordered entry of a bio page's link list. The slice
// is marshaled to JSON and stored in bio_profiles.bio_links.
type BioEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SocialLink is one ordered entry of a bio page's social media list,
// stored as JSON in bio_profiles.social_links.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// BioProfile mirrors a row of the `bio_profiles` table. The primary
// key is the owning user id, which enforces at most one bio per user.
// PublicID is a stable typed identifier ("bio:<uuid>" at the API
// boundary) that replaces shortcode-shape sniffing on lookups.
//
// ShortID must reference a short_urls row with kind=bio owned by the
// same user; the service layer maintains that invariant.
type BioProfile struct {
	UserID            uint64       // bio_profiles.user_id (PK)
	PublicID          string       // bio_profiles.public_id (uuid)
	ShortID           string       // bio_profiles.short_id
	Title             string       // bio_profiles.title
	Description       *string      // bio_profiles.description (nullable)
	ProfilePictureURL *string      // bio_profiles.profile_picture_url (nullable)
	Theme             string       // bio_profiles.theme
	BioLinks          []BioEntry   // bio_profiles.bio_links (JSON)
	SocialLinks       []SocialLink // bio_profiles.social_links (JSON)
	CreatedAt         time.Time    // bio_profiles.created_at (ISO-8601 string column)
	UpdatedAt         time.Time    // bio_profiles.updated_at (ISO-8601 string column)
}
