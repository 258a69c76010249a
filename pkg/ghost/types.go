package ghost

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Limit is a page size as reported by the Ghost API. The API echoes the
// literal string "all" when unlimited listing was requested; that is
// represented as LimitAll.
type Limit int

// LimitAll marks an unlimited listing.
const LimitAll Limit = -1

// UnmarshalJSON accepts either a number or the string "all".
func (l *Limit) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(`"all"`)) {
		*l = LimitAll

		return nil
	}

	var n int

	err := json.Unmarshal(data, &n)
	if err != nil {
		return fmt.Errorf("parsing limit: %w", err)
	}

	*l = Limit(n)

	return nil
}

// MarshalJSON renders LimitAll back as "all".
func (l Limit) MarshalJSON() ([]byte, error) {
	if l == LimitAll {
		return []byte(`"all"`), nil
	}

	return json.Marshal(int(l))
}

// Pagination is the cursor state of one page of results.
type Pagination struct {
	Page  int   `json:"page"`
	Limit Limit `json:"limit"`
	Pages int   `json:"pages"`
	Total int   `json:"total"`
	Next  *int  `json:"next"`
	Prev  *int  `json:"prev"`
}

// Meta is the metadata envelope of a list response.
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// Post is the typed view of a post record. Pages share the same shape.
type Post struct {
	ID            string     `json:"id"`
	UUID          string     `json:"uuid"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	HTML          string     `json:"html,omitempty"`
	Mobiledoc     string     `json:"mobiledoc,omitempty"`
	Status        string     `json:"status"`
	Featured      bool       `json:"featured"`
	FeatureImage  string     `json:"feature_image,omitempty"`
	CustomExcerpt string     `json:"custom_excerpt,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	URL           string     `json:"url,omitempty"`
}

// Page is the typed view of a page record.
type Page = Post

// Tag is the typed view of a tag record.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Author is the typed view of an author record on the content API.
type Author struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	Bio          string `json:"bio,omitempty"`
	Website      string `json:"website,omitempty"`
	URL          string `json:"url,omitempty"`
}

// Member is the typed view of a member record on the admin API.
type Member struct {
	ID        string     `json:"id"`
	UUID      string     `json:"uuid,omitempty"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Note      string     `json:"note,omitempty"`
	Status    string     `json:"status,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// User is the typed view of a staff user record on the admin API.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	Roles        []Role `json:"roles,omitempty"`
}

// Role is one staff role attached to a user.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Theme is the typed view of a theme record returned by upload and activate.
type Theme struct {
	Name    string `json:"name"`
	Package any    `json:"package,omitempty"`
	Active  bool   `json:"active"`
}

// UploadedImage is the typed view of an image-upload response.
type UploadedImage struct {
	URL string `json:"url"`
	Ref string `json:"ref,omitempty"`
}

// Site is the typed view of the admin site record.
type Site struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Version     string `json:"version,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

// Settings is the typed view of the public content settings record.
type Settings struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Lang        string `json:"lang,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}
