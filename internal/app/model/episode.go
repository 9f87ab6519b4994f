package model

import "strings"

// UnknownSize marks a media size that could not be determined.
const UnknownSize int64 = -1

// Episode is the normalized and validated representation of one
// upstream episode ready to be rendered. It is never mutated after
// assembly.
type Episode struct {
	ID          int64
	Catalog     CatalogID
	Title       string
	Anons       string
	Description string
	Published   ItunesTime
	Duration    ItunesDuration
	MediaURL    string
	// MediaSize is the enclosure length in bytes, 0 when unknown.
	MediaSize int64
	// PictureURL is empty when the preview image could not be
	// resolved.
	PictureURL string
}

// ItemTitle is the title used for the feed item, the short anons
// falling back to the long title when the anons is blank.
func (e *Episode) ItemTitle() string {
	if strings.TrimSpace(e.Anons) != "" {
		return e.Anons
	}
	return e.Title
}

func (e *Episode) Validate() error {
	verr := &ValidationError{}
	if e.ID <= 0 {
		verr.Add("id", "must be positive")
	}
	if e.Catalog.IsZero() {
		verr.Add("catalog", "is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		verr.Add("title", "is required")
	}
	if e.Published.IsZero() {
		verr.Add("published", "is required")
	}
	if e.Duration.Duration < 0 {
		verr.Add("duration", "must not be negative")
	}
	if e.MediaURL == "" {
		verr.Add("media_url", "is required")
	}
	if e.MediaSize < 0 {
		verr.Add("media_size", "must not be negative")
	}
	return verr.Err()
}

// RawEpisode is one item of the upstream episode list as delivered by
// the API. Text fields are pointers since the API sends null for
// absent values.
type RawEpisode struct {
	ID          int64      `json:"id"`
	Title       *string    `json:"title"`
	Anons       *string    `json:"anons"`
	Duration    *string    `json:"duration"`
	Published   *string    `json:"published"`
	Description *string    `json:"description"`
	Player      *RawPlayer `json:"player"`
}

type RawPlayer struct {
	Preview *struct {
		Source *struct {
			Main string `json:"main"`
		} `json:"source"`
	} `json:"preview"`
}

// PreviewSource returns the redirecting preview image link or "".
func (r *RawEpisode) PreviewSource() string {
	if r.Player == nil || r.Player.Preview == nil || r.Player.Preview.Source == nil {
		return ""
	}
	return r.Player.Preview.Source.Main
}
