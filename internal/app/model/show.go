package model

import (
	"fmt"
	"net/url"
	"strings"
)

// Station groups the shows of one broadcaster. Its name is the
// itunes:author of all of its feeds.
type Station struct {
	Name     string `yaml:"name"`
	ID       int64  `yaml:"id"`
	Website  string `yaml:"website"`
	Podcasts []Show `yaml:"podcasts"`
}

// Show is one configured podcast.
type Show struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	BrandID     int64    `yaml:"brand_id,omitempty"`
	RubricID    int64    `yaml:"rubric_id,omitempty"`
	Category    Category `yaml:"category"`
	SubCategory string   `yaml:"sub_category,omitempty"`
	Website     string   `yaml:"website"`
	Image       string   `yaml:"image"`
	// Feed is the path the RSS file is written to.
	Feed string `yaml:"feed"`
	// FeedURL is the public location of Feed, used as the atom:link
	// self reference. Defaults to Feed.
	FeedURL string `yaml:"feed_url,omitempty"`
	// Atom is an optional path of an additional Atom rendition.
	Atom string `yaml:"atom,omitempty"`
	// Markdown marks Description as markdown to be rendered as HTML.
	Markdown bool `yaml:"markdown,omitempty"`

	// Station is not read from the show itself but from the enclosing
	// station.
	Station string `yaml:"-"`
}

// CatalogID returns the upstream identifier of the show. Exactly one
// of brand_id and rubric_id must be set.
func (s *Show) CatalogID() (CatalogID, error) {
	switch {
	case s.BrandID != 0 && s.RubricID != 0:
		return CatalogID{}, ErrAmbiguousCatalogID
	case s.BrandID != 0:
		return CatalogID{Kind: KindBrand, Value: s.BrandID}, nil
	case s.RubricID != 0:
		return CatalogID{Kind: KindRubric, Value: s.RubricID}, nil
	}
	return CatalogID{}, ErrNoCatalogID
}

// ItunesCategory returns the category with sub_category taking
// precedence over a sub-category given inside category.
func (s *Show) ItunesCategory() Category {
	c := s.Category
	if s.SubCategory != "" {
		c.Subcategory = s.SubCategory
	}
	return c
}

// SelfLink returns the URL the feed is published under.
func (s *Show) SelfLink() string {
	if s.FeedURL != "" {
		return s.FeedURL
	}
	return s.Feed
}

// Validate reports every violated field of the show.
func (s *Show) Validate() error {
	return s.validate().Err()
}

func (s *Show) validate() *ValidationError {
	verr := &ValidationError{}
	if strings.TrimSpace(s.Title) == "" {
		verr.Add("title", "is required")
	}
	if s.BrandID < 0 {
		verr.Add("brand_id", "must be positive")
	}
	if s.RubricID < 0 {
		verr.Add("rubric_id", "must be positive")
	}
	if _, err := s.CatalogID(); err != nil {
		verr.Add("brand_id", "%v", err)
	}
	if strings.TrimSpace(s.Category.Name) == "" {
		verr.Add("category", "is required")
	}
	if !isHTTPURL(s.Website) {
		verr.Add("website", "must be an absolute http(s) URL, got %q", s.Website)
	}
	if !isHTTPURL(s.Image) {
		verr.Add("image", "must be an absolute http(s) URL, got %q", s.Image)
	}
	if strings.TrimSpace(s.Feed) == "" {
		verr.Add("feed", "is required")
	}
	if s.FeedURL != "" && !isHTTPURL(s.FeedURL) {
		verr.Add("feed_url", "must be an absolute http(s) URL, got %q", s.FeedURL)
	}
	return verr
}

func (s *Station) validate() *ValidationError {
	verr := &ValidationError{}
	if strings.TrimSpace(s.Name) == "" {
		verr.Add("name", "is required")
	}
	if s.ID <= 0 {
		verr.Add("id", "must be positive")
	}
	if !isHTTPURL(s.Website) {
		verr.Add("website", "must be an absolute http(s) URL, got %q", s.Website)
	}
	if len(s.Podcasts) == 0 {
		verr.Add("podcasts", "at least one podcast is required")
	}
	for i := range s.Podcasts {
		verr.Merge(indexed("podcasts", i), s.Podcasts[i].validate())
	}
	return verr
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
