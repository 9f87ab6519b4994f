package model

import (
	"path"
	"path/filepath"
	"time"
)

const (
	DefaultAPIBaseURL       = "https://smotrim.ru/api/audios"
	DefaultMediaURLTemplate = "https://vgtrk-podcast.cdnvideo.ru/audio/listen?id=%d"
	DefaultEpisodeLimit     = 10
	DefaultResolverWorkers  = 16
	DefaultResolverTimeout  = 10 * time.Second
	DefaultFundingText      = "Поддержите обновление подкаста"
)

// Stations is the root of the configuration file. It is the aggregate
// the rest of the program reads shows from.
type Stations struct {
	Stations []Station `yaml:"stations"`
	Owner    Owner     `yaml:"owner"`
	Funding  Funding   `yaml:"funding,omitempty"`
	API      API       `yaml:"api,omitempty"`
	Resolver Resolver  `yaml:"resolver,omitempty"`
	DataDir  string    `yaml:"data_dir,omitempty"`
	Aws      AwsConfig `yaml:"aws,omitempty"`
}

// Owner is rendered as itunes:owner of every feed.
type Owner struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Funding is rendered as podcast:funding when URL is set.
type Funding struct {
	URL  string `yaml:"url"`
	Text string `yaml:"text"`
}

type API struct {
	BaseURL  string `yaml:"base_url"`
	MediaURL string `yaml:"media_url"`
	Limit    int    `yaml:"limit"`
}

type Resolver struct {
	Workers int           `yaml:"workers"`
	Timeout time.Duration `yaml:"timeout"`
}

// Shows returns all podcasts of all stations with the Station field
// filled in from the enclosing station.
func (s *Stations) Shows() []Show {
	var shows []Show
	for _, st := range s.Stations {
		for _, p := range st.Podcasts {
			p.Station = st.Name
			shows = append(shows, p)
		}
	}
	return shows
}

// SetDefaults fills in every optional setting left empty.
func (s *Stations) SetDefaults() {
	if s.API.BaseURL == "" {
		s.API.BaseURL = DefaultAPIBaseURL
	}
	if s.API.MediaURL == "" {
		s.API.MediaURL = DefaultMediaURLTemplate
	}
	if s.API.Limit <= 0 {
		s.API.Limit = DefaultEpisodeLimit
	}
	if s.Resolver.Workers <= 0 {
		s.Resolver.Workers = DefaultResolverWorkers
	}
	if s.Resolver.Timeout <= 0 {
		s.Resolver.Timeout = DefaultResolverTimeout
	}
	if s.Funding.URL != "" && s.Funding.Text == "" {
		s.Funding.Text = DefaultFundingText
	}
}

// Validate checks the whole configuration and reports every violated
// field.
func (s *Stations) Validate() error {
	verr := &ValidationError{}
	if len(s.Stations) == 0 {
		verr.Add("stations", "at least one station is required")
	}
	if s.Owner.Name == "" {
		verr.Add("owner.name", "is required")
	}
	if s.Owner.Email == "" {
		verr.Add("owner.email", "is required")
	}
	if s.Funding.URL != "" && !isHTTPURL(s.Funding.URL) {
		verr.Add("funding.url", "must be an absolute http(s) URL, got %q", s.Funding.URL)
	}
	if s.API.BaseURL != "" && !isHTTPURL(s.API.BaseURL) {
		verr.Add("api.base_url", "must be an absolute http(s) URL, got %q", s.API.BaseURL)
	}
	if s.API.Limit < 0 {
		verr.Add("api.limit", "must not be negative")
	}
	if s.Resolver.Workers < 0 {
		verr.Add("resolver.workers", "must not be negative")
	}
	for i := range s.Stations {
		verr.Merge(indexed("stations", i), s.Stations[i].validate())
	}
	s.validateFileNames(verr)
	return verr.Err()
}

// validateFileNames rejects feed and atom files sharing a file name,
// since published files are keyed by file name only.
func (s *Stations) validateFileNames(verr *ValidationError) {
	seen := map[string]string{}
	check := func(field, file string) {
		if file == "" {
			return
		}
		name := path.Base(filepath.ToSlash(file))
		if other, ok := seen[name]; ok {
			verr.Add(field, "file name %q is already used by %s", name, other)
			return
		}
		seen[name] = field
	}
	for i, st := range s.Stations {
		for j, p := range st.Podcasts {
			prefix := indexed("stations", i) + "." + indexed("podcasts", j)
			check(prefix+".feed", p.Feed)
			check(prefix+".atom", p.Atom)
		}
	}
}
