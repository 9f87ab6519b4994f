// podcast turns configured shows into feeds: the Assembler builds
// episode records from raw API items and the Generator drives fetching,
// assembling, rendering and writing for every show.
package podcast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/normalize"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
)

type Assembler struct {
	resolver ports.ForResolving
	mediaURL string
	// Now is the clock "HH:MM" publication times are anchored to.
	Now func() time.Time
}

// NewAssembler returns an Assembler building media URLs from the
// mediaURLTemplate, a fmt format with a single %d verb for the episode
// id.
func NewAssembler(resolver ports.ForResolving, mediaURLTemplate string) *Assembler {
	if mediaURLTemplate == "" {
		mediaURLTemplate = model.DefaultMediaURLTemplate
	}
	return &Assembler{
		resolver: resolver,
		mediaURL: mediaURLTemplate,
		Now:      time.Now,
	}
}

// MediaURL returns the enclosure URL of episode id.
func (a *Assembler) MediaURL(id int64) string {
	return fmt.Sprintf(a.mediaURL, id)
}

// Assemble builds the episode records of show from raw in the same
// order. Sizes and pictures are resolved in one concurrent batch each.
// A raw episode that does not produce a valid record is skipped with a
// warning, the others are still returned.
func (a *Assembler) Assemble(ctx context.Context, show *model.Show, raw []model.RawEpisode) ([]model.Episode, error) {
	l := logger.FromContext(ctx)
	catalog, err := show.CatalogID()
	if err != nil {
		return nil, err
	}
	episodes := make([]model.Episode, 0, len(raw))
	if len(raw) == 0 {
		return episodes, nil
	}

	mediaURLs := make([]string, 0, len(raw))
	sources := make([]string, 0, len(raw))
	for i := range raw {
		mediaURLs = append(mediaURLs, a.MediaURL(raw[i].ID))
		if source := raw[i].PreviewSource(); source != "" {
			sources = append(sources, source)
		}
	}
	l.Debug("Resolving media sizes and pictures", "catalog", catalog.String(), "episodes", len(raw))
	sizes := a.resolver.MediaSizes(ctx, mediaURLs)
	pictures := map[string]string{}
	if len(sources) > 0 {
		pictures = a.resolver.ImageURLs(ctx, sources)
	}

	now := a.Now()
	for i := range raw {
		r := &raw[i]
		mediaURL := mediaURLs[i]
		size, ok := sizes[mediaURL]
		if !ok || size <= 0 {
			l.Warn("Media size unknown", "id", r.ID, "mediaURL", mediaURL)
			size = 0
		}
		var picture string
		if source := r.PreviewSource(); source == "" {
			l.Warn("Episode has no preview picture", "id", r.ID)
		} else if picture = pictures[source]; picture == "" {
			l.Warn("Picture not resolved", "id", r.ID, "source", source)
		}
		episode, err := a.build(ctx, catalog, r, now)
		if err != nil {
			l.Warn("Skipping episode", "id", r.ID, "error", err)
			continue
		}
		episode.MediaURL = mediaURL
		episode.MediaSize = size
		episode.PictureURL = picture
		if err := episode.Validate(); err != nil {
			l.Warn("Skipping episode", "id", r.ID, "error", err)
			continue
		}
		episodes = append(episodes, episode)
	}
	return episodes, nil
}

// build normalizes the text, duration and date fields of r, reporting
// every field that can not be normalized.
func (a *Assembler) build(ctx context.Context, catalog model.CatalogID, r *model.RawEpisode, now time.Time) (model.Episode, error) {
	l := logger.FromContext(ctx)
	verr := &model.ValidationError{}
	episode := model.Episode{
		ID:          r.ID,
		Catalog:     catalog,
		Description: normalize.Description(r.Description),
	}
	if r.Title == nil {
		verr.Add("title", "is missing")
	} else {
		episode.Title = strings.TrimSpace(*r.Title)
	}
	if r.Anons == nil {
		verr.Add("anons", "is missing")
	} else {
		episode.Anons = strings.TrimSpace(*r.Anons)
	}
	if r.Duration == nil {
		verr.Add("duration", "is missing")
	} else if seconds, err := normalize.ParseDuration(*r.Duration); err != nil {
		verr.Add("duration", "%v", err)
	} else {
		episode.Duration = model.DurationFromSeconds(seconds)
	}
	if r.Published == nil {
		verr.Add("published", "is missing")
	} else if published, dateOnly, err := normalize.ParseDate(*r.Published, now); err != nil {
		verr.Add("published", "%v", err)
	} else {
		if dateOnly {
			l.Warn("Published without time of day, using midnight", "id", r.ID, "published", *r.Published)
		}
		episode.Published = model.ItunesTime{Time: published}
	}
	return episode, verr.Err()
}
