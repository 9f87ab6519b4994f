package podcast

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
)

// CatalogFile is the name of the show catalog written into the data
// dir.
const CatalogFile = "podcasts.json"

// Feed is the rendered result of one show.
type Feed struct {
	Show     *model.Show
	Catalog  model.CatalogID
	Episodes []model.Episode
	RSS      []byte
	// Atom is only rendered when the show has an atom path.
	Atom []byte
}

// Summary counts the outcome of a Run.
type Summary struct {
	Written int
	Failed  int
}

// AfterWriteFunc is called with every feed written by Run, for example
// to publish it. An error counts the show as failed.
type AfterWriteFunc func(ctx context.Context, feed *Feed) error

type Generator struct {
	fetcher   ports.ForFetching
	assembler *Assembler
	parser    ports.ForParsing
	owner     model.Owner
	funding   model.Funding
	dataDir   string

	// DryRun renders feeds to stdout instead of writing files.
	DryRun bool
	// Filter selects the shows Run processes, nil selects all.
	Filter func(show *model.Show) bool
	// AfterWrite is optional.
	AfterWrite AfterWriteFunc
}

func NewGenerator(cfg *model.Stations, fetcher ports.ForFetching, assembler *Assembler, parser ports.ForParsing) *Generator {
	return &Generator{
		fetcher:   fetcher,
		assembler: assembler,
		parser:    parser,
		owner:     cfg.Owner,
		funding:   cfg.Funding,
		dataDir:   cfg.DataDir,
	}
}

// Generate fetches, assembles and renders the feed of show. The
// catalog id is checked before any request is made.
func (g *Generator) Generate(ctx context.Context, show *model.Show) (*Feed, error) {
	catalog, err := show.CatalogID()
	if err != nil {
		return nil, err
	}
	raw, err := g.fetcher.Episodes(ctx, show)
	if err != nil {
		return nil, err
	}
	episodes, err := g.assembler.Assemble(ctx, show, raw)
	if err != nil {
		return nil, err
	}
	rss, err := g.parser.Render(ctx, show, g.owner, g.funding, episodes)
	if err != nil {
		return nil, err
	}
	feed := &Feed{
		Show:     show,
		Catalog:  catalog,
		Episodes: episodes,
		RSS:      rss,
	}
	if show.Atom != "" {
		if feed.Atom, err = g.parser.RenderAtom(ctx, show, episodes); err != nil {
			return nil, err
		}
	}
	return feed, nil
}

// Run generates and writes the feed of every selected show, one show
// at a time. A failing show is logged and the next one is processed.
func (g *Generator) Run(ctx context.Context, stations *model.Stations) Summary {
	l := logger.FromContext(ctx)
	var summary Summary
	for _, station := range stations.Stations {
		l.Info("Station", "name", station.Name, "podcasts", len(station.Podcasts))
		for _, show := range station.Podcasts {
			show.Station = station.Name
			if g.Filter != nil && !g.Filter(&show) {
				continue
			}
			if err := ctx.Err(); err != nil {
				l.Error("Show failed", "title", show.Title, "error", err)
				summary.Failed++
				continue
			}
			if err := g.runShow(ctx, &show); err != nil {
				l.Error("Show failed", "title", show.Title, "error", err)
				summary.Failed++
				continue
			}
			summary.Written++
		}
	}
	l.Info("Done", "written", summary.Written, "failed", summary.Failed)
	return summary
}

func (g *Generator) runShow(ctx context.Context, show *model.Show) error {
	l := logger.FromContext(ctx)
	feed, err := g.Generate(ctx, show)
	if err != nil {
		return err
	}
	if g.DryRun {
		return g.parser.WriteRSSToStdout(ctx, feed.RSS)
	}
	if err := g.parser.WriteRSS(ctx, show.Feed, feed.RSS); err != nil {
		return fmt.Errorf("unable to write %s: %w", show.Feed, err)
	}
	if feed.Atom != nil {
		if err := g.parser.WriteRSS(ctx, show.Atom, feed.Atom); err != nil {
			return fmt.Errorf("unable to write %s: %w", show.Atom, err)
		}
	}
	l.Info("Feed written", "id", feed.Catalog.String(), "title", show.Title, "file", show.Feed, "items", len(feed.Episodes))
	if g.AfterWrite != nil {
		return g.AfterWrite(ctx, feed)
	}
	return nil
}

// CatalogEntry is one show as listed in the catalog file.
type CatalogEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BrandID     int64  `json:"brand_id,omitempty"`
	RubricID    int64  `json:"rubric_id,omitempty"`
	Image       string `json:"image"`
	Feed        string `json:"feed"`
	Station     string `json:"station"`
}

// WriteCatalog writes the list of all configured shows, selected by
// Filter or not, to <data_dir>/podcasts.json. Nothing is written
// without a data dir or in dry-run mode.
func (g *Generator) WriteCatalog(ctx context.Context, stations *model.Stations) error {
	l := logger.FromContext(ctx)
	if g.dataDir == "" || g.DryRun {
		return nil
	}
	shows := stations.Shows()
	entries := make([]CatalogEntry, 0, len(shows))
	for _, show := range shows {
		entries = append(entries, CatalogEntry{
			Title:       show.Title,
			Description: show.Description,
			BrandID:     show.BrandID,
			RubricID:    show.RubricID,
			Image:       show.Image,
			Feed:        show.SelfLink(),
			Station:     show.Station,
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(g.dataDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(g.dataDir, CatalogFile)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return err
	}
	l.Info("Catalog written", "file", path, "podcasts", len(entries))
	return nil
}
