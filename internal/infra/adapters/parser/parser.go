// parser implements the ports.ForParsing port. It renders the RSS 2.0
// document with iTunes and Podcasting 2.0 extensions, an optional Atom
// rendition, and writes feeds to disk.
package parser

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/feeds"
	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/sa6mwa/mkfeed/internal/infra/textdiff"
)

// forParsing implements the ports.ForParsing port (interface).
type forParsing struct {
	diff   bool
	stdout io.Writer
}

// New returns the feed parser. With diff set, WriteRSS prints a
// unified diff against the previous version of the file to stdout.
func New(diff bool) ports.ForParsing {
	return NewWithWriter(diff, os.Stdout)
}

// NewWithWriter is New with stdout replaced by w.
func NewWithWriter(diff bool, w io.Writer) ports.ForParsing {
	return &forParsing{
		diff:   diff,
		stdout: w,
	}
}

func (p *forParsing) Render(_ context.Context, show *model.Show, owner model.Owner, funding model.Funding, episodes []model.Episode) ([]byte, error) {
	if show == nil {
		return nil, errors.New("no show to render")
	}
	rss := model.Rss{
		Version: "2.0",
		Itunes:  model.NamespaceItunes,
		Atom:    model.NamespaceAtom,
		Podcast: model.NamespacePodcast,
		Channel: model.Channel{
			Title:       show.Title,
			Link:        show.Website,
			Description: description(show),
			Language:    model.Language,
			Generator:   model.GeneratorName,
			AtomLink: model.AtomLink{
				Href: show.SelfLink(),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Locked:   "no",
			Author:   show.Station,
			Explicit: false,
			Owner: model.ItunesOwner{
				Name:  owner.Name,
				Email: owner.Email,
			},
			Image:    model.ItunesImage{Href: show.Image},
			Category: itunesCategory(show.ItunesCategory()),
			Items:    make([]model.Item, 0, len(episodes)),
		},
	}
	if funding.URL != "" {
		rss.Channel.Funding = &model.PodcastFunding{URL: funding.URL, Text: funding.Text}
	}
	for i := range episodes {
		rss.Channel.Items = append(rss.Channel.Items, item(&episodes[i]))
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(rss); err != nil {
		return nil, fmt.Errorf("unable to marshal feed %q: %w", show.Title, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (p *forParsing) RenderAtom(_ context.Context, show *model.Show, episodes []model.Episode) ([]byte, error) {
	if show == nil {
		return nil, errors.New("no show to render")
	}
	feed := &feeds.Feed{
		Title:       show.Title,
		Link:        &feeds.Link{Href: show.Website},
		Description: description(show),
		Author:      &feeds.Author{Name: show.Station},
		Image:       &feeds.Image{Url: show.Image, Title: show.Title, Link: show.Website},
		Id:          show.SelfLink(),
	}
	for i := range episodes {
		e := &episodes[i]
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          strconv.FormatInt(e.ID, 10),
			Title:       e.ItemTitle(),
			Link:        &feeds.Link{Href: e.MediaURL},
			Description: e.Description,
			Created:     e.Published.In(model.Location()),
			Enclosure: &feeds.Enclosure{
				Url:    e.MediaURL,
				Type:   model.EnclosureType,
				Length: strconv.FormatInt(e.MediaSize, 10),
			},
		})
		if feed.Created.IsZero() || e.Published.After(feed.Created) {
			feed.Created = e.Published.In(model.Location())
		}
	}
	if feed.Created.IsZero() {
		feed.Created = time.Now().In(model.Location())
	}
	content, err := feed.ToAtom()
	if err != nil {
		return nil, fmt.Errorf("could not marshal %q to atom: %w", show.Title, err)
	}
	return []byte(content), nil
}

// WriteRSS replaces path with data through a temporary file in the
// same directory so readers never see a partial feed.
func (p *forParsing) WriteRSS(ctx context.Context, path string, data []byte) error {
	l := logger.FromContext(ctx)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if p.diff {
		previous, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			l.Info("Skipping diff, no previous feed", "file", path)
		case err != nil:
			return err
		default:
			if diff := textdiff.Unified(path, path+" (new)", string(previous), string(data)); diff != "" {
				l.Info("Diff follows", "file", path)
				fmt.Fprintln(p.stdout, diff)
			} else {
				l.Info("Feed unchanged", "file", path)
			}
		}
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	l.Debug("Wrote feed", "file", path, "bytes", len(data))
	return nil
}

func (p *forParsing) WriteRSSToStdout(_ context.Context, data []byte) error {
	_, err := p.stdout.Write(data)
	return err
}

func description(show *model.Show) string {
	if show.Markdown {
		return MarkdownToHTML(show.Description)
	}
	return show.Description
}

func itunesCategory(c model.Category) model.ItunesCategory {
	ic := model.ItunesCategory{Text: c.Name}
	if c.Subcategory != "" {
		ic.Subcategory = &model.ItunesCategory{Text: c.Subcategory}
	}
	return ic
}

func item(e *model.Episode) model.Item {
	it := model.Item{
		Title:       e.ItemTitle(),
		Description: e.Description,
		GUID: model.GUID{
			IsPermaLink: "false",
			Text:        strconv.FormatInt(e.ID, 10),
		},
		PubDate: e.Published,
		Enclosure: model.Enclosure{
			URL:    e.MediaURL,
			Length: e.MediaSize,
			Type:   model.EnclosureType,
		},
		Duration: e.Duration,
	}
	if e.PictureURL != "" {
		it.Image = &model.ItunesImage{Href: e.PictureURL}
	}
	return it
}
