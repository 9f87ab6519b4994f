package ports

import (
	"context"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

// ForParsing should produce podcast feeds from the model.
type ForParsing interface {
	// Render returns the RSS 2.0 document of show with one item per
	// episode in the order given.
	Render(ctx context.Context, show *model.Show, owner model.Owner, funding model.Funding, episodes []model.Episode) ([]byte, error)
	// RenderAtom returns an Atom rendition of the same feed.
	RenderAtom(ctx context.Context, show *model.Show, episodes []model.Episode) ([]byte, error)
	// WriteRSS replaces the file at path with data.
	WriteRSS(ctx context.Context, path string, data []byte) error
	WriteRSSToStdout(ctx context.Context, data []byte) error
}
