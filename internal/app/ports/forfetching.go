package ports

import (
	"context"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

// ForFetching retrieves the latest raw episodes of a show from the
// upstream episode API.
type ForFetching interface {
	// Episodes returns the raw episodes of the show's catalog id in
	// API order. An unreachable API or a non-2xx status is an error,
	// a payload that does not have the expected shape yields an empty
	// slice.
	Episodes(ctx context.Context, show *model.Show) ([]model.RawEpisode, error)
}
