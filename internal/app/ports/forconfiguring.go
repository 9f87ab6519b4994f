package ports

import (
	"context"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

type ForConfiguring interface {
	// Load reads the configuration, applies defaults and validates
	// it. A configuration that does not validate is returned as a
	// *model.ValidationError listing every offending field.
	Load(ctx context.Context) (*model.Stations, error)
}
