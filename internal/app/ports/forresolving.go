package ports

import "context"

// ForResolving looks up facts about remote resources that the episode
// API does not deliver: the byte size of media files and the final
// location of redirecting image links. Lookups are best effort.
type ForResolving interface {
	// MediaSizes returns exactly one entry per distinct url, the
	// Content-Length in bytes or model.UnknownSize when it could not
	// be determined. Failures are logged, never returned.
	MediaSizes(ctx context.Context, urls []string) map[string]int64
	// ImageURL follows the redirects of source and returns the final
	// URL.
	ImageURL(ctx context.Context, source string) (string, error)
	// ImageURLs resolves every source concurrently, an empty string
	// marks a failed lookup.
	ImageURLs(ctx context.Context, sources []string) map[string]string
}
