// fetcher implements the ports.ForFetching interface against the
// smotrim.ru episode API.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/sa6mwa/mkfeed/internal/infra/httpclient"
)

var (
	ErrUnexpectedStatus error = errors.New("unexpected status from episode API")
)

// maxPayload caps the size of an API response that is read into
// memory.
const maxPayload = 16 << 20

type forFetching struct {
	client  *http.Client
	baseURL string
	limit   int
	dataDir string
}

// New returns a fetcher for api. When dataDir is not empty every
// successfully retrieved payload is also written to
// <dataDir>/brands/<id>.json or <dataDir>/rubrics/<id>.json. A nil
// client uses httpclient.New with the default resolver timeout.
func New(api model.API, dataDir string, client *http.Client) ports.ForFetching {
	if client == nil {
		client = httpclient.New(model.DefaultResolverTimeout)
	}
	if api.BaseURL == "" {
		api.BaseURL = model.DefaultAPIBaseURL
	}
	if api.Limit <= 0 {
		api.Limit = model.DefaultEpisodeLimit
	}
	return &forFetching{
		client:  client,
		baseURL: api.BaseURL,
		limit:   api.Limit,
		dataDir: dataDir,
	}
}

// payload is the part of the API response that carries episodes.
type payload struct {
	Contents []struct {
		List []json.RawMessage `json:"list"`
	} `json:"contents"`
}

func (f *forFetching) Episodes(ctx context.Context, show *model.Show) ([]model.RawEpisode, error) {
	l := logger.FromContext(ctx)
	id, err := show.CatalogID()
	if err != nil {
		return nil, err
	}
	u, err := f.endpoint(id)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpclient.SetHeaders(req)
	req.Header.Set("Accept", "application/json")
	l.Debug("Fetching episodes", "catalog", id.String(), "url", u)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch episodes of %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s from %s", ErrUnexpectedStatus, resp.Status, u)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("unable to read episodes of %s: %w", id, err)
	}
	if f.dataDir != "" {
		if err := f.mirror(id, body); err != nil {
			l.Warn("Unable to mirror API payload", "catalog", id.String(), "error", err)
		}
	}
	return decode(ctx, id, body), nil
}

func (f *forFetching) endpoint(id model.CatalogID) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid api base_url %q: %w", f.baseURL, err)
	}
	q := u.Query()
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(f.limit))
	q.Set(id.QueryParam(), strconv.FormatInt(id.Value, 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (f *forFetching) mirror(id model.CatalogID, body []byte) error {
	dir := filepath.Join(f.dataDir, id.Dir())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, strconv.FormatInt(id.Value, 10)+".json"), body, 0644)
}

// decode extracts the raw episodes of the first content entry. A body
// of the wrong shape yields no episodes and an item that does not
// decode is skipped.
func decode(ctx context.Context, id model.CatalogID, body []byte) []model.RawEpisode {
	l := logger.FromContext(ctx)
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		l.Warn("Episode API payload is not usable, no episodes for this show", "catalog", id.String(), "error", err)
		return []model.RawEpisode{}
	}
	if len(p.Contents) == 0 {
		l.Warn("Episode API payload has no contents, no episodes for this show", "catalog", id.String())
		return []model.RawEpisode{}
	}
	episodes := make([]model.RawEpisode, 0, len(p.Contents[0].List))
	for i, raw := range p.Contents[0].List {
		var episode model.RawEpisode
		if err := json.Unmarshal(raw, &episode); err != nil {
			l.Warn("Skipping undecodable episode", "catalog", id.String(), "index", i, "error", err)
			continue
		}
		episodes = append(episodes, episode)
	}
	return episodes
}
