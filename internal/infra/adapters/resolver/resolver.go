// resolver implements the ports.ForResolving interface. Lookups run
// concurrently on a bounded number of workers and every lookup has its
// own timeout. Failures degrade to unknown values, they never fail the
// batch.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sa6mwa/mkfeed/internal/app/humanreadable"
	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/sa6mwa/mkfeed/internal/infra/httpclient"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoContentLength  error = errors.New("response has no usable Content-Length")
	ErrUnexpectedStatus error = errors.New("unexpected status")
)

type forResolving struct {
	client  *http.Client
	workers int
	timeout time.Duration
}

// New returns a resolver configured by cfg. Zero values in cfg fall
// back to the model defaults. A nil client uses httpclient.New.
func New(cfg model.Resolver, client *http.Client) ports.ForResolving {
	if cfg.Workers <= 0 {
		cfg.Workers = model.DefaultResolverWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = model.DefaultResolverTimeout
	}
	if client == nil {
		client = httpclient.New(0)
	}
	return &forResolving{
		client:  client,
		workers: cfg.Workers,
		timeout: cfg.Timeout,
	}
}

func (r *forResolving) MediaSizes(ctx context.Context, urls []string) map[string]int64 {
	l := logger.FromContext(ctx)
	sizes := make(map[string]int64, len(urls))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(r.workers)
	for _, u := range distinct(urls) {
		g.Go(func() error {
			size, err := r.mediaSize(ctx, u)
			if err != nil {
				l.Error("Unable to determine media size", "url", u, "error", err)
				size = model.UnknownSize
			} else {
				l.Debug("Media size", "url", u, "size", size, "humanSize", humanreadable.IEC(size))
			}
			mu.Lock()
			sizes[u] = size
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return sizes
}

func (r *forResolving) mediaSize(ctx context.Context, u string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return 0, err
	}
	httpclient.SetHeaders(req)
	// A compressed representation would report the wrong length.
	req.Header.Set("Accept-Encoding", "identity")
	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	if resp.ContentLength < 0 {
		return 0, ErrNoContentLength
	}
	return resp.ContentLength, nil
}

func (r *forResolving) ImageURL(ctx context.Context, source string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", err
	}
	httpclient.SetHeaders(req)
	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	// Only the location is of interest, the image itself is not read.
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s from %s", ErrUnexpectedStatus, resp.Status, resp.Request.URL)
	}
	return resp.Request.URL.String(), nil
}

func (r *forResolving) ImageURLs(ctx context.Context, sources []string) map[string]string {
	l := logger.FromContext(ctx)
	images := make(map[string]string, len(sources))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(r.workers)
	for _, source := range distinct(sources) {
		g.Go(func() error {
			image, err := r.ImageURL(ctx, source)
			if err != nil {
				l.Error("Unable to resolve image", "url", source, "error", err)
				image = ""
			}
			mu.Lock()
			images[source] = image
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return images
}

// distinct returns the values of s in order without duplicates.
func distinct(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
