package resolver

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(buf *bytes.Buffer) context.Context {
	return logger.WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))
}

func TestMediaSizesWithOneTimeout(t *testing.T) {
	var identity atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.Header.Get("Accept-Encoding") == "identity" {
			identity.Add(1)
		}
		id := r.URL.Query().Get("id")
		if id == "slow" {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
			return
		}
		w.Header().Set("Content-Length", "1000"+id)
	}))
	defer srv.Close()

	var urls []string
	for i := 0; i < 9; i++ {
		urls = append(urls, fmt.Sprintf("%s/audio/listen?id=%d", srv.URL, i))
	}
	slow := srv.URL + "/audio/listen?id=slow"
	urls = append(urls, slow)

	var logs bytes.Buffer
	r := New(model.Resolver{Workers: 4, Timeout: 200 * time.Millisecond}, srv.Client())
	start := time.Now()
	sizes := r.MediaSizes(testContext(&logs), urls)
	assert.Less(t, time.Since(start), 4*time.Second)

	require.Len(t, sizes, 10)
	for i := 0; i < 9; i++ {
		assert.Equal(t, int64(10000+i), sizes[urls[i]], urls[i])
	}
	assert.Equal(t, model.UnknownSize, sizes[slow])
	assert.Equal(t, int32(10), identity.Load())
	assert.Contains(t, logs.String(), slow)
}

func TestMediaSizesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/nolength":
			// HEAD without a body and without Content-Length.
		case "/moved":
			http.Redirect(w, r, "/final", http.StatusFound)
		case "/final":
			w.Header().Set("Content-Length", "4242")
		}
	}))
	defer srv.Close()

	r := New(model.Resolver{}, srv.Client())
	urls := []string{srv.URL + "/missing", srv.URL + "/nolength", srv.URL + "/moved", srv.URL + "/moved"}
	sizes := r.MediaSizes(context.Background(), urls)
	assert.Len(t, sizes, 3)
	assert.Equal(t, model.UnknownSize, sizes[srv.URL+"/missing"])
	assert.Equal(t, model.UnknownSize, sizes[srv.URL+"/nolength"])
	assert.Equal(t, int64(4242), sizes[srv.URL+"/moved"])
}

func TestMediaSizesDeduplicates(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Length", "1")
	}))
	defer srv.Close()
	sizes := New(model.Resolver{}, srv.Client()).MediaSizes(context.Background(), []string{srv.URL, srv.URL, srv.URL})
	assert.Len(t, sizes, 1)
	assert.Equal(t, int32(1), requests.Load())
}

func TestMediaSizesEmpty(t *testing.T) {
	sizes := New(model.Resolver{}, nil).MediaSizes(context.Background(), nil)
	assert.NotNil(t, sizes)
	assert.Empty(t, sizes)
}

func TestImageURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/preview/"):
			http.Redirect(w, r, "/images/"+strings.TrimPrefix(r.URL.Path, "/preview/")+".jpg", http.StatusFound)
		case strings.HasPrefix(r.URL.Path, "/images/"):
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("jpeg"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	r := New(model.Resolver{}, srv.Client())
	image, err := r.ImageURL(context.Background(), srv.URL+"/preview/1")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/images/1.jpg", image)

	_, err = r.ImageURL(context.Background(), srv.URL+"/gone")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	images := r.ImageURLs(context.Background(), []string{srv.URL + "/preview/1", srv.URL + "/gone", srv.URL + "/preview/2"})
	assert.Equal(t, map[string]string{
		srv.URL + "/preview/1": srv.URL + "/images/1.jpg",
		srv.URL + "/gone":      "",
		srv.URL + "/preview/2": srv.URL + "/images/2.jpg",
	}, images)
}
