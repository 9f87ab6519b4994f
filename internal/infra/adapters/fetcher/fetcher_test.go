package fetcher

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "contents": [
    {
      "list": [
        {
          "id": 2900001,
          "title": "Вести. Итоги дня",
          "anons": "Итоги дня",
          "duration": "0:24:10",
          "published": "12:30",
          "description": null,
          "player": {"preview": {"source": {"main": "https://cdn.example.org/p/1.jpg"}}}
        },
        {"id": "not a number"},
        {
          "id": 2900000,
          "title": "Вести. Утро",
          "anons": "Утро",
          "duration": "05:30",
          "published": "14 марта 2024",
          "description": "Утренний выпуск"
        }
      ]
    }
  ]
}`

func testContext(buf *bytes.Buffer) context.Context {
	return logger.WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))
}

func TestEpisodes(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	var logs bytes.Buffer
	f := New(model.API{BaseURL: srv.URL + "/api/audios", Limit: 10}, dataDir, srv.Client())
	show := &model.Show{Title: "Вести", BrandID: 58500}
	episodes, err := f.Episodes(testContext(&logs), show)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"page": "1", "limit": "10", "brandId": "58500"}, query)
	require.Len(t, episodes, 2)
	assert.Equal(t, int64(2900001), episodes[0].ID)
	assert.Nil(t, episodes[0].Description)
	assert.Equal(t, "https://cdn.example.org/p/1.jpg", episodes[0].PreviewSource())
	assert.Equal(t, int64(2900000), episodes[1].ID)
	assert.Equal(t, "", episodes[1].PreviewSource())
	assert.Contains(t, logs.String(), "Skipping undecodable episode")

	mirrored, err := os.ReadFile(filepath.Join(dataDir, "brands", "58500.json"))
	require.NoError(t, err)
	assert.JSONEq(t, samplePayload, string(mirrored))
}

func TestEpisodesRubric(t *testing.T) {
	var rubric string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rubric = r.URL.Query().Get("rubricId")
		assert.Empty(t, r.URL.Query().Get("brandId"))
		w.Write([]byte(`{"contents":[{"list":[]}]}`))
	}))
	defer srv.Close()

	f := New(model.API{BaseURL: srv.URL}, "", srv.Client())
	episodes, err := f.Episodes(context.Background(), &model.Show{RubricID: 77})
	require.NoError(t, err)
	assert.Empty(t, episodes)
	assert.Equal(t, "77", rubric)
}

func TestEpisodesMalformedPayload(t *testing.T) {
	for _, body := range []string{`<html>maintenance</html>`, `{"contents": []}`, `{"contents": "nope"}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		var logs bytes.Buffer
		episodes, err := New(model.API{BaseURL: srv.URL}, "", srv.Client()).Episodes(testContext(&logs), &model.Show{BrandID: 1})
		srv.Close()
		require.NoError(t, err, body)
		assert.NotNil(t, episodes, body)
		assert.Empty(t, episodes, body)
		assert.Contains(t, logs.String(), "no episodes for this show", body)
	}
}

func TestEpisodesUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()
	_, err := New(model.API{BaseURL: srv.URL}, "", srv.Client()).Episodes(context.Background(), &model.Show{BrandID: 1})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestEpisodesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	_, err := New(model.API{BaseURL: url}, "", nil).Episodes(context.Background(), &model.Show{BrandID: 1})
	assert.Error(t, err)
}

func TestEpisodesWithoutCatalogID(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()
	_, err := New(model.API{BaseURL: srv.URL}, "", srv.Client()).Episodes(context.Background(), &model.Show{Title: "Без id"})
	assert.ErrorIs(t, err, model.ErrNoCatalogID)
	assert.Zero(t, requests)
}
