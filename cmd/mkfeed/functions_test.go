package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvetilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "podcasts.yaml"), resolvetilde("~/podcasts.yaml"))
	assert.Equal(t, "podcasts.yaml", resolvetilde("podcasts.yaml"))
}

func TestShowFilter(t *testing.T) {
	assert.Nil(t, showFilter(nil))
	filter := showFilter([]string{"вести", "feeds/mayak.xml", "analytics.xml"})
	assert.True(t, filter(&model.Show{Title: "Вести", Feed: "feeds/vesti.xml"}))
	assert.True(t, filter(&model.Show{Title: "Маяк", Feed: "feeds/mayak.xml"}))
	assert.True(t, filter(&model.Show{Title: "Аналитика", Feed: "public/analytics.xml"}))
	assert.False(t, filter(&model.Show{Title: "Культура", Feed: "feeds/culture.xml"}))
}

func TestCheckFeed(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.xml")
	require.NoError(t, os.WriteFile(good, []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Вести</title>
    <item>
      <title>Итоги дня</title>
      <guid isPermaLink="false">1</guid>
    </item>
  </channel>
</rss>
`), 0644))
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("not a feed"), 0644))

	var logs bytes.Buffer
	ctx := logger.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))
	fp := gofeed.NewParser()
	require.NoError(t, checkFeed(ctx, fp, good))
	assert.Contains(t, logs.String(), "Feed parses")
	assert.Contains(t, logs.String(), "Item has no enclosure")
	assert.Error(t, checkFeed(ctx, fp, bad))
	assert.Error(t, checkFeed(ctx, fp, filepath.Join(dir, "missing.xml")))
}
