package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/mmcdole/gofeed"
	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/podcast"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/asker"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/configurator"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/fetcher"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/parser"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/resolver"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/uploader"
	"github.com/sa6mwa/mkfeed/internal/infra/httpclient"
	"github.com/urfave/cli/v2"
)

// setup returns the context of c carrying the logger configured by the
// global flags.
func setup(c *cli.Context) (context.Context, error) {
	l, err := logger.New(logger.Options{
		Level:  c.String("log-level"),
		Format: c.String("log-format"),
	})
	if err != nil {
		return nil, err
	}
	return logger.WithLogger(c.Context, l), nil
}

func loadConfig(ctx context.Context, file string) (*model.Stations, error) {
	l := logger.FromContext(ctx)
	stations, err := configurator.New(resolvetilde(file)).Load(ctx)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				l.Error("Invalid configuration", "file", file, "field", f.Field, "problem", f.Message)
			}
		}
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}
	l.Info("Podcast list loaded", "file", file, "podcasts", len(stations.Shows()))
	return stations, nil
}

func generate(c *cli.Context) error {
	ctx, err := setup(c)
	if err != nil {
		return err
	}
	l := logger.FromContext(ctx)
	stations, err := loadConfig(ctx, c.String("config"))
	if err != nil {
		return err
	}
	dryRun := c.Bool("dry-run")
	stations.DataDir = resolvetilde(stations.DataDir)
	mirrorDir := stations.DataDir
	if dryRun {
		mirrorDir = ""
	}

	fetch := fetcher.New(stations.API, mirrorDir, httpclient.New(stations.Resolver.Timeout))
	resolve := resolver.New(stations.Resolver, nil)
	g := podcast.NewGenerator(stations, fetch, podcast.NewAssembler(resolve, stations.API.MediaURL), parser.New(c.Bool("diff")))
	g.DryRun = dryRun
	g.Filter = showFilter(c.StringSlice("show"))

	if c.Bool("upload") {
		if !stations.Aws.Enabled() {
			return fmt.Errorf("unable to upload: %w (aws.bucket)", uploader.ErrNoBucket)
		}
		l.Info("Feeds will be uploaded", "bucket", stations.Aws.Bucket, "prefix", stations.Aws.Prefix)
		g.AfterWrite = publish(uploader.New(stations.Aws), asker.New(dryRun, c.Bool("force")), stations.Aws)
	}

	summary := g.Run(ctx, stations)
	if err := g.WriteCatalog(ctx, stations); err != nil {
		l.Error("Unable to write catalog", "dataDir", stations.DataDir, "error", err)
		summary.Failed++
	}
	if summary.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d podcast(s) failed, %d written", summary.Failed, summary.Written), 1)
	}
	return nil
}

// publish returns the hook uploading the files of a written feed after
// showing the diff against the published version.
func publish(up ports.ForUploading, ask ports.ForAsking, cfg model.AwsConfig) podcast.AfterWriteFunc {
	return func(ctx context.Context, feed *podcast.Feed) error {
		l := logger.FromContext(ctx)
		files := []string{feed.Show.Feed}
		if feed.Atom != nil {
			files = append(files, feed.Show.Atom)
		}
		for _, file := range files {
			key := uploader.Key(cfg.Prefix, file)
			if err := up.Diff(ctx, cfg.Bucket, key, file); err != nil {
				if !errors.Is(err, ports.ErrNotFound) {
					return err
				}
				l.Info("Not published before", "file", file, "path", "s3://"+path.Join(cfg.Bucket, key))
			}
			if !ask.Ask(ctx, "Upload %s to s3://%s?", file, path.Join(cfg.Bucket, key)) {
				continue
			}
			if err := up.Upload(ctx, &ports.ForUploadingRequest{
				Store:        cfg.Bucket,
				To:           key,
				From:         file,
				StorageClass: cfg.GetStorageClass(),
			}); err != nil {
				return err
			}
		}
		return nil
	}
}

func check(c *cli.Context) error {
	ctx, err := setup(c)
	if err != nil {
		return err
	}
	files := c.Args().Slice()
	if len(files) == 0 {
		stations, err := loadConfig(ctx, c.String("config"))
		if err != nil {
			return err
		}
		for _, show := range stations.Shows() {
			files = append(files, show.Feed)
			if show.Atom != "" {
				files = append(files, show.Atom)
			}
		}
	}
	fp := gofeed.NewParser()
	failed := 0
	for _, file := range files {
		if err := checkFeed(ctx, fp, resolvetilde(file)); err != nil {
			logger.FromContext(ctx).Error("Feed does not parse", "file", file, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d feed(s) do not parse", failed, len(files)), 1)
	}
	return nil
}

// checkFeed parses file and logs what a podcast client would see.
func checkFeed(ctx context.Context, fp *gofeed.Parser, file string) error {
	l := logger.FromContext(ctx)
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	feed, err := fp.Parse(f)
	if err != nil {
		return err
	}
	first := ""
	if len(feed.Items) > 0 {
		first = feed.Items[0].Title
	}
	l.Info("Feed parses", "file", file, "type", feed.FeedType, "title", feed.Title, "items", len(feed.Items), "first", first)
	for _, item := range feed.Items {
		if len(item.Enclosures) == 0 {
			l.Warn("Item has no enclosure", "file", file, "guid", item.GUID, "title", item.Title)
		}
	}
	return nil
}
