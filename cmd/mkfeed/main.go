package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/configurator"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.DefaultLogger().Error("mkfeed failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "mkfeed",
		Usage:   "Generate podcast RSS feeds from the smotrim.ru episode API and optionally publish them to Amazon S3.",
		Version: model.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level: debug, info, warn or error",
				EnvVars: []string{"MKFEED_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   fmt.Sprintf("Log format: %s, %s or %s (default %s on a terminal, %s otherwise)", logger.FormatText, logger.FormatJSON, logger.FormatLogfmt, logger.FormatText, logger.FormatLogfmt),
				EnvVars: []string{"MKFEED_LOG_FORMAT"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "Fetch the latest episodes of every configured podcast and write the feeds",
				Action:  generate,
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:    "dry-run",
						Aliases: []string{"n"},
						Usage:   "Write the feeds to stdout instead of files, upload nothing",
					},
					&cli.BoolFlag{
						Name:    "diff",
						Aliases: []string{"d"},
						Usage:   "Print a unified diff against the previous version of each feed file",
					},
					&cli.BoolFlag{
						Name:    "upload",
						Aliases: []string{"u"},
						Usage:   "Upload each written feed to the S3 bucket of the aws section in the configuration",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Force, do not ask before uploading, just do it",
					},
					&cli.StringSliceFlag{
						Name:    "show",
						Aliases: []string{"s"},
						Usage:   "Only generate podcasts with this title or feed file, can be repeated",
					},
				},
			},
			{
				Name:      "check",
				Aliases:   []string{"c"},
				Usage:     "Parse feed files and report what a podcast client would see",
				ArgsUsage: "[feed files, default every feed in the configuration]",
				Action:    check,
				Flags: []cli.Flag{
					configFlag(),
				},
			},
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   configurator.DefaultConfigFile,
		Usage:   "Station and podcast configuration file",
		EnvVars: []string{"MKFEED_CONFIG"},
	}
}
