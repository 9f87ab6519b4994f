package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

// resolvetilde returns path where initial tilde (~) is replaced by
// os.UserHomeDir().
func resolvetilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}
		return filepath.Join(dirname, path[2:])
	}
	return path
}

// showFilter returns a filter selecting shows whose title (ignoring
// case), feed path or feed file name equals one of patterns. No
// patterns selects every show.
func showFilter(patterns []string) func(show *model.Show) bool {
	if len(patterns) == 0 {
		return nil
	}
	return func(show *model.Show) bool {
		for _, p := range patterns {
			if strings.EqualFold(show.Title, p) || show.Feed == p || filepath.Base(show.Feed) == p {
				return true
			}
		}
		return false
	}
}
