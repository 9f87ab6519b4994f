// logger is an slog.Logger adapter to store an slog.Logger (using
// logger.WithLogger) into a context.Context and later retrieve it
// (using logger.FromContext). The default logger is
// github.com/charmbracelet/log.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

type contextKey struct{}

var loggerKey = &contextKey{}

// Formats accepted by Options.Format.
const (
	FormatText   string = "text"
	FormatJSON   string = "json"
	FormatLogfmt string = "logfmt"
)

type Options struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string
	// Format is one of text, json or logfmt. Empty means text when
	// Writer is a terminal and logfmt otherwise.
	Format string
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// WithLogger returns a context with l as slog.Logger based off the
// ctx context. Retrieve the logger using FromContext.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithDefaultLogger returns a context with DefaultLogger set as the
// slog.Logger based off the ctx context. Retrieve the logger using
// FromContext.
func WithDefaultLogger(ctx context.Context) context.Context {
	return WithLogger(ctx, DefaultLogger())
}

// FromContext retrieves an slog.Logger saved by WithLogger from
// ctx. If there is not such logger in the context,
// logger.DefaultLogger() is returned ensuring this function will
// always return a valid slog.Logger.
func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		return DefaultLogger()
	}
	return l
}

// DefaultLogger returns the default logger for this adapter package
// which utilizes github.com/charmbracelet/log.
func DefaultLogger() *slog.Logger {
	return slog.New(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}))
}

// New returns a charmbracelet/log backed slog.Logger configured by
// opts.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	lvl := strings.ToLower(strings.TrimSpace(opts.Level))
	if lvl == "" {
		lvl = "info"
	}
	level, err := log.ParseLevel(lvl)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = FormatLogfmt
		if isTerminal(w) {
			format = FormatText
		}
	}
	o := log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}
	switch format {
	case FormatText:
		o.Formatter = log.TextFormatter
		o.TimeFormat = time.Kitchen
	case FormatJSON:
		o.Formatter = log.JSONFormatter
	case FormatLogfmt:
		o.Formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q, expected %s, %s or %s", opts.Format, FormatText, FormatJSON, FormatLogfmt)
	}
	return slog.New(log.NewWithOptions(w, o)), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
