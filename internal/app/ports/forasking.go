package ports

import "context"

type ForAsking interface {
	// For asking questions in a terminal (or always answer based on
	// the dry-run or force flags). Returns false on "no" and true on
	// "yes". Choosing "exit program" ends the process. ctx could hold
	// an slog.Logger set with logger.WithLogger.
	Ask(ctx context.Context, format string, a ...any) bool
}
