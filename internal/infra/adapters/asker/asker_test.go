package asker

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/stretchr/testify/assert"
)

func TestAskDryRun(t *testing.T) {
	var logs bytes.Buffer
	ctx := logger.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))
	assert.False(t, New(true, true).Ask(ctx, "Upload %s?", "vesti.xml"))
	assert.Contains(t, logs.String(), "Upload vesti.xml? No")
}

func TestAskForce(t *testing.T) {
	var logs bytes.Buffer
	ctx := logger.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))
	assert.True(t, New(false, true).Ask(ctx, "Upload %s?", "vesti.xml"))
	assert.Contains(t, logs.String(), "Upload vesti.xml? Yes")
}
