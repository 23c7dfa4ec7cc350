package txbind

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlogLogger(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var buf bytes.Buffer
	l, err := NewSlogLogger(
		slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		"txmgr")
	require.NoError(t, err)

	l.Debugf(ctx, "transaction started: level=%s", LevelSerializable)
	l.Infof(ctx, "pool started")
	l.Warningf(ctx, "restore skipped")
	l.Errorf(ctx, "restore failed: %d settings", 2)

	out := buf.String()
	require.Contains(t, out, "msg=txmgr")
	require.Contains(t, out, "transaction started: level=serializable")
	require.Contains(t, out, "restore failed: 2 settings")
}

func TestNewSlogLogger_EmptyMsg(t *testing.T) {
	t.Parallel()

	_, err := NewSlogLogger(slog.Default(), "")
	require.Error(t, err)
}
