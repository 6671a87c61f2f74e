package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
)

// NewContext returns a context carrying a debug-level text logger that
// writes into the returned buffer. Set BLOCKPASTE_TEST_LOGS=true to have the
// captured output printed when the test ends.
func NewContext(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx, cancel := context.WithCancel(ctxlog.WithLogger(context.Background(), logger))
	t.Cleanup(func() {
		cancel()
		if os.Getenv("BLOCKPASTE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctx, buf
}
