package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/blockpaste/internal/registry"
	"github.com/specialistvlad/blockpaste/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest creates a new app instance for system testing. Output goes to
// the returned out buffer and debug logs to the logs buffer.
func SetupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	out := &testutil.SafeBuffer{}
	logs := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"

	testApp, err := NewApp(out, logs, cfg, modules...)
	t.Cleanup(func() {
		if os.Getenv("BLOCKPASTE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	require.NoError(t, err)

	return testApp, out, logs
}
