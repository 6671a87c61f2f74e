package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogContains fails the test unless every substring appears in the
// captured log output.
func AssertLogContains(t *testing.T, logs *SafeBuffer, substrings ...string) {
	t.Helper()

	out := logs.String()
	for _, s := range substrings {
		require.True(t, strings.Contains(out, s), "expected log output to contain %q, got:\n%s", s, out)
	}
}
