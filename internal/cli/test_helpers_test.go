package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	goflags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/focuswatch/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testGateway returns a gateway over an in-memory store.
func testGateway(t *testing.T) *storage.Gateway {
	t.Helper()
	return storage.NewGateway(storage.NewMemStore())
}

// parseOnly builds a parser whose commands are matched but never executed,
// so flag wiring can be tested without touching the real database.
func parseOnly(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	parser, globals, cmds := buildParser(version)
	parser.CommandHandler = func(goflags.Commander, []string) error { return nil }
	return parser, globals, cmds
}
