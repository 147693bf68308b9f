package testutils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"devconsole/internal/console"
	"devconsole/internal/output"
)

// Deterministic returns the registry options used in test mode: counter IDs
// and a stepping clock.
func Deterministic() []console.Option {
	return []console.Option{
		console.WithIDSource(IDSource()),
		console.WithClock(Clock()),
	}
}

// NewConsole creates a registry with natives registered, deterministic IDs,
// discarded logs and plain output captured in the returned buffer. Extra
// options are applied last.
func NewConsole(t *testing.T, opts ...console.Option) (*console.Registry, *output.CaptureBuffer) {
	t.Helper()

	buf := output.NewCaptureBuffer()
	base := append(Deterministic(),
		console.WithLogger(log.New(io.Discard)),
		console.WithPrinter(output.NewPrinter(output.WithWriter(buf), output.TestMode())),
	)
	reg := console.New(append(base, opts...)...)
	require.NoError(t, reg.RegisterNatives())
	return reg, buf
}

// Run submits every line, failing the test on rejection, then drains once.
func Run(t *testing.T, reg *console.Registry, lines ...string) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, reg.TryExecuteCommand(line), line)
	}
	reg.Update()
}

// WriteScript writes lines to a file in a fresh temp dir and returns its path.
func WriteScript(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.cfg")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600))
	return path
}
