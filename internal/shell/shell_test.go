package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abiosoft/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconsole/internal/console"
	"devconsole/internal/output"
	"devconsole/internal/testutils"
)

func newTestHost(t *testing.T) (*Host, *output.CaptureBuffer) {
	t.Helper()
	reg, buf := testutils.NewConsole(t)
	return NewHost(reg, 5*time.Millisecond), buf
}

func TestProcessLine(t *testing.T) {
	h, _ := newTestHost(t)

	tests := []struct {
		raw       string
		submitted bool
		wantErr   bool
	}{
		{raw: "", submitted: false},
		{raw: "   ", submitted: false},
		{raw: "# a comment", submitted: false},
		{raw: "  echo hi  ", submitted: true},
		{raw: "missing", submitted: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			submitted, err := processLine(h, tt.raw)
			assert.Equal(t, tt.submitted, submitted)
			if tt.wantErr {
				assert.ErrorIs(t, err, console.ErrUnknownCommand)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, []string{"echo hi", "missing"}, h.Registry().GetCommandHistory())
}

// scriptedInput feeds fixed lines to readLoop and records what it prints.
type scriptedInput struct {
	lines   []string
	err     error
	printed []string
}

func (s *scriptedInput) ReadLineErr() (string, error) {
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedInput) Println(val ...interface{}) {
	s.printed = append(s.printed, fmt.Sprint(val...))
}

func TestReadLoop_SubmitsLinesUnsplit(t *testing.T) {
	h, out := newTestHost(t)
	src := &scriptedInput{lines: []string{
		"echo don't",
		`echo "quoted`,
		`echo back\`,
		"# comment",
		"",
	}}

	require.NoError(t, readLoop(src, h))
	assert.Empty(t, src.printed)
	assert.Equal(t, []string{"echo don't", `echo "quoted`, `echo back\`}, h.Registry().GetCommandHistory())

	h.Registry().Update()
	assert.Equal(t, []string{"don't", `"quoted`, `back\`}, out.Lines())
}

func TestReadLoop_ReportsRejectedLines(t *testing.T) {
	h, _ := newTestHost(t)
	src := &scriptedInput{lines: []string{"bogus", "echo a b"}}

	require.NoError(t, readLoop(src, h))
	require.Len(t, src.printed, 3)
	assert.Contains(t, src.printed[0], "unknown command")
	assert.Equal(t, "Type 'help' for available commands", src.printed[1])
	assert.Contains(t, src.printed[2], "echo")
	assert.Equal(t, []string{"bogus", "echo a b"}, h.Registry().GetCommandHistory())
}

func TestReadLoop_StopsOnExitAndInterrupt(t *testing.T) {
	h, _ := newTestHost(t)

	src := &scriptedInput{lines: []string{"echo one", "  exit  ", "echo two"}}
	require.NoError(t, readLoop(src, h))
	assert.Equal(t, []string{"echo one"}, h.Registry().GetCommandHistory())
	assert.Equal(t, []string{"echo two"}, src.lines, "lines after exit are not read")

	require.NoError(t, readLoop(&scriptedInput{err: readline.ErrInterrupt}, h))

	boom := errors.New("terminal gone")
	assert.ErrorIs(t, readLoop(&scriptedInput{err: boom}, h), boom)
}

func TestHost_RunDrainsSubmittedLines(t *testing.T) {
	h, _ := newTestHost(t)

	var count atomic.Int64
	_, err := console.RegisterCommand0(h.Registry(), "inc", "", func() error {
		count.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	for i := 0; i < 10; i++ {
		require.NoError(t, h.Submit("inc"))
	}
	assert.Eventually(t, func() bool { return count.Load() == 10 }, time.Second, 5*time.Millisecond)

	require.NoError(t, h.Submit("inc"))
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int64(11), count.Load(), "pending work is drained on shutdown")
}

func TestExecuteScript(t *testing.T) {
	h, out := newTestHost(t)
	vol, err := console.RegisterSetting(h.Registry(), "volume", "", 50)
	require.NoError(t, err)

	path := testutils.WriteScript(t,
		"# startup script",
		"set volume 10",
		"",
		"echo ready",
		"get volume",
	)

	require.NoError(t, ExecuteScript(h, path))
	assert.Equal(t, 10, vol.Get())
	assert.Equal(t, []string{"✓ volume = 10", "ready", "volume = 10"}, out.Lines())
	assert.Equal(t, 0, h.Registry().Pending())
}

func TestExecuteScript_CountsRejectedLines(t *testing.T) {
	h, out := newTestHost(t)

	path := testutils.WriteScript(t, "echo one", "not_a_command", "echo", "echo two")

	err := ExecuteScript(h, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 4")
	assert.Equal(t, []string{"one", "two"}, out.Lines())
}

func TestExecuteScript_MissingFile(t *testing.T) {
	h, _ := newTestHost(t)
	assert.Error(t, ExecuteScript(h, filepath.Join(t.TempDir(), "missing.cfg")))
}
