package proc_test

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/programme-lv/autograder/internal/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestRunCapturesOutputAndExitCode(t *testing.T) {
	sh := requireShell(t)
	out, err := proc.Run(context.Background(), proc.Spec{
		Path:    sh,
		Args:    []string{"-c", "echo hello; echo oops >&2; exit 3"},
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.False(t, out.TimedOut)
	assert.Nil(t, out.Signal)
	assert.Equal(t, 3, out.ExitCode)
	assert.Equal(t, -3, out.PosixCode())
	assert.False(t, out.Success())
	assert.Equal(t, "hello\n", string(out.Stdout))
	assert.Equal(t, "oops\n", string(out.Stderr))
}

func TestRunPassesStdinAndWriters(t *testing.T) {
	sh := requireShell(t)
	var stdout strings.Builder
	out, err := proc.Run(context.Background(), proc.Spec{
		Path:   sh,
		Args:   []string{"-c", "cat"},
		Stdin:  strings.NewReader("1 2 3\n"),
		Stdout: &stdout,
	})
	require.NoError(t, err)
	assert.True(t, out.Success())
	assert.Equal(t, 0, out.PosixCode())
	assert.Equal(t, "1 2 3\n", stdout.String())
	assert.Nil(t, out.Stdout)
}

func TestRunReportsSignal(t *testing.T) {
	sh := requireShell(t)
	out, err := proc.Run(context.Background(), proc.Spec{
		Path: sh,
		Args: []string{"-c", "kill -9 $$"},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Signal)
	assert.Equal(t, 9, *out.Signal)
	assert.Equal(t, 9, out.PosixCode())
}

func TestRunTimesOut(t *testing.T) {
	sh := requireShell(t)
	start := time.Now()
	out, err := proc.Run(context.Background(), proc.Spec{
		Path:    sh,
		Args:    []string{"-c", "sleep 10"},
		Timeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.True(t, out.TimedOut)
	assert.False(t, out.Success())
	assert.Less(t, time.Since(start), 5*time.Second)
}

// slowWriter holds up output copying so the deadline passes after the
// process itself has already exited.
type slowWriter struct {
	delay time.Duration
	buf   strings.Builder
}

func (w *slowWriter) Write(p []byte) (int, error) {
	time.Sleep(w.delay)
	return w.buf.Write(p)
}

func TestRunExitBeforeDeadlineIsNotTimeout(t *testing.T) {
	sh := requireShell(t)
	w := &slowWriter{delay: 400 * time.Millisecond}
	out, err := proc.Run(context.Background(), proc.Spec{
		Path:    sh,
		Args:    []string{"-c", "echo done"},
		Stdout:  w,
		Timeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.False(t, out.TimedOut)
	assert.Nil(t, out.Signal)
	assert.True(t, out.Success())
	assert.Equal(t, "done\n", w.buf.String())
}

func TestRunMissingBinary(t *testing.T) {
	_, err := proc.Run(context.Background(), proc.Spec{Path: "/nonexistent/definitely-not-here"})
	require.Error(t, err)
}
