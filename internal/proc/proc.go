// Package proc runs external commands under a wall-clock bound.
//
// The compiler, the fixture program and the diff tool all go through Run so
// that timeouts, exit statuses and signals are reported the same way.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync/atomic"
	"syscall"
	"time"
)

// Spec describes one bounded process invocation.
type Spec struct {
	Path string
	Args []string
	Dir  string

	// Stdin may be nil, in which case the process reads from the null device.
	Stdin io.Reader
	// Stdout and Stderr are captured into the Outcome when nil.
	Stdout io.Writer
	Stderr io.Writer

	// Timeout of zero means no bound.
	Timeout time.Duration
}

type Outcome struct {
	TimedOut   bool
	ExitCode   int
	Signal     *int
	WallMillis int64

	// Only set for streams that were captured.
	Stdout []byte
	Stderr []byte
}

// PosixCode follows the convention of reporting the terminating signal
// as a positive number and a plain exit status negated.
func (o *Outcome) PosixCode() int {
	if o.Signal != nil {
		return *o.Signal
	}
	return -o.ExitCode
}

// Success reports a normal exit with status zero.
func (o *Outcome) Success() bool {
	return !o.TimedOut && o.Signal == nil && o.ExitCode == 0
}

// Run executes spec and waits for it. The returned error is non-nil only when
// the process could not be started or the parent context was cancelled;
// timeouts and non-zero exits are reported through the Outcome.
func Run(ctx context.Context, spec Spec) (*Outcome, error) {
	runCtx := ctx
	cancel := func() {}
	if spec.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Stdin = spec.Stdin
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	var killed atomic.Bool
	cmd.Cancel = func() error {
		killed.Store(true)
		// kill the whole group so grandchildren do not keep pipes open
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = spec.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = spec.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = &stderr
	}

	slog.Debug("starting process", "path", spec.Path, "args", spec.Args, "dir", spec.Dir)
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", spec.Path, err)
	}
	waitErr := cmd.Wait()
	elapsed := time.Since(start)

	if ctx.Err() != nil {
		return nil, fmt.Errorf("process %s interrupted: %w", spec.Path, ctx.Err())
	}

	res := &Outcome{
		// a process that exited just before the deadline was never killed
		TimedOut:   killed.Load() && errors.Is(runCtx.Err(), context.DeadlineExceeded),
		WallMillis: elapsed.Milliseconds(),
	}
	if spec.Stdout == nil {
		res.Stdout = stdout.Bytes()
	}
	if spec.Stderr == nil {
		res.Stderr = stderr.Bytes()
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) && !res.TimedOut {
			return nil, fmt.Errorf("failed to wait for %s: %w", spec.Path, waitErr)
		}
	}

	if st := cmd.ProcessState; st != nil {
		res.ExitCode = st.ExitCode()
		if ws, ok := st.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			sig := int(ws.Signal())
			res.Signal = &sig
		}
	}

	slog.Debug("process finished",
		"path", spec.Path,
		"exit", res.ExitCode,
		"timed_out", res.TimedOut,
		"wall_ms", res.WallMillis)
	return res, nil
}
