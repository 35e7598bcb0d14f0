package tester

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/programme-lv/autograder/api"
	"github.com/programme-lv/autograder/internal/proc"
)

// RunCases executes the artifact once per fixture case and diffs its
// output against the expected fixture. Stdout is rewritten per case while
// stderr accumulates over the whole question. Scratch files and the
// artifact are removed afterwards.
func (t *Tester) RunCases(ctx context.Context, res *QuestionResult, qid string, cases []string, points float64) error {
	defer t.cleanup()
	// stderr from an earlier question must not leak into this one
	silentRemove(t.cfg.Layout.Path(t.cfg.Layout.StderrFile))

	for _, cid := range cases {
		if err := t.runCase(ctx, res, qid, cid, points); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tester) cleanup() {
	l := t.cfg.Layout
	silentRemove(l.Path(l.StdoutFile))
	silentRemove(l.Path(l.StderrFile))
	silentRemove(l.Path(l.DiffFile))
	silentRemove(l.Path(l.Artifact))
}

func (t *Tester) runCase(ctx context.Context, res *QuestionResult, qid, cid string, points float64) error {
	l := t.cfg.Layout
	slog.Info("Running test...", "question", qid, "test", cid)
	t.gath.ReachCase(qid, cid)

	args, ok := t.fixtures.Args(qid, cid)
	if ok {
		args = strings.TrimSpace(args)
	} else {
		slog.Debug("no args fixture", "path", l.ArgsFixture(qid, cid))
	}

	var stdin io.Reader
	input, hasInput := t.fixtures.Input(qid, cid)
	if hasInput {
		stdin = bytes.NewReader(input)
	}

	var caseOut, caseErr bytes.Buffer
	out, err := t.execute(ctx, args, stdin, &caseOut, &caseErr)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		slog.Error("failed to run test program", "question", qid, "test", cid, "error", err)
		res.Feedbackf("Q%s Test%s could not be run: %v\n", qid, cid, err)
		t.gath.FinishCase(qid, cid, api.VerdictCrashed, runtimeData(nil, string(input), "", err.Error()))
		return nil
	}
	data := runtimeData(out, string(input), caseOut.String(), caseErr.String())

	if out.TimedOut {
		msg := fmt.Sprintf("Q%s Test%s program timed out after %s seconds.", qid, cid, formatPoints(t.cfg.Run.Timeout.Seconds()))
		slog.Info(msg)
		res.Feedback(msg + "\n")
		t.gath.FinishCase(qid, cid, api.VerdictTimedOut, data)
		return nil
	}

	if !out.Success() {
		msg := fmt.Sprintf("Program exit status != 0 (program returned POSIX status code %d): "+
			"abnormal termination of program (possibly a segmentation fault or timeout).", out.PosixCode())
		slog.Info(msg, "question", qid, "test", cid)
		res.Feedback(msg + "\n")
		if stderr, err := os.ReadFile(l.Path(l.StderrFile)); err != nil {
			slog.Warn("failed to read stderr file", "path", l.StderrFile, "error", err)
		} else if len(stderr) > 0 {
			res.Feedback("Program stderr:\n")
			res.Feedback(string(stderr))
			if !bytes.HasSuffix(stderr, []byte("\n")) {
				res.Feedback("\n")
			}
		}
		t.gath.FinishCase(qid, cid, api.VerdictCrashed, data)
		return nil
	}

	diff, err := t.diff(ctx, qid, cid)
	if err != nil {
		return err
	}
	if diff != "" {
		slog.Info("test failed", "question", qid, "test", cid)
		res.Feedbackf("\nQ%s Test%s failed!\n", qid, cid)
		res.Feedback("\n< EXPECTED-OUTPUT\n---\n> YOUR-OUTPUT\n\n===Begin diff output===\n")
		res.Feedback(diff)
		res.Feedback("====End diff output====\n")
		t.gath.FinishCase(qid, cid, api.VerdictWrongOutput, data)
		return nil
	}

	slog.Info("test passed", "question", qid, "test", cid)
	res.AddScore(points)
	res.Feedbackf("Q%s Test%s Passed. +%s marks\n", qid, cid, formatPoints(points))
	t.gath.FinishCase(qid, cid, api.VerdictPassed, data)
	return nil
}

// execute runs the artifact with args as one literal argument. Stdout
// truncates the scratch file, stderr appends to it.
func (t *Tester) execute(ctx context.Context, args string, stdin io.Reader, caseOut, caseErr io.Writer) (*proc.Outcome, error) {
	l := t.cfg.Layout

	outFile, err := os.Create(l.Path(l.StdoutFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout file: %w", err)
	}
	defer outFile.Close()

	errFile, err := os.OpenFile(l.Path(l.StderrFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr file: %w", err)
	}
	defer errFile.Close()

	return proc.Run(ctx, proc.Spec{
		Path:    l.Path(l.Artifact),
		Args:    []string{args},
		Dir:     l.Root,
		Stdin:   stdin,
		Stdout:  io.MultiWriter(outFile, caseOut),
		Stderr:  io.MultiWriter(errFile, caseErr),
		Timeout: t.cfg.Run.Timeout,
	})
}

// diff compares the expected output with the captured stdout. It returns
// an empty string when they match and feedback text otherwise.
func (t *Tester) diff(ctx context.Context, qid, cid string) (string, error) {
	l := t.cfg.Layout
	expected := l.SourceRel("output-" + qid + "-" + cid)

	if _, err := os.Stat(l.Path(expected)); err != nil {
		msg := fmt.Sprintf("%s doesn't exist. Cannot run diff.", expected)
		slog.Warn(msg)
		return msg + "\n", nil
	}
	if _, err := os.Stat(l.Path(l.StdoutFile)); err != nil {
		msg := fmt.Sprintf("%s doesn't exist. Cannot run diff.", l.StdoutFile)
		slog.Warn(msg)
		return msg + "\n", nil
	}

	diffFile, err := os.Create(l.Path(l.DiffFile))
	if err != nil {
		slog.Error("failed to create diff file", "error", err)
		return "Diff encountered an error!\n", nil
	}
	out, err := proc.Run(ctx, proc.Spec{
		Path:    t.cfg.Run.Diff,
		Args:    []string{expected, l.StdoutFile},
		Dir:     l.Root,
		Stdout:  diffFile,
		Timeout: t.cfg.Run.Timeout,
	})
	diffFile.Close()
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		slog.Error("failed to run diff", "error", err)
		return "Diff encountered an error!\n", nil
	}

	switch {
	case out.TimedOut || out.Signal != nil:
		slog.Error("diff did not finish", "timed_out", out.TimedOut)
		return "Diff encountered an error!\n", nil
	case out.ExitCode == 0:
		return "", nil
	case out.ExitCode == 1:
		b, err := os.ReadFile(l.Path(l.DiffFile))
		if err != nil {
			slog.Error("failed to read diff output", "error", err)
			return "Diff encountered an error!\n", nil
		}
		if len(b) == 0 && len(out.Stderr) == 0 {
			return "Diff reported differences without output.\n", nil
		}
		return string(b) + string(out.Stderr), nil
	default:
		slog.Error("diff exited with error", "exit", out.ExitCode, "stderr", string(out.Stderr))
		return "Diff encountered an error!\n", nil
	}
}
