package tester

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/programme-lv/autograder/internal/config"
	"github.com/programme-lv/autograder/internal/proc"
)

// Compile builds target into the artifact. Success is judged only by the
// artifact existing afterwards, not by the compiler's exit status. With a
// nil res nothing is recorded, which is how the tester artifact is prepared.
// The error is non-nil only when ctx is done.
func (t *Tester) Compile(ctx context.Context, res *QuestionResult, qid string, idx int, target config.BuildTarget) (success bool, err error) {
	l := t.cfg.Layout
	run := t.cfg.Run
	artifact := l.Path(l.Artifact)
	paths := target.FilePaths(l)
	names := target.FileNames()

	if res == nil {
		slog.Info("Compiling without recording (for test driver)...", "question", qid, "target", idx)
	}
	silentRemove(artifact)

	args := make([]string, 0, len(run.CompilerFlags)+len(paths)+2)
	args = append(args, run.CompilerFlags...)
	args = append(args, "-o", l.Artifact)
	args = append(args, paths...)

	slog.Info("Compiling...", "artifact", l.Artifact, "files", names)
	slog.Debug("compiler command", "cmd", run.Compiler+" "+strings.Join(args, " "))
	out, runErr := proc.Run(ctx, proc.Spec{
		Path:    run.Compiler,
		Args:    args,
		Dir:     l.Root,
		Timeout: run.Timeout,
	})
	if runErr != nil && ctx.Err() != nil {
		return false, runErr
	}

	var stdout, stderr string
	switch {
	case runErr != nil:
		slog.Error("failed to run compiler", "error", runErr)
		stderr = runErr.Error()
	case out.TimedOut:
		stdout, stderr = string(out.Stdout), string(out.Stderr)
		stderr += fmt.Sprintf("compilation timed out after %s seconds\n", formatPoints(run.Timeout.Seconds()))
	default:
		stdout, stderr = string(out.Stdout), string(out.Stderr)
	}

	// a timed-out compiler may have left a partial artifact behind
	if out != nil && out.TimedOut {
		silentRemove(artifact)
	}
	st, statErr := os.Stat(artifact)
	success = statErr == nil && !st.IsDir()

	var points float64
	if success {
		slog.Info("compiled successfully", "artifact", l.Artifact)
		points = target.Points
	} else {
		slog.Info("failed to compile", "artifact", l.Artifact)
	}

	t.gath.FinishBuild(qid, idx, res != nil, success, compileRuntimeData(out, stdout, stderr))
	if res == nil {
		return success, nil
	}

	res.AddScore(points)
	if success {
		res.Feedbackf("Successfully compiled %s with files %s. +%s marks\n",
			l.Artifact, strings.Join(names, " "), formatPoints(target.Points))
	} else {
		res.Feedbackf("%s failed to compile using files %s\n", l.Artifact, strings.Join(paths, " "))
		res.Feedback("Compiler stdout:\n")
		res.Feedback(stdout)
		res.Feedback("\n-------\n")
		res.Feedback("Compiler stderr:\n")
		res.Feedback(stderr)
		res.Feedback("\n-------\n")
	}
	return success, nil
}
