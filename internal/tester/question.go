package tester

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/programme-lv/autograder/internal/config"
)

// GradeQuestion checks the required files, builds every target, rebuilds
// the tester target and runs the fixture cases against it. Failures are
// reported as feedback; an error is returned only when ctx is done.
func (t *Tester) GradeQuestion(ctx context.Context, q config.Question) (*QuestionResult, error) {
	l := t.cfg.Layout
	slog.Info("Grading question...", "question", q.ID)
	t.gath.StartQuestion(q.ID)
	silentRemove(l.Path(l.Artifact))

	required := q.RequiredFiles()
	t.copyHeaders(required)

	cases := t.fixtures.Cases(q.ID)
	maxScore := q.MaxPoints
	if maxScore == 0 {
		maxScore = q.StaticPoints() + float64(len(cases))*q.TestPoints
	}
	res := NewQuestionResult(q.ID, maxScore)

	missing := CheckPresent(l, res, required, q.FilePoints)
	if len(missing) > 0 {
		slog.Info("files missing or empty", "question", q.ID, "files", missing)
	}
	t.gath.FinishArtifacts(q.ID, missing)

	for i, bt := range q.BuildTargets {
		if _, err := t.Compile(ctx, res, q.ID, i, bt); err != nil {
			return nil, err
		}
		silentRemove(l.Path(l.Artifact))
	}

	if err := t.testFunctionality(ctx, res, q, cases); err != nil {
		return nil, err
	}

	res.Clamp()
	slog.Info("graded question", "question", q.ID, "score", res.Score, "max", res.MaxScore)
	t.gath.FinishQuestion(q.ID, res.Score, res.MaxScore)
	return res, nil
}

func (t *Tester) testFunctionality(ctx context.Context, res *QuestionResult, q config.Question, cases []string) error {
	if len(q.BuildTargets) == 0 {
		if len(cases) > 0 {
			t.skipTesting(res, q.ID, "no build target to run the tests with")
		}
		return nil
	}

	target, ok := q.Tester()
	if !ok {
		if len(cases) > 0 {
			if q.TesterIdx == config.NoTester {
				t.skipTesting(res, q.ID, "no tester build target is configured")
			} else {
				t.skipTesting(res, q.ID, fmt.Sprintf("tester build target index %d is out of range", q.TesterIdx))
			}
		}
		return nil
	}

	compiled, err := t.Compile(ctx, nil, q.ID, q.TesterIdx, target)
	if err != nil {
		return err
	}
	if !compiled {
		t.skipTesting(res, q.ID, "test driver failing to compile")
		return nil
	}

	return t.RunCases(ctx, res, q.ID, cases, q.TestPoints)
}

func (t *Tester) skipTesting(res *QuestionResult, qid string, reason string) {
	msg := fmt.Sprintf("Q%s functionality tests skipped due to %s.", qid, reason)
	slog.Info(msg)
	res.Feedback(msg + "\n")
	t.gath.SkipTesting(qid, reason)
}

// copyHeaders makes submitted headers visible to builds that only name
// harness sources. An existing harness copy is never overwritten.
func (t *Tester) copyHeaders(required []string) {
	l := t.cfg.Layout
	for _, name := range required {
		ext := filepath.Ext(name)
		if ext != ".h" && ext != ".hpp" {
			continue
		}
		src := l.Path(l.SubmissionRel(name))
		dst := l.Path(l.SourceRel(name))
		if _, err := os.Stat(dst); err == nil {
			slog.Info("header already provided, not copying", "file", l.SourceRel(name))
			continue
		}
		slog.Info("Copying header file...", "from", l.SubmissionRel(name), "to", l.SourceRel(name))
		if err := copyFile(src, dst); err != nil {
			slog.Warn("failed to copy header file", "file", name, "error", err)
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
