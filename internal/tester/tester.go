package tester

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/programme-lv/autograder/api"
	"github.com/programme-lv/autograder/internal/aggregate"
	"github.com/programme-lv/autograder/internal/config"
	"github.com/programme-lv/autograder/internal/metadata"
)

const SubmissionDetailsName = "Submission details"

type Tester struct {
	cfg        *config.Config
	gath       ResultGatherer
	fixtures   *Fixtures
	systemInfo string
}

func NewTester(cfg *config.Config, gath ResultGatherer, systemInfo string) *Tester {
	return &Tester{
		cfg:        cfg,
		gath:       gath,
		fixtures:   NewFixtures(cfg.Layout),
		systemInfo: systemInfo,
	}
}

func (t *Tester) Fixtures() *Fixtures {
	return t.fixtures
}

// Run grades every configured question in order and aggregates the total.
// Question-level failures become feedback; an error is returned only when
// the context is cancelled.
func (t *Tester) Run(ctx context.Context) (res *api.Results, err error) {
	t.gath.StartRun(t.systemInfo)
	defer func() {
		score := 0.0
		if res != nil {
			score = res.Score
		}
		t.gath.FinishRun(score, err)
	}()

	md := t.loadMetadata()

	res = api.NewResults()
	total := 0.0
	for _, q := range t.cfg.Questions {
		qres, err := t.GradeQuestion(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to grade question %s: %w", q.ID, err)
		}
		total += qres.Score
		res.Tests = append(res.Tests, qres.TestResult())
	}

	var details strings.Builder
	final := aggregate.Apply(md, total, aggregate.Options{
		ParticipationOnly:  t.cfg.Run.ParticipationOnly,
		ParticipationGrade: t.cfg.Run.ParticipationGrade,
		Location:           t.cfg.Run.Location,
	}, &details)
	slog.Info("aggregated score", "total", total, "final", final)

	res.Tests = append(res.Tests, api.TestResult{
		Score:      0,
		MaxScore:   0,
		Name:       SubmissionDetailsName,
		Output:     details.String(),
		Visibility: api.Visible,
	})
	res.Score = final
	return res, nil
}

func (t *Tester) loadMetadata() *metadata.Context {
	path := t.cfg.Layout.Path(t.cfg.Layout.MetadataFile)
	slog.Info("Loading submission metadata...", "path", path)
	md, err := metadata.Load(path)
	if err != nil {
		slog.Warn("failed to load submission metadata, grading without it", "error", err)
		return metadata.Empty()
	}
	return md
}

// silentRemove deletes a file, ignoring a missing one.
func silentRemove(path string) {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to remove file", "path", path, "error", err)
	}
}
