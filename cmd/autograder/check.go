package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/programme-lv/autograder/internal/config"
	"github.com/programme-lv/autograder/internal/metadata"
	"github.com/programme-lv/autograder/internal/proc"
	"github.com/programme-lv/autograder/internal/tester"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

type health int

const (
	healthOk health = iota
	healthWarn
	healthError
)

type feedbackRow struct {
	unit    string
	health  health
	message string
}

const checkTimeout = 10 * time.Second

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "verify the grading environment without grading",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rows := runChecks(ctx, cmd)
			outputFeedback(os.Stdout, rows)
			for _, r := range rows {
				if r.health == healthError {
					return cli.Exit("environment check failed", 1)
				}
			}
			return nil
		},
	}
}

func runChecks(ctx context.Context, cmd *cli.Command) []feedbackRow {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return []feedbackRow{{unit: "Assignment", health: healthError, message: err.Error()}}
	}

	checks := []func(context.Context) feedbackRow{
		func(ctx context.Context) feedbackRow {
			return checkTool(ctx, "Compiler", cfg.Run.Compiler)
		},
		func(ctx context.Context) feedbackRow {
			return checkTool(ctx, "Diff", cfg.Run.Diff)
		},
		func(ctx context.Context) feedbackRow {
			return checkDir("Submission dir", cfg.Layout.Path(cfg.Layout.SubmissionDir), healthWarn)
		},
		func(ctx context.Context) feedbackRow {
			return checkDir("Source dir", cfg.Layout.Path(cfg.Layout.SourceDir), healthError)
		},
		func(ctx context.Context) feedbackRow {
			return checkMetadata(cfg.Layout.Path(cfg.Layout.MetadataFile))
		},
	}

	rows := make([]feedbackRow, 1+len(checks)+len(cfg.Questions))
	rows[0] = feedbackRow{
		unit:    "Assignment",
		health:  healthOk,
		message: fmt.Sprintf("%d questions", len(cfg.Questions)),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for i, check := range checks {
		eg.Go(func() error {
			rows[1+i] = check(egCtx)
			return nil
		})
	}
	for i, q := range cfg.Questions {
		eg.Go(func() error {
			rows[1+len(checks)+i] = checkQuestion(cfg, q)
			return nil
		})
	}
	_ = eg.Wait()
	return rows
}

func checkTool(ctx context.Context, unit string, path string) feedbackRow {
	out, err := proc.Run(ctx, proc.Spec{
		Path:    path,
		Args:    []string{"--version"},
		Timeout: checkTimeout,
	})
	if err != nil {
		return feedbackRow{unit: unit, health: healthError, message: err.Error()}
	}
	if !out.Success() {
		msg := fmt.Sprintf("%s --version exited with %d", path, out.PosixCode())
		return feedbackRow{unit: unit, health: healthError, message: msg}
	}
	first, _, _ := strings.Cut(string(out.Stdout), "\n")
	return feedbackRow{unit: unit, health: healthOk, message: first}
}

func checkDir(unit string, path string, missing health) feedbackRow {
	st, err := os.Stat(path)
	if err != nil {
		return feedbackRow{unit: unit, health: missing, message: err.Error()}
	}
	if !st.IsDir() {
		return feedbackRow{unit: unit, health: healthError, message: path + " is not a directory"}
	}
	return feedbackRow{unit: unit, health: healthOk, message: path}
}

func checkMetadata(path string) feedbackRow {
	md, err := metadata.Load(path)
	if errors.Is(err, metadata.ErrNoMetadata) {
		return feedbackRow{unit: "Metadata", health: healthWarn, message: "not present, no cap or late penalty"}
	}
	if err != nil {
		return feedbackRow{unit: "Metadata", health: healthWarn, message: err.Error()}
	}
	return feedbackRow{
		unit:    "Metadata",
		health:  healthOk,
		message: fmt.Sprintf("%d users, %d previous submissions", len(md.Users), len(md.PreviousSubmissions)),
	}
}

func checkQuestion(cfg *config.Config, q config.Question) feedbackRow {
	unit := "Q" + q.ID
	cases := tester.DiscoverCases(cfg.Layout, q.ID)
	if len(cases) == 0 {
		return feedbackRow{unit: unit, health: healthOk, message: "no fixture cases"}
	}
	if _, ok := q.Tester(); !ok {
		msg := fmt.Sprintf("%d fixture cases but no usable tester build target", len(cases))
		return feedbackRow{unit: unit, health: healthWarn, message: msg}
	}
	return feedbackRow{unit: unit, health: healthOk, message: fmt.Sprintf("%d fixture cases", len(cases))}
}

func outputFeedback(w io.Writer, rows []feedbackRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Unit", "Health", "Message"})
	for _, row := range rows {
		healthCode := ""
		switch row.health {
		case healthOk:
			healthCode = "OKAY"
		case healthWarn:
			healthCode = "WARN"
		case healthError:
			healthCode = "ERROR"
		}
		t.AppendRow(table.Row{row.unit, healthCode, row.message})
	}
	t.SetStyle(table.StyleColoredDark)
	healthColor := text.Transformer(func(v any) string {
		s := fmt.Sprint(v)
		switch s {
		case "OKAY":
			return text.FgHiGreen.Sprint(s)
		case "WARN":
			return text.FgHiYellow.Sprint(s)
		case "ERROR":
			return text.FgHiRed.Sprint(s)
		}
		return s
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{
			Name:        "Health",
			Transformer: healthColor,
			Align:       text.AlignCenter,
		},
	})
	t.Render()
}
