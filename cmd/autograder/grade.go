package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/programme-lv/autograder/internal/gatherer/multigath"
	"github.com/programme-lv/autograder/internal/gatherer/natsgath"
	"github.com/programme-lv/autograder/internal/gatherer/respbuilder"
	"github.com/programme-lv/autograder/internal/gatherer/rmqgath"
	"github.com/programme-lv/autograder/internal/gatherer/sqsgath"
	"github.com/programme-lv/autograder/internal/gatherer/termgath"
	"github.com/programme-lv/autograder/internal/results"
	"github.com/programme-lv/autograder/internal/sysinfo"
	"github.com/programme-lv/autograder/internal/tester"
	"github.com/urfave/cli/v3"
)

// gradeFlags live on the root command so that a bare `autograder` grades.
func gradeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "do not print the grading transcript",
			Sources: cli.EnvVars("AUTOGRADER_QUIET"),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "print program output for failing cases",
			Sources: cli.EnvVars("AUTOGRADER_VERBOSE"),
		},
		&cli.StringFlag{
			Name:    "report",
			Usage:   "also write a detailed JSON run report to this path",
			Sources: cli.EnvVars("AUTOGRADER_REPORT"),
		},
		&cli.StringFlag{
			Name:    "run-uuid",
			Usage:   "identifier attached to streamed progress (default: random)",
			Sources: cli.EnvVars("AUTOGRADER_RUN_UUID"),
		},
		&cli.StringFlag{
			Name:    "nats-url",
			Usage:   "stream progress to this NATS server",
			Sources: cli.EnvVars("NATS_URL"),
		},
		&cli.StringFlag{
			Name:    "nats-subject",
			Usage:   "NATS subject for progress messages",
			Value:   "autograder.progress",
			Sources: cli.EnvVars("NATS_SUBJECT"),
		},
		&cli.StringFlag{
			Name:    "sqs-queue-url",
			Usage:   "stream progress to this SQS queue",
			Sources: cli.EnvVars("SQS_QUEUE_URL"),
		},
		&cli.StringFlag{
			Name:    "aws-region",
			Usage:   "AWS region of the SQS queue",
			Value:   sqsgath.DefaultRegion,
			Sources: cli.EnvVars("AWS_REGION"),
		},
		&cli.StringFlag{
			Name:    "amqp-url",
			Usage:   "stream progress to this RabbitMQ server",
			Sources: cli.EnvVars("AMQP_URL", "RABBITMQ_URL"),
		},
		&cli.StringFlag{
			Name:    "amqp-queue",
			Usage:   "RabbitMQ queue for progress messages",
			Value:   "autograder-progress",
			Sources: cli.EnvVars("AMQP_QUEUE"),
		},
	}
}

func gradeCommand() *cli.Command {
	return &cli.Command{
		Name:   "grade",
		Usage:  "grade the submission and write results/results.json (default)",
		Action: gradeAction,
	}
}

func gradeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runUuid := cmd.String("run-uuid")
	if runUuid == "" {
		runUuid = uuid.NewString()
	}

	gath, report := buildGatherers(ctx, cmd, runUuid)
	defer func() {
		if err := gath.Close(); err != nil {
			slog.Warn("failed to close progress sinks", "error", err)
		}
	}()

	slog.Info("Grading submission...", "root", cfg.Layout.Root, "questions", len(cfg.Questions), "run_uuid", runUuid)
	t := tester.NewTester(cfg, gath, sysinfo.Describe(ctx))
	res, err := t.Run(ctx)
	if err != nil {
		return fmt.Errorf("grading aborted: %w", err)
	}

	path := cfg.Layout.Path(cfg.Layout.ResultsFile)
	if err := results.Write(path, res); err != nil {
		return err
	}
	slog.Info("Wrote results", "path", path, "score", res.Score)

	if report != nil {
		reportPath := cmd.String("report")
		rep := report.Report()
		if err := results.WriteReport(reportPath, &rep); err != nil {
			return err
		}
		slog.Info("Wrote run report", "path", reportPath)
	}
	return nil
}

// buildGatherers assembles the progress sinks enabled by flags. Network sinks
// that fail to connect are skipped with a warning.
func buildGatherers(ctx context.Context, cmd *cli.Command, runUuid string) (*multigath.Gatherer, *respbuilder.Builder) {
	gath := multigath.New()
	if !cmd.Bool("quiet") {
		gath.Add(termgath.New(os.Stdout, cmd.Bool("verbose")))
	}

	var report *respbuilder.Builder
	if cmd.String("report") != "" {
		report = respbuilder.New(runUuid)
		gath.Add(report)
	}

	if url := cmd.String("nats-url"); url != "" {
		slog.Info("Connecting to NATS...", "url", url)
		g, err := natsgath.Connect(url, runUuid, cmd.String("nats-subject"))
		if err != nil {
			slog.Warn("NATS progress disabled", "error", err)
		} else {
			gath.Add(g)
		}
	}

	if queueUrl := cmd.String("sqs-queue-url"); queueUrl != "" {
		slog.Info("Loading AWS config...", "region", cmd.String("aws-region"))
		g, err := sqsgath.Connect(ctx, cmd.String("aws-region"), runUuid, queueUrl)
		if err != nil {
			slog.Warn("SQS progress disabled", "error", err)
		} else {
			gath.Add(g)
		}
	}

	if url := cmd.String("amqp-url"); url != "" {
		slog.Info("Connecting to RabbitMQ...")
		g, err := rmqgath.Connect(url, runUuid, cmd.String("amqp-queue"))
		if err != nil {
			slog.Warn("RabbitMQ progress disabled", "error", err)
		} else {
			gath.Add(g)
		}
	}

	slog.Debug("progress sinks ready", "count", gath.Len())
	return gath, report
}
