package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/programme-lv/autograder/internal/config"
	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := loadEnvFiles(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "autograder: %v\n", err)
		os.Exit(1)
	}
	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "autograder: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    config.AppName,
		Usage:   "grade a C++ submission against assignment fixtures",
		Version: version,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Usage:   "grading root containing submission/ and source/",
				Value:   ".",
				Sources: cli.EnvVars("AUTOGRADER_ROOT"),
			},
			&cli.StringFlag{
				Name:    "assignment",
				Aliases: []string{"a"},
				Usage:   "assignment TOML file (default: <root>/assignment.toml, then XDG config dirs)",
				Sources: cli.EnvVars("AUTOGRADER_ASSIGNMENT"),
			},
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "dotenv file loaded before flags are resolved (also <root>/.env)",
				Value:   ".env",
				Sources: cli.EnvVars("AUTOGRADER_ENV_FILE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "info",
				Sources: cli.EnvVars("AUTOGRADER_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "text or json",
				Value:   "text",
				Sources: cli.EnvVars("AUTOGRADER_LOG_FORMAT"),
			},
		}, gradeFlags()...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogging(cmd.String("log-level"), cmd.String("log-format"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			gradeCommand(),
			checkCommand(),
			casesCommand(),
		},
		Action: gradeAction,
	}
}

// loadConfig resolves the assignment file and builds the run configuration.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	root := cmd.String("root")
	path, err := config.FindAssignment(cmd.String("assignment"), root)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path, root)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment %s: %w", path, err)
	}
	return cfg, nil
}
