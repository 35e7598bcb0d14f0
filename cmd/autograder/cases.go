package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/programme-lv/autograder/internal/config"
	"github.com/programme-lv/autograder/internal/tester"
	"github.com/urfave/cli/v3"
)

func casesCommand() *cli.Command {
	return &cli.Command{
		Name:      "cases",
		Usage:     "list the fixture cases discovered for a question",
		ArgsUsage: "[qid]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if qid := cmd.Args().First(); qid != "" {
				layout, err := layoutFor(cmd.String("root"))
				if err != nil {
					return err
				}
				printCases(qid, tester.DiscoverCases(layout, qid))
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			for _, q := range cfg.Questions {
				printCases(q.ID, tester.DiscoverCases(cfg.Layout, q.ID))
			}
			return nil
		},
	}
}

func layoutFor(root string) (config.Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return config.Layout{}, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}
	return config.DefaultLayout(abs), nil
}

func printCases(qid string, cases []string) {
	if len(cases) == 0 {
		fmt.Fprintf(os.Stdout, "Q%s: no fixture cases\n", qid)
		return
	}
	fmt.Fprintf(os.Stdout, "Q%s: %s\n", qid, strings.Join(cases, " "))
}
