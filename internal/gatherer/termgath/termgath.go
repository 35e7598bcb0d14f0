// Package termgath prints grading progress for a human watching the run.
package termgath

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/programme-lv/autograder/api"
)

type TerminalGatherer struct {
	StartedAt time.Time
	out       io.Writer
	verbose   bool

	header *color.Color
	ok     *color.Color
	bad    *color.Color
	warn   *color.Color
	subtle *color.Color
}

func New(out io.Writer, verbose bool) *TerminalGatherer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalGatherer{
		StartedAt: time.Now(),
		out:       out,
		verbose:   verbose,
		header:    color.New(color.Bold, color.FgCyan),
		ok:        color.New(color.FgHiGreen),
		bad:       color.New(color.FgHiRed),
		warn:      color.New(color.FgHiYellow),
		subtle:    color.New(color.Faint),
	}
}

func (t *TerminalGatherer) StartRun(systemInfo string) {
	t.header.Fprintln(t.out, "== Grading started ==")
	if systemInfo != "" {
		fmt.Fprintln(t.out, "System info:")
		fmt.Fprintln(t.out, systemInfo)
	}
}

func (t *TerminalGatherer) StartQuestion(qid string) {
	fmt.Fprintln(t.out)
	t.header.Fprintln(t.out, "==================")
	t.header.Fprintf(t.out, "      Q%s      \n", qid)
	t.header.Fprintln(t.out, "==================")
}

func (t *TerminalGatherer) FinishArtifacts(qid string, missing []string) {
	if len(missing) == 0 {
		t.ok.Fprintln(t.out, "All required files found.")
		return
	}
	t.bad.Fprintf(t.out, "Files missing/empty: %s\n", strings.Join(missing, " "))
}

func (t *TerminalGatherer) FinishBuild(qid string, target int, recorded bool, success bool, data *api.RuntimeData) {
	label := fmt.Sprintf("build target %d", target)
	if !recorded {
		label = fmt.Sprintf("test driver (target %d)", target)
	}
	if success {
		t.ok.Fprintf(t.out, "-- %s compiled successfully\n", label)
	} else {
		t.bad.Fprintf(t.out, "-- %s failed to compile\n", label)
	}
	t.printData(data, !success || t.verbose)
}

func (t *TerminalGatherer) ReachCase(qid string, cid string) {
	fmt.Fprintf(t.out, "-> Running Q%s, Test%s...\n", qid, cid)
}

func (t *TerminalGatherer) FinishCase(qid string, cid string, verdict api.Verdict, data *api.RuntimeData) {
	switch verdict {
	case api.VerdictPassed:
		t.ok.Fprintf(t.out, "<- Q%s, Test%s passed.\n", qid, cid)
	case api.VerdictTimedOut:
		t.warn.Fprintf(t.out, "<- Q%s, Test%s timed out.\n", qid, cid)
	default:
		t.bad.Fprintf(t.out, "<- Q%s, Test%s %s.\n", qid, cid, strings.ReplaceAll(string(verdict), "_", " "))
	}
	t.printData(data, verdict != api.VerdictPassed && t.verbose)
}

func (t *TerminalGatherer) SkipTesting(qid string, reason string) {
	t.warn.Fprintf(t.out, "Q%s functionality tests skipped: %s\n", qid, reason)
}

func (t *TerminalGatherer) FinishQuestion(qid string, score float64, maxScore float64) {
	c := t.ok
	if score < maxScore {
		c = t.warn
	}
	c.Fprintf(t.out, "Q%s score: %g / %g\n", qid, score, maxScore)
}

func (t *TerminalGatherer) FinishRun(score float64, errIfAny error) {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	if errIfAny != nil {
		t.bad.Fprintf(t.out, "== Grading failed after %s: %v ==\n", dur, errIfAny)
		return
	}
	t.header.Fprintf(t.out, "== Grading finished in %s, final score %g ==\n", dur, score)
}

func (t *TerminalGatherer) printData(data *api.RuntimeData, withOutput bool) {
	if data == nil {
		return
	}
	line := fmt.Sprintf("   exit=%d wall=%dms", data.ExitCode, data.WallMillis)
	if data.ExitSignal != nil {
		line += fmt.Sprintf(" signal=%d", *data.ExitSignal)
	}
	if data.TimedOut {
		line += " timed_out"
	}
	t.subtle.Fprintln(t.out, line)
	if !withOutput {
		return
	}
	if data.Stdout != "" {
		fmt.Fprintf(t.out, "stdout:\n%s\n", strings.TrimRight(data.Stdout, "\n"))
	}
	if data.Stderr != "" {
		fmt.Fprintf(t.out, "stderr:\n%s\n", strings.TrimRight(data.Stderr, "\n"))
	}
}
