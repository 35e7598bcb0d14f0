// Package aggregate turns the summed question scores into the grade that is
// persisted: cap, late penalty, then best of previous submissions.
package aggregate

import (
	"fmt"
	"log/slog"
	"math"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/programme-lv/autograder/internal/metadata"
)

type Options struct {
	ParticipationOnly  bool
	ParticipationGrade float64
	// Location renders dates in feedback. Nil means UTC.
	Location *time.Location
}

// Apply runs every stage in order, appending feedback to out.
func Apply(md *metadata.Context, total float64, opts Options, out *strings.Builder) float64 {
	if md == nil {
		md = metadata.Empty()
	}
	if !md.Loaded {
		out.WriteString("Submission metadata unavailable, grade was not capped or penalised.\n")
	}
	score := Cap(md, total, opts, out)
	score = LatePenalty(md, score, opts, out)
	score = BestOfPrevious(md, score, opts, out)
	return score
}

// Cap clamps the score to the assignment total. Participation mode replaces
// the score with the participation grade.
func Cap(md *metadata.Context, score float64, opts Options, out *strings.Builder) float64 {
	capped := score
	if tp := md.Assignment.TotalPoints; tp.Valid && score > tp.Value {
		fmt.Fprintf(out, "Capping grade from %s to %s\n", formatPoints(score), formatPoints(tp.Value))
		capped = tp.Value
	}
	if opts.ParticipationOnly {
		capped = opts.ParticipationGrade
		fmt.Fprintf(out, "Workshop assessment, +%s marks for participation\n", formatPoints(opts.ParticipationGrade))
	}
	return capped
}

// EffectiveDueDate is the latest of the assignment due date and every user
// extension. It is zero when the assignment has no due date.
func EffectiveDueDate(md *metadata.Context, opts Options) time.Time {
	due := md.Assignment.DueDate.Time
	if due.IsZero() {
		return due
	}
	loc := location(opts)
	for _, u := range md.Users {
		ext := u.Assignment.DueDate.Time
		if ext.After(due) {
			slog.Info("found later due date (extension)",
				"user", u.Name,
				"due", ext.In(loc).Format(time.DateTime),
				"original", md.Assignment.DueDate.In(loc).Format(time.DateTime))
			due = ext
		}
	}
	return due
}

// AllowedFraction is the share of the maximum still available after the
// given lateness: 0.75 minus 0.25 for every started day late.
func AllowedFraction(lateness time.Duration) float64 {
	if lateness <= 0 {
		return 1
	}
	days := math.Ceil(lateness.Hours() / 24)
	return 0.75 - 0.25*days
}

func LatePenalty(md *metadata.Context, score float64, opts Options, out *strings.Builder) float64 {
	due := EffectiveDueDate(md, opts)
	submitted := md.CreatedAt.Time
	tp := md.Assignment.TotalPoints
	if due.IsZero() || submitted.IsZero() || !tp.Valid {
		return score
	}

	lateness := submitted.Sub(due)
	if lateness <= 0 {
		return score
	}
	fraction := AllowedFraction(lateness)
	slog.Info("late submission",
		"lateness", lateness.Round(time.Second).String(),
		"allowed_fraction", fraction)

	newScore := math.Min(score, tp.Value*fraction)
	fmt.Fprintf(out, "Late submission, max available marks capped to %s%%.\n", formatPoints(fraction*100))
	fmt.Fprintf(out, "Original grade of %s ", formatPoints(score))
	if newScore < score {
		fmt.Fprintf(out, "capped to %s.\n", formatPoints(newScore))
	} else {
		out.WriteString("unchanged.\n")
	}
	return newScore
}

// BestOfPrevious replaces the score with the best earlier submission when
// that one scored strictly higher.
func BestOfPrevious(md *metadata.Context, score float64, opts Options, out *strings.Builder) float64 {
	best := score
	var bestSub *metadata.PreviousSubmission
	for i := range md.PreviousSubmissions {
		sub := &md.PreviousSubmissions[i]
		if sub.Score.Valid && sub.Score.Value > best {
			best = sub.Score.Value
			bestSub = sub
		}
	}
	if bestSub == nil {
		return score
	}

	loc := location(opts)
	when := "unknown"
	if !bestSub.SubmissionTime.IsZero() {
		when = bestSub.SubmissionTime.In(loc).Format("2006-01-02 15:04:05 MST")
	}
	slog.Info("better previous submission found", "score", best, "time", when)
	fmt.Fprintf(out, "Better submission found with grade: %s.\n", formatPoints(best))
	fmt.Fprintf(out, "Better submission from time: %s (%s time)\n", when, zoneLabel(loc))
	return best
}

func location(opts Options) *time.Location {
	if opts.Location == nil {
		return time.UTC
	}
	return opts.Location
}

// zoneLabel turns "Australia/Adelaide" into "Adelaide".
func zoneLabel(loc *time.Location) string {
	return strings.ReplaceAll(path.Base(loc.String()), "_", " ")
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
