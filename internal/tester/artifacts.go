package tester

import (
	"log/slog"
	"os"

	"github.com/programme-lv/autograder/internal/config"
)

// CheckPresent awards points only when every named submission file exists
// and is non-empty. It returns the names that are missing or empty.
func CheckPresent(l config.Layout, res *QuestionResult, names []string, points float64) []string {
	missing := []string{}
	for _, name := range names {
		st, err := os.Stat(l.Path(l.SubmissionRel(name)))
		switch {
		case err != nil || st.IsDir():
			slog.Debug("required file not found", "file", name)
			res.Feedbackf("File %s not found!\n", name)
			missing = append(missing, name)
		case st.Size() == 0:
			slog.Debug("required file is empty", "file", name)
			res.Feedbackf("Found %s, but it's empty!\n", name)
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		res.AddScore(points)
		res.Feedbackf("All files found, +%s marks.\n", formatPoints(points))
	}
	return missing
}
