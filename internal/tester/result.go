package tester

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/programme-lv/autograder/api"
)

// QuestionResult accumulates the score and feedback of one question.
// Both only ever grow until the result is frozen by TestResult.
type QuestionResult struct {
	Name       string
	Score      float64
	MaxScore   float64
	Visibility api.Visibility

	output strings.Builder
}

func NewQuestionResult(qid string, maxScore float64) *QuestionResult {
	return &QuestionResult{
		Name:       "Q" + qid,
		MaxScore:   maxScore,
		Visibility: api.Visible,
	}
}

func (r *QuestionResult) AddScore(points float64) {
	r.Score += points
}

func (r *QuestionResult) Feedback(s string) {
	r.output.WriteString(s)
}

func (r *QuestionResult) Feedbackf(format string, args ...any) {
	fmt.Fprintf(&r.output, format, args...)
}

func (r *QuestionResult) Output() string {
	return r.output.String()
}

// Clamp limits the score to MaxScore.
func (r *QuestionResult) Clamp() {
	if r.Score > r.MaxScore {
		r.Feedbackf("Capping question score from %s to %s\n", formatPoints(r.Score), formatPoints(r.MaxScore))
		r.Score = r.MaxScore
	}
}

func (r *QuestionResult) TestResult() api.TestResult {
	return api.TestResult{
		Score:      r.Score,
		MaxScore:   r.MaxScore,
		Name:       r.Name,
		Output:     r.Output(),
		Visibility: r.Visibility,
	}
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
