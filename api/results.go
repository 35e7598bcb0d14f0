package api

type Visibility string

const (
	Visible        Visibility = "visible"
	Hidden         Visibility = "hidden"
	AfterDueDate   Visibility = "after_due_date"
	AfterPublished Visibility = "after_published"
)

// TestResult is one entry of the "tests" array in results.json.
type TestResult struct {
	Score      float64    `json:"score"`
	MaxScore   float64    `json:"max_score"`
	Name       string     `json:"name"`
	Output     string     `json:"output"`
	Visibility Visibility `json:"visibility"`
}

// Results is the document the grading platform reads back from results/results.json.
type Results struct {
	Score            float64      `json:"score"`
	Visibility       Visibility   `json:"visibility"`
	StdoutVisibility Visibility   `json:"stdout_visibility"`
	Tests            []TestResult `json:"tests"`
}

func NewResults() *Results {
	return &Results{
		Visibility:       Visible,
		StdoutVisibility: Hidden,
		Tests:            []TestResult{},
	}
}

// Total sums the scores of all recorded tests.
func (r *Results) Total() float64 {
	total := 0.0
	for _, t := range r.Tests {
		total += t.Score
	}
	return total
}
