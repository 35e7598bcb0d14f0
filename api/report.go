package api

// Report is the machine-readable run summary written by `grade --report`.
// Unlike Results it keeps per-build and per-case runtime data.
type Report struct {
	RunUuid      string           `json:"run_uuid"`
	SystemInfo   *string          `json:"system_info"`
	StartTime    string           `json:"start_time"`
	FinishTime   string           `json:"finish_time"`
	TotalTimeMs  int64            `json:"total_time_ms"`
	Score        float64          `json:"score"`
	ErrorMessage *string          `json:"error_message"`
	Questions    []QuestionReport `json:"questions"`
}

type QuestionReport struct {
	QuestionId string        `json:"question_id"`
	Score      float64       `json:"score"`
	MaxScore   float64       `json:"max_score"`
	Missing    []string      `json:"missing"`
	Builds     []BuildReport `json:"builds"`
	Cases      []CaseReport  `json:"cases"`
	SkipReason *string       `json:"skip_reason"`
}

type BuildReport struct {
	Target      int          `json:"target"`
	Recorded    bool         `json:"recorded"`
	Success     bool         `json:"success"`
	RuntimeData *RuntimeData `json:"runtime_data"`
}

type CaseReport struct {
	CaseId      string       `json:"case_id"`
	Verdict     Verdict      `json:"verdict"`
	RuntimeData *RuntimeData `json:"runtime_data"`
}
