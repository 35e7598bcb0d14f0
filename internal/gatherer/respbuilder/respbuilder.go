package respbuilder

import (
	"sync"
	"time"

	"github.com/programme-lv/autograder/api"
	"github.com/programme-lv/autograder/internal/gatherer/wire"
	"github.com/programme-lv/autograder/internal/tester"
)

// Builder gathers grading events and builds a complete api.Report.
type Builder struct {
	mu sync.Mutex

	runUuid    string
	systemInfo string

	started  time.Time
	finished *time.Time

	questions []api.QuestionReport
	byId      map[string]int

	score        float64
	errorMessage *string
}

var _ tester.ResultGatherer = (*Builder)(nil)

func New(runUuid string) *Builder {
	return &Builder{
		runUuid: runUuid,
		started: time.Now(),
		byId:    map[string]int{},
	}
}

// question returns the report for qid, creating it on first use.
// Callers hold b.mu.
func (b *Builder) question(qid string) *api.QuestionReport {
	if i, ok := b.byId[qid]; ok {
		return &b.questions[i]
	}
	b.questions = append(b.questions, api.QuestionReport{
		QuestionId: qid,
		Missing:    []string{},
		Builds:     []api.BuildReport{},
		Cases:      []api.CaseReport{},
	})
	b.byId[qid] = len(b.questions) - 1
	return &b.questions[len(b.questions)-1]
}

func (b *Builder) StartRun(systemInfo string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.systemInfo = systemInfo
}

func (b *Builder) StartQuestion(qid string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.question(qid)
}

func (b *Builder) FinishArtifacts(qid string, missing []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.question(qid)
	q.Missing = append(q.Missing, missing...)
}

func (b *Builder) FinishBuild(qid string, target int, recorded bool, success bool, data *api.RuntimeData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.question(qid)
	q.Builds = append(q.Builds, api.BuildReport{
		Target:      target,
		Recorded:    recorded,
		Success:     success,
		RuntimeData: wire.TrimRuntimeData(data),
	})
}

func (b *Builder) ReachCase(qid string, cid string) {}

func (b *Builder) FinishCase(qid string, cid string, verdict api.Verdict, data *api.RuntimeData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.question(qid)
	q.Cases = append(q.Cases, api.CaseReport{
		CaseId:      cid,
		Verdict:     verdict,
		RuntimeData: wire.TrimRuntimeData(data),
	})
}

func (b *Builder) SkipTesting(qid string, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := reason
	b.question(qid).SkipReason = &r
}

func (b *Builder) FinishQuestion(qid string, score float64, maxScore float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.question(qid)
	q.Score = score
	q.MaxScore = maxScore
}

func (b *Builder) FinishRun(score float64, errIfAny error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	b.finished = &now
	b.score = score
	if errIfAny != nil {
		msg := errIfAny.Error()
		b.errorMessage = &msg
	}
}

// Report builds the api.Report from gathered data.
func (b *Builder) Report() api.Report {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := b.started.Format(time.RFC3339)
	finish := start
	total := int64(0)
	if b.finished != nil {
		finish = b.finished.Format(time.RFC3339)
		total = b.finished.Sub(b.started).Milliseconds()
	}
	questions := make([]api.QuestionReport, len(b.questions))
	copy(questions, b.questions)
	return api.Report{
		RunUuid:     b.runUuid,
		StartTime:   start,
		FinishTime:  finish,
		TotalTimeMs: total,
		Score:       b.score,
		Questions:   questions,
		ErrorMessage: func() *string {
			if b.errorMessage == nil {
				return nil
			}
			v := *b.errorMessage
			return &v
		}(),
		SystemInfo: func() *string {
			if b.systemInfo == "" {
				return nil
			}
			v := b.systemInfo
			return &v
		}(),
	}
}
