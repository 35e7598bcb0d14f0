// Package multigath fans grading progress out to several gatherers.
package multigath

import (
	"errors"
	"io"

	"github.com/programme-lv/autograder/api"
	"github.com/programme-lv/autograder/internal/tester"
	"golang.org/x/sync/errgroup"
)

// Gatherer delivers every event to all sinks concurrently and returns once
// each sink has handled it, so per-sink event order is preserved.
type Gatherer struct {
	sinks []tester.ResultGatherer
}

var _ tester.ResultGatherer = (*Gatherer)(nil)

func New(sinks ...tester.ResultGatherer) *Gatherer {
	return &Gatherer{sinks: sinks}
}

func (m *Gatherer) Add(sink tester.ResultGatherer) {
	m.sinks = append(m.sinks, sink)
}

func (m *Gatherer) Len() int {
	return len(m.sinks)
}

func (m *Gatherer) each(f func(g tester.ResultGatherer)) {
	if len(m.sinks) == 1 {
		f(m.sinks[0])
		return
	}
	var eg errgroup.Group
	for _, s := range m.sinks {
		eg.Go(func() error {
			f(s)
			return nil
		})
	}
	_ = eg.Wait()
}

func (m *Gatherer) StartRun(systemInfo string) {
	m.each(func(g tester.ResultGatherer) { g.StartRun(systemInfo) })
}

func (m *Gatherer) StartQuestion(qid string) {
	m.each(func(g tester.ResultGatherer) { g.StartQuestion(qid) })
}

func (m *Gatherer) FinishArtifacts(qid string, missing []string) {
	m.each(func(g tester.ResultGatherer) { g.FinishArtifacts(qid, missing) })
}

func (m *Gatherer) FinishBuild(qid string, target int, recorded bool, success bool, data *api.RuntimeData) {
	m.each(func(g tester.ResultGatherer) { g.FinishBuild(qid, target, recorded, success, data) })
}

func (m *Gatherer) ReachCase(qid string, cid string) {
	m.each(func(g tester.ResultGatherer) { g.ReachCase(qid, cid) })
}

func (m *Gatherer) FinishCase(qid string, cid string, verdict api.Verdict, data *api.RuntimeData) {
	m.each(func(g tester.ResultGatherer) { g.FinishCase(qid, cid, verdict, data) })
}

func (m *Gatherer) SkipTesting(qid string, reason string) {
	m.each(func(g tester.ResultGatherer) { g.SkipTesting(qid, reason) })
}

func (m *Gatherer) FinishQuestion(qid string, score float64, maxScore float64) {
	m.each(func(g tester.ResultGatherer) { g.FinishQuestion(qid, score, maxScore) })
}

func (m *Gatherer) FinishRun(score float64, errIfAny error) {
	m.each(func(g tester.ResultGatherer) { g.FinishRun(score, errIfAny) })
}

// Close closes every sink that is an io.Closer and joins their errors.
func (m *Gatherer) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
