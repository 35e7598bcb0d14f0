package wire

import (
	"github.com/programme-lv/autograder/api"
)

// Stream turns gatherer events into api stream messages and hands them to
// send. Network gatherers embed it and only implement delivery.
type Stream struct {
	runUuid string
	send    func(msg any)
}

func NewStream(runUuid string, send func(msg any)) *Stream {
	return &Stream{runUuid: runUuid, send: send}
}

func (s *Stream) RunUuid() string {
	return s.runUuid
}

func (s *Stream) StartRun(systemInfo string) {
	s.send(api.NewStartRun(s.runUuid, systemInfo))
}

func (s *Stream) StartQuestion(qid string) {
	s.send(api.NewStartQuestion(s.runUuid, qid))
}

func (s *Stream) FinishArtifacts(qid string, missing []string) {
	s.send(api.NewFinishArtifacts(s.runUuid, qid, missing))
}

func (s *Stream) FinishBuild(qid string, target int, recorded bool, success bool, data *api.RuntimeData) {
	s.send(api.NewFinishBuild(s.runUuid, qid, target, recorded, success, TrimRuntimeData(data)))
}

func (s *Stream) ReachCase(qid string, cid string) {
	s.send(api.NewReachCase(s.runUuid, qid, cid))
}

func (s *Stream) FinishCase(qid string, cid string, verdict api.Verdict, data *api.RuntimeData) {
	s.send(api.NewFinishCase(s.runUuid, qid, cid, verdict, TrimRuntimeData(data)))
}

func (s *Stream) SkipTesting(qid string, reason string) {
	s.send(api.NewSkipTesting(s.runUuid, qid, reason))
}

func (s *Stream) FinishQuestion(qid string, score float64, maxScore float64) {
	s.send(api.NewFinishQuestion(s.runUuid, qid, score, maxScore))
}

func (s *Stream) FinishRun(score float64, errIfAny error) {
	var msg *string
	if errIfAny != nil {
		m := errIfAny.Error()
		msg = &m
	}
	s.send(api.NewFinishRun(s.runUuid, score, msg))
}
