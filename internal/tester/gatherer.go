package tester

import "github.com/programme-lv/autograder/api"

//go:generate mockgen -source=gatherer.go -destination=../gatherer/mocks/gatherer.go -package=mocks

// ResultGatherer receives grading progress as it happens. Implementations
// must not fail the run; sinks that can fail log and carry on.
type ResultGatherer interface {
	StartRun(systemInfo string)

	StartQuestion(qid string)
	FinishArtifacts(qid string, missing []string)
	// recorded is false for the tester rebuild, which awards no points.
	FinishBuild(qid string, target int, recorded bool, success bool, data *api.RuntimeData)

	ReachCase(qid string, cid string)
	FinishCase(qid string, cid string, verdict api.Verdict, data *api.RuntimeData)
	SkipTesting(qid string, reason string)
	FinishQuestion(qid string, score float64, maxScore float64)

	FinishRun(score float64, errIfAny error)
}
