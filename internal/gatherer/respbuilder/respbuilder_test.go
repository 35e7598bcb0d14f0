package respbuilder_test

import (
	"context"
	"strings"
	"testing"

	"github.com/programme-lv/autograder/api"
	"github.com/programme-lv/autograder/internal/gatherer/respbuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCollectsQuestions(t *testing.T) {
	b := respbuilder.New("run-3")
	b.StartRun("linux/amd64")

	b.StartQuestion("1-1")
	b.FinishArtifacts("1-1", nil)
	b.FinishBuild("1-1", 0, true, true, &api.RuntimeData{Stdout: strings.Repeat("y", 200)})
	b.ReachCase("1-1", "00")
	b.FinishCase("1-1", "00", api.VerdictPassed, nil)
	b.FinishCase("1-1", "01", api.VerdictWrongOutput, nil)
	b.FinishQuestion("1-1", 3, 4)

	b.StartQuestion("1-2")
	b.FinishArtifacts("1-2", []string{"plan.txt"})
	b.SkipTesting("1-2", "test driver failing to compile")
	b.FinishQuestion("1-2", 0, 2)

	b.FinishRun(3, nil)

	r := b.Report()
	assert.Equal(t, "run-3", r.RunUuid)
	require.NotNil(t, r.SystemInfo)
	assert.Equal(t, "linux/amd64", *r.SystemInfo)
	assert.Nil(t, r.ErrorMessage)
	assert.Equal(t, 3.0, r.Score)

	require.Len(t, r.Questions, 2)
	q1 := r.Questions[0]
	assert.Equal(t, "1-1", q1.QuestionId)
	assert.Empty(t, q1.Missing)
	require.Len(t, q1.Builds, 1)
	assert.True(t, q1.Builds[0].Success)
	assert.Equal(t, strings.Repeat("y", api.MaxRuntimeDataWidth)+"[...]", q1.Builds[0].RuntimeData.Stdout)
	require.Len(t, q1.Cases, 2)
	assert.Equal(t, api.VerdictWrongOutput, q1.Cases[1].Verdict)
	assert.Nil(t, q1.SkipReason)

	q2 := r.Questions[1]
	assert.Equal(t, []string{"plan.txt"}, q2.Missing)
	require.NotNil(t, q2.SkipReason)
	assert.Equal(t, 2.0, q2.MaxScore)
}

func TestReportRecordsRunError(t *testing.T) {
	b := respbuilder.New("run-4")
	b.FinishRun(0, context.Canceled)

	r := b.Report()
	require.NotNil(t, r.ErrorMessage)
	assert.Equal(t, context.Canceled.Error(), *r.ErrorMessage)
	assert.Nil(t, r.SystemInfo)
	assert.Empty(t, r.Questions)
}
