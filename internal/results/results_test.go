package results_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/programme-lv/autograder/api"
	"github.com/programme-lv/autograder/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesDirectoryAndUsesPlatformKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "results.json")
	res := api.NewResults()
	res.Score = 7.5
	res.Tests = append(res.Tests, api.TestResult{
		Score: 7.5, MaxScore: 10, Name: "Q1-1", Output: "ok\n", Visibility: api.Visible,
	})

	require.NoError(t, results.Write(path, res))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 7.5, doc["score"])
	assert.Equal(t, "visible", doc["visibility"])
	assert.Equal(t, "hidden", doc["stdout_visibility"])
	tests := doc["tests"].([]any)
	require.Len(t, tests, 1)
	assert.Equal(t, map[string]any{
		"score": 7.5, "max_score": 10.0, "name": "Q1-1", "output": "ok\n", "visibility": "visible",
	}, tests[0])

	back, err := results.Read(path)
	require.NoError(t, err)
	assert.Equal(t, res, back)
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	rep := &api.Report{RunUuid: "run-1", Score: 2, Questions: []api.QuestionReport{{QuestionId: "1-1"}}}

	require.NoError(t, results.WriteReport(path, rep))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "run-1", doc["run_uuid"])
	assert.Len(t, doc["questions"], 1)
}
