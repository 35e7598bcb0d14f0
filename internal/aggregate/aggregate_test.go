package aggregate_test

import (
	"strings"
	"testing"
	"time"

	"github.com/programme-lv/autograder/internal/aggregate"
	"github.com/programme-lv/autograder/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, s string) metadata.Timestamp {
	t.Helper()
	parsed, err := metadata.ParseTimestamp(s)
	require.NoError(t, err)
	return metadata.Timestamp{Time: parsed}
}

func baseContext(t *testing.T) *metadata.Context {
	md := metadata.Empty()
	md.Loaded = true
	md.Assignment.TotalPoints = metadata.NewNumber(100)
	md.Assignment.DueDate = ts(t, "2022-03-01T23:59:00")
	md.CreatedAt = ts(t, "2022-03-01T12:00:00")
	return md
}

func TestCapClampsToTotal(t *testing.T) {
	md := baseContext(t)
	var out strings.Builder
	got := aggregate.Cap(md, 120, aggregate.Options{}, &out)
	assert.Equal(t, 100.0, got)
	assert.Contains(t, out.String(), "Capping grade from 120 to 100")

	out.Reset()
	got = aggregate.Cap(md, 80, aggregate.Options{}, &out)
	assert.Equal(t, 80.0, got)
	assert.Empty(t, out.String())
}

func TestParticipationOverridesScore(t *testing.T) {
	md := baseContext(t)
	var out strings.Builder
	got := aggregate.Cap(md, 150, aggregate.Options{ParticipationOnly: true, ParticipationGrade: 1}, &out)
	assert.Equal(t, 1.0, got)
	assert.Contains(t, out.String(), "Workshop assessment, +1 marks for participation")
}

func TestLatePenaltyTenHoursLate(t *testing.T) {
	md := baseContext(t)
	md.CreatedAt = ts(t, "2022-03-02T10:00:00")

	var out strings.Builder
	got := aggregate.LatePenalty(md, 90, aggregate.Options{}, &out)
	assert.Equal(t, 50.0, got)
	assert.Contains(t, out.String(), "capped to 50%")
	assert.Contains(t, out.String(), "Original grade of 90 capped to 50.")

	out.Reset()
	got = aggregate.LatePenalty(md, 40, aggregate.Options{}, &out)
	assert.Equal(t, 40.0, got)
	assert.Contains(t, out.String(), "Original grade of 40 unchanged.")
}

func TestLatePenaltyThreeDaysLateLeavesNothing(t *testing.T) {
	md := baseContext(t)
	md.CreatedAt = ts(t, "2022-03-05T00:30:00")

	var out strings.Builder
	got := aggregate.LatePenalty(md, 80, aggregate.Options{}, &out)
	assert.LessOrEqual(t, got, 0.0)
	assert.Equal(t, -25.0, got)
	assert.Contains(t, out.String(), "capped to -25%")
	assert.Contains(t, out.String(), "Original grade of 80 capped to -25.")
}

func TestLatePenaltyHonoursExtension(t *testing.T) {
	md := baseContext(t)
	md.CreatedAt = ts(t, "2022-03-02T10:00:00")
	md.Users = []metadata.User{
		{Name: "A", Assignment: metadata.UserAssignment{DueDate: ts(t, "2022-03-03T23:59:00")}},
	}

	var out strings.Builder
	got := aggregate.LatePenalty(md, 90, aggregate.Options{}, &out)
	assert.Equal(t, 90.0, got)
	assert.Empty(t, out.String())
}

func TestLatePenaltyOnTime(t *testing.T) {
	md := baseContext(t)
	var out strings.Builder
	assert.Equal(t, 90.0, aggregate.LatePenalty(md, 90, aggregate.Options{}, &out))
	assert.Empty(t, out.String())
}

func TestAllowedFractionIsMonotonic(t *testing.T) {
	assert.Equal(t, 1.0, aggregate.AllowedFraction(0))
	assert.Equal(t, 1.0, aggregate.AllowedFraction(-time.Hour))
	assert.Equal(t, 0.5, aggregate.AllowedFraction(10*time.Hour+11*time.Minute))
	assert.Equal(t, 0.5, aggregate.AllowedFraction(24*time.Hour))
	assert.Equal(t, 0.25, aggregate.AllowedFraction(24*time.Hour+time.Second))

	prev := aggregate.AllowedFraction(time.Second)
	for h := 1; h <= 24*6; h++ {
		cur := aggregate.AllowedFraction(time.Duration(h) * time.Hour)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
	assert.LessOrEqual(t, aggregate.AllowedFraction(48*time.Hour+time.Minute), 0.0)
}

func TestBestOfPrevious(t *testing.T) {
	md := baseContext(t)
	md.PreviousSubmissions = []metadata.PreviousSubmission{
		{SubmissionTime: ts(t, "2022-02-27T09:00:00Z"), Score: metadata.NewNumber(60)},
		{SubmissionTime: ts(t, "2022-02-28T09:00:00Z"), Score: metadata.NewNumber(85)},
	}

	var out strings.Builder
	got := aggregate.BestOfPrevious(md, 70, aggregate.Options{}, &out)
	assert.Equal(t, 85.0, got)
	assert.Contains(t, out.String(), "Better submission found with grade: 85.")
	assert.Contains(t, out.String(), "2022-02-28 09:00:00 UTC (UTC time)")

	out.Reset()
	got = aggregate.BestOfPrevious(md, 90, aggregate.Options{}, &out)
	assert.Equal(t, 90.0, got)
	assert.Empty(t, out.String())
}

func TestBestOfPreviousRestoresPenalisedScore(t *testing.T) {
	md := baseContext(t)
	md.CreatedAt = ts(t, "2022-03-02T10:00:00")
	md.PreviousSubmissions = []metadata.PreviousSubmission{
		{SubmissionTime: ts(t, "2022-02-28T09:00:00Z"), Score: metadata.NewNumber(95)},
	}
	adelaide, err := time.LoadLocation("Australia/Adelaide")
	require.NoError(t, err)

	var out strings.Builder
	got := aggregate.Apply(md, 100, aggregate.Options{Location: adelaide}, &out)
	assert.Equal(t, 95.0, got)
	assert.Contains(t, out.String(), "(Adelaide time)")
}

func TestApplyWithoutMetadataLeavesScore(t *testing.T) {
	var out strings.Builder
	got := aggregate.Apply(metadata.Empty(), 123, aggregate.Options{}, &out)
	assert.Equal(t, 123.0, got)
	assert.Contains(t, out.String(), "Submission metadata unavailable")

	out.Reset()
	got = aggregate.Apply(nil, 123, aggregate.Options{ParticipationOnly: true, ParticipationGrade: 2}, &out)
	assert.Equal(t, 2.0, got)
}
