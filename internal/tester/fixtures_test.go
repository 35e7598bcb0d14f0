package tester_test

import (
	"os"
	"testing"

	"github.com/programme-lv/autograder/internal/config"
	"github.com/programme-lv/autograder/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, l config.Layout, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(l.Path(l.SourceDir), 0755))
	require.NoError(t, os.WriteFile(l.Path(l.SourceRel(name)), []byte(content), 0644))
}

func TestDiscoverCasesStopsAtGap(t *testing.T) {
	l := config.DefaultLayout(t.TempDir())
	for _, cid := range []string{"00", "01", "03"} {
		writeSource(t, l, "output-1-1-"+cid, "x\n")
	}
	// inputs alone do not define a case
	writeSource(t, l, "input-1-1-02", "x\n")

	assert.Equal(t, []string{"00", "01"}, tester.DiscoverCases(l, "1-1"))
	assert.Empty(t, tester.DiscoverCases(l, "1-2"))
}

func TestDiscoverCasesRequiresZero(t *testing.T) {
	l := config.DefaultLayout(t.TempDir())
	writeSource(t, l, "output-3-1-01", "x\n")
	assert.Empty(t, tester.DiscoverCases(l, "3-1"))
}

func TestFixturesCache(t *testing.T) {
	l := config.DefaultLayout(t.TempDir())
	writeSource(t, l, "output-1-1-00", "42\n")
	writeSource(t, l, "args-1-1-00", "  --flag value \n")

	f := tester.NewFixtures(l)
	assert.Equal(t, []string{"00"}, f.Cases("1-1"))

	// discovery is cached per question
	writeSource(t, l, "output-1-1-01", "43\n")
	assert.Equal(t, []string{"00"}, f.Cases("1-1"))

	args, ok := f.Args("1-1", "00")
	require.True(t, ok)
	assert.Equal(t, "  --flag value \n", args)

	_, ok = f.Input("1-1", "00")
	assert.False(t, ok)
}
