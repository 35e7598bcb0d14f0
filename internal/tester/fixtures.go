package tester

import (
	"fmt"
	"os"

	"github.com/programme-lv/autograder/internal/config"
	"github.com/puzpuzpuz/xsync/v3"
)

const maxCases = 100

// DiscoverCases returns the case ids "00", "01", ... for which an expected
// output fixture exists, stopping at the first gap.
func DiscoverCases(l config.Layout, qid string) []string {
	res := []string{}
	for i := 0; i < maxCases; i++ {
		cid := fmt.Sprintf("%02d", i)
		st, err := os.Stat(l.OutputFixture(qid, cid))
		if err != nil || st.IsDir() {
			break
		}
		res = append(res, cid)
	}
	return res
}

type fixtureFile struct {
	data   []byte
	exists bool
}

// Fixtures caches case discovery and optional fixture contents. Safe for
// concurrent use.
type Fixtures struct {
	layout config.Layout
	cases  *xsync.MapOf[string, []string]
	files  *xsync.MapOf[string, fixtureFile]
}

func NewFixtures(l config.Layout) *Fixtures {
	return &Fixtures{
		layout: l,
		cases:  xsync.NewMapOf[string, []string](),
		files:  xsync.NewMapOf[string, fixtureFile](),
	}
}

func (f *Fixtures) Cases(qid string) []string {
	res, _ := f.cases.LoadOrCompute(qid, func() []string {
		return DiscoverCases(f.layout, qid)
	})
	return res
}

// Read returns the content of an optional fixture file. ok is false when the
// file does not exist or cannot be read.
func (f *Fixtures) Read(path string) (data []byte, ok bool) {
	ff, _ := f.files.LoadOrCompute(path, func() fixtureFile {
		b, err := os.ReadFile(path)
		if err != nil {
			return fixtureFile{}
		}
		return fixtureFile{data: b, exists: true}
	})
	return ff.data, ff.exists
}

func (f *Fixtures) Args(qid, cid string) (string, bool) {
	b, ok := f.Read(f.layout.ArgsFixture(qid, cid))
	return string(b), ok
}

func (f *Fixtures) Input(qid, cid string) ([]byte, bool) {
	return f.Read(f.layout.InputFixture(qid, cid))
}
