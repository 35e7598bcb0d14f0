package config

import (
	"path/filepath"
	"time"
	_ "time/tzdata"

	mapset "github.com/deckarep/golang-set/v2"
)

// Layout names every file and directory the grader touches, relative to Root.
type Layout struct {
	Root          string
	SubmissionDir string
	SourceDir     string
	MetadataFile  string
	ResultsFile   string

	// Artifact is the single output of every build attempt.
	Artifact string
	// StdoutFile, StderrFile and DiffFile are scratch files reused across
	// the fixture cases of one question.
	StdoutFile string
	StderrFile string
	DiffFile   string
}

func DefaultLayout(root string) Layout {
	return Layout{
		Root:          root,
		SubmissionDir: "submission",
		SourceDir:     "source",
		MetadataFile:  "submission_metadata.json",
		ResultsFile:   filepath.Join("results", "results.json"),
		Artifact:      "program.out",
		StdoutFile:    "program.output",
		StderrFile:    "program.err",
		DiffFile:      "testdiff",
	}
}

// Path resolves a root-relative path.
func (l Layout) Path(rel string) string {
	return filepath.Join(l.Root, rel)
}

// SubmissionRel is the root-relative path of a submitted file.
func (l Layout) SubmissionRel(name string) string {
	return filepath.Join(l.SubmissionDir, name)
}

// SourceRel is the root-relative path of a harness-supplied file.
func (l Layout) SourceRel(name string) string {
	return filepath.Join(l.SourceDir, name)
}

func (l Layout) ArgsFixture(qid, cid string) string {
	return l.Path(l.SourceRel("args-" + qid + "-" + cid))
}

func (l Layout) InputFixture(qid, cid string) string {
	return l.Path(l.SourceRel("input-" + qid + "-" + cid))
}

func (l Layout) OutputFixture(qid, cid string) string {
	return l.Path(l.SourceRel("output-" + qid + "-" + cid))
}

// RunConfig holds the run-level switches and external tool settings.
type RunConfig struct {
	Timeout       time.Duration
	Compiler      string
	CompilerFlags []string
	Diff          string

	ParticipationOnly  bool
	ParticipationGrade float64

	// Location is used to render dates in feedback.
	Location *time.Location
}

func DefaultRunConfig() RunConfig {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return RunConfig{
		Timeout:            DefaultTimeout,
		Compiler:           "g++",
		CompilerFlags:      []string{"-std=c++11", "-O2", "-Wall"},
		Diff:               "diff",
		ParticipationOnly:  false,
		ParticipationGrade: 1,
		Location:           loc,
	}
}

const (
	DefaultTimeout  = 5 * time.Second
	DefaultTimezone = "Australia/Adelaide"
)

// Config is everything one grading run needs. It is built once and passed
// to every component; nothing reads ambient globals.
type Config struct {
	Layout    Layout
	Run       RunConfig
	Questions []Question
}

// BuildTarget is one set of files compiled together for a fixed number of points.
type BuildTarget struct {
	SubmittedFiles []string
	ProvidedFiles  []string
	Points         float64
}

func NewBuildTarget(submitted, provided []string, points float64) BuildTarget {
	return BuildTarget{
		SubmittedFiles: append([]string{}, submitted...),
		ProvidedFiles:  append([]string{}, provided...),
		Points:         points,
	}
}

// FileNames lists submitted files before provided ones.
func (b BuildTarget) FileNames() []string {
	res := make([]string, 0, len(b.SubmittedFiles)+len(b.ProvidedFiles))
	res = append(res, b.SubmittedFiles...)
	res = append(res, b.ProvidedFiles...)
	return res
}

// FilePaths resolves FileNames to root-relative paths in the same order.
func (b BuildTarget) FilePaths(l Layout) []string {
	res := make([]string, 0, len(b.SubmittedFiles)+len(b.ProvidedFiles))
	for _, f := range b.SubmittedFiles {
		res = append(res, l.SubmissionRel(f))
	}
	for _, f := range b.ProvidedFiles {
		res = append(res, l.SourceRel(f))
	}
	return res
}

// NoTester marks a question without a designated test-driver build target.
const NoTester = -1

type Question struct {
	ID string
	// MaxPoints of 0 means "infer from the question's parts".
	MaxPoints    float64
	BuildTargets []BuildTarget
	TesterIdx    int
	FilePoints   float64
	TestPoints   float64
	ExtraFiles   []string
}

func NewQuestion(id string) Question {
	return Question{
		ID:           id,
		BuildTargets: []BuildTarget{},
		TesterIdx:    NoTester,
		ExtraFiles:   []string{},
	}
}

// RequiredFiles is the union of every build target's submitted files and the
// extra files, in first-seen order.
func (q Question) RequiredFiles() []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	res := []string{}
	add := func(name string) {
		if seen.Add(name) {
			res = append(res, name)
		}
	}
	for _, bt := range q.BuildTargets {
		for _, f := range bt.SubmittedFiles {
			add(f)
		}
	}
	for _, f := range q.ExtraFiles {
		add(f)
	}
	return res
}

// Tester returns the build target whose artifact runs the fixture cases.
func (q Question) Tester() (BuildTarget, bool) {
	if q.TesterIdx < 0 || q.TesterIdx >= len(q.BuildTargets) {
		return BuildTarget{}, false
	}
	return q.BuildTargets[q.TesterIdx], true
}

// StaticPoints is the part of the max score known without looking at fixtures.
func (q Question) StaticPoints() float64 {
	total := q.FilePoints
	for _, bt := range q.BuildTargets {
		total += bt.Points
	}
	return total
}
