package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pelletier/go-toml/v2"
)

// specBuildTarget maps to [[questions.build_targets]]
type specBuildTarget struct {
	SubmittedFiles []string `toml:"submitted_files"`
	ProvidedFiles  []string `toml:"provided_files"`
	Points         float64  `toml:"points"`
}

// specQuestion maps to [[questions]] entries
type specQuestion struct {
	ID           string            `toml:"id"`
	MaxPoints    float64           `toml:"max_points"`
	BuildTargets []specBuildTarget `toml:"build_targets"`
	// nil when the key is absent; absent means no tester
	TesterIdx  *int     `toml:"tester_idx"`
	FilePoints float64  `toml:"file_points"`
	TestPoints float64  `toml:"test_points"`
	ExtraFiles []string `toml:"extra_files"`
}

type specRun struct {
	TimeoutSec         float64  `toml:"timeout_sec"`
	Compiler           string   `toml:"compiler"`
	CompilerFlags      []string `toml:"compiler_flags"`
	Diff               string   `toml:"diff"`
	ParticipationOnly  bool     `toml:"participation_only"`
	ParticipationGrade *float64 `toml:"participation_grade"`
	Timezone           string   `toml:"timezone"`
}

type specRoot struct {
	Run       specRun        `toml:"run"`
	Questions []specQuestion `toml:"questions"`
}

// Load reads an assignment TOML file and builds a Config rooted at root.
func Load(path string, root string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assignment file: %w", err)
	}
	return Parse(data, root)
}

// Parse converts assignment TOML into a validated Config.
func Parse(data []byte, root string) (*Config, error) {
	var spec specRoot
	if err := toml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	run, err := spec.Run.toRunConfig()
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	cfg := &Config{
		Layout:    DefaultLayout(absRoot),
		Run:       run,
		Questions: make([]Question, 0, len(spec.Questions)),
	}

	for _, sq := range spec.Questions {
		q := NewQuestion(sq.ID)
		q.MaxPoints = sq.MaxPoints
		q.FilePoints = sq.FilePoints
		q.TestPoints = sq.TestPoints
		q.ExtraFiles = append(q.ExtraFiles, sq.ExtraFiles...)
		if sq.TesterIdx != nil {
			q.TesterIdx = *sq.TesterIdx
		}
		for _, bt := range sq.BuildTargets {
			q.BuildTargets = append(q.BuildTargets,
				NewBuildTarget(bt.SubmittedFiles, bt.ProvidedFiles, bt.Points))
		}
		cfg.Questions = append(cfg.Questions, q)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.warnUntestedQuestions()
	return cfg, nil
}

// warnUntestedQuestions flags questions that have fixture cases and build
// targets but no tester_idx; their cases are skipped during grading.
func (c *Config) warnUntestedQuestions() {
	for _, q := range c.Questions {
		if q.TesterIdx != NoTester || len(q.BuildTargets) == 0 {
			continue
		}
		st, err := os.Stat(c.Layout.OutputFixture(q.ID, "00"))
		if err != nil || st.IsDir() {
			continue
		}
		slog.Warn("question has fixture cases but no tester_idx, functionality tests will be skipped",
			"question", q.ID,
			"build_targets", len(q.BuildTargets))
	}
}

func (r specRun) toRunConfig() (RunConfig, error) {
	res := DefaultRunConfig()
	if r.TimeoutSec < 0 {
		return res, fmt.Errorf("timeout_sec must not be negative, got %v", r.TimeoutSec)
	}
	if r.TimeoutSec > 0 {
		res.Timeout = time.Duration(r.TimeoutSec * float64(time.Second))
	}
	if r.Compiler != "" {
		res.Compiler = r.Compiler
	}
	if r.CompilerFlags != nil {
		res.CompilerFlags = append([]string{}, r.CompilerFlags...)
	}
	if r.Diff != "" {
		res.Diff = r.Diff
	}
	res.ParticipationOnly = r.ParticipationOnly
	if r.ParticipationGrade != nil {
		res.ParticipationGrade = *r.ParticipationGrade
	}
	if r.Timezone != "" {
		loc, err := time.LoadLocation(r.Timezone)
		if err != nil {
			return res, fmt.Errorf("unknown timezone %q: %w", r.Timezone, err)
		}
		res.Location = loc
	}
	return res, nil
}

// Validate checks the static question definitions. An out-of-range tester
// index is not an error here: it only matters once fixture cases exist and
// is reported as question feedback.
func (c *Config) Validate() error {
	seen := mapset.NewThreadUnsafeSet[string]()
	for i, q := range c.Questions {
		if q.ID == "" {
			return fmt.Errorf("question #%d has no id", i)
		}
		if !seen.Add(q.ID) {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}

		if q.MaxPoints < 0 || q.FilePoints < 0 || q.TestPoints < 0 {
			return fmt.Errorf("question %q has negative points", q.ID)
		}
		if q.TesterIdx < NoTester {
			return fmt.Errorf("question %q has invalid tester_idx %d", q.ID, q.TesterIdx)
		}
		for j, bt := range q.BuildTargets {
			if bt.Points < 0 {
				return fmt.Errorf("question %q build target #%d has negative points", q.ID, j)
			}
			if len(bt.SubmittedFiles)+len(bt.ProvidedFiles) == 0 {
				return fmt.Errorf("question %q build target #%d has no files", q.ID, j)
			}
		}
	}
	return nil
}
