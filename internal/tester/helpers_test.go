package tester_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/programme-lv/autograder/internal/config"
	"github.com/programme-lv/autograder/internal/gatherer/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeCompiler concatenates its sources into the -o target and marks it
// executable, so shell scripts can stand in for C++ sources. A source
// containing COMPILE_ERROR fails the build.
const fakeCompiler = `#!/bin/sh
out=""
srcs=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift 2 ;;
    -*) shift ;;
    *) srcs="$srcs $1"; shift ;;
  esac
done
for f in $srcs; do
  if [ ! -f "$f" ]; then echo "fatal error: $f: No such file or directory" >&2; exit 1; fi
  if grep -q COMPILE_ERROR "$f"; then echo "error: $f is broken" >&2; exit 1; fi
done
echo "building $out"
cat $srcs > "$out" && chmod +x "$out"
`

func requireTools(t *testing.T, tools ...string) {
	t.Helper()
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available", tool)
		}
	}
}

type workspace struct {
	t   *testing.T
	cfg *config.Config
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	requireTools(t, "sh", "diff", "cat", "grep")

	root := t.TempDir()
	compiler := filepath.Join(t.TempDir(), "fakecc")
	require.NoError(t, os.WriteFile(compiler, []byte(fakeCompiler), 0755))

	run := config.DefaultRunConfig()
	run.Compiler = compiler
	run.CompilerFlags = []string{"-std=c++11", "-O2", "-Wall"}
	run.Timeout = 2 * time.Second
	run.Location = time.UTC

	cfg := &config.Config{
		Layout: config.DefaultLayout(root),
		Run:    run,
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, cfg.Layout.SubmissionDir), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, cfg.Layout.SourceDir), 0755))
	return &workspace{t: t, cfg: cfg}
}

func (w *workspace) submit(name, content string) {
	w.t.Helper()
	w.write(w.cfg.Layout.SubmissionRel(name), content)
}

func (w *workspace) provide(name, content string) {
	w.t.Helper()
	w.write(w.cfg.Layout.SourceRel(name), content)
}

func (w *workspace) write(rel, content string) {
	w.t.Helper()
	path := w.cfg.Layout.Path(rel)
	require.NoError(w.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(w.t, os.WriteFile(path, []byte(content), 0644))
}

func (w *workspace) exists(rel string) bool {
	_, err := os.Stat(w.cfg.Layout.Path(rel))
	return err == nil
}

// permissiveGatherer accepts any sequence of events.
func permissiveGatherer(t *testing.T) *mocks.MockResultGatherer {
	ctrl := gomock.NewController(t)
	g := mocks.NewMockResultGatherer(ctrl)
	g.EXPECT().StartRun(gomock.Any()).AnyTimes()
	g.EXPECT().StartQuestion(gomock.Any()).AnyTimes()
	g.EXPECT().FinishArtifacts(gomock.Any(), gomock.Any()).AnyTimes()
	g.EXPECT().FinishBuild(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	g.EXPECT().ReachCase(gomock.Any(), gomock.Any()).AnyTimes()
	g.EXPECT().FinishCase(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	g.EXPECT().SkipTesting(gomock.Any(), gomock.Any()).AnyTimes()
	g.EXPECT().FinishQuestion(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	g.EXPECT().FinishRun(gomock.Any(), gomock.Any()).AnyTimes()
	return g
}

const echoProgram = `#!/bin/sh
if [ -n "$1" ]; then echo "$1"; else cat; fi
`
