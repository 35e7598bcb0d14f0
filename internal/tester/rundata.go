package tester

import (
	"github.com/programme-lv/autograder/api"
	"github.com/programme-lv/autograder/internal/proc"
)

func compileRuntimeData(out *proc.Outcome, stdout, stderr string) *api.RuntimeData {
	return runtimeData(out, "", stdout, stderr)
}

func runtimeData(out *proc.Outcome, stdin, stdout, stderr string) *api.RuntimeData {
	res := &api.RuntimeData{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
	if out == nil {
		return res
	}
	res.ExitCode = int64(out.ExitCode)
	res.WallMillis = out.WallMillis
	res.TimedOut = out.TimedOut
	if out.Signal != nil {
		sig := int64(*out.Signal)
		res.ExitSignal = &sig
	}
	return res
}
