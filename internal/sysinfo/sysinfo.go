// Package sysinfo describes the grading host for the run-start event.
package sysinfo

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

type Info struct {
	OS       string
	CPU      string
	Cores    int
	MemoryGB float64
}

// Collect never fails: fields gopsutil cannot read fall back to runtime values.
func Collect(ctx context.Context) Info {
	info := Info{
		OS:    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		CPU:   "Unknown",
		Cores: runtime.NumCPU(),
	}
	if h, err := host.InfoWithContext(ctx); err == nil && h.Platform != "" {
		info.OS = fmt.Sprintf("%s (%s %s)", info.OS, h.Platform, h.PlatformVersion)
	}
	if c, err := cpu.InfoWithContext(ctx); err == nil && len(c) > 0 && c[0].ModelName != "" {
		info.CPU = strings.TrimSpace(c[0].ModelName)
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		info.Cores = n
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryGB = float64(vm.Total) / (1 << 30)
	}
	return info
}

func (i Info) String() string {
	return fmt.Sprintf("os: %s\ncpu: %s (%d cores)\nmemory: %.1fGB", i.OS, i.CPU, i.Cores, i.MemoryGB)
}

// Describe is Collect(ctx).String().
func Describe(ctx context.Context) string {
	return Collect(ctx).String()
}
