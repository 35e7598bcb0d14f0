package wire

import (
	"strings"
	"unicode/utf8"

	"github.com/programme-lv/autograder/api"
)

// TrimStrToRect keeps at most maxHeight lines of at most maxWidth
// characters, marking every cut with "[...]". Lines are cut on rune
// boundaries and the height marker is never itself trimmed.
func TrimStrToRect(s string, maxHeight int, maxWidth int) string {
	if s == "" {
		return ""
	}
	var res strings.Builder
	lines := strings.Split(s, "\n")
	cutHeight := len(lines) > maxHeight
	if cutHeight {
		lines = lines[:maxHeight]
	}
	for i, line := range lines {
		if i > 0 {
			res.WriteString("\n")
		}
		res.WriteString(trimLine(line, maxWidth))
	}
	if cutHeight {
		if len(lines) > 0 {
			res.WriteString("\n")
		}
		res.WriteString(cutMarker)
	}
	return res.String()
}

const cutMarker = "[...]"

func trimLine(line string, maxWidth int) string {
	if utf8.RuneCountInString(line) <= maxWidth {
		return line
	}
	n := 0
	for i := range line {
		if n == maxWidth {
			return line[:i] + cutMarker
		}
		n++
	}
	return line
}

func TrimRuntimeData(data *api.RuntimeData) *api.RuntimeData {
	if data == nil {
		return nil
	}
	res := *data
	res.Stdin = TrimStrToRect(data.Stdin, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	res.Stdout = TrimStrToRect(data.Stdout, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	res.Stderr = TrimStrToRect(data.Stderr, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	if data.ExitSignal != nil {
		sig := *data.ExitSignal
		res.ExitSignal = &sig
	}
	return &res
}
