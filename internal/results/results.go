// Package results persists the final report where the grading platform
// picks it up.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/programme-lv/autograder/api"
)

// Write stores res as indented JSON at path, creating parent directories.
func Write(path string, res *api.Results) error {
	return writeJSON(path, res)
}

// WriteReport stores the extended run report next to or instead of results.
func WriteReport(path string, rep *api.Report) error {
	return writeJSON(path, rep)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move results into place: %w", err)
	}
	return nil
}

func Read(path string) (*api.Results, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	var res api.Results
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	return &res, nil
}
