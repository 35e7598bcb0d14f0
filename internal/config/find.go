package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/programme-lv/autograder/internal/xdg"
)

const (
	AppName            = "autograder"
	AssignmentFilename = "assignment.toml"
)

var ErrNoAssignment = errors.New("assignment file not found")

// FindAssignment returns the assignment file to use. An explicit path must
// exist; otherwise root/assignment.toml and the XDG config dirs are searched.
func FindAssignment(explicit string, root string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("failed to stat assignment file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	candidates := []string{filepath.Join(root, AssignmentFilename)}
	candidates = append(candidates, xdg.New().AppConfigPaths(AppName, AssignmentFilename)...)
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w (searched %v)", ErrNoAssignment, candidates)
}
