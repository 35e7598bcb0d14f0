// Package metadata loads the submission context written by the grading
// platform next to the submission (submission_metadata.json).
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var ErrNoMetadata = errors.New("submission metadata not found")

type Assignment struct {
	DueDate     Timestamp `json:"due_date"`
	TotalPoints Number    `json:"total_points"`
	Title       string    `json:"title"`
}

type UserAssignment struct {
	DueDate Timestamp `json:"due_date"`
}

type User struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Assignment UserAssignment `json:"assignment"`
}

type PreviousSubmission struct {
	SubmissionTime Timestamp `json:"submission_time"`
	Score          Number    `json:"score"`
}

// Context is read-only once loaded.
type Context struct {
	CreatedAt           Timestamp            `json:"created_at"`
	Assignment          Assignment           `json:"assignment"`
	Users               []User               `json:"users"`
	PreviousSubmissions []PreviousSubmission `json:"previous_submissions"`

	// Loaded is false for the placeholder used when no metadata could be read.
	Loaded bool `json:"-"`
}

// Empty is the context used when metadata is unavailable: no due date, no
// maximum and no history.
func Empty() *Context {
	return &Context{
		Users:               []User{},
		PreviousSubmissions: []PreviousSubmission{},
	}
}

func Load(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoMetadata, path)
		}
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Context, error) {
	res := Empty()
	if err := json.Unmarshal(data, res); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if res.Users == nil {
		res.Users = []User{}
	}
	if res.PreviousSubmissions == nil {
		res.PreviousSubmissions = []PreviousSubmission{}
	}
	res.Loaded = true
	return res, nil
}
