package model

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Submission records one completed focus session or a manual task submission.
// Values are never mutated after construction; use Clone when handing the
// slices to code that may keep them.
type Submission struct {
	ID          string
	Title       string
	Content     []string
	Timestamp   time.Time
	Duration    int
	Completed   bool
	Questions   []string
	TaskContent string
}

func (s Submission) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: submission id is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("model: submission title is required")
	}
	if s.Timestamp.IsZero() {
		return errors.New("model: submission timestamp is required")
	}
	if s.Duration < 0 {
		return errors.New("model: submission duration must not be negative")
	}
	return nil
}

func (s Submission) Clone() Submission {
	out := s
	out.Content = slices.Clone(s.Content)
	out.Questions = slices.Clone(s.Questions)
	return out
}

// Answer returns the answer recorded for question i, or "" when the
// submission has fewer answers than questions.
func (s Submission) Answer(i int) string {
	if i < 0 || i >= len(s.Content) {
		return ""
	}
	return s.Content[i]
}
