package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidHour  = errors.New("model: invalid task hour")
	ErrInvalidPhase = errors.New("model: invalid session phase")
)

const (
	DefaultTaskTitle   = "New Task"
	DefaultTaskContent = "- [ ] Task item 1\n- [ ] Task item 2\n- [ ] Task item 3"
)

type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "shortBreak"
	PhaseLongBreak  Phase = "longBreak"
)

func (p Phase) IsValid() bool {
	switch p {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak:
		return true
	default:
		return false
	}
}

func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

func (p Phase) Label() string {
	switch p {
	case PhaseWork:
		return "Work"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return string(p)
	}
}

// Task is the single entry of one hour slot in the day calendar. Content holds
// the checkbox-list text edited through the lines package.
type Task struct {
	ID        string
	Title     string
	Hour      int
	Content   string
	Notes     string
	Completed bool
}

func NewTask(id string, hour int) Task {
	return Task{
		ID:      id,
		Title:   DefaultTaskTitle,
		Hour:    hour,
		Content: DefaultTaskContent,
	}
}

func ValidHour(hour int) bool {
	return hour >= 0 && hour <= 23
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !ValidHour(t.Hour) {
		return fmt.Errorf("%w: %d", ErrInvalidHour, t.Hour)
	}
	return nil
}
