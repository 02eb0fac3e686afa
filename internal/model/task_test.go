package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := NewTask("task-1", 9)
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
	if task.Title != DefaultTaskTitle || task.Content != DefaultTaskContent {
		t.Fatalf("unexpected defaults: %+v", task)
	}
}

func TestTaskValidateHourRange(t *testing.T) {
	for _, hour := range []int{-1, 24, 99} {
		task := NewTask("task-1", hour)
		err := task.Validate()
		if err == nil || !errors.Is(err, ErrInvalidHour) {
			t.Fatalf("hour %d: expected ErrInvalidHour, got %v", hour, err)
		}
	}
}

func TestTaskValidateRequiresTitle(t *testing.T) {
	task := NewTask("task-1", 10)
	task.Title = "   "
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: task title is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPhaseIsValid(t *testing.T) {
	for _, p := range []Phase{PhaseWork, PhaseShortBreak, PhaseLongBreak} {
		if !p.IsValid() {
			t.Fatalf("expected valid phase: %q", p)
		}
	}
	if Phase("nap").IsValid() {
		t.Fatal("expected invalid phase")
	}
	if PhaseWork.IsBreak() || !PhaseLongBreak.IsBreak() {
		t.Fatal("unexpected IsBreak result")
	}
}

func TestSubmissionValidateAndAnswer(t *testing.T) {
	sub := Submission{
		ID:        "sub-1",
		Title:     "Focus Session",
		Content:   []string{"a"},
		Timestamp: time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC),
		Duration:  25,
		Completed: true,
		Questions: []string{"Q1", "Q2"},
	}
	if err := sub.Validate(); err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}
	if sub.Answer(0) != "a" || sub.Answer(1) != "" || sub.Answer(-1) != "" {
		t.Fatalf("unexpected answers: %q %q", sub.Answer(0), sub.Answer(1))
	}

	clone := sub.Clone()
	clone.Content[0] = "changed"
	if sub.Content[0] != "a" {
		t.Fatal("clone shares content backing array")
	}

	sub.Timestamp = time.Time{}
	if err := sub.Validate(); err == nil {
		t.Fatal("expected error for zero timestamp")
	}
}

func TestHabitToggle(t *testing.T) {
	h := Habit{ID: "1", Name: "Read"}
	on := h.Toggle(2)
	if !on.Done(2) || h.Done(2) {
		t.Fatalf("toggle must not mutate receiver: before=%v after=%v", h.CompletedDays, on.CompletedDays)
	}
	off := on.Toggle(2)
	if off.Done(2) || len(off.CompletedDays) != 0 {
		t.Fatalf("expected day cleared, got %v", off.CompletedDays)
	}

	bad := Habit{ID: "1", Name: "Read", CompletedDays: []int{7}}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidWeekday) {
		t.Fatalf("expected ErrInvalidWeekday, got %v", err)
	}
}

func TestWeekdayIndexIsMondayBased(t *testing.T) {
	if WeekdayIndex(time.Monday) != 0 || WeekdayIndex(time.Sunday) != 6 || WeekdayIndex(time.Saturday) != 5 {
		t.Fatal("unexpected weekday index mapping")
	}
}

func TestSettingsDefaultsAndValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if s.WorkDuration != 30 || s.PomodoroCount != 4 || len(s.Habits) != 3 {
		t.Fatalf("unexpected defaults: %+v", s)
	}

	s.PomodoroCount = 0
	if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}

	orig := DefaultSettings()
	clone := orig.Clone()
	clone.Habits[0].Name = "Run"
	if orig.Habits[0].Name != "Exercise" {
		t.Fatal("clone shares habits backing array")
	}
}
