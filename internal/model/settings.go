package model

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidSettings = errors.New("model: invalid settings")

type NotificationSounds struct {
	Start string `toml:"start"`
	Focus string `toml:"focus"`
}

// Settings is replaced wholesale on every update; callers must not mutate a
// value obtained from a shared reader.
type Settings struct {
	WorkDuration       int                `toml:"work_duration"`
	ShortBreakDuration int                `toml:"short_break_duration"`
	LongBreakDuration  int                `toml:"long_break_duration"`
	PomodoroCount      int                `toml:"pomodoro_count"`
	AutoStartBreaks    bool               `toml:"auto_start_breaks"`
	Habits             []HabitSetting     `toml:"habits"`
	DayStartQuestions  []string           `toml:"day_start_questions"`
	DayEndQuestions    []string           `toml:"day_end_questions"`
	DarkMode           bool               `toml:"dark_mode"`
	Notifications      bool               `toml:"notifications"`
	NotificationSounds NotificationSounds `toml:"notification_sounds"`
	WebhookURL         string             `toml:"webhook_url"`
}

// HabitSetting is the configured identity of a habit; completion state lives
// in the habit store, not in settings.
type HabitSetting struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

func DefaultSettings() Settings {
	return Settings{
		WorkDuration:       30,
		ShortBreakDuration: 5,
		LongBreakDuration:  15,
		PomodoroCount:      4,
		AutoStartBreaks:    false,
		Habits: []HabitSetting{
			{ID: "1", Name: "Exercise"},
			{ID: "2", Name: "Read"},
			{ID: "3", Name: "Meditate"},
		},
		DayStartQuestions: []string{
			"What are your main goals for today?",
			"How are you feeling?",
		},
		DayEndQuestions: []string{
			"What did you accomplish today?",
			"What could have gone better?",
		},
		Notifications: true,
	}
}

func (s Settings) Validate() error {
	if s.WorkDuration <= 0 {
		return fmt.Errorf("%w: work duration must be positive", ErrInvalidSettings)
	}
	if s.ShortBreakDuration <= 0 {
		return fmt.Errorf("%w: short break duration must be positive", ErrInvalidSettings)
	}
	if s.LongBreakDuration <= 0 {
		return fmt.Errorf("%w: long break duration must be positive", ErrInvalidSettings)
	}
	if s.PomodoroCount <= 0 {
		return fmt.Errorf("%w: pomodoro count must be positive", ErrInvalidSettings)
	}
	return nil
}

func (s Settings) Clone() Settings {
	out := s
	out.Habits = slices.Clone(s.Habits)
	out.DayStartQuestions = slices.Clone(s.DayStartQuestions)
	out.DayEndQuestions = slices.Clone(s.DayEndQuestions)
	return out
}
