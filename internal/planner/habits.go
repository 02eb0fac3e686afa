package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sandeepkv93/focusboard/internal/audio"
	"github.com/sandeepkv93/focusboard/internal/model"
)

var ErrHabitNotFound = errors.New("planner: habit not found")

type HabitSaver interface {
	SaveHabits(ctx context.Context, habits []model.Habit) error
}

type Cuer interface {
	Play(cue audio.Cue)
}

// CurrentDayIndex is today's Monday-based weekday index.
func CurrentDayIndex(now time.Time) int {
	return model.WeekdayIndex(now.Weekday())
}

// Week is the ISO 8601 week number of now.
func Week(now time.Time) int {
	_, w := now.ISOWeek()
	return w
}

// SeedHabits builds empty habits from the configured list.
func SeedHabits(settings []model.HabitSetting) []model.Habit {
	out := make([]model.Habit, 0, len(settings))
	for _, s := range settings {
		out = append(out, model.Habit{ID: s.ID, Name: s.Name, CompletedDays: []int{}})
	}
	return out
}

// MergeHabits rebuilds the habit list from settings, keeping the completed
// days of habits whose id survives.
func MergeHabits(current []model.Habit, settings []model.HabitSetting) []model.Habit {
	out := SeedHabits(settings)
	for i := range out {
		j := slices.IndexFunc(current, func(h model.Habit) bool { return h.ID == out[i].ID })
		if j >= 0 {
			out[i].CompletedDays = slices.Clone(current[j].CompletedDays)
		}
	}
	return out
}

type Habits struct {
	mu     sync.RWMutex
	habits []model.Habit
	saver  HabitSaver
	cues   Cuer
}

// NewHabits takes ownership of habits. saver and cues may be nil.
func NewHabits(habits []model.Habit, saver HabitSaver, cues Cuer) *Habits {
	return &Habits{habits: slices.Clone(habits), saver: saver, cues: cues}
}

func (h *Habits) All() []model.Habit {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.Habit, 0, len(h.habits))
	for _, habit := range h.habits {
		habit.CompletedDays = slices.Clone(habit.CompletedDays)
		out = append(out, habit)
	}
	return out
}

// Toggle flips day for habit id. Completing a day plays the notification cue.
func (h *Habits) Toggle(ctx context.Context, id string, day int) (model.Habit, error) {
	if !model.ValidWeekday(day) {
		return model.Habit{}, fmt.Errorf("%w: %d", model.ErrInvalidWeekday, day)
	}
	h.mu.Lock()
	i := slices.IndexFunc(h.habits, func(x model.Habit) bool { return x.ID == id })
	if i < 0 {
		h.mu.Unlock()
		return model.Habit{}, fmt.Errorf("%w: %q", ErrHabitNotFound, id)
	}
	completing := !h.habits[i].Done(day)
	h.habits[i] = h.habits[i].Toggle(day)
	updated := h.habits[i]
	snapshot := slices.Clone(h.habits)
	h.mu.Unlock()

	if completing && h.cues != nil {
		h.cues.Play(audio.CueNotification)
	}
	return updated, h.persist(ctx, snapshot)
}

// Sync applies a new configured habit list.
func (h *Habits) Sync(ctx context.Context, settings []model.HabitSetting) error {
	h.mu.Lock()
	h.habits = MergeHabits(h.habits, settings)
	snapshot := slices.Clone(h.habits)
	h.mu.Unlock()
	return h.persist(ctx, snapshot)
}

func (h *Habits) persist(ctx context.Context, habits []model.Habit) error {
	if h.saver == nil {
		return nil
	}
	if err := h.saver.SaveHabits(ctx, habits); err != nil {
		return fmt.Errorf("planner: persist habits: %w", err)
	}
	return nil
}
