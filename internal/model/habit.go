package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var ErrInvalidWeekday = errors.New("model: invalid weekday index")

// Weekday indices are Monday based: 0 is Monday, 6 is Sunday.
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type Habit struct {
	ID            string
	Name          string
	CompletedDays []int
}

func ValidWeekday(day int) bool {
	return day >= 0 && day <= 6
}

// WeekdayIndex converts a time.Weekday to the Monday-based index.
func WeekdayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("model: habit name is required")
	}
	for _, d := range h.CompletedDays {
		if !ValidWeekday(d) {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
		}
	}
	return nil
}

func (h Habit) Done(day int) bool {
	return slices.Contains(h.CompletedDays, day)
}

// Toggle returns a copy of h with day flipped. Days keep their completion order.
func (h Habit) Toggle(day int) Habit {
	out := h
	if h.Done(day) {
		out.CompletedDays = slices.DeleteFunc(slices.Clone(h.CompletedDays), func(d int) bool { return d == day })
		return out
	}
	out.CompletedDays = append(slices.Clone(h.CompletedDays), day)
	return out
}
