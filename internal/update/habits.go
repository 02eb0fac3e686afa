package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/planner"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m Model) handleHabitsKey(msg tea.KeyMsg) Model {
	habits := m.deps.Habits.All()
	switch msg.String() {
	case "up", "k":
		if m.Habits.CursorRow > 0 {
			m.Habits.CursorRow--
		}
	case "down", "j":
		if m.Habits.CursorRow < len(habits)-1 {
			m.Habits.CursorRow++
		}
	case "left", "h":
		if m.Habits.CursorDay > 0 {
			m.Habits.CursorDay--
		}
	case "right", "l":
		if m.Habits.CursorDay < 6 {
			m.Habits.CursorDay++
		}
	case " ", "enter":
		if m.Habits.CursorRow >= len(habits) {
			return m
		}
		h := habits[m.Habits.CursorRow]
		updated, err := m.deps.Habits.Toggle(context.Background(), h.ID, m.Habits.CursorDay)
		if err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("toggle habit: %v", err), IsError: true}
			return m
		}
		state := "cleared"
		if updated.Done(m.Habits.CursorDay) {
			state = "done"
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s %s: %s", updated.Name, model.WeekdayLabels[m.Habits.CursorDay], state), IsError: false}
	}
	return m
}

func (m Model) renderHabitsView() string {
	now := m.deps.Now().In(m.deps.Location)
	data := views.HabitsPanelData{
		Week:      planner.Week(now),
		Today:     planner.CurrentDayIndex(now),
		CursorRow: m.Habits.CursorRow,
		CursorDay: m.Habits.CursorDay,
		Labels:    model.WeekdayLabels,
	}
	for _, h := range m.deps.Habits.All() {
		row := views.HabitRowData{Name: h.Name}
		for _, d := range h.CompletedDays {
			if model.ValidWeekday(d) {
				row.Days[d] = true
			}
		}
		data.Rows = append(data.Rows, row)
	}
	return views.RenderHabitsPanel(data)
}
