package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/history"
	"github.com/sandeepkv93/focusboard/internal/planner"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m Model) handleDashboardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if next, ok := m.handleTimerKey(msg); ok {
		return next, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.Calendar.CursorHour > 0 {
			m.Calendar.CursorHour--
		}
	case "down", "j":
		if m.Calendar.CursorHour < 23 {
			m.Calendar.CursorHour++
		}
	case "a":
		m = m.addTaskAt(m.Calendar.CursorHour)
	case "enter":
		tasks := m.deps.Board.TasksAt(m.Calendar.CursorHour)
		if len(tasks) == 0 {
			m.Status = StatusBar{Text: fmt.Sprintf("no task at %02d:00; press a to add one", m.Calendar.CursorHour), IsError: false}
			return m, nil
		}
		if err := m.deps.Board.SetActive(tasks[0].ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		return m.switchView(ViewEditor), nil
	case "m":
		m.openDayPrompt(PromptDayStart)
	case "e":
		m.openDayPrompt(PromptDayEnd)
	}
	return m, nil
}

// addTaskAt selects the slot's task when the hour is already taken.
func (m Model) addTaskAt(hour int) Model {
	task, err := m.deps.Board.AddTask(context.Background(), hour)
	switch {
	case errors.Is(err, planner.ErrHourTaken):
		if err := m.deps.Board.SetActive(task.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%02d:00 already has %q; selected it", hour, task.Title), IsError: false}
	case err != nil:
		m.Status = StatusBar{Text: fmt.Sprintf("add task: %v", err), IsError: true}
		if task.ID == "" {
			return m
		}
	default:
		m.Status = StatusBar{Text: fmt.Sprintf("added task at %02d:00", hour), IsError: false}
	}
	m.Calendar.CursorHour = hour
	return m
}

func (m Model) renderCalendarView() string {
	active, _ := m.deps.Board.Active()
	slots := make([]views.HourSlotData, 0, 24)
	for hour := 0; hour < 24; hour++ {
		slot := views.HourSlotData{Hour: hour}
		for _, t := range m.deps.Board.TasksAt(hour) {
			slot.Titles = append(slot.Titles, t.Title)
			if t.ID == active.ID {
				slot.Active = true
			}
		}
		slots = append(slots, slot)
	}
	return views.RenderCalendarPanel(views.CalendarPanelData{
		Slots:      slots,
		CursorHour: m.Calendar.CursorHour,
		NowHour:    m.deps.Now().In(m.deps.Location).Hour(),
	})
}

func (m Model) renderDayView() string {
	day := m.Day
	if day.Date != history.DateLabel(m.deps.Now(), m.deps.Location) {
		day = DayState{}
	}
	return views.RenderDayPanel(views.DayReflectionData{MorningDone: day.MorningDone, EveningDone: day.EveningDone})
}
