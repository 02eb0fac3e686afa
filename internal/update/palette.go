package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/commands"
	"github.com/sandeepkv93/focusboard/internal/planner"
	"github.com/sandeepkv93/focusboard/internal/settings"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.deps.Board.AddTask(context.Background(), a.Hour)
			if errors.Is(err, planner.ErrHourTaken) {
				if err := m.deps.Board.SetActive(task.ID); err != nil {
					return commands.Result{}, err
				}
				m.Calendar.CursorHour = a.Hour
				return commands.Result{Message: fmt.Sprintf("%02d:00 already has %q; selected it", a.Hour, task.Title)}, nil
			}
			if err != nil {
				return commands.Result{}, err
			}
			m.Calendar.CursorHour = a.Hour
			return commands.Result{Message: fmt.Sprintf("added task at %02d:00", a.Hour)}, nil
		},
		Title: func(a commands.TitleArgs) (commands.Result, error) {
			task, ok := m.deps.Board.Active()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no active task"}
			}
			if _, err := m.deps.Board.Rename(context.Background(), task.ID, a.Title); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("renamed task to %q", a.Title)}, nil
		},
		Set: func(a commands.SetArgs) (commands.Result, error) {
			next := m.deps.Settings.Get()
			if err := settings.Set(&next, a.Key, a.Value); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			if _, err := m.deps.Settings.Replace(next); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("set %s = %s", a.Key, a.Value)}, nil
		},
		Share: func() (commands.Result, error) {
			var next Model
			next, followUp = m.startShare()
			m = next
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Submit: func() (commands.Result, error) {
			task, ok := m.deps.Board.Active()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no active task"}
			}
			m = m.submitTask(task)
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}
	return m, followUp
}
