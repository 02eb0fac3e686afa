package update

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/history"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/session"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m *Model) openPrompt(kind PromptKind, questions []string, workMinutes int) {
	inputs := make([]textinput.Model, len(questions))
	for i := range inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 1024
		in.Width = 100
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	m.Prompt = PromptState{
		Active:      true,
		Kind:        kind,
		Questions:   questions,
		WorkMinutes: workMinutes,
		inputs:      inputs,
	}
}

func (m *Model) openDayPrompt(kind PromptKind) {
	s := m.deps.Settings.Get()
	questions := s.DayStartQuestions
	if kind == PromptDayEnd {
		questions = s.DayEndQuestions
	}
	if len(questions) == 0 {
		m.Status = StatusBar{Text: "no questions configured for this reflection", IsError: false}
		return
	}
	m.openPrompt(kind, questions, 0)
}

// closePrompt opens the next queued session reflection, if any.
func (m *Model) closePrompt() {
	m.Prompt = PromptState{}
	if len(m.pendingReflections) == 0 {
		return
	}
	next := m.pendingReflections[0]
	m.pendingReflections = slices.Clone(m.pendingReflections[1:])
	m.openPrompt(PromptSession, session.ReflectionQuestions(), next)
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	last := len(m.Prompt.inputs) - 1
	switch msg.String() {
	case "esc":
		m.Status = StatusBar{Text: "reflection dismissed", IsError: false}
		m.closePrompt()
		return m, nil
	case "tab", "down":
		m.focusPromptInput(m.Prompt.Current + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusPromptInput(m.Prompt.Current - 1)
		return m, nil
	case "enter":
		if m.Prompt.Current < last {
			m.focusPromptInput(m.Prompt.Current + 1)
			return m, nil
		}
		return m.submitPrompt(), nil
	}
	if m.Prompt.Current < 0 || m.Prompt.Current > last {
		return m, nil
	}
	inputs := append([]textinput.Model(nil), m.Prompt.inputs...)
	var cmd tea.Cmd
	inputs[m.Prompt.Current], cmd = inputs[m.Prompt.Current].Update(msg)
	m.Prompt.inputs = inputs
	return m, cmd
}

func (m *Model) focusPromptInput(i int) {
	if i < 0 || i >= len(m.Prompt.inputs) {
		return
	}
	inputs := append([]textinput.Model(nil), m.Prompt.inputs...)
	inputs[m.Prompt.Current].Blur()
	inputs[i].Focus()
	m.Prompt.inputs = inputs
	m.Prompt.Current = i
}

func (m Model) promptAnswers() []string {
	out := make([]string, 0, len(m.Prompt.inputs))
	for _, in := range m.Prompt.inputs {
		out = append(out, in.Value())
	}
	return out
}

func (m Model) submitPrompt() Model {
	answers := m.promptAnswers()
	prompt := m.Prompt

	switch prompt.Kind {
	case PromptSession:
		var task *model.Task
		if active, ok := m.deps.Board.Active(); ok {
			task = &active
		}
		sub := session.NewReflectionSubmission(task, answers, prompt.WorkMinutes, m.deps.Now())
		if err := m.deps.History.Append(context.Background(), sub); err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("record reflection: %v", err), IsError: true}
		} else {
			m.Status = StatusBar{Text: "reflection saved", IsError: false}
		}
		if m.CurrentView == ViewHistory {
			m.refreshHistory()
		}
	case PromptDayStart, PromptDayEnd:
		today := history.DateLabel(m.deps.Now(), m.deps.Location)
		if m.Day.Date != today {
			m.Day = DayState{Date: today}
		}
		attrs := []any{"kind", string(prompt.Kind), "date", today}
		for i, q := range prompt.Questions {
			attrs = append(attrs, q, answers[i])
		}
		m.deps.Logger.Info("day reflection", attrs...)
		if prompt.Kind == PromptDayStart {
			m.Day.MorningDone = true
			m.Status = StatusBar{Text: "morning reflection completed", IsError: false}
		} else {
			m.Day.EveningDone = true
			m.Status = StatusBar{Text: "evening reflection completed", IsError: false}
		}
	}
	m.closePrompt()
	return m
}

func (m Model) renderPromptView() string {
	title := "Session reflection"
	switch m.Prompt.Kind {
	case PromptDayStart:
		title = "Morning reflection"
	case PromptDayEnd:
		title = "Evening reflection"
	}
	inputs := make([]string, 0, len(m.Prompt.inputs))
	for _, in := range m.Prompt.inputs {
		inputs = append(inputs, in.View())
	}
	return views.RenderPrompt(views.PromptPanelData{
		Title:     title,
		Questions: m.Prompt.Questions,
		Inputs:    inputs,
		Current:   m.Prompt.Current,
	})
}
