package update

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/session"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m Model) handleTimerKey(msg tea.KeyMsg) (Model, bool) {
	engine := m.deps.Engine
	switch msg.String() {
	case " ":
		engine.Toggle()
		if engine.State().Running {
			m.Status = StatusBar{Text: "focus running", IsError: false}
		} else {
			m.Status = StatusBar{Text: "focus paused", IsError: false}
		}
	case "n":
		engine.Skip()
		m.Status = StatusBar{Text: fmt.Sprintf("skipped to %s", engine.State().Phase.Label()), IsError: false}
	case "r":
		engine.Reset()
		m.Status = StatusBar{Text: "focus reset", IsError: false}
	default:
		return m, false
	}
	return m, true
}

func (m *Model) handleEngineEvent(ev session.Event) {
	switch typed := ev.(type) {
	case session.SessionCompleted:
		if m.Prompt.Active {
			m.pendingReflections = append(slices.Clone(m.pendingReflections), typed.WorkMinutes)
			m.Status = StatusBar{Text: fmt.Sprintf("cycle %d finished; reflection queued", typed.Cycle), IsError: false}
		} else {
			m.openPrompt(PromptSession, session.ReflectionQuestions(), typed.WorkMinutes)
		}
		m.notify("Session Complete", fmt.Sprintf("cycle %d finished, time for a reflection", typed.Cycle), "info")
	case session.PhaseChanged:
		if typed.Skipped {
			return
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s started", typed.To.Label()), IsError: false}
		if typed.From.IsBreak() {
			m.notify("Break Over", "back to work", "info")
		}
	}
}

func (m Model) timerFraction() float64 {
	st := m.deps.Engine.State()
	total := m.deps.Engine.Config().Seconds(st.Phase)
	if total <= 0 {
		return 0
	}
	pct := float64(total-st.TimeLeft) / float64(total)
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func (m Model) renderTimerView() string {
	st := m.deps.Engine.State()
	data := views.TimerPanelData{
		Phase:        st.Phase.Label(),
		Clock:        st.Clock(),
		Cycle:        st.CurrentCycle,
		TotalCycles:  m.deps.Engine.Config().TotalCycles,
		Running:      st.Running,
		ProgressView: m.timerProgress.ViewAs(m.timerFraction()),
	}
	if task, ok := m.deps.Board.Active(); ok {
		data.TaskTitle = task.Title
	}
	if m.deps.Ambient != nil {
		data.Ambient = m.deps.Ambient.Playing()
	}
	return views.RenderTimerPanel(data)
}

func waitForEventCmd(ch <-chan session.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return EngineEventMsg{Event: ev}
	}
}
