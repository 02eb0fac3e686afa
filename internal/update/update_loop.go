package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForEventCmd(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		if h := typed.Height - 12; h > 5 {
			m.historyView.Height = h
		}
		return m, nil
	case EngineEventMsg:
		m.handleEngineEvent(typed.Event)
		return m, waitForEventCmd(m.events)
	case ShareResultMsg:
		m.Sharing = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("share failed: %v", typed.Err), IsError: true}
			m.notify("Share Failed", typed.Err.Error(), "error")
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("shared %d submission(s)", typed.Count), IsError: false}
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m = m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}
	if m.Prompt.Active {
		return m.handlePromptKey(msg)
	}
	if m.Palette.Active {
		if keyStr == m.Keys.Help {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg)
	}
	if m.CurrentView == ViewEditor && m.Editor.editing() {
		return m.handleEditorKey(msg)
	}
	if m.CurrentView == ViewHistory && m.History.ConfirmClear {
		return m.handleClearConfirmKey(msg), nil
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.Focus()
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, nil
	case m.Keys.Dashboard:
		return m.switchView(ViewDashboard), nil
	case m.Keys.Editor:
		return m.switchView(ViewEditor), nil
	case m.Keys.Habits:
		return m.switchView(ViewHabits), nil
	case m.Keys.History:
		return m.switchView(ViewHistory), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown", IsError: false}
		} else {
			m.Status = StatusBar{Text: "help hidden", IsError: false}
		}
		return m, nil
	case m.Keys.Quit:
		return m.quit()
	}

	switch m.CurrentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewEditor:
		return m.handleEditorKey(msg)
	case ViewHabits:
		return m.handleHabitsKey(msg), nil
	case ViewHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.Quitting = true
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

func (m Model) switchView(v View) Model {
	m.CurrentView = v
	switch v {
	case ViewEditor:
		m.Editor = EditorState{}
		if _, ok := m.deps.Board.Active(); !ok {
			m.Status = StatusBar{Text: "no active task; pick one on the dashboard", IsError: false}
		}
	case ViewHistory:
		m.History = HistoryState{}
		m.refreshHistory()
	}
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewDashboard:
		leftPane = m.renderTimerView() + "\n\n" + m.renderDayView()
		rightPane = m.renderCalendarView()
	case ViewEditor:
		leftPane = m.renderEditorView()
		rightPane = m.renderNotesView()
	case ViewHabits:
		leftPane = m.renderHabitsView()
		rightPane = m.renderTimerView()
	case ViewHistory:
		leftPane = m.renderHistoryView()
		rightPane = m.renderTimerView()
	}
	rightPane = joinNonEmpty(rightPane, m.renderCommandPalette(), m.renderHelpIfVisible())

	overlay := ""
	if m.Prompt.Active {
		overlay = m.renderPromptView()
	}

	header := fmt.Sprintf("focusboard | view: %s", m.CurrentView)
	if task, ok := m.deps.Board.Active(); ok {
		header += fmt.Sprintf(" | task: %s", task.Title)
	}
	return views.RenderApp(views.AppData{
		Header:       header,
		LeftPane:     leftPane,
		RightPane:    rightPane,
		Overlay:      overlay,
		StatusLine:   status,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s dashboard | %s editor | %s habits | %s history | / cmd | %s help | %s quit",
			m.Keys.Dashboard, m.Keys.Editor, m.Keys.Habits, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	last := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(last.Level, last.Title+": "+last.Body)
}

func isKnownView(v View) bool {
	switch v {
	case ViewDashboard, ViewEditor, ViewHabits, ViewHistory:
		return true
	default:
		return false
	}
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
