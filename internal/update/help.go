package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/focusboard/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Dashboard, Action: "switch to Dashboard"},
		{Key: m.Keys.Editor, Action: "switch to Editor"},
		{Key: m.Keys.Habits, Action: "switch to Habits"},
		{Key: m.Keys.History, Action: "switch to History"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewDashboard:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "n", Action: "skip to next phase"},
			{Key: "r", Action: "reset timer"},
			{Key: "j/k", Action: "move hour cursor"},
			{Key: "a", Action: "add task at hour"},
			{Key: "enter", Action: "open task at hour"},
			{Key: "m/e", Action: "morning/evening reflection"},
		}
	case ViewEditor:
		return []KeyBinding{
			{Key: "j/k", Action: "move line cursor"},
			{Key: "space", Action: "check/uncheck item"},
			{Key: "e", Action: "edit line"},
			{Key: "o", Action: "new line below"},
			{Key: "tab/shift+tab", Action: "indent/outdent"},
			{Key: "c", Action: "turn text into checkbox"},
			{Key: "backspace", Action: "remove empty line"},
			{Key: "n", Action: "jump to next open item"},
			{Key: "t/N", Action: "edit title/notes"},
			{Key: "s", Action: "submit task"},
		}
	case ViewHabits:
		return []KeyBinding{
			{Key: "j/k", Action: "move habit cursor"},
			{Key: "h/l", Action: "move day cursor"},
			{Key: "space", Action: "toggle day"},
		}
	case ViewHistory:
		return []KeyBinding{
			{Key: "j/k", Action: "scroll"},
			{Key: "S", Action: "share to webhook"},
			{Key: "C", Action: "clear history"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
