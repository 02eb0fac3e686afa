package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/lines"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (e EditorState) editing() bool {
	return e.EditingLabel || e.EditingTitle || e.EditingNotes
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	task, ok := m.deps.Board.Active()
	if !ok {
		if msg.String() == "esc" {
			return m.switchView(ViewDashboard), nil
		}
		return m, nil
	}
	switch {
	case m.Editor.EditingLabel:
		return m.handleLabelEditKey(task, msg)
	case m.Editor.EditingTitle:
		return m.handleTitleEditKey(task, msg)
	case m.Editor.EditingNotes:
		return m.handleNotesEditKey(task, msg)
	}

	ls := lines.Parse(task.Content)
	m.clampEditorCursor(len(ls))
	cur := m.Editor.Cursor

	switch msg.String() {
	case "esc":
		return m.switchView(ViewDashboard), nil
	case "up", "k":
		if m.Editor.Cursor > 0 {
			m.Editor.Cursor--
		}
	case "down", "j":
		if m.Editor.Cursor < len(ls)-1 {
			m.Editor.Cursor++
		}
	case " ", "x":
		if cur < len(ls) && ls[cur].Checkbox {
			checked := !ls[cur].Checked
			m.editContent(task, func(in []lines.Line) []lines.Line { return lines.Toggle(in, cur, checked) })
		}
	case "e", "enter":
		if cur < len(ls) {
			m.beginLabelEdit(ls[cur])
		}
	case "o":
		updated := m.editContent(task, func(in []lines.Line) []lines.Line { return lines.Break(in, cur) })
		next := lines.Parse(updated.Content)
		m.Editor.Cursor = cur + 1
		m.clampEditorCursor(len(next))
		m.beginLabelEdit(next[m.Editor.Cursor])
	case "tab":
		m.editContent(task, func(in []lines.Line) []lines.Line { return lines.Indent(in, cur) })
	case "shift+tab":
		m.editContent(task, func(in []lines.Line) []lines.Line { return lines.Outdent(in, cur) })
	case "c":
		m.editContent(task, func(in []lines.Line) []lines.Line { return lines.ToCheckbox(in, cur) })
	case "backspace", "d":
		focus := cur
		m.editContent(task, func(in []lines.Line) []lines.Line {
			out, f, removed := lines.RemoveIfEmpty(in, cur)
			if removed {
				focus = f
			}
			return out
		})
		if focus == cur && cur < len(ls) && !ls[cur].Empty() {
			m.Status = StatusBar{Text: "only empty lines can be removed", IsError: false}
		}
		m.Editor.Cursor = focus
	case "n":
		if i, ok := lines.NextUnchecked(ls); ok {
			m.Editor.Cursor = i
		} else {
			m.Status = StatusBar{Text: "all items checked", IsError: false}
		}
	case "t":
		m.Editor.EditingTitle = true
		m.labelInput.SetValue(task.Title)
		m.labelInput.CursorEnd()
		m.labelInput.Focus()
	case "N":
		m.Editor.EditingNotes = true
		m.notesArea.SetValue(task.Notes)
		m.notesArea.Focus()
	case "s":
		m = m.submitTask(task)
	}
	return m, nil
}

func (m *Model) beginLabelEdit(l lines.Line) {
	m.Editor.EditingLabel = true
	if l.Checkbox {
		m.labelInput.SetValue(l.Label)
	} else {
		m.labelInput.SetValue(l.Text)
	}
	m.labelInput.CursorEnd()
	m.labelInput.Focus()
}

func (m Model) handleLabelEditKey(task model.Task, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Editor.EditingLabel = false
		m.labelInput.Blur()
		return m, nil
	case "enter":
		cur := m.Editor.Cursor
		value := m.labelInput.Value()
		accepted := true
		m.editContent(task, func(in []lines.Line) []lines.Line {
			out, ok := lines.SetLabel(in, cur, value)
			accepted = ok
			return out
		})
		if !accepted {
			m.Status = StatusBar{Text: "empty item text ignored", IsError: false}
		}
		m.Editor.EditingLabel = false
		m.labelInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	return m, cmd
}

func (m Model) handleTitleEditKey(task model.Task, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Editor.EditingTitle = false
		m.labelInput.Blur()
		return m, nil
	case "enter":
		m = m.renameTask(task.ID, m.labelInput.Value())
		m.Editor.EditingTitle = false
		m.labelInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	return m, cmd
}

func (m Model) handleNotesEditKey(task model.Task, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Editor.EditingNotes = false
		m.notesArea.Blur()
		return m, nil
	case "ctrl+s":
		if err := m.deps.Board.SetNotes(context.Background(), task.ID, m.notesArea.Value()); err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("save notes: %v", err), IsError: true}
		} else {
			m.Status = StatusBar{Text: "notes saved", IsError: false}
		}
		m.Editor.EditingNotes = false
		m.notesArea.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.notesArea, cmd = m.notesArea.Update(msg)
	return m, cmd
}

// editContent applies edit to task and reports persistence failures in the
// status bar. The in-memory change is kept either way.
func (m *Model) editContent(task model.Task, edit func([]lines.Line) []lines.Line) model.Task {
	updated, err := m.deps.Board.EditContent(context.Background(), task.ID, edit)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("save task: %v", err), IsError: true}
		if current, ok := m.deps.Board.Get(task.ID); ok {
			return current
		}
	}
	return updated
}

func (m Model) renameTask(id, title string) Model {
	ok, err := m.deps.Board.Rename(context.Background(), id, title)
	switch {
	case err != nil:
		m.Status = StatusBar{Text: fmt.Sprintf("rename task: %v", err), IsError: true}
	case !ok:
		m.Status = StatusBar{Text: "empty title ignored", IsError: false}
	default:
		m.Status = StatusBar{Text: "task renamed", IsError: false}
	}
	return m
}

func (m Model) submitTask(task model.Task) Model {
	sub, err := m.deps.Board.Submit(task.ID, m.deps.Now())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if err := m.deps.History.Append(context.Background(), sub); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("record submission: %v", err), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("submitted %q", task.Title), IsError: false}
	return m
}

func (m *Model) clampEditorCursor(n int) {
	if m.Editor.Cursor >= n {
		m.Editor.Cursor = n - 1
	}
	if m.Editor.Cursor < 0 {
		m.Editor.Cursor = 0
	}
}

func (m Model) renderEditorView() string {
	task, ok := m.deps.Board.Active()
	if !ok {
		return "editor:\n(no active task; select an hour on the dashboard and press enter)"
	}
	ls := lines.Parse(task.Content)
	done, total := lines.Progress(ls)
	data := views.EditorPanelData{
		Title:  task.Title,
		Hour:   task.Hour,
		Cursor: m.Editor.Cursor,
		Done:   done,
		Total:  total,
	}
	if m.Editor.EditingTitle {
		data.Title = m.labelInput.View()
	}
	for _, l := range ls {
		row := views.EditorLineData{Checkbox: l.Checkbox, Checked: l.Checked, Indent: l.IndentLevel(), Text: l.Text}
		if l.Checkbox {
			row.Text = l.Label
		}
		data.Lines = append(data.Lines, row)
	}
	if m.Editor.EditingLabel {
		data.EditingView = m.labelInput.View()
	}
	return views.RenderEditorPanel(data)
}

func (m Model) renderNotesView() string {
	if m.Editor.EditingNotes {
		return views.RenderNotesPanel(m.notesArea.View(), "")
	}
	task, ok := m.deps.Board.Active()
	if !ok {
		return views.RenderNotesPanel("", "")
	}
	return views.RenderNotesPanel("", views.RenderMarkdown(task.Notes, m.deps.Settings.Get().DarkMode))
}
