package views

import (
	"fmt"
	"strings"
)

type TimerPanelData struct {
	Phase        string
	Clock        string
	Cycle        int
	TotalCycles  int
	Running      bool
	ProgressView string
	TaskTitle    string
	Ambient      bool
}

type HourSlotData struct {
	Hour   int
	Titles []string
	Active bool
}

type CalendarPanelData struct {
	Slots      []HourSlotData
	CursorHour int
	NowHour    int
}

type EditorLineData struct {
	Text     string
	Checkbox bool
	Checked  bool
	Indent   int
}

type EditorPanelData struct {
	Title       string
	Hour        int
	Lines       []EditorLineData
	Cursor      int
	EditingView string
	Done        int
	Total       int
}

type HabitRowData struct {
	Name string
	Days [7]bool
}

type HabitsPanelData struct {
	Week      int
	Today     int
	Rows      []HabitRowData
	CursorRow int
	CursorDay int
	Labels    [7]string
}

type DayReflectionData struct {
	MorningDone bool
	EveningDone bool
}

type PromptPanelData struct {
	Title     string
	Questions []string
	Inputs    []string
	Current   int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTimerPanel(data TimerPanelData) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render(data.Phase) + "\n")
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Clock))
	b.WriteString(fmt.Sprintf("cycle: %d/%d\n", data.Cycle, data.TotalCycles))
	b.WriteString(data.ProgressView + "\n")
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString("state: " + state)
	if data.Ambient {
		b.WriteString(" | ambient on")
	}
	b.WriteString("\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString(mutedStyle.Render("task: (none selected)") + "\n")
	}
	b.WriteString("actions: [space]start/pause [n]skip [r]reset")
	return b.String()
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("day:\n")
	for _, slot := range data.Slots {
		cursor := " "
		if slot.Hour == data.CursorHour {
			cursor = ">"
		}
		label := fmt.Sprintf("%02d:00", slot.Hour)
		if slot.Hour == data.NowHour {
			label = accentStyle.Render(label)
		}
		titles := mutedStyle.Render("-")
		if len(slot.Titles) > 0 {
			titles = strings.Join(slot.Titles, ", ")
		}
		if slot.Active {
			titles = "* " + titles
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, label, titles))
	}
	b.WriteString("actions: [j/k]hour [a]add [enter]edit")
	return b.String()
}

func RenderEditorPanel(data EditorPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s @ %02d:00\n", accentStyle.Render(data.Title), data.Hour))
	b.WriteString(fmt.Sprintf("progress: %d/%d\n\n", data.Done, data.Total))
	for i, l := range data.Lines {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		indent := strings.Repeat("  ", l.Indent)
		if i == data.Cursor && data.EditingView != "" {
			b.WriteString(fmt.Sprintf("%s %s%s\n", cursor, indent, data.EditingView))
			continue
		}
		if !l.Checkbox {
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, l.Text))
			continue
		}
		box, text := "[ ]", l.Text
		if l.Checked {
			box, text = "[x]", doneStyle.Render(l.Text)
		}
		b.WriteString(fmt.Sprintf("%s %s%s %s\n", cursor, indent, box, text))
	}
	b.WriteString("\nactions: [space]check [e]edit [o]new [tab/shift+tab]indent [backspace]drop empty\n")
	b.WriteString("         [n]next open [t]title [N]notes [s]submit [esc]back")
	return b.String()
}

func RenderNotesPanel(editor string, preview string) string {
	if editor != "" {
		return "notes:\n" + editor + "\n[ctrl+s]save [esc]cancel"
	}
	if strings.TrimSpace(preview) == "" {
		return "notes:\n" + mutedStyle.Render("(empty)")
	}
	return "notes:\n" + preview
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("habits | week %d\n", data.Week))
	b.WriteString(fmt.Sprintf("%-14s", ""))
	for i, label := range data.Labels {
		if i == data.Today {
			label = accentStyle.Render(label)
		}
		b.WriteString(" " + label)
	}
	b.WriteString("\n")
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(no habits configured)") + "\n")
	}
	for r, row := range data.Rows {
		name := row.Name
		if len(name) > 12 {
			name = name[:12]
		}
		cursor := " "
		if r == data.CursorRow {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-12s", cursor, name))
		for d, done := range row.Days {
			mark := " . "
			if done {
				mark = " x "
			}
			if r == data.CursorRow && d == data.CursorDay {
				mark = "[" + strings.TrimSpace(mark) + "]"
			}
			b.WriteString(" " + mark)
		}
		b.WriteString("\n")
	}
	b.WriteString("actions: [j/k]habit [h/l]day [space]toggle")
	return b.String()
}

func RenderDayPanel(data DayReflectionData) string {
	status := func(done bool) string {
		if done {
			return "completed"
		}
		return mutedStyle.Render("pending")
	}
	return fmt.Sprintf("day tracking:\nmorning reflection: %s\nevening reflection: %s\nactions: [m]morning [e]evening",
		status(data.MorningDone), status(data.EveningDone))
}

func RenderHistoryPanel(rendered string, count int) string {
	if count == 0 {
		return "history:\n" + mutedStyle.Render("(no sessions recorded)")
	}
	return fmt.Sprintf("history: %d submission(s)\n%s", count, rendered)
}

func RenderPrompt(data PromptPanelData) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render(data.Title) + "\n\n")
	for i, q := range data.Questions {
		cursor := " "
		if i == data.Current {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, q))
		if i < len(data.Inputs) {
			b.WriteString("  " + data.Inputs[i] + "\n")
		}
	}
	b.WriteString("\n[tab]next [shift+tab]previous [enter]submit on last [esc]dismiss")
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
