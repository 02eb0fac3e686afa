package update

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/focusboard/internal/history"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/planner"
	"github.com/sandeepkv93/focusboard/internal/session"
	"github.com/sandeepkv93/focusboard/internal/settings"
)

type View string

const (
	ViewDashboard View = "Dashboard"
	ViewEditor    View = "Editor"
	ViewHabits    View = "Habits"
	ViewHistory   View = "History"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Editor    string
	Habits    string
	History   string
	Help      string
	Quit      string
}

// Sharer delivers the submission history to a webhook.
type Sharer interface {
	Send(ctx context.Context, url string, subs []model.Submission) error
}

// AmbientState reports whether the background loop is playing.
type AmbientState interface {
	Playing() bool
}

// Deps are the long-lived services the model drives. Engine, Board, Habits,
// History and Settings are required.
type Deps struct {
	Engine   *session.Engine
	Board    *planner.Board
	Habits   *planner.Habits
	History  *history.Store
	Settings *settings.Manager
	Sharer   Sharer
	Ambient  AmbientState
	Notifier DesktopNotifier
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
}

type Model struct {
	CurrentView   View
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	Calendar CalendarState
	Editor   EditorState
	Habits   HabitsState
	History  HistoryState
	Prompt   PromptState
	Day      DayState
	Sharing  bool

	// pendingReflections holds the work minutes of sessions that completed
	// while a prompt was open, oldest first.
	pendingReflections []int

	deps        Deps
	events      chan session.Event
	unsubscribe func()

	commandInput  textinput.Model
	labelInput    textinput.Model
	notesArea     textarea.Model
	timerProgress progress.Model
	helpModel     help.Model
	historyView   viewport.Model
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type CalendarState struct {
	CursorHour int
}

type EditorState struct {
	Cursor       int
	EditingLabel bool
	EditingTitle bool
	EditingNotes bool
}

type HabitsState struct {
	CursorRow int
	CursorDay int
}

type HistoryState struct {
	ConfirmClear bool
}

type PromptKind string

const (
	PromptSession  PromptKind = "session"
	PromptDayStart PromptKind = "day_start"
	PromptDayEnd   PromptKind = "day_end"
)

type PromptState struct {
	Active      bool
	Kind        PromptKind
	Questions   []string
	Current     int
	WorkMinutes int
	inputs      []textinput.Model
}

// DayState tracks the morning and evening reflections of the current day.
type DayState struct {
	Date        string
	MorningDone bool
	EveningDone bool
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type EngineEventMsg struct {
	Event session.Event
}

type ShareResultMsg struct {
	Count int
	Err   error
}

func NewModel(deps Deps) Model {
	if deps.Notifier == nil {
		deps.Notifier = NoopDesktopNotifier{}
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	deps.Logger = deps.Logger.With("component", "tui")

	m := Model{
		CurrentView: ViewDashboard,
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Editor:    "2",
			Habits:    "3",
			History:   "4",
			Help:      "?",
			Quit:      "q",
		},
		deps:   deps,
		events: make(chan session.Event, 128),
	}
	m.Calendar.CursorHour = deps.Now().In(deps.Location).Hour()
	m.Habits.CursorDay = planner.CurrentDayIndex(deps.Now().In(deps.Location))
	m.Day.Date = history.DateLabel(deps.Now(), deps.Location)

	done := make(chan struct{})
	unsubscribe := deps.Engine.Subscribe(forwardEvents(m.events, done))
	m.unsubscribe = sync.OnceFunc(func() {
		unsubscribe()
		close(done)
	})
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

// forwardEvents hands engine events to the program. State refreshes are
// dropped when the buffer is full; a completed session waits for room, or for
// done, because it carries the reflection prompt.
func forwardEvents(events chan<- session.Event, done <-chan struct{}) func(session.Event) {
	return func(ev session.Event) {
		if _, ok := ev.(session.SessionCompleted); ok {
			select {
			case events <- ev:
			case <-done:
			}
			return
		}
		select {
		case events <- ev:
		default:
		}
	}
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.labelInput = textinput.New()
	m.labelInput.Prompt = ""
	m.labelInput.CharLimit = 256
	m.labelInput.Width = 44

	m.notesArea = textarea.New()
	m.notesArea.SetWidth(54)
	m.notesArea.SetHeight(8)
	m.notesArea.ShowLineNumbers = false
	m.notesArea.Placeholder = "Task notes (markdown)"

	m.timerProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.helpModel = help.New()
	m.historyView = viewport.New(54, 20)
}
