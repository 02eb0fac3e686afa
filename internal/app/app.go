// Package app wires the storage, settings, session, planner, audio and export
// components into one running dashboard.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/focusboard/internal/audio"
	"github.com/sandeepkv93/focusboard/internal/clock"
	"github.com/sandeepkv93/focusboard/internal/config"
	"github.com/sandeepkv93/focusboard/internal/export"
	"github.com/sandeepkv93/focusboard/internal/history"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/planner"
	"github.com/sandeepkv93/focusboard/internal/session"
	"github.com/sandeepkv93/focusboard/internal/settings"
	"github.com/sandeepkv93/focusboard/internal/storage"
	"github.com/sandeepkv93/focusboard/internal/update"
	"github.com/sandeepkv93/focusboard/internal/webhook"
)

// Options override pieces of the runtime for tests. Zero values select the
// production behavior.
type Options struct {
	Clock      clock.Clock
	Player     audio.Player
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type App struct {
	Config          config.RuntimeConfig
	Logger          *slog.Logger
	DisplayLocation *time.Location

	Repo     *storage.SQLiteRepository
	Store    *storage.Store
	Settings *settings.Manager
	History  *history.Store
	Board    *planner.Board
	Habits   *planner.Habits
	Cues     *audio.Cues
	Ambient  *audio.Channel
	Engine   *session.Engine
	Webhook  *webhook.Client
	Exporter *export.Exporter

	clock clock.Clock

	mu     sync.Mutex
	runner *session.Runner
	unsubs []func()

	closeOnce sync.Once
	closeErr  error
}

// New opens the database, loads persisted state and builds every component.
// Nothing runs until StartTimer or Exporter.Start is called.
func New(ctx context.Context, cfg config.RuntimeConfig, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	displayLoc, err := cfg.DisplayLocation()
	if err != nil {
		return nil, err
	}
	exportLoc, err := cfg.ExportLocation()
	if err != nil {
		return nil, err
	}

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a := &App{
		Config:          cfg,
		Logger:          logger,
		DisplayLocation: displayLoc,
		Repo:            repo,
		Store:           storage.NewStore(repo, logger),
		Settings:        settings.Load(cfg.SettingsPath, logger),
		clock:           opts.Clock,
	}
	if err := a.load(ctx, opts, exportLoc); err != nil {
		_ = repo.Close()
		return nil, err
	}
	a.unsubs = append(a.unsubs, a.Settings.Subscribe(a.applySettings))
	return a, nil
}

func (a *App) load(ctx context.Context, opts Options, exportLoc *time.Location) error {
	current := a.Settings.Get()

	subs, err := a.Store.LoadSubmissions(ctx)
	if err != nil {
		return fmt.Errorf("load submissions: %w", err)
	}
	a.History = history.NewStore(subs, a.Store)

	tasks, err := a.Store.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if len(tasks) == 0 {
		tasks = planner.DefaultTasks()
		if err := a.Store.SaveTasks(ctx, tasks); err != nil {
			a.Logger.Warn("persist default tasks failed", "error", err)
		}
	}
	a.Board = planner.NewBoard(tasks, a.Store)

	player := opts.Player
	if player == nil {
		player = PlayerFromConfig(a.Config)
	}
	resolver := audio.Resolver{
		Dir:       a.Config.SoundDir,
		Overrides: func() model.NotificationSounds { return a.Settings.Get().NotificationSounds },
	}
	a.Cues = audio.NewCues(resolver, player, func() bool { return a.Settings.Get().Notifications }, a.Logger)
	a.Ambient = audio.NewChannel(resolver, player, a.Logger)

	habits, ok, err := a.Store.LoadHabits(ctx)
	if err != nil {
		return fmt.Errorf("load habits: %w", err)
	}
	if ok {
		habits = planner.MergeHabits(habits, current.Habits)
	} else {
		habits = planner.SeedHabits(current.Habits)
	}
	a.Habits = planner.NewHabits(habits, a.Store, a.Cues)

	a.Engine = session.NewEngine(session.ConfigFromSettings(current), a.Cues, a.Ambient)

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: a.Config.HTTPTimeout()}
	}
	a.Webhook = webhook.NewClient(httpClient, a.DisplayLocation, a.Logger)

	a.Exporter, err = export.New(export.Options{
		Clock:       a.clock,
		Location:    exportLoc,
		Hour:        a.Config.ExportHour,
		RetryAfter:  a.Config.RetryAfter(),
		URL:         current.WebhookURL,
		Submissions: a.History.All,
		Sender:      a.Webhook,
		Markers:     a.Store,
		Logger:      a.Logger,
	})
	return err
}

// applySettings pushes a settings change into the running components.
func (a *App) applySettings(s model.Settings) {
	a.Engine.Configure(session.ConfigFromSettings(s))
	a.Exporter.UpdateWebhookURL(s.WebhookURL)
	if habitsChanged(a.Habits.All(), s.Habits) {
		if err := a.Habits.Sync(context.Background(), s.Habits); err != nil {
			a.Logger.Warn("persist merged habits failed", "error", err)
		}
	}
}

func habitsChanged(current []model.Habit, configured []model.HabitSetting) bool {
	have := make([]model.HabitSetting, 0, len(current))
	for _, h := range current {
		have = append(have, model.HabitSetting{ID: h.ID, Name: h.Name})
	}
	return !slices.Equal(have, configured)
}

// StartTimer begins feeding ticks to the engine. Calling it twice is a no-op.
func (a *App) StartTimer() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runner == nil {
		a.runner = session.NewRunner(a.Engine, a.clock)
	}
}

// RecordCompletedSessions stores a Submission without answers for every work
// phase that runs out. Used where no reflection prompt can be shown.
func (a *App) RecordCompletedSessions() func() {
	return a.Engine.Subscribe(func(ev session.Event) {
		done, ok := ev.(session.SessionCompleted)
		if !ok {
			return
		}
		var task *model.Task
		if active, ok := a.Board.Active(); ok {
			task = &active
		}
		sub := session.NewReflectionSubmission(task, []string{}, done.WorkMinutes, a.clock.Now())
		if err := a.History.Append(context.Background(), sub); err != nil {
			a.Logger.Warn("record completed session failed", "error", err)
		}
	})
}

// Share posts the whole history to the configured webhook.
func (a *App) Share(ctx context.Context) (int, error) {
	subs := a.History.All()
	if len(subs) == 0 {
		return 0, nil
	}
	if err := a.Webhook.Send(ctx, a.Settings.Get().WebhookURL, subs); err != nil {
		return 0, err
	}
	return len(subs), nil
}

// ModelDeps exposes the components to the terminal UI.
func (a *App) ModelDeps() update.Deps {
	return update.Deps{
		Engine:   a.Engine,
		Board:    a.Board,
		Habits:   a.Habits,
		History:  a.History,
		Settings: a.Settings,
		Sharer:   a.Webhook,
		Ambient:  a.Ambient,
		Notifier: update.ExecDesktopNotifier{},
		Location: a.DisplayLocation,
		Now:      a.clock.Now,
		Logger:   a.Logger,
	}
}

// Close stops every background activity and closes the database. It is safe
// to call more than once.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		for _, unsub := range a.unsubs {
			unsub()
		}
		a.mu.Lock()
		if a.runner != nil {
			a.runner.Stop()
		}
		a.mu.Unlock()
		a.Exporter.Stop()
		a.Ambient.Stop()
		a.closeErr = a.Repo.Close()
	})
	return a.closeErr
}

// PlayerFromConfig builds the audio player selected by the runtime config.
// Without an explicit command, sounds play in-process and fall back to the
// platform's command-line player when no speaker can be opened.
func PlayerFromConfig(cfg config.RuntimeConfig) audio.Player {
	if !cfg.AudioEnabled {
		return audio.NoopPlayer{}
	}
	fields := strings.Fields(cfg.AudioPlayer)
	if len(fields) == 0 {
		return audio.Fallback{audio.NewBeepPlayer(), audio.DefaultPlayer()}
	}
	return audio.ExecPlayer{Command: fields[0], Args: fields[1:]}
}

// NewLogger returns a JSON logger writing to w at the configured level.
func NewLogger(cfg config.RuntimeConfig, w io.Writer) *slog.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenLogFile opens the configured log file for appending.
func OpenLogFile(cfg config.RuntimeConfig) (*os.File, error) {
	path := strings.TrimSpace(cfg.LogFile)
	if path == "" {
		return nil, errors.New("log file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
