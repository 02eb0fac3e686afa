package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandeepkv93/focusboard/internal/audio"
	"github.com/sandeepkv93/focusboard/internal/clock"
	"github.com/sandeepkv93/focusboard/internal/config"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.RuntimeConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultRuntimeConfig()
	cfg.DBPath = filepath.Join(dir, "focusboard.db")
	cfg.SettingsPath = filepath.Join(dir, "settings.toml")
	cfg.DisplayTimezone = "UTC"
	cfg.AudioEnabled = false
	return cfg
}

func newTestApp(t *testing.T, cfg config.RuntimeConfig, c clock.Clock) *App {
	t.Helper()
	a, err := New(t.Context(), cfg, Options{Clock: c, Player: audio.NoopPlayer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewSeedsDefaults(t *testing.T) {
	a := newTestApp(t, testConfig(t), clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	require.Len(t, a.Board.Tasks(), 2)
	require.Len(t, a.Habits.All(), 3)
	require.Zero(t, a.History.Len())
	require.Equal(t, 30*60, a.Engine.State().TimeLeft)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}

func TestSettingsChangesReachRunningComponents(t *testing.T) {
	a := newTestApp(t, testConfig(t), clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	_, err := a.Settings.Update(func(s *model.Settings) {
		s.WorkDuration = 45
		s.WebhookURL = "https://example.test/hook"
	})
	require.NoError(t, err)
	require.Equal(t, 45, a.Engine.Config().WorkMinutes)
	require.Equal(t, 45*60, a.Engine.State().TimeLeft)
	require.Equal(t, "https://example.test/hook", a.Exporter.WebhookURL())
}

func TestHabitListChangesKeepCompletedDays(t *testing.T) {
	a := newTestApp(t, testConfig(t), clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	_, err := a.Habits.Toggle(t.Context(), "2", 0)
	require.NoError(t, err)

	_, err = a.Settings.Update(func(s *model.Settings) {
		s.Habits = []model.HabitSetting{{ID: "2", Name: "Read"}, {ID: "4", Name: "Walk"}}
	})
	require.NoError(t, err)
	require.Equal(t, []model.Habit{
		{ID: "2", Name: "Read", CompletedDays: []int{0}},
		{ID: "4", Name: "Walk", CompletedDays: []int{}},
	}, a.Habits.All())
}

func TestStateSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)
	fake := clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	a, err := New(t.Context(), cfg, Options{Clock: fake, Player: audio.NoopPlayer{}})
	require.NoError(t, err)
	task, err := a.Board.AddTask(t.Context(), 14)
	require.NoError(t, err)
	sub, err := a.Board.Submit(task.ID, fake.Now())
	require.NoError(t, err)
	require.NoError(t, a.History.Append(t.Context(), sub))
	_, err = a.Habits.Toggle(t.Context(), "1", 4)
	require.NoError(t, err)
	_, err = a.Settings.Update(func(s *model.Settings) { s.PomodoroCount = 6 })
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b := newTestApp(t, cfg, fake)
	require.Len(t, b.Board.Tasks(), 3)
	require.Equal(t, 1, b.History.Len())
	require.Equal(t, sub.ID, b.History.All()[0].ID)
	require.True(t, b.Habits.All()[0].Done(4))
	require.Equal(t, 6, b.Engine.Config().TotalCycles)
}

func TestHeadlessSessionIsRecordedAndShared(t *testing.T) {
	var posts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fake := clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	a := newTestApp(t, testConfig(t), fake)
	_, err := a.Settings.Update(func(s *model.Settings) {
		s.WorkDuration = 1
		s.WebhookURL = srv.URL
	})
	require.NoError(t, err)

	stop := a.RecordCompletedSessions()
	defer stop()
	a.StartTimer()
	a.StartTimer()
	a.Engine.Start()
	fake.Advance(61 * time.Second)

	require.Equal(t, 1, a.History.Len())
	sub := a.History.All()[0]
	require.Equal(t, 1, sub.Duration)
	require.Empty(t, sub.Content)
	require.Equal(t, model.PhaseShortBreak, a.Engine.State().Phase)

	n, err := a.Share(t.Context())
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.EqualValues(t, 1, posts.Load())
}

func TestPlayerFromConfig(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	cfg.AudioEnabled = false
	require.IsType(t, audio.NoopPlayer{}, PlayerFromConfig(cfg))

	cfg.AudioEnabled = true
	fallback, ok := PlayerFromConfig(cfg).(audio.Fallback)
	require.True(t, ok)
	require.Len(t, fallback, 2)
	require.IsType(t, &audio.BeepPlayer{}, fallback[0])
	require.Equal(t, audio.DefaultPlayer(), fallback[1])

	cfg.AudioPlayer = "mpv --no-video"
	require.Equal(t, audio.ExecPlayer{Command: "mpv", Args: []string{"--no-video"}}, PlayerFromConfig(cfg))
}
