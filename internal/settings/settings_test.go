package settings

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	m := Load(filepath.Join(t.TempDir(), "settings.toml"), quietLogger())
	require.Equal(t, model.DefaultSettings(), m.Get())
}

func TestLoadCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("work_duration = = 3"), 0o600))
	m := Load(path, quietLogger())
	require.Equal(t, model.DefaultSettings(), m.Get())
}

func TestLoadInvalidFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("pomodoro_count = 0\n"), 0o600))
	m := Load(path, quietLogger())
	require.Equal(t, 4, m.Get().PomodoroCount)
}

func TestPartialFileKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("work_duration = 50\nwebhook_url = \"https://hooks.example\"\n"), 0o600))
	got := Load(path, quietLogger()).Get()
	require.Equal(t, 50, got.WorkDuration)
	require.Equal(t, 5, got.ShortBreakDuration)
	require.Equal(t, "https://hooks.example", got.WebhookURL)
	require.Len(t, got.Habits, 3)
}

func TestUpdatePersistsAndPublishes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	m := Load(path, quietLogger())

	var seen []model.Settings
	cancel := m.Subscribe(func(s model.Settings) { seen = append(seen, s) })

	next, err := m.Update(func(s *model.Settings) {
		s.PomodoroCount = 2
		s.Habits = append(s.Habits, model.HabitSetting{ID: "4", Name: "Journal"})
	})
	require.NoError(t, err)
	require.Equal(t, 2, next.PomodoroCount)
	require.Len(t, seen, 1)
	require.Equal(t, 2, seen[0].PomodoroCount)

	reloaded, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, next, reloaded)

	cancel()
	_, err = m.Update(func(s *model.Settings) { s.DarkMode = true })
	require.NoError(t, err)
	require.Len(t, seen, 1)
}

func TestInvalidUpdateKeepsPreviousSettings(t *testing.T) {
	m := Load("", quietLogger())
	published := false
	m.Subscribe(func(model.Settings) { published = true })

	got, err := m.Update(func(s *model.Settings) { s.WorkDuration = 0 })
	require.ErrorIs(t, err, model.ErrInvalidSettings)
	require.Equal(t, 30, got.WorkDuration)
	require.Equal(t, 30, m.Get().WorkDuration)
	require.False(t, published)
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	m := Load("", quietLogger())
	s := m.Get()
	s.Habits[0].Name = "changed"
	require.Equal(t, "Exercise", m.Get().Habits[0].Name)
}

func TestConcurrentReadersDuringUpdates(t *testing.T) {
	m := Load("", quietLogger())
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s := m.Get()
				if s.WorkDuration != s.ShortBreakDuration*6 {
					t.Errorf("observed a partial update: %d/%d", s.WorkDuration, s.ShortBreakDuration)
					return
				}
			}
		}()
	}
	for i := 1; i <= 50; i++ {
		_, err := m.Update(func(s *model.Settings) {
			s.ShortBreakDuration = i
			s.WorkDuration = i * 6
		})
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestSetKeys(t *testing.T) {
	s := model.DefaultSettings()
	require.NoError(t, Set(&s, "work", "45"))
	require.NoError(t, Set(&s, "AutoStart", "on"))
	require.NoError(t, Set(&s, "webhook", " https://hooks.example/x "))
	require.NoError(t, Set(&s, "sound.focus", "/tmp/bell.wav"))
	require.Equal(t, 45, s.WorkDuration)
	require.True(t, s.AutoStartBreaks)
	require.Equal(t, "https://hooks.example/x", s.WebhookURL)
	require.Equal(t, "/tmp/bell.wav", s.NotificationSounds.Focus)

	require.ErrorIs(t, Set(&s, "volume", "3"), ErrUnknownKey)
	require.Error(t, Set(&s, "cycles", "many"))
	require.Error(t, Set(&s, "dark", "maybe"))
	require.Equal(t, 4, s.PomodoroCount)
	require.Contains(t, Keys(), "cycles")
}
