// Package settings owns the user preferences file. Readers get an immutable
// snapshot without locking; every update replaces the whole value.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/sandeepkv93/focusboard/internal/model"
)

type Manager struct {
	path    string
	logger  *slog.Logger
	current atomic.Pointer[model.Settings]

	// mu serializes writers; readers never take it.
	mu     sync.Mutex
	subMu  sync.Mutex
	subs   map[int]func(model.Settings)
	nextID int
}

// Load reads path. A missing, unreadable or invalid file yields the defaults;
// only the corrupt and invalid cases are logged. An empty path keeps settings
// in memory.
func Load(path string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{path: path, logger: logger.With("component", "settings"), subs: make(map[int]func(model.Settings))}
	s := model.DefaultSettings()
	if path != "" {
		loaded, err := ReadFile(path)
		switch {
		case err == nil:
			s = loaded
		case errors.Is(err, os.ErrNotExist):
		default:
			m.logger.Warn("settings file unusable, using defaults", "path", path, "error", err)
		}
	}
	m.current.Store(&s)
	return m
}

// ReadFile decodes a settings file over the defaults, so absent keys keep
// their default values.
func ReadFile(path string) (model.Settings, error) {
	s := model.DefaultSettings()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return model.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

// WriteFile replaces path atomically.
func WriteFile(path string, s model.Settings) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create settings file: %w", err)
	}
	fmt.Fprintln(file, "# focusboard settings")
	fmt.Fprintln(file, "")
	if err := toml.NewEncoder(file).Encode(s); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func (m *Manager) Path() string {
	return m.path
}

// Get returns a copy of the current settings.
func (m *Manager) Get() model.Settings {
	return m.current.Load().Clone()
}

// Update applies fn to a copy of the current settings, validates and persists
// the result, then publishes it. On any error the previous settings stay.
func (m *Manager) Update(fn func(*model.Settings)) (model.Settings, error) {
	m.mu.Lock()
	next := m.current.Load().Clone()
	fn(&next)
	if err := next.Validate(); err != nil {
		m.mu.Unlock()
		return m.Get(), err
	}
	if m.path != "" {
		if err := WriteFile(m.path, next); err != nil {
			m.mu.Unlock()
			return m.Get(), fmt.Errorf("settings: save: %w", err)
		}
	}
	stored := next.Clone()
	m.current.Store(&stored)
	m.mu.Unlock()

	m.publish(next)
	return next.Clone(), nil
}

// Replace swaps in s wholesale.
func (m *Manager) Replace(s model.Settings) (model.Settings, error) {
	return m.Update(func(dst *model.Settings) { *dst = s.Clone() })
}

// Subscribe registers fn for every successful update and returns a function
// that removes it.
func (m *Manager) Subscribe(fn func(model.Settings)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) publish(s model.Settings) {
	m.subMu.Lock()
	fns := make([]func(model.Settings), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()
	for _, fn := range fns {
		fn(s.Clone())
	}
}
