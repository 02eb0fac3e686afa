package settings

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focusboard/internal/model"
)

var ErrUnknownKey = errors.New("settings: unknown key")

type setter func(s *model.Settings, value string) error

var setters = map[string]setter{
	"work":          intSetter(func(s *model.Settings, v int) { s.WorkDuration = v }),
	"short":         intSetter(func(s *model.Settings, v int) { s.ShortBreakDuration = v }),
	"long":          intSetter(func(s *model.Settings, v int) { s.LongBreakDuration = v }),
	"cycles":        intSetter(func(s *model.Settings, v int) { s.PomodoroCount = v }),
	"autostart":     boolSetter(func(s *model.Settings, v bool) { s.AutoStartBreaks = v }),
	"notifications": boolSetter(func(s *model.Settings, v bool) { s.Notifications = v }),
	"dark":          boolSetter(func(s *model.Settings, v bool) { s.DarkMode = v }),
	"webhook":       func(s *model.Settings, v string) error { s.WebhookURL = strings.TrimSpace(v); return nil },
	"sound.start":   func(s *model.Settings, v string) error { s.NotificationSounds.Start = strings.TrimSpace(v); return nil },
	"sound.focus":   func(s *model.Settings, v string) error { s.NotificationSounds.Focus = strings.TrimSpace(v); return nil },
}

// Keys lists the names accepted by Set, sorted.
func Keys() []string {
	out := make([]string, 0, len(setters))
	for k := range setters {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Set parses value for key and stores it into s. s is left untouched on error.
func Set(s *model.Settings, key, value string) error {
	fn, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	next := s.Clone()
	if err := fn(&next, value); err != nil {
		return err
	}
	*s = next
	return nil
}

func intSetter(apply func(*model.Settings, int)) setter {
	return func(s *model.Settings, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("settings: %q is not a number", value)
		}
		apply(s, n)
		return nil
	}
}

func boolSetter(apply func(*model.Settings, bool)) setter {
	return func(s *model.Settings, value string) error {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "on":
			apply(s, true)
		case "0", "false", "no", "off":
			apply(s, false)
		default:
			return fmt.Errorf("settings: %q is not a boolean", value)
		}
		return nil
	}
}
