package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.ExportHour != 22 || cfg.ExportTimezone != "Europe/Paris" {
		t.Fatalf("unexpected export defaults: %+v", cfg)
	}
	if cfg.RetryAfter() != 5*time.Minute || cfg.HTTPTimeout() != 15*time.Second {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("FOCUSBOARD_DB", "data/custom.db")
	t.Setenv("FOCUSBOARD_SETTINGS", "data/settings.toml")
	t.Setenv("FOCUSBOARD_EXPORT_HOUR", "21")
	t.Setenv("FOCUSBOARD_EXPORT_RETRY_MINUTES", "0")
	t.Setenv("FOCUSBOARD_EXPORT_TZ", "America/New_York")
	t.Setenv("FOCUSBOARD_AUDIO", "off")
	t.Setenv("FOCUSBOARD_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "data/custom.db" || cfg.SettingsPath != "data/settings.toml" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.ExportHour != 21 || cfg.ExportRetryMinutes != 5 {
		t.Fatalf("unexpected export overrides: %+v", cfg)
	}
	if cfg.AudioEnabled {
		t.Fatal("expected audio disabled from env")
	}
	loc, err := cfg.ExportLocation()
	if err != nil || loc.String() != "America/New_York" {
		t.Fatalf("unexpected export location %v err=%v", loc, err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*RuntimeConfig){
		"hour":     func(c *RuntimeConfig) { c.ExportHour = 24 },
		"timezone": func(c *RuntimeConfig) { c.ExportTimezone = "Mars/Olympus" },
		"level":    func(c *RuntimeConfig) { c.LogLevel = "loud" },
		"db":       func(c *RuntimeConfig) { c.DBPath = " " },
	}
	for name, mutate := range cases {
		cfg := DefaultRuntimeConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FOCUSBOARD_SOUND_DIR=assets/sounds\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("FOCUSBOARD_SOUND_DIR", "")
	os.Unsetenv("FOCUSBOARD_SOUND_DIR")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := RuntimeConfigFromEnv(DefaultRuntimeConfig()).SoundDir; got != "assets/sounds" {
		t.Fatalf("unexpected sound dir: %q", got)
	}
}
