// Package config reads process configuration from the environment and an
// optional .env file. User preferences live in the settings package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type RuntimeConfig struct {
	DBPath             string
	SettingsPath       string
	LogFile            string
	LogLevel           string
	DisplayTimezone    string
	ExportTimezone     string
	ExportHour         int
	ExportRetryMinutes int
	HTTPTimeoutSeconds int
	SoundDir           string
	AudioPlayer        string
	AudioEnabled       bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:             ".focusboard/focusboard.db",
		SettingsPath:       ".focusboard/settings.toml",
		LogFile:            "focusboard.log",
		LogLevel:           "info",
		DisplayTimezone:    "Local",
		ExportTimezone:     "Europe/Paris",
		ExportHour:         22,
		ExportRetryMinutes: 5,
		HTTPTimeoutSeconds: 15,
		SoundDir:           "sounds",
		AudioEnabled:       true,
	}
}

// LoadDotEnv loads the given files (".env" when none are given) into the
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds the configuration from the defaults and FOCUSBOARD_* variables.
func Load() (RuntimeConfig, error) {
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("FOCUSBOARD_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("FOCUSBOARD_SETTINGS"); ok {
		cfg.SettingsPath = v
	}
	if v, ok := getEnvString("FOCUSBOARD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("FOCUSBOARD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("FOCUSBOARD_TZ"); ok {
		cfg.DisplayTimezone = v
	}
	if v, ok := getEnvString("FOCUSBOARD_EXPORT_TZ"); ok {
		cfg.ExportTimezone = v
	}
	if v, ok := getEnvInt("FOCUSBOARD_EXPORT_HOUR"); ok {
		cfg.ExportHour = v
	}
	if v, ok := getEnvInt("FOCUSBOARD_EXPORT_RETRY_MINUTES"); ok && v > 0 {
		cfg.ExportRetryMinutes = v
	}
	if v, ok := getEnvInt("FOCUSBOARD_HTTP_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.HTTPTimeoutSeconds = v
	}
	if v, ok := getEnvString("FOCUSBOARD_SOUND_DIR"); ok {
		cfg.SoundDir = v
	}
	if v, ok := getEnvString("FOCUSBOARD_AUDIO_PLAYER"); ok {
		cfg.AudioPlayer = v
	}
	if v, ok := getEnvBool("FOCUSBOARD_AUDIO"); ok {
		cfg.AudioEnabled = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("FOCUSBOARD_DB cannot be empty")
	}
	if strings.TrimSpace(c.SettingsPath) == "" {
		return errors.New("FOCUSBOARD_SETTINGS cannot be empty")
	}
	if c.ExportHour < 1 || c.ExportHour > 23 {
		return fmt.Errorf("FOCUSBOARD_EXPORT_HOUR must be within 1..23, got %d", c.ExportHour)
	}
	if _, err := c.DisplayLocation(); err != nil {
		return err
	}
	if _, err := c.ExportLocation(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c RuntimeConfig) DisplayLocation() (*time.Location, error) {
	return loadLocation("FOCUSBOARD_TZ", c.DisplayTimezone)
}

func (c RuntimeConfig) ExportLocation() (*time.Location, error) {
	return loadLocation("FOCUSBOARD_EXPORT_TZ", c.ExportTimezone)
}

func (c RuntimeConfig) RetryAfter() time.Duration {
	return time.Duration(c.ExportRetryMinutes) * time.Minute
}

func (c RuntimeConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c RuntimeConfig) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("FOCUSBOARD_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func loadLocation(name, value string) (*time.Location, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return loc, nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
