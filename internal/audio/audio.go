package audio

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/focusboard/internal/model"
)

type Cue string

const (
	CueStart        Cue = "start"
	CueComplete     Cue = "complete"
	CueNotification Cue = "notification"
	CueAmbient      Cue = "ambient"
)

var defaultFiles = map[Cue]string{
	CueStart:        "start.mp3",
	CueComplete:     "complete.mp3",
	CueNotification: "notification.mp3",
	CueAmbient:      "brown-noise.mp3",
}

// Resolver maps a cue to a sound file: a user override from the current
// settings when one is set, otherwise the default asset under Dir.
type Resolver struct {
	Dir       string
	Overrides func() model.NotificationSounds
}

func (r Resolver) Path(cue Cue) string {
	if r.Overrides != nil {
		o := r.Overrides()
		switch cue {
		case CueStart:
			if strings.TrimSpace(o.Start) != "" {
				return o.Start
			}
		case CueComplete:
			if strings.TrimSpace(o.Focus) != "" {
				return o.Focus
			}
		}
	}
	name, ok := defaultFiles[cue]
	if !ok {
		return ""
	}
	return filepath.Join(r.Dir, name)
}

// Cues plays one-shot cues. Playback is fire-and-forget: failures are logged
// and never returned.
type Cues struct {
	resolver Resolver
	player   Player
	enabled  func() bool
	logger   *slog.Logger
}

// NewCues builds a cue player. enabled may be nil; when set and false,
// Play is silent.
func NewCues(resolver Resolver, player Player, enabled func() bool, logger *slog.Logger) *Cues {
	if player == nil {
		player = NoopPlayer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cues{resolver: resolver, player: player, enabled: enabled, logger: logger}
}

func (c *Cues) Play(cue Cue) {
	if c.enabled != nil && !c.enabled() {
		return
	}
	path := c.resolver.Path(cue)
	if path == "" {
		c.logger.Warn("unknown sound cue", "cue", string(cue))
		return
	}
	proc, err := c.player.Start(path)
	if err != nil {
		c.logger.Warn("sound playback failed", "cue", string(cue), "path", path, "error", err)
		return
	}
	go func() {
		if err := proc.Wait(); err != nil {
			c.logger.Debug("sound player exited", "cue", string(cue), "error", err)
		}
	}()
}
