package audio

import (
	"log/slog"
	"sync"
	"time"
)

// minLoopRun is the shortest track run that is restarted; a player that exits
// faster is treated as unable to loop.
const minLoopRun = time.Second

// Channel owns the looping ambient sound. Start and Stop are idempotent, and
// at most one player process is alive at a time.
type Channel struct {
	mu      sync.Mutex
	player  Player
	path    string
	logger  *slog.Logger
	playing bool
	proc    Process
	gen     uint64
}

func NewChannel(resolver Resolver, player Player, logger *slog.Logger) *Channel {
	if player == nil {
		player = NoopPlayer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Channel{player: player, path: resolver.Path(CueAmbient), logger: logger}
}

func (c *Channel) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

func (c *Channel) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return
	}
	c.playing = true
	c.gen++
	c.launchLocked(c.gen)
}

func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	c.playing = false
	c.gen++
	if c.proc != nil {
		if err := c.proc.Kill(); err != nil {
			c.logger.Debug("ambient player kill failed", "error", err)
		}
		c.proc = nil
	}
}

func (c *Channel) launchLocked(gen uint64) {
	proc, err := c.player.Start(c.path)
	if err != nil {
		c.logger.Warn("ambient playback failed", "path", c.path, "error", err)
		return
	}
	c.proc = proc
	go c.loop(gen, proc, time.Now())
}

// loop restarts the player when the track ends, until the channel is stopped.
func (c *Channel) loop(gen uint64, proc Process, started time.Time) {
	err := proc.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing || c.gen != gen {
		return
	}
	if err != nil {
		c.logger.Warn("ambient player exited", "error", err)
		c.proc = nil
		return
	}
	if time.Since(started) < minLoopRun {
		c.proc = nil
		return
	}
	c.launchLocked(gen)
}
