// Package session implements the Pomodoro state machine. The Engine holds no
// timers of its own: a caller (usually a Runner) feeds it ticks carrying the
// token it was armed with, and any start, pause, skip, reset or expiry
// invalidates outstanding tokens.
package session

import (
	"fmt"
	"slices"
	"sync"

	"github.com/sandeepkv93/focusboard/internal/audio"
	"github.com/sandeepkv93/focusboard/internal/model"
)

type Config struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	TotalCycles       int
	AutoStart         bool
}

func ConfigFromSettings(s model.Settings) Config {
	return Config{
		WorkMinutes:       s.WorkDuration,
		ShortBreakMinutes: s.ShortBreakDuration,
		LongBreakMinutes:  s.LongBreakDuration,
		TotalCycles:       s.PomodoroCount,
		AutoStart:         s.AutoStartBreaks,
	}
}

func (c Config) normalized() Config {
	if c.WorkMinutes < 1 {
		c.WorkMinutes = 1
	}
	if c.ShortBreakMinutes < 1 {
		c.ShortBreakMinutes = 1
	}
	if c.LongBreakMinutes < 1 {
		c.LongBreakMinutes = 1
	}
	if c.TotalCycles < 1 {
		c.TotalCycles = 1
	}
	return c
}

// Seconds returns the full length of phase p.
func (c Config) Seconds(p model.Phase) int {
	switch p {
	case model.PhaseShortBreak:
		return c.ShortBreakMinutes * 60
	case model.PhaseLongBreak:
		return c.LongBreakMinutes * 60
	default:
		return c.WorkMinutes * 60
	}
}

type State struct {
	Phase        model.Phase
	TimeLeft     int
	CurrentCycle int
	Running      bool
}

// Clock renders TimeLeft as MM:SS.
func (s State) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.TimeLeft/60, s.TimeLeft%60)
}

type Sounds interface {
	Play(cue audio.Cue)
}

type Ambient interface {
	Start()
	Stop()
}

type noSounds struct{}

func (noSounds) Play(audio.Cue) {}

type noAmbient struct{}

func (noAmbient) Start() {}
func (noAmbient) Stop()  {}

// Engine is safe for concurrent use. Sounds and Ambient are called with the
// engine lock held and must not call back into the engine; subscribers are
// called after the lock is released.
type Engine struct {
	mu      sync.Mutex
	cfg     Config
	state   State
	token   uint64
	sounds  Sounds
	ambient Ambient

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

func NewEngine(cfg Config, sounds Sounds, ambient Ambient) *Engine {
	if sounds == nil {
		sounds = noSounds{}
	}
	if ambient == nil {
		ambient = noAmbient{}
	}
	cfg = cfg.normalized()
	return &Engine{
		cfg: cfg,
		state: State{
			Phase:        model.PhaseWork,
			TimeLeft:     cfg.Seconds(model.PhaseWork),
			CurrentCycle: 1,
		},
		token:   1,
		sounds:  sounds,
		ambient: ambient,
		subs:    make(map[int]func(Event)),
	}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Token identifies the current countdown. Ticks carrying any other token are
// ignored.
func (e *Engine) Token() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.token
}

func (e *Engine) snapshot() (State, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.token
}

// Subscribe registers fn for every event and returns a function that removes it.
func (e *Engine) Subscribe(fn func(Event)) func() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.subs, id)
	}
}

func (e *Engine) publish(events []Event) {
	if len(events) == 0 {
		return
	}
	e.subMu.Lock()
	ids := make([]int, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, e.subs[id])
	}
	e.subMu.Unlock()
	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}

// Tick consumes one second of the countdown. It reports false when the token
// is stale or the engine is not running.
func (e *Engine) Tick(token uint64) bool {
	e.mu.Lock()
	if token != e.token || !e.state.Running {
		e.mu.Unlock()
		return false
	}
	var events []Event
	if e.state.TimeLeft > 0 {
		e.state.TimeLeft--
	}
	if e.state.TimeLeft == 0 {
		events = e.advanceLocked(true)
	}
	events = append(events, StateChanged{State: e.state})
	e.syncAmbientLocked()
	e.mu.Unlock()
	e.publish(events)
	return true
}

func (e *Engine) Toggle() {
	if e.State().Running {
		e.Pause()
		return
	}
	e.Start()
}

func (e *Engine) Start() {
	e.mu.Lock()
	if e.state.Running {
		e.mu.Unlock()
		return
	}
	if e.state.TimeLeft <= 0 {
		e.state.TimeLeft = e.cfg.Seconds(e.state.Phase)
	}
	e.state.Running = true
	e.token++
	e.sounds.Play(audio.CueStart)
	e.syncAmbientLocked()
	st := e.state
	e.mu.Unlock()
	e.publish([]Event{StateChanged{State: st}})
}

func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.state.Running {
		e.mu.Unlock()
		return
	}
	e.state.Running = false
	e.token++
	e.syncAmbientLocked()
	st := e.state
	e.mu.Unlock()
	e.publish([]Event{StateChanged{State: st}})
}

// Skip moves to the next phase immediately. It plays no sound, requests no
// reflection and leaves the engine paused.
func (e *Engine) Skip() {
	e.mu.Lock()
	events := e.advanceLocked(false)
	events = append(events, StateChanged{State: e.state})
	e.syncAmbientLocked()
	e.mu.Unlock()
	e.publish(events)
}

func (e *Engine) Reset() {
	e.mu.Lock()
	e.state = State{
		Phase:        model.PhaseWork,
		TimeLeft:     e.cfg.Seconds(model.PhaseWork),
		CurrentCycle: 1,
	}
	e.token++
	e.syncAmbientLocked()
	st := e.state
	e.mu.Unlock()
	e.publish([]Event{StateChanged{State: st}})
}

// Configure applies new durations. A work duration change only resets the
// countdown while paused in the work phase, and a cycle count below the
// current cycle clamps it back to 1.
func (e *Engine) Configure(cfg Config) {
	cfg = cfg.normalized()
	e.mu.Lock()
	old := e.cfg
	e.cfg = cfg
	before := e.state
	if cfg.WorkMinutes != old.WorkMinutes && e.state.Phase == model.PhaseWork && !e.state.Running {
		e.state.TimeLeft = cfg.Seconds(model.PhaseWork)
	}
	if e.state.CurrentCycle > cfg.TotalCycles {
		e.state.CurrentCycle = 1
	}
	st := e.state
	e.mu.Unlock()
	if st != before || cfg != old {
		e.publish([]Event{StateChanged{State: st}})
	}
}

// advanceLocked performs a phase transition. expired distinguishes a natural
// expiry (sounds, reflection request, auto-start) from a skip.
func (e *Engine) advanceLocked(expired bool) []Event {
	from := e.state.Phase
	var events []Event
	if from == model.PhaseWork {
		next := model.PhaseShortBreak
		if e.state.CurrentCycle == e.cfg.TotalCycles {
			next = model.PhaseLongBreak
		}
		e.state.Phase = next
		e.state.TimeLeft = e.cfg.Seconds(next)
		events = append(events, PhaseChanged{From: from, To: next, Cycle: e.state.CurrentCycle, Skipped: !expired})
		if expired {
			e.sounds.Play(audio.CueComplete)
			events = append(events, SessionCompleted{Cycle: e.state.CurrentCycle, WorkMinutes: e.cfg.WorkMinutes})
		}
	} else {
		if from == model.PhaseLongBreak {
			e.state.CurrentCycle = 1
		} else {
			e.state.CurrentCycle++
			if e.state.CurrentCycle > e.cfg.TotalCycles {
				e.state.CurrentCycle = 1
			}
		}
		e.state.Phase = model.PhaseWork
		e.state.TimeLeft = e.cfg.Seconds(model.PhaseWork)
		events = append(events, PhaseChanged{From: from, To: model.PhaseWork, Cycle: e.state.CurrentCycle, Skipped: !expired})
		if expired {
			e.sounds.Play(audio.CueStart)
		}
	}
	e.state.Running = expired && e.cfg.AutoStart
	e.token++
	return events
}

func (e *Engine) syncAmbientLocked() {
	if e.state.Running && e.state.Phase == model.PhaseWork {
		e.ambient.Start()
		return
	}
	e.ambient.Stop()
}
