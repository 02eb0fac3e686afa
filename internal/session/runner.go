package session

import (
	"sync"
	"time"

	"github.com/sandeepkv93/focusboard/internal/clock"
)

const TickInterval = time.Second

// Runner feeds an Engine one tick per TickInterval while it is running. At
// most one tick timer is armed at any moment; a timer armed for a superseded
// token is stopped before a new one is armed.
type Runner struct {
	engine *Engine
	clock  clock.Clock

	mu          sync.Mutex
	timer       clock.Timer
	armed       uint64
	stopped     bool
	unsubscribe func()
}

func NewRunner(engine *Engine, c clock.Clock) *Runner {
	if c == nil {
		c = clock.Real{}
	}
	r := &Runner{engine: engine, clock: c}
	r.unsubscribe = engine.Subscribe(func(ev Event) {
		if _, ok := ev.(StateChanged); ok {
			r.sync()
		}
	})
	r.sync()
	return r
}

func (r *Runner) sync() {
	st, token := r.engine.snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if !st.Running {
		r.disarmLocked()
		return
	}
	if r.timer != nil && r.armed == token {
		return
	}
	r.disarmLocked()
	r.armed = token
	r.timer = r.clock.AfterFunc(TickInterval, func() { r.fire(token) })
}

func (r *Runner) fire(token uint64) {
	r.mu.Lock()
	if r.stopped || r.armed != token {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.mu.Unlock()
	// A consumed tick publishes StateChanged, which re-arms through sync.
	r.engine.Tick(token)
}

func (r *Runner) disarmLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.armed = 0
}

// Stop disarms the tick timer and detaches from the engine. It is safe to
// call more than once.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	r.disarmLocked()
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}
