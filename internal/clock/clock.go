// Package clock abstracts wall time and one-shot timers so that the session
// runner and the daily exporter can be driven by a virtual clock in tests.
package clock

import "time"

type Timer interface {
	// Stop cancels the timer. It reports false when the timer already fired
	// or was stopped.
	Stop() bool
}

type Clock interface {
	Now() time.Time
	// AfterFunc calls f in its own goroutine (Real) or synchronously from
	// Advance (Fake) once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Until returns the duration from c.Now() to t, never negative.
func Until(c Clock, t time.Time) time.Duration {
	wait := t.Sub(c.Now())
	if wait < 0 {
		return 0
	}
	return wait
}
