package clock

import (
	"container/heap"
	"sync"
	"time"
)

type fakeTimer struct {
	clock   *Fake
	at      time.Time
	seq     uint64
	fn      func()
	index   int
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.index < 0 {
		return false
	}
	t.stopped = true
	heap.Remove(&t.clock.queue, t.index)
	return true
}

type timerQueue []*fakeTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*fakeTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[0 : n-1]
	return t
}

// Fake is a virtual clock. Time only moves through Advance and Set; due
// callbacks run synchronously on the caller's goroutine in trigger order, and
// a callback may schedule further timers that fire within the same window.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	queue timerQueue
	seq   uint64
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now, queue: make(timerQueue, 0)}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{clock: f, at: f.now.Add(d), seq: f.seq, fn: fn}
	heap.Push(&f.queue, t)
	return t
}

// Advance moves the clock forward by d, firing every timer due on the way.
func (f *Fake) Advance(d time.Duration) {
	f.Set(f.Now().Add(d))
}

// Set moves the clock to target, firing every timer due at or before it.
func (f *Fake) Set(target time.Time) {
	for {
		t, ok := f.popDue(target)
		if !ok {
			break
		}
		t.fn()
	}
	f.mu.Lock()
	f.now = target
	f.mu.Unlock()
}

// Pending returns the number of armed timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Next returns the trigger time of the earliest armed timer.
func (f *Fake) Next() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return time.Time{}, false
	}
	return f.queue[0].at, true
}

func (f *Fake) popDue(target time.Time) (*fakeTimer, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 || f.queue[0].at.After(target) {
		return nil, false
	}
	t := heap.Pop(&f.queue).(*fakeTimer)
	t.stopped = true
	if t.at.After(f.now) {
		f.now = t.at
	}
	return t, true
}
