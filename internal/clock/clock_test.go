package clock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC)

func TestFakeFiresInTriggerOrder(t *testing.T) {
	c := NewFake(epoch)
	var got []string
	c.AfterFunc(80*time.Millisecond, func() { got = append(got, "later") })
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "sooner") })
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "sooner-2") })

	c.Advance(50 * time.Millisecond)
	if len(got) != 2 || got[0] != "sooner" || got[1] != "sooner-2" {
		t.Fatalf("unexpected order after 50ms: %v", got)
	}
	c.Advance(50 * time.Millisecond)
	if len(got) != 3 || got[2] != "later" {
		t.Fatalf("unexpected order after 100ms: %v", got)
	}
	if !c.Now().Equal(epoch.Add(100 * time.Millisecond)) {
		t.Fatalf("unexpected now: %v", c.Now())
	}
}

func TestFakeCallbackSeesTriggerTime(t *testing.T) {
	c := NewFake(epoch)
	var seen time.Time
	c.AfterFunc(time.Minute, func() { seen = c.Now() })
	c.Advance(time.Hour)
	if !seen.Equal(epoch.Add(time.Minute)) {
		t.Fatalf("expected callback at trigger time, got %v", seen)
	}
}

func TestFakeStopCancelsTimer(t *testing.T) {
	c := NewFake(epoch)
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("expected first stop to report true")
	}
	if timer.Stop() {
		t.Fatal("expected second stop to report false")
	}
	c.Advance(time.Minute)
	if fired || c.Pending() != 0 {
		t.Fatalf("stopped timer fired=%v pending=%d", fired, c.Pending())
	}
}

func TestFakeRearmingCallbackFiresWithinWindow(t *testing.T) {
	c := NewFake(epoch)
	var count int
	var tick func()
	tick = func() {
		count++
		c.AfterFunc(time.Second, tick)
	}
	c.AfterFunc(time.Second, tick)

	c.Advance(10 * time.Second)
	if count != 10 {
		t.Fatalf("expected 10 ticks, got %d", count)
	}
	if c.Pending() != 1 {
		t.Fatalf("expected one re-armed timer, got %d", c.Pending())
	}
	next, ok := c.Next()
	if !ok || !next.Equal(epoch.Add(11*time.Second)) {
		t.Fatalf("unexpected next trigger: %v %v", next, ok)
	}
}

func TestUntilNeverNegative(t *testing.T) {
	c := NewFake(epoch)
	if d := Until(c, epoch.Add(-time.Hour)); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
	if d := Until(c, epoch.Add(time.Hour)); d != time.Hour {
		t.Fatalf("expected 1h, got %v", d)
	}
}

func TestRealAfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real{}.AfterFunc(10*time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for real timer")
	}
}

func TestFakeStressConcurrentAfterFunc(t *testing.T) {
	c := NewFake(epoch)
	const workers = 8
	const perWorker = 200
	total := workers * perWorker

	var fired int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				delay := time.Duration((w+i)%50+10) * time.Millisecond
				c.AfterFunc(delay, func() { atomic.AddInt64(&fired, 1) })
			}
		}()
	}
	wg.Wait()

	if c.Pending() != total {
		t.Fatalf("unexpected pending count: got=%d want=%d", c.Pending(), total)
	}
	c.Advance(time.Second)
	if got := atomic.LoadInt64(&fired); got != int64(total) {
		t.Fatalf("unexpected fired count: got=%d want=%d", got, total)
	}
}
