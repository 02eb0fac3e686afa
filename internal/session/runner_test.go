package session

import (
	"testing"
	"time"

	"github.com/sandeepkv93/focusboard/internal/clock"
	"github.com/sandeepkv93/focusboard/internal/model"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestRunnerDrivesWorkPhaseToCompletion(t *testing.T) {
	c := clock.NewFake(epoch)
	e, _, _, events := newTestEngine(Config{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 2, TotalCycles: 4})
	r := NewRunner(e, c)
	defer r.Stop()

	if c.Pending() != 0 {
		t.Fatalf("paused engine must not arm a tick, pending=%d", c.Pending())
	}
	e.Start()
	if c.Pending() != 1 {
		t.Fatalf("expected one armed tick, got %d", c.Pending())
	}

	c.Advance(30 * time.Second)
	if got := e.State().TimeLeft; got != 30 {
		t.Fatalf("expected 30s left, got %d", got)
	}

	c.Advance(30 * time.Second)
	st := e.State()
	if st.Phase != model.PhaseShortBreak || st.Running {
		t.Fatalf("expected paused short break, got %+v", st)
	}
	if countCompleted(*events) != 1 {
		t.Fatalf("expected one SessionCompleted, got %d", countCompleted(*events))
	}
	if c.Pending() != 0 {
		t.Fatalf("expected no armed tick after pause, got %d", c.Pending())
	}

	c.Advance(time.Hour)
	if e.State().TimeLeft != 60 {
		t.Fatalf("paused engine kept counting: %+v", e.State())
	}
}

func TestRunnerFollowsAutoStart(t *testing.T) {
	c := clock.NewFake(epoch)
	e, _, _, _ := newTestEngine(Config{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1, TotalCycles: 4, AutoStart: true})
	r := NewRunner(e, c)
	defer r.Stop()

	e.Start()
	c.Advance(2 * time.Minute)
	st := e.State()
	if st.Phase != model.PhaseWork || st.CurrentCycle != 2 || !st.Running || st.TimeLeft != 60 {
		t.Fatalf("expected running work of cycle 2 at full length, got %+v", st)
	}
	if c.Pending() != 1 {
		t.Fatalf("expected exactly one armed tick, got %d", c.Pending())
	}
}

func TestRunnerNeverArmsDuplicateTicks(t *testing.T) {
	c := clock.NewFake(epoch)
	e := NewEngine(testConfig(), nil, nil)
	r := NewRunner(e, c)
	defer r.Stop()

	for i := 0; i < 5; i++ {
		e.Start()
		e.Pause()
		e.Start()
	}
	if c.Pending() != 1 {
		t.Fatalf("expected one armed tick, got %d", c.Pending())
	}
	c.Advance(10 * time.Second)
	if got := e.State().TimeLeft; got != 25*60-10 {
		t.Fatalf("expected exactly 10 ticks, time left %d", got)
	}
}

func TestRunnerStopIsIdempotent(t *testing.T) {
	c := clock.NewFake(epoch)
	e := NewEngine(testConfig(), nil, nil)
	r := NewRunner(e, c)
	e.Start()

	r.Stop()
	r.Stop()
	if c.Pending() != 0 {
		t.Fatalf("expected timers cleared, got %d", c.Pending())
	}
	c.Advance(time.Minute)
	if e.State().TimeLeft != 25*60 {
		t.Fatalf("stopped runner kept ticking: %d", e.State().TimeLeft)
	}
}

func TestNewReflectionSubmission(t *testing.T) {
	task := model.NewTask("t1", 9)
	task.Title = "Write report"
	now := epoch.Add(time.Hour)

	sub := NewReflectionSubmission(&task, []string{"a", "b", "c"}, 25, now)
	if sub.Title != "Write report" || sub.Duration != 25 || !sub.Completed || !sub.Timestamp.Equal(now) {
		t.Fatalf("unexpected submission: %+v", sub)
	}
	if sub.TaskContent != task.Content || len(sub.Questions) != 3 || len(sub.Content) != 3 {
		t.Fatalf("unexpected submission payload: %+v", sub)
	}
	if err := sub.Validate(); err != nil {
		t.Fatalf("expected valid submission: %v", err)
	}

	anon := NewReflectionSubmission(nil, nil, 30, now)
	if anon.Title != DefaultSessionTitle || anon.TaskContent != "" {
		t.Fatalf("unexpected anonymous submission: %+v", anon)
	}
	if anon.ID == sub.ID {
		t.Fatal("expected unique ids")
	}
}

func TestReflectionQuestionsAreCopied(t *testing.T) {
	q := ReflectionQuestions()
	q[0] = "changed"
	if ReflectionQuestions()[0] == "changed" {
		t.Fatal("reflection questions must not be shared")
	}
}
