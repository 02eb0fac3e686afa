// Package export sends the submission history to the configured webhook once
// a day at a fixed wall-clock hour in a reference timezone.
package export

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/focusboard/internal/clock"
	"github.com/sandeepkv93/focusboard/internal/history"
	"github.com/sandeepkv93/focusboard/internal/model"
)

const (
	DefaultHour       = 22
	DefaultRetryAfter = 5 * time.Minute
	DefaultLocation   = "Europe/Paris"
)

var ErrStopped = errors.New("export: exporter stopped")

type Sender interface {
	Send(ctx context.Context, url string, subs []model.Submission) error
}

// MarkerStore persists the reference-timezone date (M/D/YYYY) of the last
// successful delivery.
type MarkerStore interface {
	LastSent(ctx context.Context) (string, error)
	SetLastSent(ctx context.Context, date string) error
}

// Options zero values select the defaults: real clock, Europe/Paris, 22:00
// and a five minute retry.
type Options struct {
	Clock       clock.Clock
	Location    *time.Location
	Hour        int
	RetryAfter  time.Duration
	URL         string
	Submissions func() []model.Submission
	Sender      Sender
	Markers     MarkerStore
	Logger      *slog.Logger
}

type Exporter struct {
	clock       clock.Clock
	loc         *time.Location
	hour        int
	retryAfter  time.Duration
	submissions func() []model.Submission
	sender      Sender
	markers     MarkerStore
	logger      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	url     string
	timer   clock.Timer
	retry   clock.Timer
	next    time.Time
	started bool
	stopped bool
}

func New(opts Options) (*Exporter, error) {
	if opts.Submissions == nil {
		return nil, errors.New("export: submissions accessor is required")
	}
	if opts.Sender == nil {
		return nil, errors.New("export: sender is required")
	}
	if opts.Markers == nil {
		return nil, errors.New("export: marker store is required")
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Location == nil {
		loc, err := time.LoadLocation(DefaultLocation)
		if err != nil {
			return nil, err
		}
		opts.Location = loc
	}
	if opts.Hour == 0 {
		opts.Hour = DefaultHour
	}
	if opts.Hour < 1 || opts.Hour > 23 {
		return nil, errors.New("export: hour must be within 1..23")
	}
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = DefaultRetryAfter
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Exporter{
		clock:       opts.Clock,
		loc:         opts.Location,
		hour:        opts.Hour,
		retryAfter:  opts.RetryAfter,
		submissions: opts.Submissions,
		sender:      opts.Sender,
		markers:     opts.Markers,
		logger:      opts.Logger.With("component", "export"),
		ctx:         ctx,
		cancel:      cancel,
		url:         strings.TrimSpace(opts.URL),
	}, nil
}

// NextFire returns today's hour:00 in loc when now is before it, and
// tomorrow's otherwise.
func NextFire(now time.Time, loc *time.Location, hour int) time.Time {
	local := now.In(loc)
	target := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !local.Before(target) {
		target = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return target
}

// Start arms the first firing. Calling it again, or after Stop, does nothing.
func (e *Exporter) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	e.armLocked(e.clock.Now())
	e.logger.Info("daily export armed", "next_run", e.next)
}

// Stop cancels the pending firing, any pending retry and an in-flight
// delivery. It is safe to call more than once.
func (e *Exporter) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	e.stopped = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.retry != nil {
		e.retry.Stop()
		e.retry = nil
	}
	e.cancel()
}

// UpdateWebhookURL swaps the delivery target. The schedule is untouched.
func (e *Exporter) UpdateWebhookURL(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.url = strings.TrimSpace(url)
}

func (e *Exporter) WebhookURL() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.url
}

// NextRun is the zero time until Start.
func (e *Exporter) NextRun() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.next
}

// RunNow performs one marker-guarded delivery without retry. It reports
// whether a delivery was made.
func (e *Exporter) RunNow(ctx context.Context) (bool, error) {
	e.mu.Lock()
	stopped := e.stopped
	e.mu.Unlock()
	if stopped {
		return false, ErrStopped
	}
	return e.deliver(ctx, history.DateLabel(e.clock.Now(), e.loc))
}

func (e *Exporter) armLocked(from time.Time) {
	e.next = NextFire(from, e.loc, e.hour)
	e.timer = e.clock.AfterFunc(clock.Until(e.clock, e.next), e.fire)
}

func (e *Exporter) fire() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	target := e.next
	now := e.clock.Now()
	from := now
	if target.After(now) {
		from = target
	}
	e.armLocked(from)
	e.mu.Unlock()

	today := history.DateLabel(target, e.loc)
	if _, err := e.deliver(e.ctx, today); err != nil {
		e.logger.Warn("daily export failed, retrying once", "date", today, "retry_after", e.retryAfter, "error", err)
		e.scheduleRetry(today)
	}
}

func (e *Exporter) scheduleRetry(today string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	if e.retry != nil {
		e.retry.Stop()
	}
	e.retry = e.clock.AfterFunc(e.retryAfter, func() {
		e.mu.Lock()
		if e.stopped {
			e.mu.Unlock()
			return
		}
		e.retry = nil
		e.mu.Unlock()
		if _, err := e.deliver(e.ctx, today); err != nil {
			e.logger.Error("daily export retry failed, giving up", "date", today, "error", err)
		}
	})
}

// deliver sends the current history unless today's marker is already set.
// An empty webhook URL is not an error: the run is skipped.
func (e *Exporter) deliver(ctx context.Context, today string) (bool, error) {
	last, err := e.markers.LastSent(ctx)
	if err != nil {
		e.logger.Warn("read last-sent marker", "error", err)
		last = ""
	}
	if last == today {
		e.logger.Info("daily export already sent", "date", today)
		return false, nil
	}
	url := e.WebhookURL()
	if url == "" {
		e.logger.Info("daily export skipped, no webhook url", "date", today)
		return false, nil
	}
	if err := e.sender.Send(ctx, url, e.submissions()); err != nil {
		return false, err
	}
	if err := e.markers.SetLastSent(ctx, today); err != nil {
		e.logger.Error("persist last-sent marker", "date", today, "error", err)
	}
	e.logger.Info("daily export sent", "date", today)
	return true, nil
}
