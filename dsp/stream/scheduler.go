package stream

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// MinInterval is the shortest tick period a Scheduler will use.
const MinInterval = time.Millisecond

// Source produces one input sample per call.
type Source interface {
	Next() float64
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSource feeds one sample from src into the processor before every
// tick.
func WithSource(src Source) SchedulerOption {
	return func(s *Scheduler) { s.source = src }
}

// WithTickHook calls fn after every tick with its result.
func WithTickHook(fn func(Sample, bool)) SchedulerOption {
	return func(s *Scheduler) { s.hook = fn }
}

// WithSchedulerLogger sets the logger for start and stop events.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler ticks a Processor on a timer. All processor access happens on
// the goroutine running Run; other goroutines go through Do.
type Scheduler struct {
	proc     *Processor
	source   Source
	hook     func(Sample, bool)
	logger   *slog.Logger
	interval atomic.Int64
	edits    chan edit
}

type edit struct {
	fn   func(*Processor)
	done chan struct{}
}

// NewScheduler returns a scheduler for p ticking at p.Rate().
func NewScheduler(p *Processor, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		proc:   p,
		logger: p.logger,
		edits:  make(chan edit),
	}
	s.interval.Store(int64(IntervalForRate(p.Rate())))

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// IntervalForRate converts samples per second into a tick period of at
// least MinInterval.
func IntervalForRate(rate float64) time.Duration {
	if !(rate > 0) {
		return time.Second
	}

	return max(time.Duration(float64(time.Second)/rate), MinInterval)
}

// Interval returns the current tick period.
func (s *Scheduler) Interval() time.Duration { return time.Duration(s.interval.Load()) }

// SetInterval changes the tick period. The tick already scheduled keeps
// its deadline; the new period applies from the one after.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.interval.Store(int64(max(d, MinInterval)))
}

// SetRate resizes the processor FIFOs to ten seconds of samples on the
// tick goroutine and then sets the period to 1s/rate. If ctx ends before
// the resize runs, neither changes.
func (s *Scheduler) SetRate(ctx context.Context, rate float64) error {
	if !(rate > 0) {
		return nil
	}

	return s.Do(ctx, func(p *Processor) {
		p.SetRate(rate)
		s.SetInterval(IntervalForRate(rate))
	})
}

// Do runs fn on the tick goroutine between two ticks and waits for it.
// It returns ctx.Err() if Run does not pick the edit up in time.
func (s *Scheduler) Do(ctx context.Context, fn func(*Processor)) error {
	e := edit{fn: fn, done: make(chan struct{})}

	select {
	case s.edits <- e:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run ticks until ctx is cancelled and then returns ctx.Err(). A tick in
// progress always completes.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.Interval())
	defer s.logger.Info("scheduler stopped")

	timer := time.NewTimer(s.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-s.edits:
			e.fn(s.proc)
			close(e.done)
		case <-timer.C:
			s.tick()
			timer.Reset(s.Interval())
		}
	}
}

func (s *Scheduler) tick() {
	if s.source != nil {
		s.proc.Push(s.source.Next())
	}

	sample, ok := s.proc.Tick()
	if s.hook != nil {
		s.hook(sample, ok)
	}
}
