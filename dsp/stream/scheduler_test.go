package stream

import (
	"context"
	"errors"
	"testing"
	"time"
)

type constSource float64

func (c constSource) Next() float64 { return float64(c) }

func TestIntervalForRate(t *testing.T) {
	tests := []struct {
		rate float64
		want time.Duration
	}{
		{50, 20 * time.Millisecond},
		{1000, time.Millisecond},
		{5000, time.Millisecond},
		{0, time.Second},
	}
	for _, tt := range tests {
		if got := IntervalForRate(tt.rate); got != tt.want {
			t.Fatalf("IntervalForRate(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestScheduler_TicksAndEdits(t *testing.T) {
	p := New(nil)
	ticks := make(chan Sample, 1024)
	s := NewScheduler(p,
		WithSource(constSource(0.5)),
		WithTickHook(func(smp Sample, ok bool) {
			if !ok {
				return
			}
			select {
			case ticks <- smp:
			default:
			}
		}),
	)
	if s.Interval() != 20*time.Millisecond {
		t.Fatalf("default interval = %v", s.Interval())
	}
	s.SetInterval(time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	for range 5 {
		select {
		case smp := <-ticks:
			if smp.Input != 0.5 || smp.Filtered != 0.5 {
				t.Fatalf("sample = %+v", smp)
			}
		case <-ctx.Done():
			t.Fatal("scheduler produced no ticks")
		}
	}

	var capacity int
	if err := s.Do(ctx, func(p *Processor) {
		p.SetAllPassEnabled(true)
		capacity = p.Capacity()
	}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if capacity != 500 {
		t.Fatalf("capacity seen on tick goroutine = %d, want 500", capacity)
	}

	if err := s.SetRate(ctx, 1000); err != nil {
		t.Fatalf("SetRate() error = %v", err)
	}
	if s.Interval() != time.Millisecond {
		t.Fatalf("interval after SetRate = %v", s.Interval())
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if !p.AllPassEnabled() || p.Capacity() != 10000 {
		t.Fatalf("edits not applied: allpass=%v capacity=%d", p.AllPassEnabled(), p.Capacity())
	}
}

func TestScheduler_DoWithoutRun(t *testing.T) {
	s := NewScheduler(New(nil))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := s.Do(ctx, func(*Processor) {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Do() = %v, want DeadlineExceeded", err)
	}
}

func TestScheduler_SetRateWithoutRunChangesNothing(t *testing.T) {
	p := New(nil)
	s := NewScheduler(p)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := s.SetRate(ctx, 1000); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("SetRate() = %v, want DeadlineExceeded", err)
	}
	if s.Interval() != 20*time.Millisecond {
		t.Fatalf("interval changed to %v without a resize", s.Interval())
	}
	if p.Capacity() != 500 || p.Rate() != DefaultRate {
		t.Fatalf("capacity=%d rate=%v, want unchanged", p.Capacity(), p.Rate())
	}
}

func TestScheduler_SetIntervalFloor(t *testing.T) {
	s := NewScheduler(New(nil, WithRate(10)))
	if s.Interval() != 100*time.Millisecond {
		t.Fatalf("Interval() = %v", s.Interval())
	}
	s.SetInterval(0)
	if s.Interval() != MinInterval {
		t.Fatalf("Interval() = %v, want %v", s.Interval(), MinInterval)
	}
}
