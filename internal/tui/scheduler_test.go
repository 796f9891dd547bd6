package tui

import (
	"testing"
	"time"

	"github.com/verte-zerg/studypick/internal/clock"
)

func TestSchedulerRunsUntilCancelled(t *testing.T) {
	s := newScheduler(nil)
	calls := 0
	h := s.Every(time.Second, func() { calls++ })

	if cmd := s.drain(); cmd == nil {
		t.Fatalf("expected first tick command")
	}
	if cmd := s.drain(); cmd != nil {
		t.Fatalf("expected pending queue to be empty after drain")
	}
	if cmd := s.handle(tickMsg{id: 1}); cmd == nil {
		t.Fatalf("expected follow-up tick")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}

	h.Cancel()
	if cmd := s.handle(tickMsg{id: 1}); cmd != nil {
		t.Fatalf("cancelled job should not reschedule")
	}
	if calls != 1 {
		t.Fatalf("cancelled job should not run, got %d calls", calls)
	}
	if s.active() != 0 {
		t.Fatalf("expected no active jobs, got %d", s.active())
	}
}

func TestSchedulerSelfCancelStopsChain(t *testing.T) {
	s := newScheduler(nil)
	var h interface{ Cancel() }
	h = s.Every(time.Second, func() { h.Cancel() })
	if cmd := s.handle(tickMsg{id: 1}); cmd != nil {
		t.Fatalf("job that cancelled itself should not reschedule")
	}
}

func TestSchedulerIgnoresUnknownTick(t *testing.T) {
	s := newScheduler(nil)
	if cmd := s.handle(tickMsg{id: 42}); cmd != nil {
		t.Fatalf("unknown tick should be dropped")
	}
}

func TestSchedulerKeepsWallClockPace(t *testing.T) {
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	clk := &clock.Fixed{T: start}
	s := newScheduler(clk)
	s.Every(time.Second, func() {})
	s.drain()

	// Handled late: the next due time still lands on the next whole second.
	clk.Add(1300 * time.Millisecond)
	if cmd := s.handle(tickMsg{id: 1}); cmd == nil {
		t.Fatalf("expected follow-up tick")
	}
	if want := start.Add(2 * time.Second); !s.jobs[1].due.Equal(want) {
		t.Fatalf("due = %v, want %v", s.jobs[1].due, want)
	}

	clk.Add(900 * time.Millisecond)
	s.handle(tickMsg{id: 1})
	if want := start.Add(3 * time.Second); !s.jobs[1].due.Equal(want) {
		t.Fatalf("due = %v, want %v", s.jobs[1].due, want)
	}
}
