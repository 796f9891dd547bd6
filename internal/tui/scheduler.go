package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/studypick/internal/clock"
)

// tickMsg is delivered to Update when a scheduled job is due.
type tickMsg struct {
	id int
}

type job struct {
	interval time.Duration
	due      time.Time
	fn       func()
}

// scheduler runs periodic jobs on the Bubble Tea update loop. Each job is a
// chain of tea.Tick commands; a cancelled job drops its next tick on arrival.
// Due times advance by the interval from the previous due time, not from the
// moment a tick was handled, so the chain keeps wall-clock pace.
type scheduler struct {
	now     func() time.Time
	next    int
	jobs    map[int]*job
	pending []tea.Cmd
}

func newScheduler(clk clock.Clock) *scheduler {
	if clk == nil {
		clk = clock.System{}
	}
	return &scheduler{now: clk.Now, jobs: map[int]*job{}}
}

// Every implements clock.Scheduler. The first tick is queued until drain.
func (s *scheduler) Every(interval time.Duration, fn func()) clock.Handle {
	s.next++
	id := s.next
	j := &job{interval: interval, due: s.now().Add(interval), fn: fn}
	s.jobs[id] = j
	s.pending = append(s.pending, tickAfter(id, interval))
	return &tickHandle{s: s, id: id}
}

func (s *scheduler) handle(msg tickMsg) tea.Cmd {
	j, ok := s.jobs[msg.id]
	if !ok {
		return nil
	}
	j.fn()
	if _, ok := s.jobs[msg.id]; !ok {
		return nil
	}
	j.due = j.due.Add(j.interval)
	return tickAfter(msg.id, max(j.due.Sub(s.now()), 0))
}

func (s *scheduler) drain() tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *scheduler) active() int {
	return len(s.jobs)
}

func tickAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

type tickHandle struct {
	s  *scheduler
	id int
}

func (h *tickHandle) Cancel() {
	delete(h.s.jobs, h.id)
}
