package clock

import "time"

// Manual is a Scheduler driven explicitly by Fire. Jobs run on the caller's goroutine.
type Manual struct {
	next      int
	jobs      map[int]func()
	scheduled int
	cancelled int
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{jobs: map[int]func(){}}
}

// Every implements Scheduler. The interval is ignored; each Fire is one period.
func (m *Manual) Every(_ time.Duration, fn func()) Handle {
	m.next++
	m.jobs[m.next] = fn
	m.scheduled++
	return &manualHandle{m: m, id: m.next}
}

// Fire runs every active job n times, stopping early once none remain.
func (m *Manual) Fire(n int) {
	for i := 0; i < n && len(m.jobs) > 0; i++ {
		for id := 1; id <= m.next; id++ {
			if fn, ok := m.jobs[id]; ok {
				fn()
			}
		}
	}
}

// Active returns the number of jobs still scheduled.
func (m *Manual) Active() int {
	return len(m.jobs)
}

// Scheduled returns how many jobs were ever scheduled.
func (m *Manual) Scheduled() int {
	return m.scheduled
}

// Cancelled returns how many jobs were cancelled.
func (m *Manual) Cancelled() int {
	return m.cancelled
}

type manualHandle struct {
	m    *Manual
	id   int
	done bool
}

func (h *manualHandle) Cancel() {
	if h.done {
		return
	}
	h.done = true
	delete(h.m.jobs, h.id)
	h.m.cancelled++
}
