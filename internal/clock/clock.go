// Package clock provides time sources and periodic schedulers.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a settable clock for tests and previews.
type Fixed struct {
	T time.Time
}

// Now implements Clock.
func (f *Fixed) Now() time.Time {
	return f.T
}

// Add moves the clock forward.
func (f *Fixed) Add(d time.Duration) {
	f.T = f.T.Add(d)
}

// Handle cancels a scheduled job. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler invokes fn every interval until the returned handle is cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}
