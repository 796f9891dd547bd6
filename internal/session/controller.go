// Package session runs a single fixed-length study session for a selected class.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/studypick/internal/clock"
	"github.com/verte-zerg/studypick/internal/model"
	"github.com/verte-zerg/studypick/internal/selector"
)

// CompleteMessage is sent to the notifier when a session finishes.
const CompleteMessage = "Hour complete! Well done!"

// TickInterval is how often the countdown advances.
const TickInterval = time.Second

// ClassSource supplies the classes eligible for selection.
type ClassSource interface {
	List(ctx context.Context) ([]*model.ClassRecord, error)
	Pin(rec *model.ClassRecord)
	Unpin()
}

// StreakCounter reads and grows per-class streaks.
type StreakCounter interface {
	Get(ctx context.Context, name string) (int, error)
	Increment(ctx context.Context, name string) (int, error)
}

// Notifier receives user-facing messages.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) {
	f(message)
}

// Deps are the collaborators of a Controller. Classes, Streaks and Scheduler
// are required; the rest have defaults.
type Deps struct {
	Classes   ClassSource
	Streaks   StreakCounter
	Clock     clock.Clock
	Scheduler clock.Scheduler
	Notifier  Notifier
	Rand      selector.Source
}

// Controller is the session state machine. It is not safe for concurrent use;
// ticks and control calls must be serialized by the caller.
type Controller struct {
	deps Deps

	phase     model.Phase
	chosen    *model.ClassRecord
	remaining int
	streak    int
	ticker    clock.Handle
}

// New returns an idle controller.
func New(deps Deps) (*Controller, error) {
	switch {
	case deps.Classes == nil:
		return nil, fmt.Errorf("%w: Classes", ErrMissingDep)
	case deps.Streaks == nil:
		return nil, fmt.Errorf("%w: Streaks", ErrMissingDep)
	case deps.Scheduler == nil:
		return nil, fmt.Errorf("%w: Scheduler", ErrMissingDep)
	}
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Rand == nil {
		deps.Rand = selector.NewSource()
	}
	if deps.Notifier == nil {
		deps.Notifier = NotifierFunc(func(string) {})
	}
	return &Controller{
		deps:      deps,
		phase:     model.Idle,
		remaining: model.SessionSeconds,
	}, nil
}

// Start picks a class and begins the countdown.
func (c *Controller) Start(ctx context.Context) error {
	if c.phase != model.Idle {
		return &InvalidStateError{Op: "start a session", Phase: c.phase}
	}
	list, err := c.deps.Classes.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list classes: %w", err)
	}
	chosen, err := selector.Select(list, c.deps.Clock.Now(), c.deps.Rand)
	if err != nil {
		if errors.Is(err, selector.ErrEmptySet) {
			return fmt.Errorf("%w: %w", ErrNoClasses, err)
		}
		return err
	}
	streak, err := c.deps.Streaks.Get(ctx, chosen.Name)
	if err != nil {
		return fmt.Errorf("failed to load streak: %w", err)
	}

	c.chosen = chosen
	c.streak = streak
	c.remaining = model.SessionSeconds
	c.phase = model.Running
	c.deps.Classes.Pin(chosen)
	c.ticker = c.deps.Scheduler.Every(TickInterval, c.onTick)
	return nil
}

func (c *Controller) onTick() {
	if err := c.Tick(context.Background()); err != nil {
		c.deps.Notifier.Notify(err.Error())
	}
}

// Tick advances the countdown by one second. It does nothing unless running.
func (c *Controller) Tick(ctx context.Context) error {
	if c.phase != model.Running {
		return nil
	}
	c.remaining--
	if c.remaining > 0 {
		return nil
	}
	c.remaining = 0
	return c.complete(ctx)
}

func (c *Controller) complete(ctx context.Context) error {
	c.stopTicker()
	c.phase = model.Completed
	n, err := c.deps.Streaks.Increment(ctx, c.chosen.Name)
	if err == nil {
		c.streak = n
	}
	c.deps.Notifier.Notify(CompleteMessage)
	if err != nil {
		return fmt.Errorf("failed to record streak for %q: %w", c.chosen.Name, err)
	}
	return nil
}

// Pause freezes the countdown. Outside Running it is a no-op.
func (c *Controller) Pause() {
	if c.phase == model.Running {
		c.phase = model.Paused
	}
}

// Resume continues a paused countdown. Outside Paused it is a no-op.
func (c *Controller) Resume() {
	if c.phase == model.Paused {
		c.phase = model.Running
	}
}

// TogglePause pauses a running session or resumes a paused one.
func (c *Controller) TogglePause() {
	switch c.phase {
	case model.Running:
		c.Pause()
	case model.Paused:
		c.Resume()
	}
}

// Reset returns to Idle. From Completed this is the normal way back; from
// Running or Paused it tears the session down without touching the streak.
func (c *Controller) Reset() {
	if c.phase == model.Idle {
		return
	}
	c.stopTicker()
	c.deps.Classes.Unpin()
	c.chosen = nil
	c.streak = 0
	c.remaining = model.SessionSeconds
	c.phase = model.Idle
}

func (c *Controller) stopTicker() {
	if c.ticker == nil {
		return
	}
	c.ticker.Cancel()
	c.ticker = nil
}

// Phase returns the current phase.
func (c *Controller) Phase() model.Phase {
	return c.phase
}

// Remaining returns the seconds left in the session.
func (c *Controller) Remaining() int {
	return c.remaining
}

// Chosen returns the bound class, or nil when idle.
func (c *Controller) Chosen() *model.ClassRecord {
	return c.chosen
}

// Snapshot returns a copy of the session state for rendering.
func (c *Controller) Snapshot() model.SessionSnapshot {
	snap := model.SessionSnapshot{
		Phase:     c.phase,
		Remaining: c.remaining,
		Streak:    c.streak,
	}
	if c.chosen != nil {
		rec := *c.chosen
		snap.Class = &rec
	}
	return snap
}
