// Package model defines shared data structures.
package model

import "time"

// SessionSeconds is the fixed length of a study session.
const SessionSeconds = 3600

// DateLayout is the calendar date format used for exam dates.
const DateLayout = "2006-01-02"

// Confidence bounds for a class.
const (
	MinConfidence = 1
	MaxConfidence = 10
)

// ClassRecord is a tracked class preparing for an exam.
type ClassRecord struct {
	Name       string
	NextTest   time.Time
	Confidence int
}

// Phase is the state of the study session.
type Phase int

// Session phases.
const (
	Idle Phase = iota
	Running
	Paused
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Active reports whether a session is bound to a class and not yet finished.
func (p Phase) Active() bool {
	return p == Running || p == Paused
}

// SessionSnapshot is a read-only view of the session for rendering.
type SessionSnapshot struct {
	Phase     Phase
	Class     *ClassRecord
	Remaining int
	Streak    int
}

// Config defines runtime settings resolved from flags, env and the config file.
type Config struct {
	DBPath  string
	Bell    bool
	LogFile string
}

// StreakEntry is one row of the streak report.
type StreakEntry struct {
	Name  string
	Count int
}
