package classes

import (
	"errors"
	"fmt"
)

// ErrPinned is returned when removing the class bound to an active session.
var ErrPinned = errors.New("class is bound to the active session")

// ValidationError reports malformed class input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IndexError reports an out-of-range removal.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Len)
}
