package session

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/studypick/internal/model"
)

// ErrNoClasses is returned by Start when there is no class to study.
var ErrNoClasses = errors.New("add at least one class to start")

// ErrMissingDep is returned by New when a required collaborator is nil.
var ErrMissingDep = errors.New("missing session dependency")

// InvalidStateError reports a control call made in a phase that forbids it.
type InvalidStateError struct {
	Op    string
	Phase model.Phase
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.Phase)
}
