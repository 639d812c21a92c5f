package player

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSignedIn is returned when a module is opened without a current user.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrNotInProgress is returned by step operations outside the in-progress state.
	ErrNotInProgress = errors.New("session not in progress")

	// ErrAlreadyStarted is returned by Start on a session that has left NotStarted.
	ErrAlreadyStarted = errors.New("session already started")

	// ErrNoSteps is returned by Start for a module without steps.
	ErrNoSteps = errors.New("module has no steps")

	// ErrStepUnresolved is returned by CompleteCurrentStep before the step's
	// interaction is resolved.
	ErrStepUnresolved = errors.New("current step is not resolved")

	// ErrWrongStepKind is returned when a drill or quiz operation targets a
	// step of another kind.
	ErrWrongStepKind = errors.New("operation does not apply to current step")

	// ErrInvalidChoice is returned for an option or choice index out of range.
	ErrInvalidChoice = errors.New("choice out of range")

	// ErrAnswerPending is returned when a quiz answer arrives while the
	// previous answer is still waiting to advance.
	ErrAnswerPending = errors.New("previous answer still pending")
)

// LookupError reports that a module could not be resolved from the catalog.
type LookupError struct {
	ModuleID string
	Err      error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup module %q: %v", e.ModuleID, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
