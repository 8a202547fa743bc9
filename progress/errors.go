package progress

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference is matched by every stale or unknown step/action item reference.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrStepOutOfRange indicates a step index outside the lesson.
	ErrStepOutOfRange = errors.New("step index out of range")
	// ErrUnknownActionItem indicates an action item ID that doesn't belong to the step.
	ErrUnknownActionItem = errors.New("action item does not belong to step")
	// ErrStepIncomplete indicates an attempt to advance past a step with unchecked action items.
	ErrStepIncomplete = errors.New("step incomplete")
	// ErrStepLocked indicates a target step that can't be reached from the current one.
	ErrStepLocked = errors.New("step locked")
	// ErrUninitialized indicates a zero State that was never produced by Initialize.
	ErrUninitialized = errors.New("progression state not initialized")
	// ErrSessionClosed indicates use of a Session after Close.
	ErrSessionClosed = errors.New("session closed")
	// ErrInvalidSnapshot indicates a snapshot that doesn't fit the lesson it is restored against.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// ReferenceError wraps a reference failure with the offending step and action item.
// It matches ErrInvalidReference as well as the specific cause.
type ReferenceError struct {
	Step       int
	ActionItem string
	Err        error
}

func (e *ReferenceError) Error() string {
	if e.ActionItem == "" {
		return fmt.Sprintf("%v: step %d: %v", ErrInvalidReference, e.Step, e.Err)
	}

	return fmt.Sprintf("%v: step %d action item %q: %v", ErrInvalidReference, e.Step, e.ActionItem, e.Err)
}

func (e *ReferenceError) Unwrap() []error {
	return []error{ErrInvalidReference, e.Err}
}

// StepError wraps a refused navigation with step context.
type StepError struct {
	Step      int
	Completed int
	Total     int
	Err       error
}

func (e *StepError) Error() string {
	if errors.Is(e.Err, ErrStepIncomplete) {
		return fmt.Sprintf("step %d: %v (%d of %d action items completed)", e.Step, e.Err, e.Completed, e.Total)
	}

	return fmt.Sprintf("step %d: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
