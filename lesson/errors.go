package lesson

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLesson is matched by every schema violation.
	ErrMalformedLesson = errors.New("malformed lesson")
	// ErrLessonIDRequired indicates that a lesson has no ID.
	ErrLessonIDRequired = errors.New("lesson id is required")
	// ErrNoSteps indicates that a lesson has an empty step list.
	ErrNoSteps = errors.New("lesson must have at least one step")
	// ErrActionItemIDRequired indicates that an action item has a blank ID.
	ErrActionItemIDRequired = errors.New("action item id is required")
	// ErrDuplicateActionItem indicates two action items in one step share an ID.
	ErrDuplicateActionItem = errors.New("duplicate action item id")
	// ErrNoLoader indicates that no Loader has been registered.
	ErrNoLoader = errors.New("no lesson loader registered; use SetLoader() or provide a file path")
	// ErrLessonNotFound indicates that a Loader has no lesson under the given name.
	ErrLessonNotFound = errors.New("lesson not found")
)

// ValidationError describes a single schema violation. It matches both
// ErrMalformedLesson and its specific cause via errors.Is.
type ValidationError struct {
	LessonID   string
	Step       int // -1 when the violation is not tied to a step
	ActionItem string
	Err        error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Step < 0:
		return fmt.Sprintf("lesson %q: %v", e.LessonID, e.Err)
	case e.ActionItem == "":
		return fmt.Sprintf("lesson %q step %d: %v", e.LessonID, e.Step, e.Err)
	default:
		return fmt.Sprintf("lesson %q step %d: %v %q", e.LessonID, e.Step, e.Err, e.ActionItem)
	}
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrMalformedLesson, e.Err}
}
