// Package progress tracks a learner's pass through one lesson: which step
// they are on, which action items are checked, and whether they may move on.
//
// State is an immutable value; ToggleActionItem and the Navigator return new
// values and never modify their input. Only the Navigator changes the current
// step, so the gating rule (forward only past a complete step, backward
// always) can't be bypassed. Session wraps both for a presentation layer.
package progress

import (
	"github.com/amp-labs/lesson-engine/lesson"
)

// ItemRef identifies one action item within a lesson.
type ItemRef struct {
	Step       int
	ActionItem string
}

// ItemStatus is an action item together with its completion.
type ItemStatus struct {
	ID        string `json:"id"        yaml:"id"`
	Label     string `json:"label"     yaml:"label"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// State is one learner's progression through one lesson.
type State struct {
	lesson  *lesson.Lesson
	current int

	// done[step][position] records action item completion. A nil entry means
	// nothing in that step has been checked yet. Records are copy-on-write.
	done [][]bool
}

// Initialize starts a fresh pass through l: step 0, nothing checked.
// A lesson that fails schema validation is rejected with lesson.ErrMalformedLesson.
func Initialize(l *lesson.Lesson) (State, error) {
	if err := l.Validate(); err != nil {
		return State{}, err
	}

	return State{
		lesson: l,
		done:   make([][]bool, len(l.Steps)),
	}, nil
}

// Lesson returns the lesson this state belongs to.
func (s State) Lesson() *lesson.Lesson {
	return s.lesson
}

// CurrentStepIndex returns the step the learner is on.
func (s State) CurrentStepIndex() int {
	return s.current
}

// CurrentStep returns the step the learner is on.
func (s State) CurrentStep() (lesson.Step, bool) {
	return s.lesson.Step(s.current)
}

// IsLastStep reports whether the learner is on the final step.
func (s State) IsLastStep() bool {
	return s.lesson != nil && s.current == s.lesson.LastIndex()
}

// ToggleActionItem flips the completion of one action item. Any step may be
// toggled, not just the current one. A step index out of range or an item
// that isn't part of the step yields a *ReferenceError and leaves s as it was.
func (s State) ToggleActionItem(stepIndex int, actionItemID string) (State, error) {
	if s.lesson == nil {
		return s, ErrUninitialized
	}

	step, ok := s.lesson.Step(stepIndex)
	if !ok {
		return s, &ReferenceError{Step: stepIndex, ActionItem: actionItemID, Err: ErrStepOutOfRange}
	}

	pos, ok := step.ActionItemIndex(actionItemID)
	if !ok {
		return s, &ReferenceError{Step: stepIndex, ActionItem: actionItemID, Err: ErrUnknownActionItem}
	}

	record := make([]bool, len(step.ActionItems))
	copy(record, s.done[stepIndex])
	record[pos] = !record[pos]

	done := make([][]bool, len(s.done))
	copy(done, s.done)
	done[stepIndex] = record

	s.done = done

	return s, nil
}

// IsCompleted reports whether one action item is checked. Unknown references
// report false.
func (s State) IsCompleted(stepIndex int, actionItemID string) bool {
	step, ok := s.lesson.Step(stepIndex)
	if !ok {
		return false
	}

	pos, ok := step.ActionItemIndex(actionItemID)
	if !ok {
		return false
	}

	return s.checked(stepIndex, pos)
}

// CompletedCount returns how many action items of a step are checked, for
// "N of M completed" displays. An out-of-range step reports 0.
func (s State) CompletedCount(stepIndex int) int {
	if stepIndex < 0 || stepIndex >= len(s.done) {
		return 0
	}

	n := 0

	for _, v := range s.done[stepIndex] {
		if v {
			n++
		}
	}

	return n
}

// IsStepComplete reports whether every action item of a step is checked.
// A step without action items is complete. An out-of-range step is not.
func (s State) IsStepComplete(stepIndex int) bool {
	step, ok := s.lesson.Step(stepIndex)
	if !ok {
		return false
	}

	return s.CompletedCount(stepIndex) == len(step.ActionItems)
}

// IsLessonComplete reports whether the final step is complete.
func (s State) IsLessonComplete() bool {
	if s.lesson == nil {
		return false
	}

	return s.IsStepComplete(s.lesson.LastIndex())
}

// IsFinished reports whether the learner stands on the final step and it is
// complete. A final step without action items is finished on arrival.
func (s State) IsFinished() bool {
	return s.IsLastStep() && s.IsLessonComplete()
}

// Completion returns every checked action item. Anything absent is unchecked.
func (s State) Completion() map[ItemRef]bool {
	out := make(map[ItemRef]bool)

	if s.lesson == nil {
		return out
	}

	for i, step := range s.lesson.Steps {
		for pos, item := range step.ActionItems {
			if s.checked(i, pos) {
				out[ItemRef{Step: i, ActionItem: item.ID}] = true
			}
		}
	}

	return out
}

// ItemList returns a step's action items in authored order with their completion.
func (s State) ItemList(stepIndex int) []ItemStatus {
	step, ok := s.lesson.Step(stepIndex)
	if !ok {
		return nil
	}

	items := make([]ItemStatus, len(step.ActionItems))
	for pos, item := range step.ActionItems {
		items[pos] = ItemStatus{
			ID:        item.ID,
			Label:     item.Label,
			Completed: s.checked(stepIndex, pos),
		}
	}

	return items
}

func (s State) checked(stepIndex, pos int) bool {
	record := s.done[stepIndex]

	return pos < len(record) && record[pos]
}

// withCurrentStep moves the learner. It is reserved for the Navigator, which
// enforces gating before calling it.
func (s State) withCurrentStep(index int) (State, error) {
	if s.lesson == nil {
		return s, ErrUninitialized
	}

	if index < 0 || index > s.lesson.LastIndex() {
		return s, &ReferenceError{Step: index, Err: ErrStepOutOfRange}
	}

	s.current = index

	return s, nil
}
