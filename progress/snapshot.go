package progress

import (
	"fmt"

	"github.com/amp-labs/lesson-engine/lesson"
)

// Snapshot is a serializable copy of a State. Completion uses the nested
// step index -> action item position -> checked shape; only checked items
// are listed. The fingerprint ties it to the lesson structure it came from.
type Snapshot struct {
	LessonID    string               `json:"lessonId"        yaml:"lessonId"`
	Fingerprint string               `json:"fingerprint"     yaml:"fingerprint"`
	CurrentStep int                  `json:"currentStep"     yaml:"currentStep"`
	Steps       map[int]map[int]bool `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Snapshot captures s.
func (s State) Snapshot() Snapshot {
	if s.lesson == nil {
		return Snapshot{}
	}

	snap := Snapshot{
		LessonID:    s.lesson.ID,
		Fingerprint: s.lesson.Fingerprint(),
		CurrentStep: s.current,
	}

	for i, record := range s.done {
		for pos, checked := range record {
			if !checked {
				continue
			}

			if snap.Steps == nil {
				snap.Steps = make(map[int]map[int]bool)
			}

			if snap.Steps[i] == nil {
				snap.Steps[i] = make(map[int]bool)
			}

			snap.Steps[i][pos] = true
		}
	}

	return snap
}

// Restore rebuilds a State for l from snap. It fails with ErrInvalidSnapshot
// when the snapshot belongs to another lesson or another revision of its
// structure, references positions that don't exist, or places the learner
// past a step that isn't complete.
func Restore(l *lesson.Lesson, snap Snapshot) (State, error) {
	state, err := Initialize(l)
	if err != nil {
		return State{}, err
	}

	if snap.LessonID != l.ID {
		return State{}, fmt.Errorf("%w: lesson %q does not match %q", ErrInvalidSnapshot, snap.LessonID, l.ID)
	}

	if fp := l.Fingerprint(); snap.Fingerprint != fp {
		return State{}, fmt.Errorf("%w: fingerprint %q does not match lesson %q (%s)",
			ErrInvalidSnapshot, snap.Fingerprint, l.ID, fp)
	}

	for stepIndex, positions := range snap.Steps {
		step, ok := l.Step(stepIndex)
		if !ok {
			return State{}, fmt.Errorf("%w: step %d out of range", ErrInvalidSnapshot, stepIndex)
		}

		record := make([]bool, len(step.ActionItems))

		for pos, checked := range positions {
			if pos < 0 || pos >= len(record) {
				return State{}, fmt.Errorf("%w: step %d has no action item at position %d",
					ErrInvalidSnapshot, stepIndex, pos)
			}

			record[pos] = checked
		}

		state.done[stepIndex] = record
	}

	for i := 0; i < snap.CurrentStep && i < l.StepCount(); i++ {
		if !state.IsStepComplete(i) {
			return State{}, fmt.Errorf("%w: current step %d is past incomplete step %d",
				ErrInvalidSnapshot, snap.CurrentStep, i)
		}
	}

	state, err = state.withCurrentStep(snap.CurrentStep)
	if err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	return state, nil
}
