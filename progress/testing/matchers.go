package testing

import (
	"testing"

	"github.com/amp-labs/lesson-engine/progress"
	"github.com/stretchr/testify/assert"
)

// AssertAtStep asserts the learner's current step.
func AssertAtStep(t testing.TB, s progress.State, want int) bool {
	t.Helper()

	return assert.Equal(t, want, s.CurrentStepIndex(), "current step")
}

// AssertStepComplete asserts whether a step is complete.
func AssertStepComplete(t testing.TB, s progress.State, step int, want bool) bool {
	t.Helper()

	return assert.Equal(t, want, s.IsStepComplete(step), "step %d complete", step)
}

// AssertSameCompletion asserts that two states have identical completion records.
func AssertSameCompletion(t testing.TB, want, got progress.State) bool {
	t.Helper()

	return assert.Equal(t, want.Completion(), got.Completion(), "completion")
}
