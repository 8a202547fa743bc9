// Package testing provides lesson fixtures and assertions for code built on
// the progress engine.
package testing

import (
	"fmt"
	"testing"

	"github.com/amp-labs/lesson-engine/lesson"
	"github.com/amp-labs/lesson-engine/progress"
	"github.com/stretchr/testify/require"
)

// ItemID returns the action item ID that Lesson generates for step s, item n.
func ItemID(step, n int) string {
	return fmt.Sprintf("item-%d-%d", step, n)
}

// Lesson builds a validated lesson with one step per entry in itemsPerStep,
// each holding that many action items named by ItemID.
func Lesson(t testing.TB, id string, itemsPerStep ...int) *lesson.Lesson {
	t.Helper()

	steps := make([]lesson.Step, len(itemsPerStep))

	for i, n := range itemsPerStep {
		items := make([]lesson.ActionItem, n)
		for j := range items {
			items[j] = lesson.ActionItem{
				ID:    ItemID(i, j),
				Label: fmt.Sprintf("Task %d of step %d", j+1, i+1),
			}
		}

		steps[i] = lesson.Step{
			Title:       fmt.Sprintf("Step %d", i+1),
			Content:     lesson.Content{Body: fmt.Sprintf("Content for step %d", i+1)},
			ActionItems: items,
		}
	}

	l, err := lesson.New(id, "Fixture "+id, steps...)
	require.NoError(t, err)

	return l
}

// ThreeStepLesson is a three-step lesson whose first step has items "A" and
// "B" and whose later steps have one item each ("C", "D").
func ThreeStepLesson(t testing.TB) *lesson.Lesson {
	t.Helper()

	l, err := lesson.New("three-step", "Three Step Lesson",
		lesson.Step{Title: "Start", ActionItems: []lesson.ActionItem{
			{ID: "A", Label: "First task"},
			{ID: "B", Label: "Second task"},
		}},
		lesson.Step{Title: "Middle", ActionItems: []lesson.ActionItem{{ID: "C", Label: "Third task"}}},
		lesson.Step{Title: "End", ActionItems: []lesson.ActionItem{{ID: "D", Label: "Fourth task"}}},
	)
	require.NoError(t, err)

	return l
}

// NewState initializes a State for l.
func NewState(t testing.TB, l *lesson.Lesson) progress.State {
	t.Helper()

	s, err := progress.Initialize(l)
	require.NoError(t, err)

	return s
}

// CompleteStep checks every unchecked action item of a step.
func CompleteStep(t testing.TB, s progress.State, step int) progress.State {
	t.Helper()

	for _, item := range s.ItemList(step) {
		if item.Completed {
			continue
		}

		var err error

		s, err = s.ToggleActionItem(step, item.ID)
		require.NoError(t, err)
	}

	return s
}

// AdvanceTo completes steps and advances until the learner is on target.
func AdvanceTo(t testing.TB, nav *progress.Navigator, s progress.State, target int) progress.State {
	t.Helper()

	for s.CurrentStepIndex() < target {
		s = CompleteStep(t, s, s.CurrentStepIndex())

		var err error

		s, err = nav.Advance(t.Context(), s)
		require.NoError(t, err)
	}

	return s
}
