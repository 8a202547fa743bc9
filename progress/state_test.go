package progress

import (
	"testing"

	"github.com/amp-labs/lesson-engine/lesson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLesson(t *testing.T, itemsPerStep ...[]string) *lesson.Lesson {
	t.Helper()

	steps := make([]lesson.Step, len(itemsPerStep))
	for i, ids := range itemsPerStep {
		for _, id := range ids {
			steps[i].ActionItems = append(steps[i].ActionItems, lesson.ActionItem{ID: id, Label: "label " + id})
		}
	}

	l, err := lesson.New("state-test", "State Test", steps...)
	require.NoError(t, err)

	return l
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	l := newLesson(t, []string{"a", "b"}, nil, []string{"c"})

	s, err := Initialize(l)
	require.NoError(t, err)

	assert.Equal(t, 0, s.CurrentStepIndex())
	assert.Same(t, l, s.Lesson())
	assert.Empty(t, s.Completion())
	assert.False(t, s.IsStepComplete(0))
	assert.True(t, s.IsStepComplete(1), "a step without action items is complete")
	assert.False(t, s.IsLessonComplete())
}

func TestInitializeMalformed(t *testing.T) {
	t.Parallel()

	_, err := Initialize(&lesson.Lesson{ID: "empty"})
	require.ErrorIs(t, err, lesson.ErrMalformedLesson)

	_, err = Initialize(nil)
	require.ErrorIs(t, err, lesson.ErrMalformedLesson)
}

func TestToggleFlipsOnlyTarget(t *testing.T) {
	t.Parallel()

	l := newLesson(t, []string{"a", "b"}, []string{"a", "c"})
	s, err := Initialize(l)
	require.NoError(t, err)

	next, err := s.ToggleActionItem(1, "a")
	require.NoError(t, err)

	assert.True(t, next.IsCompleted(1, "a"))
	assert.False(t, next.IsCompleted(0, "a"), "same id in another step is independent")
	assert.Equal(t, map[ItemRef]bool{{Step: 1, ActionItem: "a"}: true}, next.Completion())

	assert.False(t, s.IsCompleted(1, "a"), "the original state is untouched")
	assert.Equal(t, 0, next.CompletedCount(0))
	assert.Equal(t, 1, next.CompletedCount(1))
}

func TestToggleInvolution(t *testing.T) {
	t.Parallel()

	l := newLesson(t, []string{"a", "b"})
	s, err := Initialize(l)
	require.NoError(t, err)

	s, err = s.ToggleActionItem(0, "b")
	require.NoError(t, err)

	before := s.Completion()

	twice, err := s.ToggleActionItem(0, "a")
	require.NoError(t, err)

	twice, err = twice.ToggleActionItem(0, "a")
	require.NoError(t, err)

	assert.Equal(t, before, twice.Completion())
}

func TestStepCompletionIsOrderIndependent(t *testing.T) {
	t.Parallel()

	ids := []string{"x", "y", "z"}
	l := newLesson(t, ids, nil)

	orders := [][]string{
		{"x", "y", "z"},
		{"x", "z", "y"},
		{"y", "x", "z"},
		{"y", "z", "x"},
		{"z", "x", "y"},
		{"z", "y", "x"},
	}

	for _, order := range orders {
		s, err := Initialize(l)
		require.NoError(t, err)

		for i, id := range order {
			assert.False(t, s.IsStepComplete(0), "order %v: complete before item %d", order, i+1)

			s, err = s.ToggleActionItem(0, id)
			require.NoError(t, err)
		}

		assert.True(t, s.IsStepComplete(0), "order %v", order)
		assert.Equal(t, 3, s.CompletedCount(0))
	}
}

func TestToggleInvalidReference(t *testing.T) {
	t.Parallel()

	l := newLesson(t, []string{"a"}, []string{"b"}, nil)
	s, err := Initialize(l)
	require.NoError(t, err)

	s, err = s.ToggleActionItem(0, "a")
	require.NoError(t, err)

	tests := []struct {
		name  string
		step  int
		item  string
		cause error
	}{
		{"step past end", 5, "x", ErrStepOutOfRange},
		{"negative step", -1, "a", ErrStepOutOfRange},
		{"item from another step", 0, "b", ErrUnknownActionItem},
		{"item on empty step", 2, "a", ErrUnknownActionItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := s.ToggleActionItem(tt.step, tt.item)
			require.ErrorIs(t, err, ErrInvalidReference)
			require.ErrorIs(t, err, tt.cause)

			var refErr *ReferenceError
			require.ErrorAs(t, err, &refErr)
			assert.Equal(t, tt.step, refErr.Step)
			assert.Equal(t, tt.item, refErr.ActionItem)

			assert.Equal(t, s.Completion(), got.Completion(), "state unchanged")
			assert.Equal(t, s.CurrentStepIndex(), got.CurrentStepIndex())
		})
	}
}

func TestQueriesOutOfRange(t *testing.T) {
	t.Parallel()

	l := newLesson(t, []string{"a"})
	s, err := Initialize(l)
	require.NoError(t, err)

	assert.False(t, s.IsStepComplete(3))
	assert.False(t, s.IsStepComplete(-1))
	assert.Equal(t, 0, s.CompletedCount(3))
	assert.False(t, s.IsCompleted(3, "a"))
	assert.Nil(t, s.ItemList(3))
}

func TestZeroState(t *testing.T) {
	t.Parallel()

	var s State

	_, err := s.ToggleActionItem(0, "a")
	require.ErrorIs(t, err, ErrUninitialized)

	assert.False(t, s.IsStepComplete(0))
	assert.False(t, s.IsLessonComplete())
	assert.False(t, s.IsLastStep())
	assert.Empty(t, s.Completion())
	assert.Equal(t, Snapshot{}, s.Snapshot())

	_, err = s.withCurrentStep(0)
	require.ErrorIs(t, err, ErrUninitialized)
}

func TestItemList(t *testing.T) {
	t.Parallel()

	l := newLesson(t, []string{"a", "b"})
	s, err := Initialize(l)
	require.NoError(t, err)

	s, err = s.ToggleActionItem(0, "b")
	require.NoError(t, err)

	assert.Equal(t, []ItemStatus{
		{ID: "a", Label: "label a", Completed: false},
		{ID: "b", Label: "label b", Completed: true},
	}, s.ItemList(0))
}

func TestLessonCompleteOnlyDependsOnFinalStep(t *testing.T) {
	t.Parallel()

	single := newLesson(t, nil)
	s, err := Initialize(single)
	require.NoError(t, err)
	assert.True(t, s.IsLessonComplete(), "one step without items is complete immediately")

	l := newLesson(t, []string{"a"}, []string{"b"})
	s, err = Initialize(l)
	require.NoError(t, err)

	s, err = s.ToggleActionItem(1, "b")
	require.NoError(t, err)
	assert.True(t, s.IsLessonComplete())
}

func TestIsFinishedRequiresLastStep(t *testing.T) {
	t.Parallel()

	l := newLesson(t, []string{"a"}, nil)
	s, err := Initialize(l)
	require.NoError(t, err)

	assert.True(t, s.IsLessonComplete(), "an empty final step is complete from the start")
	assert.False(t, s.IsFinished())

	s, err = s.withCurrentStep(1)
	require.NoError(t, err)
	assert.True(t, s.IsFinished())

	gated := newLesson(t, []string{"a"})
	s, err = Initialize(gated)
	require.NoError(t, err)
	assert.False(t, s.IsFinished())

	s, err = s.ToggleActionItem(0, "a")
	require.NoError(t, err)
	assert.True(t, s.IsFinished())
}

func TestWithCurrentStepBounds(t *testing.T) {
	t.Parallel()

	l := newLesson(t, nil, nil)
	s, err := Initialize(l)
	require.NoError(t, err)

	_, err = s.withCurrentStep(2)
	require.ErrorIs(t, err, ErrInvalidReference)

	_, err = s.withCurrentStep(-1)
	require.ErrorIs(t, err, ErrStepOutOfRange)

	moved, err := s.withCurrentStep(1)
	require.NoError(t, err)
	assert.True(t, moved.IsLastStep())
	assert.Equal(t, 0, s.CurrentStepIndex())
}
