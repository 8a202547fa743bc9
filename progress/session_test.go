package progress_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amp-labs/lesson-engine/lesson"
	"github.com/amp-labs/lesson-engine/progress"
	ptesting "github.com/amp-labs/lesson-engine/progress/testing"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, l *lesson.Lesson, opts ...progress.SessionOption) *progress.Session {
	t.Helper()

	sess, err := progress.NewSession(l, opts...)
	require.NoError(t, err)

	t.Cleanup(sess.Close)

	return sess
}

func TestSessionWalkthrough(t *testing.T) {
	t.Parallel()

	rec := &ptesting.Recorder{}
	sess := newSession(t, ptesting.ThreeStepLesson(t), progress.WithLogger(rec), progress.WithSessionID("walk"))
	ctx := t.Context()

	assert.Equal(t, "walk", sess.ID())
	assert.Equal(t, "Step 1 of 3", sess.View().Position())

	require.NoError(t, sess.ToggleCurrent(ctx, "A"))
	require.NoError(t, sess.ToggleCurrent(ctx, "B"))
	require.NoError(t, sess.Advance(ctx))
	require.NoError(t, sess.ToggleCurrent(ctx, "C"))
	require.NoError(t, sess.Advance(ctx))
	require.NoError(t, sess.ToggleCurrent(ctx, "D"))

	view := sess.View()
	assert.True(t, view.LessonComplete)
	assert.True(t, view.IsLastStep)
	assert.False(t, view.CanAdvance)
	assert.Equal(t, "1 of 1 completed", view.Progress())

	require.NoError(t, sess.Retreat(ctx))
	assert.Equal(t, 1, sess.State().CurrentStepIndex())

	assert.Equal(t, []string{
		ptesting.EventToggled,
		ptesting.EventToggled,
		ptesting.EventAdvanced,
		ptesting.EventToggled,
		ptesting.EventAdvanced,
		ptesting.EventToggled,
		ptesting.EventCompleted,
		ptesting.EventRetreated,
	}, rec.Kinds())

	for _, e := range rec.Events {
		assert.Equal(t, "walk", e.SessionID)
		assert.Equal(t, "three-step", e.LessonID)
	}
}

func TestSessionLessonCompletedOnEdgeOnly(t *testing.T) {
	t.Parallel()

	rec := &ptesting.Recorder{}
	sess := newSession(t, ptesting.Lesson(t, "edge", 1), progress.WithLogger(rec))
	ctx := t.Context()
	item := ptesting.ItemID(0, 0)

	require.NoError(t, sess.ToggleCurrent(ctx, item))
	require.NoError(t, sess.ToggleCurrent(ctx, item))
	require.NoError(t, sess.ToggleCurrent(ctx, item))

	assert.Equal(t, 2, rec.Count(ptesting.EventCompleted))

	open := &ptesting.Recorder{}
	already := newSession(t, ptesting.Lesson(t, "vacuous", 0), progress.WithLogger(open))
	assert.True(t, already.View().LessonComplete)
	assert.Zero(t, open.Count(ptesting.EventCompleted))
}

func TestSessionCompletesOnArrivalAtEmptyFinalStep(t *testing.T) {
	t.Parallel()

	rec := &ptesting.Recorder{}
	sess := newSession(t, ptesting.Lesson(t, "trailing", 1, 0), progress.WithLogger(rec))
	ctx := t.Context()

	assert.True(t, sess.View().LessonComplete)
	assert.False(t, sess.View().Finished)

	require.NoError(t, sess.ToggleCurrent(ctx, ptesting.ItemID(0, 0)))
	assert.Zero(t, rec.Count(ptesting.EventCompleted))

	require.NoError(t, sess.Advance(ctx))
	assert.True(t, sess.View().Finished)
	assert.Equal(t, 1, rec.Count(ptesting.EventCompleted))

	require.NoError(t, sess.Retreat(ctx))
	assert.False(t, sess.View().Finished)

	require.NoError(t, sess.Advance(ctx))
	assert.Equal(t, 2, rec.Count(ptesting.EventCompleted))
}

func TestSessionRefusals(t *testing.T) {
	t.Parallel()

	sess := newSession(t, ptesting.ThreeStepLesson(t), progress.WithLogger(progress.NopLogger{}))
	ctx := t.Context()

	err := sess.Advance(ctx)
	require.ErrorIs(t, err, progress.ErrStepIncomplete)
	assert.Equal(t, 0, sess.State().CurrentStepIndex())

	err = sess.JumpTo(ctx, 2)
	require.ErrorIs(t, err, progress.ErrStepLocked)

	err = sess.Toggle(ctx, 5, "x")
	require.ErrorIs(t, err, progress.ErrInvalidReference)
	assert.Empty(t, sess.State().Completion())
}

func TestSessionPermissiveAndStrictToggles(t *testing.T) {
	t.Parallel()

	l := ptesting.ThreeStepLesson(t)

	loose := newSession(t, l, progress.WithLogger(progress.NopLogger{}))
	require.NoError(t, loose.Toggle(t.Context(), 2, "D"))
	assert.True(t, loose.State().IsCompleted(2, "D"))
	assert.Equal(t, 0, loose.State().CurrentStepIndex())

	strict := newSession(t, l, progress.WithLogger(progress.NopLogger{}), progress.WithStrictToggles())
	err := strict.Toggle(t.Context(), 2, "D")
	require.ErrorIs(t, err, progress.ErrStepLocked)
	assert.False(t, strict.State().IsCompleted(2, "D"))
	require.NoError(t, strict.Toggle(t.Context(), 0, "A"))
}

func TestSessionSubscribers(t *testing.T) {
	t.Parallel()

	sess := newSession(t, ptesting.ThreeStepLesson(t), progress.WithLogger(progress.NopLogger{}))
	ctx := t.Context()

	var first, second []progress.View

	unsubscribe := sess.Subscribe(func(v progress.View) { first = append(first, v) })
	sess.Subscribe(func(v progress.View) { second = append(second, v) })

	require.NoError(t, sess.ToggleCurrent(ctx, "A"))
	unsubscribe()
	require.NoError(t, sess.ToggleCurrent(ctx, "B"))

	require.Len(t, first, 1)
	require.Len(t, second, 2)
	assert.Equal(t, 1, first[0].CompletedCount)
	assert.True(t, second[1].CanAdvance)
	assert.Equal(t, sess.ID(), second[1].SessionID)

	// A refused or no-op move isn't a change.
	require.NoError(t, sess.Retreat(ctx))
	assert.Len(t, second, 2)
}

func TestSessionClosed(t *testing.T) {
	t.Parallel()

	sess, err := progress.NewSession(ptesting.ThreeStepLesson(t), progress.WithLogger(progress.NopLogger{}))
	require.NoError(t, err)

	sess.Close()
	sess.Close()
	assert.True(t, sess.Closed())

	ctx := t.Context()
	require.ErrorIs(t, sess.ToggleCurrent(ctx, "A"), progress.ErrSessionClosed)
	require.ErrorIs(t, sess.Advance(ctx), progress.ErrSessionClosed)
	require.ErrorIs(t, sess.Retreat(ctx), progress.ErrSessionClosed)
	require.ErrorIs(t, sess.JumpTo(ctx, 0), progress.ErrSessionClosed)
}

func TestNewSessionRejectsMalformedLesson(t *testing.T) {
	t.Parallel()

	_, err := progress.NewSession(&lesson.Lesson{ID: "broken"})
	require.ErrorIs(t, err, lesson.ErrMalformedLesson)
}

func TestSessionWithSlogLogger(t *testing.T) {
	t.Parallel()

	log := progress.NewSlogLogger(slogt.New(t))
	sess := newSession(t, ptesting.ThreeStepLesson(t), progress.WithLogger(log))
	ctx := t.Context()

	require.Error(t, sess.Advance(ctx))
	require.NoError(t, sess.ToggleCurrent(ctx, "A"))
	require.NoError(t, sess.ToggleCurrent(ctx, "B"))
	require.NoError(t, sess.Advance(ctx))
}

type fakeRenderer struct {
	views []progress.View
	err   error
}

func (r *fakeRenderer) Render(_ context.Context, v progress.View) error {
	r.views = append(r.views, v)

	return r.err
}

func TestBind(t *testing.T) {
	t.Parallel()

	sess := newSession(t, ptesting.ThreeStepLesson(t), progress.WithLogger(progress.NopLogger{}))
	r := &fakeRenderer{}

	unbind, err := progress.Bind(t.Context(), sess, r)
	require.NoError(t, err)

	require.NoError(t, sess.ToggleCurrent(t.Context(), "A"))
	require.Len(t, r.views, 2)
	assert.Equal(t, []progress.ItemStatus{
		{ID: "A", Label: "First task", Completed: true},
		{ID: "B", Label: "Second task", Completed: false},
	}, r.views[1].Items)

	unbind()
	require.NoError(t, sess.ToggleCurrent(t.Context(), "B"))
	assert.Len(t, r.views, 2)
}

func TestBindInitialRenderFails(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken terminal")
	sess := newSession(t, ptesting.ThreeStepLesson(t), progress.WithLogger(progress.NopLogger{}))

	unbind, err := progress.Bind(t.Context(), sess, &fakeRenderer{err: errBroken})
	require.ErrorIs(t, err, errBroken)
	assert.Nil(t, unbind)
}
