package progress

import (
	"context"
	"fmt"

	"github.com/amp-labs/lesson-engine/lesson"
)

// View is everything a presentation layer needs to draw the current step.
// Treat it as read-only; subscribers of one change share the same Items slice.
type View struct {
	SessionID   string
	LessonID    string
	LessonTitle string

	StepIndex int
	StepCount int
	Step      lesson.Step
	Items     []ItemStatus

	CompletedCount int
	TotalCount     int

	// StepComplete gates the "next" control; CanAdvance additionally
	// accounts for being on the last step.
	StepComplete   bool
	CanAdvance     bool
	CanRetreat     bool
	IsLastStep     bool
	LessonComplete bool

	// Finished is LessonComplete while standing on the last step.
	Finished bool
}

// NewView builds the read model for s.
func NewView(s State, nav *Navigator) View {
	if s.lesson == nil {
		return View{}
	}

	step, _ := s.CurrentStep()

	return View{
		LessonID:       s.lesson.ID,
		LessonTitle:    s.lesson.Title,
		StepIndex:      s.current,
		StepCount:      s.lesson.StepCount(),
		Step:           step,
		Items:          s.ItemList(s.current),
		CompletedCount: s.CompletedCount(s.current),
		TotalCount:     len(step.ActionItems),
		StepComplete:   s.IsStepComplete(s.current),
		CanAdvance:     nav.CanAdvance(s),
		CanRetreat:     nav.CanRetreat(s),
		IsLastStep:     s.IsLastStep(),
		LessonComplete: s.IsLessonComplete(),
		Finished:       s.IsFinished(),
	}
}

// Progress renders the "N of M completed" line for the current step.
func (v View) Progress() string {
	return fmt.Sprintf("%d of %d completed", v.CompletedCount, v.TotalCount)
}

// Position renders "Step N of M" with a 1-based step number.
func (v View) Position() string {
	return fmt.Sprintf("Step %d of %d", v.StepIndex+1, v.StepCount)
}

// Renderer is the presentation side of the engine: it draws a View and wires
// its controls back to a Session. It must not offer "next" while
// View.CanAdvance is false; Session.Advance still refuses if it does.
type Renderer interface {
	Render(ctx context.Context, view View) error
}

// Bind renders the session's current view and re-renders after every change
// until the returned function is called. Errors from later renders are
// logged, since nothing is waiting on them.
func Bind(ctx context.Context, sess *Session, r Renderer) (func(), error) {
	if err := r.Render(ctx, sess.View()); err != nil {
		return nil, err
	}

	ctx = sess.context(ctx)

	return sess.Subscribe(func(v View) {
		if err := r.Render(ctx, v); err != nil {
			sess.warn(ctx, "render failed", err)
		}
	}), nil
}
