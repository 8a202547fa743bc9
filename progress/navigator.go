package progress

import (
	"context"
	"errors"
)

// Navigator is the only way to move a State between steps. Forward moves are
// one step at a time and gated on the current step being complete; backward
// moves are never gated.
//
// The zero Navigator is usable and logs nothing.
type Navigator struct {
	logger Logger
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithNavigatorLogger sets the logging hooks for navigation events.
func WithNavigatorLogger(l Logger) NavigatorOption {
	return func(n *Navigator) {
		n.logger = l
	}
}

// NewNavigator creates a Navigator.
func NewNavigator(opts ...NavigatorOption) *Navigator {
	n := &Navigator{}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

func (n *Navigator) log() Logger {
	if n == nil || n.logger == nil {
		return NopLogger{}
	}

	return n.logger
}

// CanAdvance reports whether Advance would move s forward. Presentation
// layers use it to enable their "next" control.
func (n *Navigator) CanAdvance(s State) bool {
	return s.lesson != nil && !s.IsLastStep() && s.IsStepComplete(s.current)
}

// CanRetreat reports whether Retreat would move s backward.
func (n *Navigator) CanRetreat(s State) bool {
	return s.current > 0
}

// Advance moves to the next step.
//   - On the last step it is a no-op: there is no next target.
//   - If the current step is incomplete it returns s unchanged and a
//     *StepError matching ErrStepIncomplete.
func (n *Navigator) Advance(ctx context.Context, s State) (State, error) {
	ctx, span := startNavigationSpan(ctx, directionAdvance, s)

	next, outcome, err := n.advance(ctx, s)

	finishSpan(span, outcome, next.current, err)

	return next, err
}

func (n *Navigator) advance(ctx context.Context, s State) (State, string, error) {
	if s.lesson == nil {
		return s, outcomeError, ErrUninitialized
	}

	lessonID := s.lesson.ID

	if s.IsLastStep() {
		recordTransition(lessonID, directionAdvance, outcomeNoop)

		return s, outcomeNoop, nil
	}

	if !s.IsStepComplete(s.current) {
		completed := s.CompletedCount(s.current)
		total := len(s.lesson.Steps[s.current].ActionItems)

		n.log().AdvanceBlocked(ctx, lessonID, s.current, completed, total)
		recordTransition(lessonID, directionAdvance, outcomeBlocked)

		return s, outcomeBlocked, &StepError{
			Step:      s.current,
			Completed: completed,
			Total:     total,
			Err:       ErrStepIncomplete,
		}
	}

	next, err := s.withCurrentStep(s.current + 1)
	if err != nil {
		recordTransition(lessonID, directionAdvance, outcomeError)

		return s, outcomeError, err
	}

	n.log().StepAdvanced(ctx, lessonID, s.current, next.current)
	recordTransition(lessonID, directionAdvance, outcomeMoved)

	return next, outcomeMoved, nil
}

// Retreat moves to the previous step. It never fails; on step 0 (or an
// uninitialized State) it returns s unchanged.
func (n *Navigator) Retreat(ctx context.Context, s State) State {
	ctx, span := startNavigationSpan(ctx, directionRetreat, s)

	next, outcome := n.retreat(ctx, s, s.current-1, directionRetreat)

	finishSpan(span, outcome, next.current, nil)

	return next
}

func (n *Navigator) retreat(ctx context.Context, s State, target int, direction string) (State, string) {
	if s.lesson == nil || target < 0 || target >= s.current {
		if s.lesson != nil {
			recordTransition(s.lesson.ID, direction, outcomeNoop)
		}

		return s, outcomeNoop
	}

	next, err := s.withCurrentStep(target)
	if err != nil {
		return s, outcomeNoop
	}

	n.log().StepRetreated(ctx, s.lesson.ID, s.current, next.current)
	recordTransition(s.lesson.ID, direction, outcomeMoved)

	return next, outcomeMoved
}

// JumpTo moves directly to step k if it is unlocked.
//   - Any k at or below the current step is unlocked, since review is never
//     blocked.
//   - k == current+1 behaves exactly like Advance.
//   - Anything further ahead fails with ErrStepLocked; steps are never skipped.
//   - An index outside the lesson yields a *ReferenceError.
func (n *Navigator) JumpTo(ctx context.Context, s State, k int) (State, error) {
	ctx, span := startNavigationSpan(ctx, directionJump, s)

	next, outcome, err := n.jumpTo(ctx, s, k)

	finishSpan(span, outcome, next.current, err)

	return next, err
}

func (n *Navigator) jumpTo(ctx context.Context, s State, k int) (State, string, error) {
	if s.lesson == nil {
		return s, outcomeError, ErrUninitialized
	}

	if k < 0 || k > s.lesson.LastIndex() {
		recordTransition(s.lesson.ID, directionJump, outcomeError)

		return s, outcomeError, &ReferenceError{Step: k, Err: ErrStepOutOfRange}
	}

	switch {
	case k <= s.current:
		next, outcome := n.retreat(ctx, s, k, directionJump)

		return next, outcome, nil
	case k == s.current+1:
		return n.advance(ctx, s)
	default:
		recordTransition(s.lesson.ID, directionJump, outcomeBlocked)

		return s, outcomeBlocked, &StepError{Step: k, Err: ErrStepLocked}
	}
}

// IsRefusal reports whether err is a refused navigation rather than a
// programming error: the state is valid and simply stays where it is.
func IsRefusal(err error) bool {
	return errors.Is(err, ErrStepIncomplete) || errors.Is(err, ErrStepLocked)
}
