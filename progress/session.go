package progress

import (
	"context"
	"slices"

	"github.com/amp-labs/lesson-engine/lesson"
	"github.com/amp-labs/lesson-engine/logger"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Session is the single owner of one learner's State for one presented
// lesson. It is created when the lesson is shown and discarded with it.
//
// A Session has a single writer and is not safe for concurrent mutation.
// Close may be called from any goroutine.
type Session struct {
	id     string
	nav    *Navigator
	logger Logger
	strict bool

	state     State
	completed bool

	subs      []subscription
	nextSubID int

	closed atomic.Bool
}

type subscription struct {
	id int
	fn func(View)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logging hooks. It also applies to the session's
// Navigator unless WithNavigator supplies one.
func WithLogger(l Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// WithNavigator supplies the Navigator used for step changes.
func WithNavigator(n *Navigator) SessionOption {
	return func(s *Session) {
		s.nav = n
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		s.id = id
	}
}

// WithStrictToggles refuses toggles on steps past the current one with
// ErrStepLocked. By default any step may be toggled.
func WithStrictToggles() SessionOption {
	return func(s *Session) {
		s.strict = true
	}
}

// NewSession starts a fresh pass through l.
func NewSession(l *lesson.Lesson, opts ...SessionOption) (*Session, error) {
	state, err := Initialize(l)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		id:     uuid.NewString(),
		logger: NewDefaultLogger(),
		state:  state,
	}

	for _, opt := range opts {
		opt(sess)
	}

	if sess.logger == nil {
		sess.logger = NopLogger{}
	}

	if sess.nav == nil {
		sess.nav = NewNavigator(WithNavigatorLogger(sess.logger))
	}

	sess.completed = state.IsFinished()

	activeSessions.WithLabelValues(sanitizeLesson(l.ID)).Inc()

	return sess, nil
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Lesson returns the lesson being presented.
func (s *Session) Lesson() *lesson.Lesson {
	return s.state.lesson
}

// State returns the current progression state.
func (s *Session) State() State {
	return s.state
}

// View returns the read model for the current state.
func (s *Session) View() View {
	v := NewView(s.state, s.nav)
	v.SessionID = s.id

	return v
}

// Navigator returns the session's Navigator.
func (s *Session) Navigator() *Navigator {
	return s.nav
}

// Toggle flips one action item.
func (s *Session) Toggle(ctx context.Context, stepIndex int, actionItemID string) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	if s.strict && stepIndex > s.state.current {
		return &StepError{Step: stepIndex, Err: ErrStepLocked}
	}

	next, err := s.state.ToggleActionItem(stepIndex, actionItemID)
	if err != nil {
		return err
	}

	ctx = s.context(ctx)
	completed := next.IsCompleted(stepIndex, actionItemID)

	s.logger.ActionItemToggled(ctx, s.state.lesson.ID, stepIndex, actionItemID, completed)
	recordToggle(s.state.lesson.ID, completed)

	s.commit(ctx, next)

	return nil
}

// ToggleCurrent flips an action item on the current step.
func (s *Session) ToggleCurrent(ctx context.Context, actionItemID string) error {
	return s.Toggle(ctx, s.state.current, actionItemID)
}

// Advance moves to the next step; see Navigator.Advance.
func (s *Session) Advance(ctx context.Context) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	ctx = s.context(ctx)

	next, err := s.nav.Advance(ctx, s.state)
	if err != nil {
		return err
	}

	if next.current != s.state.current {
		s.commit(ctx, next)
	}

	return nil
}

// Retreat moves to the previous step; see Navigator.Retreat.
func (s *Session) Retreat(ctx context.Context) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	ctx = s.context(ctx)

	next := s.nav.Retreat(ctx, s.state)
	if next.current != s.state.current {
		s.commit(ctx, next)
	}

	return nil
}

// JumpTo moves to step k if it is unlocked; see Navigator.JumpTo.
func (s *Session) JumpTo(ctx context.Context, k int) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	ctx = s.context(ctx)

	next, err := s.nav.JumpTo(ctx, s.state, k)
	if err != nil {
		return err
	}

	if next.current != s.state.current {
		s.commit(ctx, next)
	}

	return nil
}

// Subscribe registers fn to receive the new View after every state change.
// Subscribers run synchronously, in registration order. The returned
// function removes the subscription.
func (s *Session) Subscribe(fn func(View)) func() {
	id := s.nextSubID
	s.nextSubID++

	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// Close ends the session. Later mutations fail with ErrSessionClosed.
// Calling Close more than once is harmless.
func (s *Session) Close() {
	if s.closed.CompareAndSwap(false, true) {
		activeSessions.WithLabelValues(sanitizeLesson(s.state.lesson.ID)).Dec()
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

func (s *Session) commit(ctx context.Context, next State) {
	s.state = next

	done := next.IsFinished()
	if done && !s.completed {
		s.logger.LessonCompleted(ctx, next.lesson.ID)
		lessonsCompletedTotal.WithLabelValues(sanitizeLesson(next.lesson.ID)).Inc()
	}

	s.completed = done

	if len(s.subs) == 0 {
		return
	}

	view := s.View()

	for _, sub := range slices.Clone(s.subs) {
		sub.fn(view)
	}
}

// context attaches the session's labels for logging and tracing.
func (s *Session) context(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if GetObservabilityLabels(ctx).SessionID == s.id {
		return ctx
	}

	return withLabels(ctx, ObservabilityLabels{
		SessionID: s.id,
		LessonID:  s.state.lesson.ID,
	})
}

func (s *Session) warn(ctx context.Context, msg string, err error) {
	labels := GetObservabilityLabels(ctx)

	logger.Get(ctx).WarnContext(ctx, msg,
		"session_id", labels.SessionID,
		"lesson_id", labels.LessonID,
		"error", err,
	)
}
