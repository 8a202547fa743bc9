package progress

import (
	"context"
	"log/slog"

	"github.com/amp-labs/lesson-engine/logger"
)

// Logger provides logging hooks for progression events.
type Logger interface {
	ActionItemToggled(ctx context.Context, lessonID string, step int, actionItemID string, completed bool)
	StepAdvanced(ctx context.Context, lessonID string, from, to int)
	StepRetreated(ctx context.Context, lessonID string, from, to int)
	AdvanceBlocked(ctx context.Context, lessonID string, step, completed, total int)
	LessonCompleted(ctx context.Context, lessonID string)
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionContextKey contextKey = "progress_session"

// ObservabilityLabels contains contextual labels for observability.
type ObservabilityLabels struct {
	SessionID string
	LessonID  string
}

func withLabels(ctx context.Context, labels ObservabilityLabels) context.Context {
	return context.WithValue(ctx, sessionContextKey, labels)
}

// GetObservabilityLabels extracts the session labels a Session attached to ctx.
// Returns an empty ObservabilityLabels if there are none.
func GetObservabilityLabels(ctx context.Context) ObservabilityLabels {
	if ctx == nil {
		return ObservabilityLabels{}
	}

	labels, _ := ctx.Value(sessionContextKey).(ObservabilityLabels)

	return labels
}

// DefaultLogger implements Logger using slog.
type DefaultLogger struct {
	base *slog.Logger
}

// NewDefaultLogger returns a logger that writes through logger.Get, picking up
// the subsystem and key-values attached to each call's context.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{}
}

// NewSlogLogger returns a DefaultLogger that writes to l.
func NewSlogLogger(l *slog.Logger) *DefaultLogger {
	return &DefaultLogger{base: l}
}

func (l *DefaultLogger) get(ctx context.Context, lessonID string) *slog.Logger {
	base := l.base
	if base == nil {
		base = logger.Get(ctx)
	}

	base = base.With("lesson_id", lessonID)

	if labels := GetObservabilityLabels(ctx); labels.SessionID != "" {
		base = base.With("session_id", labels.SessionID)
	}

	return base
}

func (l *DefaultLogger) ActionItemToggled(
	ctx context.Context, lessonID string, step int, actionItemID string, completed bool,
) {
	l.get(ctx, lessonID).DebugContext(ctx, "Action item toggled",
		"step", step,
		"action_item", actionItemID,
		"completed", completed,
	)
}

func (l *DefaultLogger) StepAdvanced(ctx context.Context, lessonID string, from, to int) {
	l.get(ctx, lessonID).InfoContext(ctx, "Step advanced", "from", from, "to", to)
}

func (l *DefaultLogger) StepRetreated(ctx context.Context, lessonID string, from, to int) {
	l.get(ctx, lessonID).InfoContext(ctx, "Step retreated", "from", from, "to", to)
}

// AdvanceBlocked logs at warn: a correct presentation layer disables its
// "next" control, so reaching this means the caller drifted out of sync.
func (l *DefaultLogger) AdvanceBlocked(ctx context.Context, lessonID string, step, completed, total int) {
	l.get(ctx, lessonID).WarnContext(ctx, "Advance blocked by incomplete step",
		"step", step,
		"completed", completed,
		"total", total,
	)
}

func (l *DefaultLogger) LessonCompleted(ctx context.Context, lessonID string) {
	l.get(ctx, lessonID).InfoContext(ctx, "Lesson completed")
}

// NopLogger discards every event.
type NopLogger struct{}

func (NopLogger) ActionItemToggled(context.Context, string, int, string, bool) {}

func (NopLogger) StepAdvanced(context.Context, string, int, int) {}

func (NopLogger) StepRetreated(context.Context, string, int, int) {}

func (NopLogger) AdvanceBlocked(context.Context, string, int, int, int) {}

func (NopLogger) LessonCompleted(context.Context, string) {}
