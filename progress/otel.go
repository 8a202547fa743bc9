package progress

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/amp-labs/lesson-engine/progress"

// startNavigationSpan creates a span for one navigation attempt.
// The caller is responsible for calling finishSpan.
//
//nolint:spancheck // Span lifecycle managed by caller
func startNavigationSpan(ctx context.Context, direction string, s State) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "progress."+direction)

	labels := GetObservabilityLabels(ctx)

	lessonID := ""
	if s.lesson != nil {
		lessonID = s.lesson.ID
	}

	span.SetAttributes(
		attribute.String("lesson_id", lessonID),
		attribute.String("session_id", labels.SessionID),
		attribute.Int("step_index", s.current),
		attribute.Int("step_count", s.lesson.StepCount()),
	)

	return ctx, span
}

// finishSpan records the outcome and ends the span.
func finishSpan(span trace.Span, outcome string, to int, err error) {
	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("to_step_index", to),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, outcome)
	}

	span.End()
}
