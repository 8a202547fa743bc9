package testing

import (
	"context"

	"github.com/amp-labs/lesson-engine/progress"
)

// Event kinds recorded by Recorder.
const (
	EventToggled   = "toggled"
	EventAdvanced  = "advanced"
	EventRetreated = "retreated"
	EventBlocked   = "blocked"
	EventCompleted = "completed"
)

// Recorder is a progress.Logger that keeps every event for later assertions.
type Recorder struct {
	Events []Event
}

// Event is one recorded progression event.
type Event struct {
	Kind       string
	LessonID   string
	Step       int
	To         int
	ActionItem string
	Completed  bool
	SessionID  string
}

var _ progress.Logger = (*Recorder)(nil)

func (r *Recorder) add(ctx context.Context, e Event) {
	e.SessionID = progress.GetObservabilityLabels(ctx).SessionID
	r.Events = append(r.Events, e)
}

func (r *Recorder) ActionItemToggled(
	ctx context.Context, lessonID string, step int, actionItemID string, completed bool,
) {
	r.add(ctx, Event{Kind: EventToggled, LessonID: lessonID, Step: step, ActionItem: actionItemID, Completed: completed})
}

func (r *Recorder) StepAdvanced(ctx context.Context, lessonID string, from, to int) {
	r.add(ctx, Event{Kind: EventAdvanced, LessonID: lessonID, Step: from, To: to})
}

func (r *Recorder) StepRetreated(ctx context.Context, lessonID string, from, to int) {
	r.add(ctx, Event{Kind: EventRetreated, LessonID: lessonID, Step: from, To: to})
}

func (r *Recorder) AdvanceBlocked(ctx context.Context, lessonID string, step, _, _ int) {
	r.add(ctx, Event{Kind: EventBlocked, LessonID: lessonID, Step: step})
}

func (r *Recorder) LessonCompleted(ctx context.Context, lessonID string) {
	r.add(ctx, Event{Kind: EventCompleted, LessonID: lessonID})
}

// Kinds returns the recorded event kinds in order.
func (r *Recorder) Kinds() []string {
	kinds := make([]string, len(r.Events))
	for i, e := range r.Events {
		kinds[i] = e.Kind
	}

	return kinds
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0

	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}

	return n
}
