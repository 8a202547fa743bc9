// Package lesson defines the immutable shape of a guided lesson: an ordered
// list of steps, each carrying display content and a checklist of action items.
//
// A Lesson carries no progress of its own. Completion is tracked separately by
// the progress package so the same definition can be replayed fresh for every
// learner session.
package lesson

// Lesson is an externally authored, ordered sequence of steps. Treat a Lesson
// as read-only once it has been validated.
type Lesson struct {
	ID      string `json:"id"                yaml:"id"`
	Title   string `json:"title"             yaml:"title"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Steps   []Step `json:"steps"             yaml:"steps"`
}

// Step is one page of content plus zero or more action items. Its index is
// its position in Lesson.Steps.
type Step struct {
	Title       string       `json:"title"                 yaml:"title"`
	Content     Content      `json:"content"               yaml:"content"`
	ActionItems []ActionItem `json:"actionItems,omitempty" yaml:"actionItems,omitempty"`
}

// Content is an opaque display payload. The engine never interprets it.
type Content struct {
	Heading string         `json:"heading,omitempty" yaml:"heading,omitempty"`
	Body    string         `json:"body,omitempty"    yaml:"body,omitempty"`
	Tips    []string       `json:"tips,omitempty"    yaml:"tips,omitempty"`
	Extra   map[string]any `json:"extra,omitempty"   yaml:",inline"`
}

// ActionItem is a single checkable task. ID is unique within its step only.
type ActionItem struct {
	ID    string `json:"id"    yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// New builds a lesson from the given steps and validates it.
func New(id, title string, steps ...Step) (*Lesson, error) {
	l := &Lesson{
		ID:    id,
		Title: title,
		Steps: steps,
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}

	return l, nil
}

// StepCount returns the number of steps.
func (l *Lesson) StepCount() int {
	if l == nil {
		return 0
	}

	return len(l.Steps)
}

// LastIndex returns the highest valid step index, or -1 for an empty lesson.
func (l *Lesson) LastIndex() int {
	return l.StepCount() - 1
}

// Step returns the step at index i.
func (l *Lesson) Step(i int) (Step, bool) {
	if i < 0 || i >= l.StepCount() {
		return Step{}, false
	}

	return l.Steps[i], true
}

// ActionItemIndex returns the position of the action item with the given ID.
func (s Step) ActionItemIndex(id string) (int, bool) {
	key := normalizeID(id)

	for i, item := range s.ActionItems {
		if normalizeID(item.ID) == key {
			return i, true
		}
	}

	return -1, false
}

// TotalActionItems returns the number of action items across all steps.
func (l *Lesson) TotalActionItems() int {
	if l == nil {
		return 0
	}

	total := 0
	for _, s := range l.Steps {
		total += len(s.ActionItems)
	}

	return total
}
