package lesson

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Validate checks the schema rules: a non-empty ID, at least one step, and
// non-blank action item IDs that are unique within their step. Every violation
// is reported; the result is nil or an error matching ErrMalformedLesson.
func (l *Lesson) Validate() error {
	if l == nil {
		return &ValidationError{Step: -1, Err: ErrNoSteps}
	}

	var problems []error

	if strings.TrimSpace(l.ID) == "" {
		problems = append(problems, &ValidationError{Step: -1, Err: ErrLessonIDRequired})
	}

	if len(l.Steps) == 0 {
		problems = append(problems, &ValidationError{LessonID: l.ID, Step: -1, Err: ErrNoSteps})
	}

	for i, step := range l.Steps {
		seen := make(map[string]struct{}, len(step.ActionItems))

		for _, item := range step.ActionItems {
			key := normalizeID(item.ID)
			if key == "" {
				problems = append(problems, &ValidationError{LessonID: l.ID, Step: i, Err: ErrActionItemIDRequired})

				continue
			}

			if _, dup := seen[key]; dup {
				problems = append(problems, &ValidationError{
					LessonID:   l.ID,
					Step:       i,
					ActionItem: item.ID,
					Err:        ErrDuplicateActionItem,
				})

				continue
			}

			seen[key] = struct{}{}
		}
	}

	return errors.Join(problems...)
}

// normalizeID puts an action item ID in NFC form so that visually identical
// IDs compare equal.
func normalizeID(id string) string {
	return norm.NFC.String(strings.TrimSpace(id))
}
