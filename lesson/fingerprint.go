package lesson

import (
	"strconv"

	"github.com/zeebo/xxh3"
)

// Fingerprint returns a short, stable hash of the lesson's structure: its ID
// and the ordered action item IDs of every step. Display content is not part
// of the fingerprint, so prose edits don't invalidate recorded progress while
// adding, removing or reordering action items does.
func (l *Lesson) Fingerprint() string {
	if l == nil {
		return ""
	}

	h := xxh3.New()

	_, _ = h.WriteString(l.ID)

	for i, step := range l.Steps {
		_, _ = h.WriteString("\x00step:")
		_, _ = h.WriteString(strconv.Itoa(i))

		for _, item := range step.ActionItems {
			_, _ = h.WriteString("\x00")
			_, _ = h.WriteString(normalizeID(item.ID))
		}
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
