// Package visualizer renders lessons as Mermaid state diagrams, one node per
// step, with forward edges gated by that step's action items.
package visualizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amp-labs/lesson-engine/lesson"
)

// ErrLessonNil is returned when no lesson is given.
var ErrLessonNil = errors.New("lesson cannot be nil")

// GenerateMermaid converts a lesson to a Mermaid state diagram.
func GenerateMermaid(l *lesson.Lesson) (string, error) {
	return GenerateMermaidWithOptions(l, DefaultOptions())
}

// GenerateMermaidFromFile loads a lesson file and generates a Mermaid diagram.
func GenerateMermaidFromFile(path string, opts Options) (string, error) {
	l, err := lesson.LoadFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to load lesson: %w", err)
	}

	return GenerateMermaidWithOptions(l, opts)
}

// GenerateMermaidWithOptions generates a Mermaid diagram with custom options.
func GenerateMermaidWithOptions(l *lesson.Lesson, opts Options) (string, error) {
	if l == nil {
		return "", ErrLessonNil
	}

	if err := l.Validate(); err != nil {
		return "", err
	}

	direction := opts.Direction
	if direction == "" {
		direction = "LR"
	}

	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString(fmt.Sprintf("    direction %s\n", direction))
	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", nodeName(0)))

	for i, step := range l.Steps {
		node := nodeName(i)

		label := escape(step.Title)
		if label == "" {
			label = fmt.Sprintf("Step %d", i+1)
		}

		if opts.ShowActionItems && len(step.ActionItems) > 0 {
			ids := make([]string, len(step.ActionItems))
			for j, item := range step.ActionItems {
				ids[j] = escape(item.ID)
			}

			label = fmt.Sprintf("%s\\n[%s]", label, strings.Join(ids, ", "))
		}

		sb.WriteString(fmt.Sprintf("    %s: %s\n", node, label))

		switch {
		case opts.Highlight != nil && i == *opts.Highlight:
			sb.WriteString(fmt.Sprintf("    class %s current\n", node))
		case len(step.ActionItems) == 0:
			sb.WriteString(fmt.Sprintf("    class %s openStep\n", node))
		default:
			sb.WriteString(fmt.Sprintf("    class %s gatedStep\n", node))
		}

		if i < l.LastIndex() {
			sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n", node, nodeName(i+1), gateLabel(len(step.ActionItems))))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> [*]: %s\n", node, gateLabel(len(step.ActionItems))))
		}

		if opts.ShowRetreat && i > 0 {
			sb.WriteString(fmt.Sprintf("    %s --> %s: back\n", node, nodeName(i-1)))
		}
	}

	sb.WriteString("\n")
	sb.WriteString("    classDef gatedStep fill:#fff3e0,stroke:#e65100,stroke-width:2px\n")
	sb.WriteString("    classDef openStep fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px\n")
	sb.WriteString("    classDef current fill:#fff9c4,stroke:#f57f17,stroke-width:3px\n")
	sb.WriteString("```\n")

	return sb.String(), nil
}

func nodeName(i int) string {
	return fmt.Sprintf("step_%d", i)
}

func gateLabel(items int) string {
	switch items {
	case 0:
		return "open"
	case 1:
		return "1 item"
	default:
		return fmt.Sprintf("%d items", items)
	}
}

// escape strips characters that break Mermaid label parsing.
func escape(s string) string {
	return strings.NewReplacer(":", " -", "\n", " ", "\"", "'").Replace(strings.TrimSpace(s))
}
