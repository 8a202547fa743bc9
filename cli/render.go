package cli

import (
	"fmt"
	"strings"

	"github.com/amp-labs/lesson-engine/lesson"
	"github.com/amp-labs/lesson-engine/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	checkedBox   = "[x]"
	uncheckedBox = "[ ]"
)

// RenderView draws the current step of a session.
func RenderView(v progress.View, st Styles) string {
	parts := []string{
		st.Header.Render(fmt.Sprintf("%s · %s", v.LessonTitle, v.Position())),
		st.Title.Render(v.Step.Title),
	}

	parts = append(parts, renderContent(v.Step.Content, st)...)

	if len(v.Items) > 0 {
		items := make([]string, len(v.Items))
		for i, item := range v.Items {
			items[i] = checklistLine(item, st)
		}

		parts = append(parts, strings.Join(items, "\n"), st.Progress.Render(v.Progress()))
	}

	switch {
	case v.Finished:
		parts = append(parts, st.Success.Render("Lesson complete!"))
	case v.StepComplete:
		parts = append(parts, st.Success.Render("Step complete."))
	default:
		parts = append(parts, st.Warning.Render("Check every action item to continue."))
	}

	return st.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, joinBlocks(parts)...))
}

// RenderLesson draws every step and action item of l, without progress.
func RenderLesson(l *lesson.Lesson, st Styles) string {
	parts := []string{st.Header.Render(l.Title)}

	if l.Summary != "" {
		parts = append(parts, st.Body.Render(l.Summary))
	}

	for i, step := range l.Steps {
		lines := []string{st.Title.Render(fmt.Sprintf("%d. %s", i+1, step.Title))}

		for _, item := range step.ActionItems {
			lines = append(lines, fmt.Sprintf("   %s %s %s", uncheckedBox, item.Label, st.Progress.Render("("+item.ID+")")))
		}

		if len(step.ActionItems) == 0 {
			lines = append(lines, st.Progress.Render("   no action items"))
		}

		parts = append(parts, strings.Join(lines, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, joinBlocks(parts)...)
}

func renderContent(c lesson.Content, st Styles) []string {
	var parts []string

	if c.Heading != "" {
		parts = append(parts, st.Heading.Render(c.Heading))
	}

	if body := strings.TrimSpace(c.Body); body != "" {
		parts = append(parts, st.Body.Render(body))
	}

	for _, tip := range c.Tips {
		parts = append(parts, st.Tip.Render("Tip: "+tip))
	}

	return parts
}

func checklistLine(item progress.ItemStatus, st Styles) string {
	if item.Completed {
		return st.Checked.Render(checkedBox + " " + item.Label)
	}

	return st.Unchecked.Render(uncheckedBox + " " + item.Label)
}

// joinBlocks puts a blank line between blocks.
func joinBlocks(parts []string) []string {
	out := make([]string, 0, len(parts)*2)

	for i, p := range parts {
		if i > 0 {
			out = append(out, "")
		}

		out = append(out, p)
	}

	return out
}
