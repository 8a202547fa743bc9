package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#F28C28")
	success = lipgloss.Color("#8BC34A")
	warning = lipgloss.Color("#FFC107")
	muted   = lipgloss.Color("#8A8F98")
)

// Styles holds the lipgloss styles used to draw a step.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Body      lipgloss.Style
	Tip       lipgloss.Style
	Checked   lipgloss.Style
	Unchecked lipgloss.Style
	Progress  lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Frame     lipgloss.Style
}

// DefaultStyles returns the colored terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(accent).
			Padding(0, 1).
			Bold(true),
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Heading: lipgloss.NewStyle().
			Bold(true),
		Body: lipgloss.NewStyle(),
		Tip: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Checked: lipgloss.NewStyle().
			Foreground(success),
		Unchecked: lipgloss.NewStyle(),
		Progress: lipgloss.NewStyle().
			Foreground(muted),
		Success: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
	}
}

// PlainStyles returns styles without color or borders, for pipes and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()

	return Styles{
		Header:    plain,
		Title:     plain,
		Heading:   plain,
		Body:      plain,
		Tip:       plain,
		Checked:   plain,
		Unchecked: plain,
		Progress:  plain,
		Success:   plain,
		Warning:   plain,
		Frame:     plain,
	}
}
