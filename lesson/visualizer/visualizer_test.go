package visualizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amp-labs/lesson-engine/lesson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLesson(t *testing.T) *lesson.Lesson {
	t.Helper()

	l, err := lesson.New("plan", "Plan",
		lesson.Step{Title: "Concept: define it", ActionItems: []lesson.ActionItem{{ID: "menu"}, {ID: "audience"}}},
		lesson.Step{Title: "Numbers", ActionItems: []lesson.ActionItem{{ID: "budget"}}},
		lesson.Step{Title: "Review"},
	)
	require.NoError(t, err)

	return l
}

func TestGenerateMermaid(t *testing.T) {
	t.Parallel()

	out, err := GenerateMermaid(sampleLesson(t))
	require.NoError(t, err)

	assert.Contains(t, out, "stateDiagram-v2")
	assert.Contains(t, out, "[*] --> step_0")
	assert.Contains(t, out, "step_0 --> step_1: 2 items")
	assert.Contains(t, out, "step_1 --> step_2: 1 item")
	assert.Contains(t, out, "step_2 --> [*]: open")
	assert.Contains(t, out, `step_0: Concept - define it\n[menu, audience]`)
	assert.Contains(t, out, "class step_2 openStep")
	assert.NotContains(t, out, ": back")
}

func TestGenerateMermaidWithOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions().
		WithShowActionItems(false).
		WithShowRetreat(true).
		WithDirection("TD").
		WithHighlight(1)

	out, err := GenerateMermaidWithOptions(sampleLesson(t), opts)
	require.NoError(t, err)

	assert.Contains(t, out, "direction TD")
	assert.Contains(t, out, "step_1 --> step_0: back")
	assert.Contains(t, out, "step_2 --> step_1: back")
	assert.Contains(t, out, "class step_1 current")
	assert.NotContains(t, out, "[menu")
}

func TestGenerateMermaidZeroOptionsHighlightsNothing(t *testing.T) {
	t.Parallel()

	out, err := GenerateMermaidWithOptions(sampleLesson(t), Options{})
	require.NoError(t, err)

	assert.NotContains(t, out, "class step_0 current")
	assert.Contains(t, out, "class step_0 gatedStep")
	assert.Contains(t, out, "direction LR")
}

func TestGenerateMermaidFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`id: plan
title: Plan
steps:
  - title: Start
    actionItems:
      - id: menu
        label: Pick a menu
  - title: Review
`), 0o600))

	out, err := GenerateMermaidFromFile(path, DefaultOptions().WithHighlight(0))
	require.NoError(t, err)

	assert.Contains(t, out, "step_0: Start\\n[menu]")
	assert.Contains(t, out, "class step_0 current")

	_, err = GenerateMermaidFromFile(filepath.Join(t.TempDir(), "missing.yaml"), DefaultOptions())
	require.Error(t, err)
}

func TestGenerateMermaidErrors(t *testing.T) {
	t.Parallel()

	_, err := GenerateMermaid(nil)
	require.ErrorIs(t, err, ErrLessonNil)

	_, err = GenerateMermaid(&lesson.Lesson{ID: "x"})
	require.ErrorIs(t, err, lesson.ErrMalformedLesson)
}
