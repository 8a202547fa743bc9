package visualizer

// Options configures the visualization output.
type Options struct {
	// ShowActionItems lists each step's action items in its node.
	ShowActionItems bool

	// ShowRetreat draws the always-unlocked backward edges.
	ShowRetreat bool

	// Direction controls diagram flow: "TD" (top-down) or "LR" (left-right)
	Direction string

	// Highlight marks a step, typically the learner's current one. Nil
	// highlights nothing.
	Highlight *int
}

// DefaultOptions returns sensible defaults for visualization.
func DefaultOptions() Options {
	return Options{
		ShowActionItems: true,
		ShowRetreat:     false,
		Direction:       "LR",
	}
}

// WithShowActionItems enables/disables action item details.
func (o Options) WithShowActionItems(show bool) Options {
	o.ShowActionItems = show

	return o
}

// WithShowRetreat enables/disables backward edges.
func (o Options) WithShowRetreat(show bool) Options {
	o.ShowRetreat = show

	return o
}

// WithDirection sets the diagram direction.
func (o Options) WithDirection(direction string) Options {
	o.Direction = direction

	return o
}

// WithHighlight sets the step to highlight.
func (o Options) WithHighlight(step int) Options {
	o.Highlight = &step

	return o
}
