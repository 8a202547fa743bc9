package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amp-labs/lesson-engine/logger"
	"github.com/amp-labs/lesson-engine/progress"
)

// Menu labels for the navigation entries.
const (
	LabelNext     = "Next step →"
	LabelPrevious = "← Previous step"
	LabelFinish   = "Finish lesson"
	LabelQuit     = "Quit"
)

type menuKind int

const (
	menuToggle menuKind = iota
	menuNext
	menuPrevious
	menuFinish
	menuQuit
)

type menuEntry struct {
	label  string
	kind   menuKind
	itemID string
}

// Player presents a session in the terminal. It draws every View it is given
// and turns the user's menu choices into session operations.
type Player struct {
	out     io.Writer
	chooser Chooser
	styles  Styles
}

var _ progress.Renderer = (*Player)(nil)

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithStyles sets the styles used to draw steps.
func WithStyles(st Styles) PlayerOption {
	return func(p *Player) {
		p.styles = st
	}
}

// NewPlayer creates a Player writing to out and asking chooser for input.
func NewPlayer(out io.Writer, chooser Chooser, opts ...PlayerOption) *Player {
	p := &Player{
		out:     out,
		chooser: chooser,
		styles:  DefaultStyles(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Render implements progress.Renderer.
func (p *Player) Render(_ context.Context, v progress.View) error {
	_, err := fmt.Fprintln(p.out, RenderView(v, p.styles))

	return err
}

// Play runs the session until the user finishes or quits. It reports whether
// the lesson was finished.
func (p *Player) Play(ctx context.Context, sess *progress.Session) (bool, error) {
	unbind, err := progress.Bind(ctx, sess, p)
	if err != nil {
		return false, err
	}
	defer unbind()

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		entries := menu(sess.View())

		labels := make([]string, len(entries))
		for i, e := range entries {
			labels[i] = e.label
		}

		idx, err := p.chooser.Choose("Choose an action", labels)
		if errors.Is(err, ErrQuit) {
			return false, nil
		}

		if err != nil {
			return false, err
		}

		if idx < 0 || idx >= len(entries) {
			return false, fmt.Errorf("%w: choice %d of %d", errInvalidChoice, idx, len(entries))
		}

		entry := entries[idx]
		if entry.kind == menuQuit {
			return false, nil
		}

		done, err := p.apply(ctx, sess, entry)
		if err != nil || done {
			return done, err
		}
	}
}

var errInvalidChoice = errors.New("invalid menu choice")

func (p *Player) apply(ctx context.Context, sess *progress.Session, e menuEntry) (bool, error) {
	switch e.kind {
	case menuToggle:
		return false, sess.ToggleCurrent(ctx, e.itemID)
	case menuNext:
		err := sess.Advance(ctx)
		if progress.IsRefusal(err) {
			logger.Get(ctx).WarnContext(ctx, "Advance refused", "error", err)

			_, werr := fmt.Fprintln(p.out, p.styles.Warning.Render(err.Error()))

			return false, werr
		}

		return false, err
	case menuPrevious:
		return false, sess.Retreat(ctx)
	case menuFinish:
		_, err := fmt.Fprintln(p.out, p.styles.Success.Render("Well done! You finished "+sess.Lesson().Title+"."))

		return true, err
	default:
		return false, errInvalidChoice
	}
}

// menu lists the checklist entries followed by the navigation entries the
// view allows. "Next" is only offered when the session can advance.
func menu(v progress.View) []menuEntry {
	entries := make([]menuEntry, 0, len(v.Items)+4)

	for _, item := range v.Items {
		box := uncheckedBox
		if item.Completed {
			box = checkedBox
		}

		entries = append(entries, menuEntry{
			label:  box + " " + item.Label,
			kind:   menuToggle,
			itemID: item.ID,
		})
	}

	if v.CanAdvance {
		entries = append(entries, menuEntry{label: LabelNext, kind: menuNext})
	}

	if v.CanRetreat {
		entries = append(entries, menuEntry{label: LabelPrevious, kind: menuPrevious})
	}

	if v.Finished {
		entries = append(entries, menuEntry{label: LabelFinish, kind: menuFinish})
	}

	return append(entries, menuEntry{label: LabelQuit, kind: menuQuit})
}
