package cli

import (
	"errors"
	"io"
	"os"

	"github.com/manifoldco/promptui"
)

// ErrQuit indicates the user asked to leave the prompt (Ctrl-C or end of input).
var ErrQuit = errors.New("quit")

// Chooser asks the user to pick one of options and returns its index.
type Chooser interface {
	Choose(label string, options []string) (int, error)
}

// PromptChooser is a Chooser backed by an interactive promptui select list.
type PromptChooser struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
	Size   int
}

var _ Chooser = (*PromptChooser)(nil)

// NewPromptChooser returns a PromptChooser on the process's terminal.
func NewPromptChooser() *PromptChooser {
	return &PromptChooser{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

func (p *PromptChooser) Choose(label string, options []string) (int, error) {
	size := p.Size
	if size <= 0 {
		size = len(options)
	}

	sel := &promptui.Select{
		Label:        label,
		Items:        options,
		Size:         size,
		HideSelected: true,
		Stdin:        p.Stdin,
		Stdout:       p.Stdout,
	}

	idx, _, err := sel.Run()
	if err != nil {
		return -1, promptError(err)
	}

	return idx, nil
}

// PromptConfirm asks a yes/no question. Declining is not an error.
func PromptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, promptError(err)
	}

	return true, nil
}

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrQuit
	}

	return err
}
