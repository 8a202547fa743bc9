package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/amp-labs/lesson-engine/build"
	"github.com/amp-labs/lesson-engine/cli"
	"github.com/amp-labs/lesson-engine/lesson"
	"github.com/amp-labs/lesson-engine/lesson/visualizer"
	"github.com/amp-labs/lesson-engine/logger"
	"github.com/amp-labs/lesson-engine/progress"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Guided food-truck lessons in the terminal",
		Long: `lessons presents step-by-step food-truck lessons. Each step has a
checklist of action items; the next step unlocks once every item is checked.

Lessons are read from the embedded catalogue, or from --dir / LESSON_DIR.`,
		Version:           build.Current().String(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.dir, "dir", "", "directory of lesson YAML files (default: embedded lessons, or LESSON_DIR)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "render without colors or borders")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newPlayCmd(a),
		newValidateCmd(),
		newDiagramCmd(a),
	)

	return root
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available lessons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalogue(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTEPS\tACTION ITEMS")

			for _, l := range cat.Lessons() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", l.ID, l.Title, l.StepCount(), l.TotalActionItems())
			}

			return w.Flush()
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <lesson-id|file>",
		Short: "Print every step and action item of a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderLesson(l, a.styles))

			return err
		},
	}
}

func newPlayCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "play <lesson-id|file>",
		Short: "Work through a lesson interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithSubsystem(cmd.Context(), "player")

			l, err := a.resolve(ctx, args[0])
			if err != nil {
				return err
			}

			opts := []progress.SessionOption{}
			if strict {
				opts = append(opts, progress.WithStrictToggles())
			}

			sess, err := progress.NewSession(l, opts...)
			if err != nil {
				return err
			}
			defer sess.Close()

			logger.Get(ctx).DebugContext(ctx, "Session started", "session_id", sess.ID(), "lesson_id", l.ID)

			player := cli.NewPlayer(cmd.OutOrStdout(), a.chooser, cli.WithStyles(a.styles))

			finished, err := player.Play(ctx, sess)
			if err != nil {
				return err
			}

			if !finished {
				view := sess.View()
				fmt.Fprintf(cmd.OutOrStdout(), "Stopped at %s.\n", view.Position())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "only allow checking items on the current or earlier steps")

	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check lesson files against the schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failures []error

			for _, path := range args {
				l, err := lesson.LoadFromFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: FAIL\n%v\n", path, err)
					failures = append(failures, fmt.Errorf("%s: %w", path, err))

					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s, %d steps, fingerprint %s)\n",
					path, l.ID, l.StepCount(), l.Fingerprint())
			}

			return errors.Join(failures...)
		},
	}
}

func newDiagramCmd(a *app) *cobra.Command {
	opts := visualizer.DefaultOptions()
	highlight := -1

	cmd := &cobra.Command{
		Use:   "diagram <lesson-id|file>",
		Short: "Print a Mermaid state diagram of a lesson's step gating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if highlight >= 0 {
				opts = opts.WithHighlight(highlight)
			}

			out, err := a.diagram(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().BoolVar(&opts.ShowActionItems, "items", opts.ShowActionItems, "list action item IDs in each step")
	cmd.Flags().BoolVar(&opts.ShowRetreat, "retreat", opts.ShowRetreat, "draw back edges")
	cmd.Flags().StringVar(&opts.Direction, "direction", opts.Direction, "diagram direction (LR or TD)")
	cmd.Flags().IntVar(&highlight, "highlight", highlight, "step index to highlight, -1 for none")

	return cmd
}
