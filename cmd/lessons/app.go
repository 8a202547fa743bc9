package main

import (
	"context"
	"fmt"
	"os"

	"github.com/amp-labs/lesson-engine/catalogue"
	"github.com/amp-labs/lesson-engine/cli"
	"github.com/amp-labs/lesson-engine/envutil"
	"github.com/amp-labs/lesson-engine/lesson"
	"github.com/amp-labs/lesson-engine/lesson/visualizer"
	"github.com/amp-labs/lesson-engine/logger"
	"github.com/amp-labs/lesson-engine/shutdown"
	"github.com/amp-labs/lesson-engine/stage"
	"github.com/amp-labs/lesson-engine/telemetry"
	"github.com/spf13/cobra"
)

// app holds what the commands share. Tests swap the chooser and styles.
type app struct {
	chooser  cli.Chooser
	styles   cli.Styles
	shutdown *shutdown.Handler

	dir     string
	noColor bool
	cat     *catalogue.Catalogue
}

// setup configures logging and telemetry before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if _, err := logger.ConfigureLogging(ctx, appName); err != nil {
		return err
	}

	cfg, err := telemetry.LoadConfigFromEnv(ctx, stage.Current().String())
	if err != nil {
		return err
	}

	provider, err := telemetry.Initialize(ctx, cfg)
	if err != nil {
		return err
	}

	if a.shutdown != nil {
		a.shutdown.BeforeShutdown("telemetry", provider.Shutdown)
	}

	if h := provider.LogHandler(appName); h != nil {
		if _, err := logger.ConfigureLogging(ctx, appName, logger.WithHandlers(h)); err != nil {
			return err
		}
	}

	if a.noColor {
		a.styles = cli.PlainStyles()
	}

	return nil
}

// catalogue loads the lesson set once: the --dir / LESSON_DIR directory when
// given, the embedded lessons otherwise. It also becomes the default
// lesson.Loader so bare lesson names resolve.
func (a *app) catalogue(ctx context.Context) (*catalogue.Catalogue, error) {
	if a.cat != nil {
		return a.cat, nil
	}

	dir := a.dir
	if dir == "" {
		var err error

		dir, err = envutil.Dir("LESSON_DIR", envutil.Default("")).Value()
		if err != nil {
			return nil, err
		}
	}

	var (
		cat *catalogue.Catalogue
		err error
	)

	if dir == "" {
		cat, err = catalogue.Default(ctx)
	} else {
		cat, err = catalogue.Load(ctx, os.DirFS(dir))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}

	lesson.SetLoader(cat)
	a.cat = cat

	return cat, nil
}

// resolve loads a lesson by catalogue ID or by file path.
func (a *app) resolve(ctx context.Context, nameOrPath string) (*lesson.Lesson, error) {
	if _, err := a.catalogue(ctx); err != nil {
		return nil, err
	}

	return lesson.Load(nameOrPath)
}

func (a *app) diagram(ctx context.Context, nameOrPath string, opts visualizer.Options) (string, error) {
	if lesson.IsPath(nameOrPath) {
		return visualizer.GenerateMermaidFromFile(nameOrPath, opts)
	}

	l, err := a.resolve(ctx, nameOrPath)
	if err != nil {
		return "", err
	}

	return visualizer.GenerateMermaidWithOptions(l, opts)
}
