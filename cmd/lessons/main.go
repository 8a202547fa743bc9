// Command lessons lists, inspects, validates and plays the food-truck lessons.
package main

import (
	"context"
	"os"

	"github.com/amp-labs/lesson-engine/cli"
	"github.com/amp-labs/lesson-engine/logger"
	"github.com/amp-labs/lesson-engine/shutdown"
)

const appName = "lessons"

func main() {
	handler := shutdown.New()
	ctx := handler.Listen(context.Background())

	root := newRootCmd(&app{
		chooser:  cli.NewPromptChooser(),
		styles:   cli.DefaultStyles(),
		shutdown: handler,
	})

	err := root.ExecuteContext(ctx)

	if serr := handler.Shutdown(context.WithoutCancel(ctx)); serr != nil {
		logger.Get(ctx).ErrorContext(ctx, "Shutdown failed", "error", serr)
	}

	if err != nil {
		os.Exit(1)
	}
}
