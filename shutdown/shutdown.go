// Package shutdown cancels the process context on SIGINT or SIGTERM and runs
// registered cleanup hooks exactly once.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"

	"github.com/amp-labs/lesson-engine/logger"
)

// Hook releases a resource. The context passed to it is not canceled by the
// signal that triggered shutdown.
type Hook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// Handler owns the signal subscription and the cleanup hooks of one process.
type Handler struct {
	mu      sync.Mutex
	hooks   []namedHook
	signals chan os.Signal
	stop    chan struct{}
	once    sync.Once
	err     error
}

// New creates a Handler. Call Listen to start watching for signals.
func New() *Handler {
	return &Handler{
		signals: make(chan os.Signal, 1),
		stop:    make(chan struct{}),
	}
}

// BeforeShutdown registers a hook. Hooks run in reverse registration order.
func (h *Handler) BeforeShutdown(name string, hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hooks = append(h.hooks, namedHook{name: name, fn: hook})
}

// Listen returns a context that is canceled when the process receives
// SIGINT or SIGTERM, or when Trigger is called.
func (h *Handler) Listen(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)

	signal.Notify(h.signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer cancel()

		select {
		case sig := <-h.signals:
			logger.Get(ctx).WarnContext(ctx, "Received "+sig.String()+", shutting down...")
		case <-h.stop:
		case <-ctx.Done():
		}
	}()

	return ctx
}

// Trigger starts shutdown programmatically, as if a signal had arrived.
func (h *Handler) Trigger() {
	select {
	case h.signals <- os.Interrupt:
	default:
	}
}

// Shutdown stops listening for signals and runs every hook once. Later calls
// return the first call's result.
func (h *Handler) Shutdown(ctx context.Context) error {
	h.once.Do(func() {
		signal.Stop(h.signals)
		close(h.stop)

		h.mu.Lock()
		hooks := slices.Clone(h.hooks)
		h.hooks = nil
		h.mu.Unlock()

		var errs []error

		for _, hook := range slices.Backward(hooks) {
			if err := hook.fn(ctx); err != nil {
				logger.Get(ctx).ErrorContext(ctx, "Shutdown hook failed", "hook", hook.name, "error", err)
				errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
			}
		}

		h.err = errors.Join(errs...)
	})

	return h.err
}
