// Package applier delivers animation frames to whatever renders the avatar:
// dashboard websocket clients, an external renderer, or a callback.
package applier

import (
	"context"
	"errors"
	"log/slog"

	"github.com/teslashibe/go-avatar/internal/log"
	"github.com/teslashibe/go-avatar/pkg/animation"
)

// Func adapts a function to animation.Applier.
type Func func(ctx context.Context, frame animation.Frame) error

// Apply calls f.
func (f Func) Apply(ctx context.Context, frame animation.Frame) error {
	return f(ctx, frame)
}

// Multi fans a frame out to every applier in order. All appliers see the
// frame even when an earlier one fails; the failures are joined.
type Multi []animation.Applier

// Apply implements animation.Applier.
func (m Multi) Apply(ctx context.Context, frame animation.Frame) error {
	var errs []error
	for _, a := range m {
		if err := a.Apply(ctx, frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BestEffort wraps an applier whose failures must not stop the pipeline.
// Errors are logged once per failure streak.
type BestEffort struct {
	next    animation.Applier
	logger  *slog.Logger
	failing bool
}

// NewBestEffort wraps next.
func NewBestEffort(name string, next animation.Applier) *BestEffort {
	return &BestEffort{
		next:   next,
		logger: log.Component("applier").With("applier", name),
	}
}

// Apply implements animation.Applier and never returns an error.
func (b *BestEffort) Apply(ctx context.Context, frame animation.Frame) error {
	err := b.next.Apply(ctx, frame)
	switch {
	case err != nil && !b.failing:
		b.failing = true
		b.logger.Warn("frames dropped", "error", err)
	case err == nil && b.failing:
		b.failing = false
		b.logger.Info("frames flowing again")
	}
	return nil
}
