package executor

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"

	"fap/internal/config"
	"fap/internal/ferrors"
	"fap/internal/hostbridge"
	"fap/internal/tree"
)

// Executor dispatches pointer sequences, text-channel operations, and
// accessibility-action fallbacks against resolved targets, per spec
// §4.D. It holds no mutable state of its own beyond its configured
// pacing; all target state lives in the tree indexer and the host.
type Executor struct {
	host   hostbridge.Port
	cfg    config.ActionConfig
	logger *zap.Logger
}

// New constructs an Executor around host, paced by cfg.
func New(host hostbridge.Port, cfg config.ActionConfig, logger *zap.Logger) *Executor {
	return &Executor{host: host, cfg: cfg, logger: logger}
}

// TapResult is the diagnostic info returned from a successful tap.
type TapResult struct {
	Center image.Point
}

func (e *Executor) requireInteractable(target *tree.IndexedElement) error {
	if !target.IsInteractable {
		return ferrors.Newf(ferrors.CodeElementNotInteractable,
			"element %s is not interactable", target.FapID).
			WithContext("fapId", target.FapID)
	}

	return nil
}

// sleep waits for d or returns ctx's error, whichever comes first, so
// a driver-side timeout bounds an in-flight gesture's pacing delays
// rather than leaving them to run unattended.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ferrors.Wrap(ctx.Err(), ferrors.CodeContextCanceled, "gesture pacing interrupted")
	case <-timer.C:
		return nil
	}
}

func (e *Executor) dispatch(ctx context.Context, event hostbridge.PointerEvent) error {
	if err := e.host.DispatchPointer(ctx, event); err != nil {
		return ferrors.Wrap(err, ferrors.CodeHostInspection, "pointer dispatch failed")
	}

	return nil
}
