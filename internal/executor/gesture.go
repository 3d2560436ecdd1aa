package executor

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"

	"fap/internal/hostbridge"
	"fap/internal/tree"
)

// Tap dispatches a hover-settle, down, hold, up pointer sequence at
// target's center. If target declares the tap accessibility action, it
// is also invoked as a post-dispatch fallback, guaranteeing activation
// when the synthetic pointer misses the widget's hit test.
func (e *Executor) Tap(ctx context.Context, target *tree.IndexedElement) (TapResult, error) {
	if err := e.requireInteractable(target); err != nil {
		return TapResult{}, err
	}

	c := center(target)

	if err := e.tapSequence(ctx, c); err != nil {
		return TapResult{}, err
	}

	if hasAction(target, hostbridge.ActionTap) {
		if err := e.host.PerformAccessibilityAction(ctx, target.AccessibilityNodeRef, hostbridge.ActionTap, hostbridge.ActionPayload{}); err != nil {
			e.logger.Warn("accessibility tap fallback failed",
				zap.String("fapId", target.FapID), zap.Error(err))
		}
	}

	return TapResult{Center: c}, nil
}

// TapAt dispatches the same pointer sequence as Tap at an explicit
// coordinate, with no accessibility-action fallback (there is no
// resolved target to fall back to).
func (e *Executor) TapAt(ctx context.Context, point image.Point) (TapResult, error) {
	if err := e.tapSequence(ctx, point); err != nil {
		return TapResult{}, err
	}

	return TapResult{Center: point}, nil
}

func (e *Executor) tapSequence(ctx context.Context, at image.Point) error {
	if err := e.dispatch(ctx, hostbridge.PointerEvent{Kind: hostbridge.PointerKindMouse, Phase: hostbridge.PointerPhaseHover, Position: at}); err != nil {
		return err
	}

	if err := sleep(ctx, e.cfg.HoverSettleDelay); err != nil {
		return err
	}

	if err := e.dispatch(ctx, hostbridge.PointerEvent{Kind: hostbridge.PointerKindMouse, Phase: hostbridge.PointerPhaseDown, Position: at, Buttons: hostbridge.ButtonPrimary}); err != nil {
		return err
	}

	if err := sleep(ctx, e.cfg.TapHoldDuration); err != nil {
		return err
	}

	return e.dispatch(ctx, hostbridge.PointerEvent{Kind: hostbridge.PointerKindMouse, Phase: hostbridge.PointerPhaseUp, Position: at})
}

// DoubleTap dispatches two tap sequences separated by the configured
// double-tap gap.
func (e *Executor) DoubleTap(ctx context.Context, target *tree.IndexedElement) error {
	if _, err := e.Tap(ctx, target); err != nil {
		return err
	}

	if err := sleep(ctx, e.cfg.DoubleTapGap); err != nil {
		return err
	}

	_, err := e.Tap(ctx, target)

	return err
}

// LongPress dispatches a touch-kind pointer down at target's center,
// held for duration (or the configured default when duration is zero),
// then an up. Touch kind matters because many long-press handlers key
// behavior off pointer-device kind.
func (e *Executor) LongPress(ctx context.Context, target *tree.IndexedElement, duration time.Duration) error {
	if err := e.requireInteractable(target); err != nil {
		return err
	}

	if duration <= 0 {
		duration = e.cfg.LongPressDuration
	}

	c := center(target)

	if err := e.dispatch(ctx, hostbridge.PointerEvent{Kind: hostbridge.PointerKindTouch, Phase: hostbridge.PointerPhaseDown, Position: c}); err != nil {
		return err
	}

	if err := sleep(ctx, duration); err != nil {
		return err
	}

	return e.dispatch(ctx, hostbridge.PointerEvent{Kind: hostbridge.PointerKindTouch, Phase: hostbridge.PointerPhaseUp, Position: c})
}

// Drag dispatches a mouse down at from, N interpolated move events
// spaced evenly across duration (or the configured default), and an up
// at to. Each move's Delta is the per-step vector.
func (e *Executor) Drag(ctx context.Context, from, to image.Point, duration time.Duration) error {
	if duration <= 0 {
		duration = e.cfg.DragDuration
	}

	steps := e.cfg.DragSteps
	if steps <= 0 {
		steps = 1
	}

	if err := e.dispatch(ctx, hostbridge.PointerEvent{Kind: hostbridge.PointerKindMouse, Phase: hostbridge.PointerPhaseDown, Position: from, Buttons: hostbridge.ButtonPrimary}); err != nil {
		return err
	}

	stepDelay := duration / time.Duration(steps)
	prev := from

	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		next := image.Point{
			X: from.X + int(float64(to.X-from.X)*frac),
			Y: from.Y + int(float64(to.Y-from.Y)*frac),
		}

		if err := sleep(ctx, stepDelay); err != nil {
			return err
		}

		delta := image.Point{X: next.X - prev.X, Y: next.Y - prev.Y}
		if err := e.dispatch(ctx, hostbridge.PointerEvent{Kind: hostbridge.PointerKindMouse, Phase: hostbridge.PointerPhaseMove, Position: next, Buttons: hostbridge.ButtonPrimary, Delta: delta}); err != nil {
			return err
		}

		prev = next
	}

	return e.dispatch(ctx, hostbridge.PointerEvent{Kind: hostbridge.PointerKindMouse, Phase: hostbridge.PointerPhaseUp, Position: to})
}

// DragToElement resolves both endpoints as target centers and drags
// from one to the other.
func (e *Executor) DragToElement(ctx context.Context, from, to *tree.IndexedElement, duration time.Duration) error {
	if err := e.requireInteractable(from); err != nil {
		return err
	}

	return e.Drag(ctx, center(from), center(to), duration)
}

// Scroll drags target's content by (dx, dy). A positive dy scrolls
// content down, which is physically a drag emitted with the inverse
// vector (the finger moves up to push content down); dx is analogous.
func (e *Executor) Scroll(ctx context.Context, target *tree.IndexedElement, dx, dy float64, duration time.Duration) error {
	if dx == 0 && dy == 0 {
		return nil
	}

	if err := e.requireInteractable(target); err != nil {
		return err
	}

	start := center(target)
	end := image.Point{X: start.X - int(dx), Y: start.Y - int(dy)}

	return e.Drag(ctx, start, end, duration)
}
