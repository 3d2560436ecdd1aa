package executor

import (
	"context"

	"fap/internal/ferrors"
	"fap/internal/hostbridge"
	"fap/internal/tree"
)

// Text-input channel method names, mirroring the host's platform text
// input channel protocol: an editing-state update carries the full
// text and caret bounds; a perform-action call signals an input
// action such as "done" or "next" without altering the text itself.
const (
	methodUpdateEditingState = "TextInputClient.updateEditingState"
	methodPerformAction      = "TextInputClient.performAction"
)

// SetText invokes the accessibility set_text action directly — the
// preferred path for text entry. It fails with ACTION_NOT_SUPPORTED
// if target does not declare set_text.
func (e *Executor) SetText(ctx context.Context, target *tree.IndexedElement, text string) error {
	if err := e.requireInteractable(target); err != nil {
		return err
	}

	if !hasAction(target, hostbridge.ActionSetText) {
		return ferrors.Newf(ferrors.CodeActionNotSupported,
			"element %s does not support set_text", target.FapID).
			WithContext("fapId", target.FapID)
	}

	return e.host.PerformAccessibilityAction(ctx, target.AccessibilityNodeRef, hostbridge.ActionSetText,
		hostbridge.ActionPayload{Text: text})
}

// SetSelection invokes the accessibility set_selection action for
// explicit caret/selection placement.
func (e *Executor) SetSelection(ctx context.Context, target *tree.IndexedElement, base, end int) error {
	if err := e.requireInteractable(target); err != nil {
		return err
	}

	if !hasAction(target, hostbridge.ActionSetSelection) {
		return ferrors.Newf(ferrors.CodeActionNotSupported,
			"element %s does not support set_selection", target.FapID).
			WithContext("fapId", target.FapID)
	}

	return e.host.PerformAccessibilityAction(ctx, target.AccessibilityNodeRef, hostbridge.ActionSetSelection,
		hostbridge.ActionPayload{SelectionBase: base, SelectionEnd: end})
}

// EnterText simulates platform keyboard input over the host's active
// text-input channel, for targets with no usable set_text action: it
// emits character-by-character editing-state updates (text plus caret
// position), handling newline either as a perform-action call (for a
// configured single-line input action) or as a literal newline when
// multiline is true. Each update waits for the host's acknowledgement
// before the next is sent.
func (e *Executor) EnterText(ctx context.Context, text string, multiline bool, inputAction string) error {
	current := ""

	for _, r := range text {
		if r == '\n' {
			if multiline {
				current += "\n"

				if err := e.updateEditingState(ctx, current); err != nil {
					return err
				}

				continue
			}

			if err := e.performInputAction(ctx, inputAction); err != nil {
				return err
			}

			continue
		}

		current += string(r)

		if err := e.updateEditingState(ctx, current); err != nil {
			return err
		}
	}

	return nil
}

// ClearText sets a host text-input channel's text to empty.
func (e *Executor) ClearText(ctx context.Context) error {
	return e.updateEditingState(ctx, "")
}

// Backspace shortens the current text-channel editing state by one
// character, moving the caret back by one. current is the text before
// the backspace is applied.
func (e *Executor) Backspace(ctx context.Context, current string) error {
	if current == "" {
		return nil
	}

	runes := []rune(current)

	return e.updateEditingState(ctx, string(runes[:len(runes)-1]))
}

func (e *Executor) updateEditingState(ctx context.Context, text string) error {
	_, err := e.host.InjectTextChannel(ctx, methodUpdateEditingState, map[string]any{
		"text":            text,
		"selectionBase":   len([]rune(text)),
		"selectionExtent": len([]rune(text)),
	})
	if err != nil {
		return ferrors.Wrap(err, ferrors.CodeHostInspection, "text channel update rejected")
	}

	return nil
}

func (e *Executor) performInputAction(ctx context.Context, inputAction string) error {
	_, err := e.host.InjectTextChannel(ctx, methodPerformAction, map[string]any{
		"action": inputAction,
	})
	if err != nil {
		return ferrors.Wrap(err, ferrors.CodeHostInspection, "text channel action rejected")
	}

	return nil
}
