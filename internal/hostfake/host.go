package hostfake

import (
	"context"
	"sync"

	"fap/internal/ferrors"
	"fap/internal/hostbridge"
)

// Host is a fake hostbridge.Port backed by an in-memory tree of Node
// values. It is safe for concurrent use.
type Host struct {
	mu    sync.Mutex
	roots []*Node

	activationCount int

	capturePNG         []byte
	captureUnavailable bool

	pointerLog     []hostbridge.PointerEvent
	textChannelLog []textChannelCall
	performedLog   []performedCall

	frameCB FrameTimingsHook
	errorCB ErrorHook
	logCB   LogHook
	routeCB RouteHook
}

// FrameTimingsHook, ErrorHook, LogHook, and RouteHook mirror the
// hostbridge callback shapes; named here so tests can hold a reference
// without importing hostbridge for the type alias.
type (
	FrameTimingsHook = hostbridge.FrameTimingsCallback
	ErrorHook        = hostbridge.ErrorCallback
	LogHook          = hostbridge.LogCallback
	RouteHook        = hostbridge.RouteCallback
)

type textChannelCall struct {
	Method string
	Args   map[string]any
}

type performedCall struct {
	Ref     hostbridge.NodeID
	Action  hostbridge.Action
	Payload hostbridge.ActionPayload
}

// NewHost constructs a fake host with the given root views.
func NewHost(roots ...*Node) *Host {
	return &Host{roots: roots}
}

// SetCaptureImage configures the PNG bytes CaptureImage returns.
func (h *Host) SetCaptureImage(png []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.capturePNG = png
	h.captureUnavailable = false
}

// SetCaptureUnavailable makes CaptureImage fail with CAPTURE_UNAVAILABLE.
func (h *Host) SetCaptureUnavailable() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.captureUnavailable = true
}

// TraverseAccessibility implements hostbridge.Accessibility.
func (h *Host) TraverseAccessibility(ctx context.Context, visit hostbridge.AccessibilityVisitor) error {
	h.mu.Lock()
	roots := append([]*Node(nil), h.roots...)
	h.mu.Unlock()

	next := 0

	for _, root := range roots {
		if err := visitAccessibility(ctx, root, hostbridge.Identity(), -1, &next, visit); err != nil {
			return err
		}
	}

	return nil
}

func visitAccessibility(ctx context.Context, n *Node, parent hostbridge.Transform, parentIndex int, next *int, visit hostbridge.AccessibilityVisitor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	translation := hostbridge.Transform{A: 1, D: 1, E: n.LocalRect.X, F: n.LocalRect.Y}
	composed := translation.Then(parent)

	currentIndex := parentIndex

	if n.ID != 0 && !n.Flags.Has(hostbridge.FlagIsInvisible) {
		node := &hostbridge.AccessibilityNode{
			ID:                n.ID,
			Rect:              composed.ApplyRect(hostbridge.Rect{W: n.LocalRect.W, H: n.LocalRect.H}),
			Label:             n.Label,
			Value:             n.Value,
			Hint:              n.Hint,
			Tooltip:           n.Tooltip,
			Actions:           n.Actions,
			Flags:             n.Flags,
			Metadata:          n.Metadata,
			IsPlaceholder:     n.IsPlaceholder,
			PlaceholderReason: n.PlaceholderReason,
		}

		currentIndex = *next
		*next++

		if err := visit(node, composed, currentIndex, parentIndex); err != nil {
			return err
		}
	}

	for _, child := range n.Children {
		if err := visitAccessibility(ctx, child, composed, currentIndex, next, visit); err != nil {
			return err
		}
	}

	return nil
}

// TraverseElements implements hostbridge.Accessibility.
func (h *Host) TraverseElements(ctx context.Context, visit hostbridge.ElementVisitor) error {
	h.mu.Lock()
	roots := append([]*Node(nil), h.roots...)
	h.mu.Unlock()

	next := 0

	for _, root := range roots {
		if _, err := visitElements(ctx, root, -1, &next, visit); err != nil {
			return err
		}
	}

	return nil
}

func visitElements(ctx context.Context, n *Node, parentIndex int, next *int, visit hostbridge.ElementVisitor) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	index := *next
	*next++

	elem := &hostbridge.Element{
		TypeName:   n.TypeName,
		Key:        n.Key,
		HasNodeRef: n.ID != 0,
		NodeRef:    n.ID,
	}

	if err := visit(elem, index, parentIndex); err != nil {
		return index, err
	}

	for _, child := range n.Children {
		if _, err := visitElements(ctx, child, index, next, visit); err != nil {
			return index, err
		}
	}

	return index, nil
}

// PerformAccessibilityAction implements hostbridge.Accessibility.
func (h *Host) PerformAccessibilityAction(_ context.Context, ref hostbridge.NodeID, action hostbridge.Action, payload hostbridge.ActionPayload) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var node *Node

	for _, root := range h.roots {
		if found := root.find(ref); found != nil {
			node = found

			break
		}
	}

	if node == nil {
		return ferrors.New(ferrors.CodeElementNotFound, "no node with the given accessibility reference")
	}

	if !node.Actions.Has(action) {
		return ferrors.Newf(ferrors.CodeActionNotSupported, "node does not support action %q", action)
	}

	switch action {
	case hostbridge.ActionSetText:
		node.Value = payload.Text
	case hostbridge.ActionSetSelection:
		node.SelectionBase = payload.SelectionBase
		node.SelectionEnd = payload.SelectionEnd
	}

	h.performedLog = append(h.performedLog, performedCall{Ref: ref, Action: action, Payload: payload})

	return nil
}

// PerformedActions returns a copy of the recorded action invocations,
// for test assertions.
func (h *Host) PerformedActions() []performedCall {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]performedCall(nil), h.performedLog...)
}

// DispatchPointer implements hostbridge.PointerDispatcher.
func (h *Host) DispatchPointer(_ context.Context, event hostbridge.PointerEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pointerLog = append(h.pointerLog, event)

	return nil
}

// PointerLog returns a copy of the dispatched pointer events, for test
// assertions.
func (h *Host) PointerLog() []hostbridge.PointerEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]hostbridge.PointerEvent(nil), h.pointerLog...)
}

// InjectTextChannel implements hostbridge.TextChannel.
func (h *Host) InjectTextChannel(_ context.Context, method string, args map[string]any) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.textChannelLog = append(h.textChannelLog, textChannelCall{Method: method, Args: args})

	return map[string]any{"acknowledged": true}, nil
}

// TextChannelCalls returns a copy of the recorded text-channel method
// invocations, for test assertions.
func (h *Host) TextChannelCalls() []textChannelCall {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]textChannelCall(nil), h.textChannelLog...)
}

// CaptureImage implements hostbridge.ImageCapture.
func (h *Host) CaptureImage(_ context.Context, _ float64) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.captureUnavailable || h.capturePNG == nil {
		return nil, ferrors.New(ferrors.CodeCaptureUnavailable, "no repaint boundary is reachable")
	}

	return h.capturePNG, nil
}

// EnsureAccessibilityActive implements hostbridge.AccessibilityActivation.
func (h *Host) EnsureAccessibilityActive(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.activationCount++

	return nil
}

// ReleaseAccessibility implements hostbridge.AccessibilityActivation.
func (h *Host) ReleaseAccessibility(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.activationCount == 0 {
		return ferrors.New(ferrors.CodeInternal, "release called with no outstanding activation")
	}

	h.activationCount--

	return nil
}

// ActivationCount returns the current activation reference count, for
// test assertions.
func (h *Host) ActivationCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.activationCount
}

// RegisterFrameTimings implements hostbridge.Subscriptions.
func (h *Host) RegisterFrameTimings(cb hostbridge.FrameTimingsCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.frameCB = cb
}

// RegisterErrorHandler implements hostbridge.Subscriptions.
func (h *Host) RegisterErrorHandler(cb hostbridge.ErrorCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errorCB = cb
}

// RegisterLogHandler implements hostbridge.Subscriptions.
func (h *Host) RegisterLogHandler(cb hostbridge.LogCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logCB = cb
}

// RegisterRouteObserver implements hostbridge.Subscriptions.
func (h *Host) RegisterRouteObserver(cb hostbridge.RouteCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.routeCB = cb
}

// EmitFrameTiming invokes the registered frame-timings callback, if any.
func (h *Host) EmitFrameTiming(timing hostbridge.FrameTiming) {
	h.mu.Lock()
	cb := h.frameCB
	h.mu.Unlock()

	if cb != nil {
		cb(timing)
	}
}

// EmitError invokes the registered error callback, if any.
func (h *Host) EmitError(hostErr hostbridge.HostError) {
	h.mu.Lock()
	cb := h.errorCB
	h.mu.Unlock()

	if cb != nil {
		cb(hostErr)
	}
}

// EmitLog invokes the registered log callback, if any.
func (h *Host) EmitLog(entry hostbridge.LogEntry) {
	h.mu.Lock()
	cb := h.logCB
	h.mu.Unlock()

	if cb != nil {
		cb(entry)
	}
}

// EmitRoute invokes the registered route-observer callback, if any.
func (h *Host) EmitRoute(route string) {
	h.mu.Lock()
	cb := h.routeCB
	h.mu.Unlock()

	if cb != nil {
		cb(route)
	}
}

var _ hostbridge.Port = (*Host)(nil)
