package hostbridge

import "context"

// AccessibilityVisitor is invoked in pre-order for every visible
// accessibility node, receiving the node and its transform composed
// from root to that node. Invisible nodes are skipped but their
// descendants are still visited. index is the call's own sequence
// number among emitted (visible) nodes; parentIndex is the index of
// the nearest emitted ancestor, or -1 if node is a root or every
// ancestor up to the nearest root view was invisible.
type AccessibilityVisitor func(node *AccessibilityNode, composed Transform, index, parentIndex int) error

// ElementVisitor is invoked in pre-order over the element tree. index
// is the visitor call's own sequence number (0-based, in traversal
// order); parentIndex is the index of the element's parent, or -1 for
// a root element. Together they let a caller reconstruct the ancestor
// chain without the port exposing tree node references directly.
type ElementVisitor func(elem *Element, index, parentIndex int) error

// FrameTimingsCallback, ErrorCallback, LogCallback, and RouteCallback
// are the shapes the core registers once at startup via the
// corresponding Port.Register* method.
type (
	FrameTimingsCallback func(FrameTiming)
	ErrorCallback        func(HostError)
	LogCallback          func(LogEntry)
	RouteCallback        func(route string)
)

// Accessibility exposes tree traversal and action invocation against
// the host's accessibility subsystem.
type Accessibility interface {
	// TraverseAccessibility walks every visible accessibility node
	// from every root view, invoking visit in pre-order.
	TraverseAccessibility(ctx context.Context, visit AccessibilityVisitor) error

	// TraverseElements walks the element tree in pre-order.
	TraverseElements(ctx context.Context, visit ElementVisitor) error

	// PerformAccessibilityAction invokes a declared action on a node.
	// payload carries action-specific arguments (e.g. the literal
	// string for ActionSetText, base/extent for ActionSetSelection).
	// Returns an error with code ACTION_NOT_SUPPORTED if the node does
	// not declare the action.
	PerformAccessibilityAction(ctx context.Context, ref NodeID, action Action, payload ActionPayload) error
}

// ActionPayload carries the arguments for PerformAccessibilityAction.
// Fields are interpreted according to the action being invoked; unused
// fields are left zero.
type ActionPayload struct {
	Text          string
	SelectionBase int
	SelectionEnd  int
}

// PointerDispatcher delivers low-level pointer events to the host's
// gesture subsystem.
type PointerDispatcher interface {
	DispatchPointer(ctx context.Context, event PointerEvent) error
}

// TextChannel simulates platform keyboard events against a host text
// field that has an active input connection.
type TextChannel interface {
	InjectTextChannel(ctx context.Context, method string, args map[string]any) (any, error)
}

// ImageCapture renders the topmost repaint boundary to a PNG buffer.
type ImageCapture interface {
	CaptureImage(ctx context.Context, pixelRatio float64) ([]byte, error)
}

// AccessibilityActivation reference-counts activation of the host's
// accessibility subsystem, which many hosts keep dormant until a
// driver is present.
type AccessibilityActivation interface {
	EnsureAccessibilityActive(ctx context.Context) error
	ReleaseAccessibility(ctx context.Context) error
}

// Subscriptions registers the core's observability callbacks against
// the host. Each is attached once at agent startup.
type Subscriptions interface {
	RegisterFrameTimings(cb FrameTimingsCallback)
	RegisterErrorHandler(cb ErrorCallback)
	RegisterLogHandler(cb LogCallback)
	RegisterRouteObserver(cb RouteCallback)
}

// Port is the entire set of capabilities the agent core requires from
// a host toolkit. A host-specific adapter implements it; everything
// else in the agent depends only on this interface.
type Port interface {
	Accessibility
	PointerDispatcher
	TextChannel
	ImageCapture
	AccessibilityActivation
	Subscriptions
}
