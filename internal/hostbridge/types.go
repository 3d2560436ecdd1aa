package hostbridge

import "image"

// NodeID identifies an accessibility node. It is stable only within the
// frame that produced it; the core never persists it across snapshots.
type NodeID int64

// Action names a capability an accessibility node may declare support
// for and that the host can be asked to invoke directly.
type Action string

// Recognized accessibility actions.
const (
	ActionTap          Action = "tap"
	ActionLongPress    Action = "longPress"
	ActionScrollUp     Action = "scrollUp"
	ActionScrollDown   Action = "scrollDown"
	ActionScrollLeft   Action = "scrollLeft"
	ActionScrollRight  Action = "scrollRight"
	ActionSetText      Action = "setText"
	ActionSetSelection Action = "setSelection"
)

// ActionSet is a bitset over the recognized actions, indexed by
// position in actionOrder.
type ActionSet uint16

var actionOrder = []Action{
	ActionTap,
	ActionLongPress,
	ActionScrollUp,
	ActionScrollDown,
	ActionScrollLeft,
	ActionScrollRight,
	ActionSetText,
	ActionSetSelection,
}

// NewActionSet builds an ActionSet from the given actions.
func NewActionSet(actions ...Action) ActionSet {
	var set ActionSet

	for _, a := range actions {
		set = set.With(a)
	}

	return set
}

// With returns a copy of the set with action added.
func (s ActionSet) With(a Action) ActionSet {
	for i, candidate := range actionOrder {
		if candidate == a {
			return s | (1 << uint(i))
		}
	}

	return s
}

// Has reports whether the set declares support for a.
func (s ActionSet) Has(a Action) bool {
	for i, candidate := range actionOrder {
		if candidate == a {
			return s&(1<<uint(i)) != 0
		}
	}

	return false
}

// Names returns the declared action names in canonical order.
func (s ActionSet) Names() []string {
	names := make([]string, 0, len(actionOrder))

	for _, a := range actionOrder {
		if s.Has(a) {
			names = append(names, string(a))
		}
	}

	return names
}

// Flag is a boolean capability or state attached to an accessibility
// node, separate from invocable actions.
type Flag uint16

// Recognized flags.
const (
	FlagIsButton Flag = 1 << iota
	FlagIsTextField
	FlagIsInvisible
)

// Has reports whether f is set within flags.
func (flags Flag) Has(f Flag) bool {
	return flags&f != 0
}

// Transform is a 2D affine transform composed from a node's ancestors
// down to itself, used to map a node's local rect into global
// coordinates.
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Then composes t followed by next (next is applied in the parent's
// coordinate space, t in the child's), returning the combined
// transform from child-local to root space.
func (t Transform) Then(next Transform) Transform {
	return Transform{
		A: t.A*next.A + t.B*next.C,
		B: t.A*next.B + t.B*next.D,
		C: t.C*next.A + t.D*next.C,
		D: t.C*next.B + t.D*next.D,
		E: t.E*next.A + t.F*next.C + next.E,
		F: t.E*next.B + t.F*next.D + next.F,
	}
}

// ApplyPoint maps a local point into the space described by t.
func (t Transform) ApplyPoint(x, y float64) (float64, float64) {
	return x*t.A + y*t.C + t.E, x*t.B + y*t.D + t.F
}

// Rect is an axis-aligned rectangle expressed in global coordinates,
// matching the host's gesture-dispatch coordinate system.
type Rect struct {
	X, Y, W, H float64
}

// ApplyRect composes t with a node's local rect, producing the global
// rect the indexer records for the node. Rotation is not modeled (the
// host toolkits in scope only ever compose translation and scale), so
// only the corner points are transformed and re-bounded.
func (t Transform) ApplyRect(local Rect) Rect {
	x0, y0 := t.ApplyPoint(local.X, local.Y)
	x1, y1 := t.ApplyPoint(local.X+local.W, local.Y+local.H)

	minX, maxX := x0, x1
	if minX > maxX {
		minX, maxX = maxX, minX
	}

	minY, maxY := y0, y1
	if minY > maxY {
		minY, maxY = maxY, minY
	}

	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Center returns the rect's midpoint.
func (r Rect) Center() image.Point {
	return image.Point{
		X: int(r.X + r.W/2),
		Y: int(r.Y + r.H/2),
	}
}

// AccessibilityNode is a single node from the host's accessibility
// tree, as delivered to a traversal visitor.
type AccessibilityNode struct {
	ID      NodeID
	Rect    Rect
	Label   string
	Value   string
	Hint    string
	Tooltip string
	Actions ActionSet
	Flags   Flag

	// Metadata carries custom key/value pairs attached via a host-side
	// annotation wrapper (e.g. a semantics-label properties map).
	Metadata map[string]string

	// IsPlaceholder and PlaceholderReason let a host adapter mark a
	// node as not yet fully resolvable (e.g. still composing) while
	// still surfacing it to the indexer.
	IsPlaceholder     bool
	PlaceholderReason string
}

// IsInvisible reports whether the node should be skipped for emission
// (but not for descendant traversal).
func (n *AccessibilityNode) IsInvisible() bool {
	return n.Flags.Has(FlagIsInvisible)
}

// Element is a single node from the host's widget/composition tree,
// correlated to an accessibility node by ID where one exists.
type Element struct {
	TypeName   string
	Key        string
	HasNodeRef bool
	NodeRef    NodeID
}

// PointerKind distinguishes the synthetic input device used for a
// dispatched pointer event; some gesture recognizers key behavior off
// of it (notably long-press).
type PointerKind string

// Recognized pointer kinds.
const (
	PointerKindMouse PointerKind = "mouse"
	PointerKindTouch PointerKind = "touch"
)

// PointerPhase is the stage of a pointer interaction.
type PointerPhase string

// Recognized pointer phases.
const (
	PointerPhaseHover PointerPhase = "hover"
	PointerPhaseDown  PointerPhase = "down"
	PointerPhaseMove  PointerPhase = "move"
	PointerPhaseUp    PointerPhase = "up"
)

// ButtonMask is a bitmask of pressed pointer buttons.
type ButtonMask uint8

// Recognized buttons.
const (
	ButtonPrimary ButtonMask = 1 << iota
	ButtonSecondary
)

// PointerEvent is a single low-level pointer event delivered to the
// host's gesture subsystem.
type PointerEvent struct {
	Kind     PointerKind
	Phase    PointerPhase
	Position image.Point
	PointerID int
	Buttons  ButtonMask
	Delta    image.Point
}

// FrameTiming is a single frame's build/raster timing sample.
type FrameTiming struct {
	BuildMicroseconds  int64
	RasterMicroseconds int64
	TotalMicroseconds  int64
}

// HostError is a framework-level exception or unhandled async error
// intercepted via the host's error handler.
type HostError struct {
	Code      string
	Message   string
	Stack     string
	Timestamp int64
}

// LogEntry is a single line of host print output intercepted via the
// host's log handler.
type LogEntry struct {
	Message   string
	Timestamp int64
}
