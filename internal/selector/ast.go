package selector

import "regexp"

// Combinator links a segment to the one following it.
type Combinator int

// Recognized combinators.
const (
	// CombinatorNone marks the last segment in a selector.
	CombinatorNone Combinator = iota
	// CombinatorDescendant requires this segment's match to be some
	// ancestor, at any depth, of the next segment's match.
	CombinatorDescendant
	// CombinatorChild requires this segment's match to be the
	// immediate parent of the next segment's match.
	CombinatorChild
)

// AttrMatch is one attribute constraint within a segment: either a
// literal equality check or a compiled regular-expression check
// against the named field.
type AttrMatch struct {
	Name    string
	Literal string
	IsRegex bool
	Pattern *regexp.Regexp
}

// Segment is one step of a selector: an optional type qualifier plus
// zero or more attribute constraints, linked to the next segment by a
// combinator.
type Segment struct {
	TypeName   string
	HasType    bool
	Attrs      []AttrMatch
	Combinator Combinator
}

// AST is a parsed selector: an ordered list of segments, the last of
// which is matched against the target element, with earlier segments
// matched against its ancestors per their combinators.
type AST struct {
	Segments []*Segment
	Source   string
}
