package selector

import "fap/internal/tree"

// Find evaluates ast against snapshot and returns every element matching
// the final segment, subject to its ancestor chain satisfying the
// earlier segments per their combinators. Results are returned in
// accessibility-traversal order. A selector with no segments never
// matches.
func Find(ast *AST, snapshot *tree.Snapshot) []*tree.IndexedElement {
	if ast == nil || len(ast.Segments) == 0 || snapshot == nil {
		return nil
	}

	last := ast.Segments[len(ast.Segments)-1]

	var matches []*tree.IndexedElement

	for _, elem := range snapshot.Elements {
		if matchSegment(last, elem) && matchAncestors(ast.Segments[:len(ast.Segments)-1], elem, snapshot) {
			matches = append(matches, elem)
		}
	}

	return matches
}

// FindFirst returns the first match of Find, or nil if there is none.
func FindFirst(ast *AST, snapshot *tree.Snapshot) *tree.IndexedElement {
	matches := Find(ast, snapshot)
	if len(matches) == 0 {
		return nil
	}

	return matches[0]
}

// matchAncestors walks elem's ancestor chain to satisfy segments, the
// remaining prefix of a selector once its final segment has already
// matched elem. segments[i].Combinator links segments[i] to whatever
// followed it in the original selector (segments[i+1], or elem itself
// for the last prefix segment), so segments are consumed from the end.
func matchAncestors(segments []*Segment, elem *tree.IndexedElement, snapshot *tree.Snapshot) bool {
	current := elem

	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]

		parent, ok := snapshot.ByID[current.ParentFapID]
		if !ok {
			return false
		}

		if seg.Combinator == CombinatorChild {
			if !matchSegment(seg, parent) {
				return false
			}

			current = parent

			continue
		}

		for !matchSegment(seg, parent) {
			parent, ok = snapshot.ByID[parent.ParentFapID]
			if !ok {
				return false
			}
		}

		current = parent
	}

	return true
}

func matchSegment(seg *Segment, elem *tree.IndexedElement) bool {
	if seg.HasType && elem.TypeName != seg.TypeName {
		return false
	}

	for _, attr := range seg.Attrs {
		if !matchAttr(attr, elem) {
			return false
		}
	}

	return true
}

func matchAttr(attr AttrMatch, elem *tree.IndexedElement) bool {
	switch attr.Name {
	case "id":
		return matchString(attr, elem.FapID)
	case "key":
		return matchString(attr, elem.Key)
	case "type":
		return matchString(attr, elem.TypeName)
	case "label":
		return matchString(attr, elem.Label)
	case "value":
		return matchString(attr, elem.Value)
	case "hint":
		return matchString(attr, elem.Hint)
	case "tooltip":
		return matchString(attr, elem.Tooltip)
	case "text":
		return matchString(attr, elem.Label) || matchString(attr, elem.Value) || matchString(attr, elem.Hint)
	case "role":
		return matchRole(attr.Literal, elem)
	default:
		value, ok := elem.Metadata[attr.Name]
		if !ok {
			return false
		}

		return matchString(attr, value)
	}
}

func matchRole(role string, elem *tree.IndexedElement) bool {
	switch role {
	case "button":
		return elem.IsButton
	case "textField":
		return elem.IsTextField
	default:
		return false
	}
}

func matchString(attr AttrMatch, value string) bool {
	if attr.IsRegex {
		return attr.Pattern.MatchString(value)
	}

	return value == attr.Literal
}
