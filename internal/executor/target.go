package executor

import (
	"image"
	"slices"

	"fap/internal/hostbridge"
	"fap/internal/tree"
)

// center returns the midpoint of target's global rect.
func center(target *tree.IndexedElement) image.Point {
	r := target.Rect

	return image.Point{
		X: int(r.X + r.W/2),
		Y: int(r.Y + r.H/2),
	}
}

func hasAction(target *tree.IndexedElement, action hostbridge.Action) bool {
	return slices.Contains(target.Actions, string(action))
}
