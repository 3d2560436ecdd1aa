package selector_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/hostbridge"
	"fap/internal/hostfake"
	"fap/internal/selector"
	"fap/internal/tree"
)

func buildPanelTree() *hostfake.Node {
	field := hostfake.NewNode(3, "TextField",
		hostbridge.Rect{X: 10, Y: 60, W: 200, H: 30},
		hostbridge.NewActionSet(hostbridge.ActionSetText)).
		WithFlags(hostbridge.FlagIsTextField)

	button := hostfake.NewNode(2, "Button",
		hostbridge.Rect{X: 10, Y: 10, W: 100, H: 40},
		hostbridge.NewActionSet(hostbridge.ActionTap)).
		WithKey("submit_btn").
		WithLabel("Submit").
		WithFlags(hostbridge.FlagIsButton)

	row := hostfake.NewNode(1, "Row", hostbridge.Rect{X: 0, Y: 0, W: 300, H: 100}, 0).
		AddChild(button)

	column := hostfake.NewNode(4, "Column", hostbridge.Rect{X: 0, Y: 0, W: 400, H: 400}, 0).
		AddChild(row).
		AddChild(field)

	return column
}

func snapshotOf(t *testing.T, root *hostfake.Node) *tree.Snapshot {
	t.Helper()

	host := hostfake.NewHost(root)
	indexer := tree.NewIndexer(host, 5*time.Second, 10_000)

	snap, err := indexer.Snapshot(context.Background())
	require.NoError(t, err)

	return snap
}

func TestFind_KeySelectorMatchesByKey(t *testing.T) {
	snap := snapshotOf(t, buildPanelTree())

	ast, err := selector.Parse("#submit_btn")
	require.NoError(t, err)

	matches := selector.Find(ast, snap)
	require.Len(t, matches, 1)
	assert.Equal(t, "Submit", matches[0].Label)
}

func TestFind_TypeAndAttrSelector(t *testing.T) {
	snap := snapshotOf(t, buildPanelTree())

	ast, err := selector.Parse(`Button[label="Submit"]`)
	require.NoError(t, err)

	matches := selector.Find(ast, snap)
	require.Len(t, matches, 1)
	assert.Equal(t, "submit_btn", matches[0].Key)
}

func TestFind_RoleAttrMatchesFlags(t *testing.T) {
	snap := snapshotOf(t, buildPanelTree())

	buttons, err := selector.Parse("role=button")
	require.NoError(t, err)
	assert.Len(t, selector.Find(buttons, snap), 1)

	fields, err := selector.Parse("role=textField")
	require.NoError(t, err)
	assert.Len(t, selector.Find(fields, snap), 1)
}

func TestFind_DescendantCombinatorMatchesAnyAncestorDepth(t *testing.T) {
	snap := snapshotOf(t, buildPanelTree())

	// Column is the grandparent of Button (via Row); descendant
	// combinator must still match across that gap.
	ast, err := selector.Parse("Column Button")
	require.NoError(t, err)

	matches := selector.Find(ast, snap)
	require.Len(t, matches, 1)
	assert.Equal(t, "submit_btn", matches[0].Key)
}

func TestFind_ChildCombinatorRequiresImmediateParent(t *testing.T) {
	snap := snapshotOf(t, buildPanelTree())

	// Column is not Button's immediate parent (Row is), so the child
	// combinator must reject the match that the descendant combinator
	// accepts.
	ast, err := selector.Parse("Column > Button")
	require.NoError(t, err)

	assert.Empty(t, selector.Find(ast, snap))

	ast, err = selector.Parse("Row > Button")
	require.NoError(t, err)

	matches := selector.Find(ast, snap)
	require.Len(t, matches, 1)
	assert.Equal(t, "submit_btn", matches[0].Key)
}

func TestFind_RegexAttrMatch(t *testing.T) {
	snap := snapshotOf(t, buildPanelTree())

	ast, err := selector.Parse(`label=~/^Sub/`)
	require.NoError(t, err)

	matches := selector.Find(ast, snap)
	require.Len(t, matches, 1)
	assert.Equal(t, "submit_btn", matches[0].Key)
}

func TestFind_UnknownAttributeFallsBackToMetadataAndMisses(t *testing.T) {
	snap := snapshotOf(t, buildPanelTree())

	ast, err := selector.Parse("testId=checkout_button")
	require.NoError(t, err)

	assert.Empty(t, selector.Find(ast, snap))
}

func TestFind_NoMatchReturnsEmpty(t *testing.T) {
	snap := snapshotOf(t, buildPanelTree())

	ast, err := selector.Parse("#does_not_exist")
	require.NoError(t, err)

	assert.Empty(t, selector.Find(ast, snap))
	assert.Nil(t, selector.FindFirst(ast, snap))
}
