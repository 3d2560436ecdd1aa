package hostfake_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/ferrors"
	"fap/internal/hostbridge"
	"fap/internal/hostfake"
)

func buildTree() *hostfake.Node {
	button := hostfake.NewNode(1, "Button",
		hostbridge.Rect{X: 10, Y: 10, W: 100, H: 40},
		hostbridge.NewActionSet(hostbridge.ActionTap)).
		WithKey("submit_btn").
		WithLabel("Submit")

	field := hostfake.NewNode(2, "TextField",
		hostbridge.Rect{X: 10, Y: 60, W: 200, H: 30},
		hostbridge.NewActionSet(hostbridge.ActionSetText, hostbridge.ActionSetSelection)).
		WithKey("name_field")

	root := hostfake.NewNode(0, "Column", hostbridge.Rect{X: 0, Y: 0, W: 400, H: 400}, 0).
		AddChild(button).
		AddChild(field)

	return root
}

func TestHost_TraverseAccessibility_SkipsRootAndComposesTransforms(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	var nodes []*hostbridge.AccessibilityNode

	err := host.TraverseAccessibility(context.Background(), func(node *hostbridge.AccessibilityNode, _ hostbridge.Transform, _, _ int) error {
		nodes = append(nodes, node)

		return nil
	})

	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, hostbridge.NodeID(1), nodes[0].ID)
	assert.InDelta(t, 10, nodes[0].Rect.X, 1e-6)
	assert.InDelta(t, 10, nodes[0].Rect.Y, 1e-6)

	assert.Equal(t, hostbridge.NodeID(2), nodes[1].ID)
	assert.InDelta(t, 10, nodes[1].Rect.X, 1e-6)
	assert.InDelta(t, 60, nodes[1].Rect.Y, 1e-6)
}

func TestHost_TraverseAccessibility_SkipsInvisibleButVisitsDescendants(t *testing.T) {
	hidden := hostfake.NewNode(5, "Overlay", hostbridge.Rect{W: 10, H: 10}, 0).
		WithFlags(hostbridge.FlagIsInvisible)
	hidden.AddChild(hostfake.NewNode(6, "Text", hostbridge.Rect{W: 5, H: 5}, 0))

	host := hostfake.NewHost(hidden)

	var ids []hostbridge.NodeID

	err := host.TraverseAccessibility(context.Background(), func(node *hostbridge.AccessibilityNode, _ hostbridge.Transform, _, _ int) error {
		ids = append(ids, node.ID)

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []hostbridge.NodeID{6}, ids)
}

func TestHost_TraverseAccessibility_ParentIndexSkipsInvisibleAncestors(t *testing.T) {
	hidden := hostfake.NewNode(5, "Overlay", hostbridge.Rect{W: 10, H: 10}, 0).
		WithFlags(hostbridge.FlagIsInvisible)
	hidden.AddChild(hostfake.NewNode(6, "Text", hostbridge.Rect{W: 5, H: 5}, 0))

	button := hostfake.NewNode(1, "Button", hostbridge.Rect{W: 1, H: 1}, 0)
	root := hostfake.NewNode(0, "Column", hostbridge.Rect{}, 0).
		AddChild(button).
		AddChild(hidden)

	host := hostfake.NewHost(root)

	parentByID := map[hostbridge.NodeID]int{}

	err := host.TraverseAccessibility(context.Background(), func(node *hostbridge.AccessibilityNode, _ hostbridge.Transform, _, parentIndex int) error {
		parentByID[node.ID] = parentIndex

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, -1, parentByID[1])
	assert.Equal(t, -1, parentByID[6]) // hidden ancestor (node 5) is skipped, not emitted
}

func TestHost_TraverseElements_VisitsEveryNode(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	var keys []string

	err := host.TraverseElements(context.Background(), func(elem *hostbridge.Element, _, _ int) error {
		keys = append(keys, elem.Key)

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"", "submit_btn", "name_field"}, keys)
}

func TestHost_TraverseElements_ReportsParentIndex(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	parentByIndex := map[int]int{}

	err := host.TraverseElements(context.Background(), func(_ *hostbridge.Element, index, parentIndex int) error {
		parentByIndex[index] = parentIndex

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, -1, parentByIndex[0])
	assert.Equal(t, 0, parentByIndex[1])
	assert.Equal(t, 0, parentByIndex[2])
}

func TestHost_PerformAccessibilityAction_SetText(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	err := host.PerformAccessibilityAction(context.Background(), 2, hostbridge.ActionSetText,
		hostbridge.ActionPayload{Text: "hello"})

	require.NoError(t, err)

	performed := host.PerformedActions()
	require.Len(t, performed, 1)
	assert.Equal(t, "hello", performed[0].Payload.Text)
}

func TestHost_PerformAccessibilityAction_UnsupportedAction(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	err := host.PerformAccessibilityAction(context.Background(), 1, hostbridge.ActionSetText,
		hostbridge.ActionPayload{Text: "x"})

	require.Error(t, err)
	assert.Equal(t, ferrors.CodeActionNotSupported, ferrors.GetCode(err))
}

func TestHost_PerformAccessibilityAction_UnknownRef(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	err := host.PerformAccessibilityAction(context.Background(), 999, hostbridge.ActionTap, hostbridge.ActionPayload{})

	require.Error(t, err)
	assert.Equal(t, ferrors.CodeElementNotFound, ferrors.GetCode(err))
}

func TestHost_DispatchPointer_RecordsEvents(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	event := hostbridge.PointerEvent{Kind: hostbridge.PointerKindMouse, Phase: hostbridge.PointerPhaseDown}
	require.NoError(t, host.DispatchPointer(context.Background(), event))

	assert.Equal(t, []hostbridge.PointerEvent{event}, host.PointerLog())
}

func TestHost_CaptureImage_UnavailableByDefault(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	_, err := host.CaptureImage(context.Background(), 1.0)

	require.Error(t, err)
	assert.Equal(t, ferrors.CodeCaptureUnavailable, ferrors.GetCode(err))
}

func TestHost_CaptureImage_ReturnsConfiguredBytes(t *testing.T) {
	host := hostfake.NewHost(buildTree())
	host.SetCaptureImage([]byte("png-bytes"))

	data, err := host.CaptureImage(context.Background(), 1.0)

	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestHost_AccessibilityActivation_RefCounts(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	require.NoError(t, host.EnsureAccessibilityActive(context.Background()))
	require.NoError(t, host.EnsureAccessibilityActive(context.Background()))
	assert.Equal(t, 2, host.ActivationCount())

	require.NoError(t, host.ReleaseAccessibility(context.Background()))
	assert.Equal(t, 1, host.ActivationCount())

	require.NoError(t, host.ReleaseAccessibility(context.Background()))
	assert.Equal(t, 0, host.ActivationCount())

	err := host.ReleaseAccessibility(context.Background())
	require.Error(t, err)
}

func TestHost_Subscriptions_EmitToRegisteredCallbacks(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	var gotRoute string
	host.RegisterRouteObserver(func(route string) { gotRoute = route })
	host.EmitRoute("/settings")

	assert.Equal(t, "/settings", gotRoute)

	var gotTiming hostbridge.FrameTiming
	host.RegisterFrameTimings(func(timing hostbridge.FrameTiming) { gotTiming = timing })
	host.EmitFrameTiming(hostbridge.FrameTiming{TotalMicroseconds: 1234})

	assert.Equal(t, int64(1234), gotTiming.TotalMicroseconds)
}

func TestHost_InjectTextChannel_RecordsCalls(t *testing.T) {
	host := hostfake.NewHost(buildTree())

	result, err := host.InjectTextChannel(context.Background(), "TextInput.setEditingState", map[string]any{"text": "hi"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"acknowledged": true}, result)

	calls := host.TextChannelCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "TextInput.setEditingState", calls[0].Method)
}
