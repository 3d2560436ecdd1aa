package executor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fap/internal/config"
	"fap/internal/executor"
	"fap/internal/ferrors"
	"fap/internal/hostbridge"
	"fap/internal/hostfake"
	"fap/internal/tree"
)

func testActionConfig() config.ActionConfig {
	return config.ActionConfig{
		HoverSettleDelay:  time.Millisecond,
		TapHoldDuration:   time.Millisecond,
		DoubleTapGap:      time.Millisecond,
		LongPressDuration: time.Millisecond,
		DragDuration:      4 * time.Millisecond,
		DragSteps:         4,
	}
}

func buildIndexedButton(t *testing.T, actions hostbridge.ActionSet) (*tree.IndexedElement, *hostfake.Host) {
	t.Helper()

	button := hostfake.NewNode(1, "Button", hostbridge.Rect{X: 10, Y: 10, W: 100, H: 40}, actions).
		WithKey("submit_btn").
		WithLabel("Submit")

	host := hostfake.NewHost(button)
	indexer := tree.NewIndexer(host, 5*time.Second, 1000)

	snap, err := indexer.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Elements, 1)

	return snap.Elements[0], host
}

func TestExecutor_Tap_DispatchesPointerSequenceAndAccessibilityFallback(t *testing.T) {
	target, host := buildIndexedButton(t, hostbridge.NewActionSet(hostbridge.ActionTap))

	ex := newTestExecutor(host)

	result, err := ex.Tap(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, 60, result.Center.X)
	assert.Equal(t, 30, result.Center.Y)

	pointerLog := host.PointerLog()
	require.Len(t, pointerLog, 3)
	assert.Equal(t, hostbridge.PointerPhaseHover, pointerLog[0].Phase)
	assert.Equal(t, hostbridge.PointerPhaseDown, pointerLog[1].Phase)
	assert.Equal(t, hostbridge.PointerPhaseUp, pointerLog[2].Phase)

	performed := host.PerformedActions()
	require.Len(t, performed, 1)
	assert.Equal(t, hostbridge.ActionTap, performed[0].Action)
}

func TestExecutor_Tap_NoAccessibilityFallbackWhenActionNotDeclared(t *testing.T) {
	target, host := buildIndexedButton(t, hostbridge.NewActionSet())

	ex := newTestExecutor(host)

	_, err := ex.Tap(context.Background(), target)
	require.NoError(t, err)

	assert.Empty(t, host.PerformedActions())
}

func TestExecutor_Tap_RejectsNonInteractableTarget(t *testing.T) {
	host := hostfake.NewHost(hostfake.NewNode(1, "Text", hostbridge.Rect{W: 10, H: 10}, 0))
	indexer := tree.NewIndexer(host, time.Second, 1000)

	snap, err := indexer.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Elements, 1)

	ex := newTestExecutor(host)

	_, err = ex.Tap(context.Background(), snap.Elements[0])
	require.Error(t, err)
	assert.True(t, ferrors.IsCode(err, ferrors.CodeElementNotInteractable))
}

func TestExecutor_DoubleTap_DispatchesTwoTapSequences(t *testing.T) {
	target, host := buildIndexedButton(t, hostbridge.NewActionSet(hostbridge.ActionTap))

	ex := newTestExecutor(host)

	err := ex.DoubleTap(context.Background(), target)
	require.NoError(t, err)

	assert.Len(t, host.PointerLog(), 6)
	assert.Len(t, host.PerformedActions(), 2)
}

func TestExecutor_LongPress_UsesTouchKind(t *testing.T) {
	target, host := buildIndexedButton(t, hostbridge.NewActionSet(hostbridge.ActionLongPress))

	ex := newTestExecutor(host)

	err := ex.LongPress(context.Background(), target, 0)
	require.NoError(t, err)

	log := host.PointerLog()
	require.Len(t, log, 2)
	assert.Equal(t, hostbridge.PointerKindTouch, log[0].Kind)
	assert.Equal(t, hostbridge.PointerKindTouch, log[1].Kind)
}

func TestExecutor_Scroll_EmitsInverseVectorDrag(t *testing.T) {
	target, host := buildIndexedButton(t, hostbridge.NewActionSet(hostbridge.ActionScrollDown))

	ex := newTestExecutor(host)

	err := ex.Scroll(context.Background(), target, 0, 50, 0)
	require.NoError(t, err)

	log := host.PointerLog()
	require.NotEmpty(t, log)
	down := log[0]
	up := log[len(log)-1]
	assert.Equal(t, hostbridge.PointerPhaseDown, down.Phase)
	assert.Equal(t, hostbridge.PointerPhaseUp, up.Phase)
	assert.Less(t, up.Position.Y, down.Position.Y) // positive dy drags upward
}

func TestExecutor_SetText_InvokesAccessibilityAction(t *testing.T) {
	target, host := buildIndexedButton(t, hostbridge.NewActionSet(hostbridge.ActionSetText))

	ex := newTestExecutor(host)

	err := ex.SetText(context.Background(), target, "hello")
	require.NoError(t, err)

	performed := host.PerformedActions()
	require.Len(t, performed, 1)
	assert.Equal(t, hostbridge.ActionSetText, performed[0].Action)
	assert.Equal(t, "hello", performed[0].Payload.Text)
}

func TestExecutor_SetText_FailsWhenActionNotSupported(t *testing.T) {
	target, host := buildIndexedButton(t, hostbridge.NewActionSet(hostbridge.ActionTap))

	ex := newTestExecutor(host)

	err := ex.SetText(context.Background(), target, "hello")
	require.Error(t, err)
	assert.True(t, ferrors.IsCode(err, ferrors.CodeActionNotSupported))
}

func TestExecutor_EnterText_EmitsCharacterByCharacterUpdates(t *testing.T) {
	_, host := buildIndexedButton(t, hostbridge.NewActionSet())

	ex := newTestExecutor(host)

	err := ex.EnterText(context.Background(), "hi", false, "done")
	require.NoError(t, err)

	calls := host.TextChannelCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "h", calls[0].Args["text"])
	assert.Equal(t, "hi", calls[1].Args["text"])
}

func TestExecutor_EnterText_NewlineTriggersPerformActionWhenSingleLine(t *testing.T) {
	_, host := buildIndexedButton(t, hostbridge.NewActionSet())

	ex := newTestExecutor(host)

	err := ex.EnterText(context.Background(), "a\nb", false, "done")
	require.NoError(t, err)

	calls := host.TextChannelCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, "a", calls[0].Args["text"])
	assert.Equal(t, "done", calls[1].Args["action"])
	assert.Equal(t, "b", calls[2].Args["text"])
}

func newTestExecutor(host *hostfake.Host) *executor.Executor {
	return executor.New(host, testActionConfig(), zap.NewNop())
}
