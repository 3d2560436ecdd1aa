package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"time"

	"fap/internal/ferrors"
	"fap/internal/selector"
	"fap/internal/tree"
)

type methodHandler func(ctx context.Context, s *Server, params json.RawMessage) (any, error)

var methodTable = map[string]methodHandler{
	"ping":                   handlePing,
	"getTree":                handleGetTree,
	"getTreeDiff":            handleGetTreeDiff,
	"getRoute":               handleGetRoute,
	"tap":                    handleTap,
	"tapAt":                  handleTapAt,
	"enterText":              handleEnterText,
	"setText":                handleSetText,
	"setSelection":           handleSetSelection,
	"scroll":                 handleScroll,
	"drag":                   handleDrag,
	"longPress":              handleLongPress,
	"doubleTap":              handleDoubleTap,
	"getErrors":              handleGetErrors,
	"getLogs":                handleGetLogs,
	"getPerformanceMetrics":  handleGetPerformanceMetrics,
	"captureScreenshot":      handleCaptureScreenshot,
	"startRecording":         handleStartRecording,
	"stopRecording":          handleStopRecording,
}

func decodeParams[T any](raw json.RawMessage) (T, error) {
	var p T

	if len(raw) == 0 {
		return p, nil
	}

	if err := json.Unmarshal(raw, &p); err != nil {
		var zero T

		return zero, ferrors.Wrap(err, ferrors.CodeInvalidParams, "failed to decode params")
	}

	return p, nil
}

// resolveSelector parses and evaluates sel against a fresh snapshot,
// per spec §5's re-index-before-evaluate rule.
func resolveSelector(ctx context.Context, s *Server, sel string) (*tree.IndexedElement, error) {
	if sel == "" {
		return nil, ferrors.New(ferrors.CodeSelectorRequired, "selector is required")
	}

	ast, err := selector.Parse(sel)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.indexer.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	elem := selector.FindFirst(ast, snapshot)
	if elem == nil {
		return nil, ferrors.Newf(ferrors.CodeElementNotFound, "no element matched selector %q", sel)
	}

	return elem, nil
}

func handlePing(_ context.Context, _ *Server, _ json.RawMessage) (any, error) {
	return "pong", nil
}

type getTreeResult struct {
	Elements        []*tree.IndexedElement `json:"elements"`
	Cached          bool                   `json:"cached"`
	CacheAgeSeconds float64                `json:"cacheAgeSeconds"`
}

func handleGetTree(ctx context.Context, s *Server, _ json.RawMessage) (any, error) {
	snapshot, err := s.indexer.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return getTreeResult{
		Elements:        snapshot.Elements,
		Cached:          snapshot.LastResponseWasCached,
		CacheAgeSeconds: snapshot.CacheAgeSeconds,
	}, nil
}

func handleGetTreeDiff(ctx context.Context, s *Server, _ json.RawMessage) (any, error) {
	return s.indexer.Diff(ctx)
}

func handleGetRoute(_ context.Context, s *Server, _ json.RawMessage) (any, error) {
	return s.obs.Route(), nil
}

type selectorParams struct {
	Selector string `json:"selector"`
}

func handleTap(ctx context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[selectorParams](raw)
	if err != nil {
		return nil, err
	}

	target, err := resolveSelector(ctx, s, p.Selector)
	if err != nil {
		return nil, err
	}

	result, err := s.exec.Tap(ctx, target)
	if err != nil {
		return nil, err
	}

	s.recordEvent("tap", p.Selector, nil)

	return map[string]any{
		"status":  "ok",
		"element": target,
		"debug":   map[string]any{"center": result.Center},
	}, nil
}

type tapAtParams struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func handleTapAt(ctx context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[tapAtParams](raw)
	if err != nil {
		return nil, err
	}

	result, err := s.exec.TapAt(ctx, image.Point{X: int(p.X), Y: int(p.Y)})
	if err != nil {
		return nil, err
	}

	s.recordEvent("tapAt", "", map[string]any{"x": p.X, "y": p.Y})

	return map[string]any{"status": "ok", "center": result.Center}, nil
}

type enterTextParams struct {
	Text     string `json:"text"`
	Selector string `json:"selector"`
}

func handleEnterText(ctx context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[enterTextParams](raw)
	if err != nil {
		return nil, err
	}

	target, err := resolveSelector(ctx, s, p.Selector)
	if err != nil {
		return nil, err
	}

	if !target.IsInteractable {
		return nil, ferrors.Newf(ferrors.CodeElementNotInteractable, "element %s is not interactable", target.FapID)
	}

	if err := s.exec.EnterText(ctx, p.Text, false, "done"); err != nil {
		return nil, err
	}

	s.recordEvent("enterText", p.Selector, map[string]any{"text": p.Text})

	return map[string]any{"status": "ok", "text": p.Text}, nil
}

type setTextParams struct {
	Selector string `json:"selector"`
	Text     string `json:"text"`
}

func handleSetText(ctx context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[setTextParams](raw)
	if err != nil {
		return nil, err
	}

	target, err := resolveSelector(ctx, s, p.Selector)
	if err != nil {
		return nil, err
	}

	if err := s.exec.SetText(ctx, target, p.Text); err != nil {
		return nil, err
	}

	s.recordEvent("setText", p.Selector, map[string]any{"text": p.Text})

	return map[string]any{"status": "ok", "text": p.Text}, nil
}

type setSelectionParams struct {
	Selector string `json:"selector"`
	Base     int    `json:"base"`
	Extent   int    `json:"extent"`
}

func handleSetSelection(ctx context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[setSelectionParams](raw)
	if err != nil {
		return nil, err
	}

	target, err := resolveSelector(ctx, s, p.Selector)
	if err != nil {
		return nil, err
	}

	if err := s.exec.SetSelection(ctx, target, p.Base, p.Extent); err != nil {
		return nil, err
	}

	s.recordEvent("setSelection", p.Selector, map[string]any{"base": p.Base, "extent": p.Extent})

	return map[string]any{"status": "ok", "base": p.Base, "extent": p.Extent}, nil
}

type scrollParams struct {
	Selector   string  `json:"selector"`
	Dx         float64 `json:"dx"`
	Dy         float64 `json:"dy"`
	DurationMs int     `json:"durationMs"`
}

func handleScroll(ctx context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[scrollParams](raw)
	if err != nil {
		return nil, err
	}

	target, err := resolveSelector(ctx, s, p.Selector)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(p.DurationMs) * time.Millisecond
	if err := s.exec.Scroll(ctx, target, p.Dx, p.Dy, duration); err != nil {
		return nil, err
	}

	s.recordEvent("scroll", p.Selector, map[string]any{"dx": p.Dx, "dy": p.Dy})

	return map[string]any{"status": "ok"}, nil
}

type dragParams struct {
	Selector       string   `json:"selector"`
	TargetSelector string   `json:"targetSelector"`
	Dx             *float64 `json:"dx"`
	Dy             *float64 `json:"dy"`
	DurationMs     int      `json:"durationMs"`
}

func handleDrag(ctx context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[dragParams](raw)
	if err != nil {
		return nil, err
	}

	from, err := resolveSelector(ctx, s, p.Selector)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(p.DurationMs) * time.Millisecond

	if p.TargetSelector != "" {
		to, err := resolveSelector(ctx, s, p.TargetSelector)
		if err != nil {
			return nil, err
		}

		if err := s.exec.DragToElement(ctx, from, to, duration); err != nil {
			return nil, err
		}

		s.recordEvent("drag", p.Selector, map[string]any{"targetSelector": p.TargetSelector})

		return map[string]any{"status": "ok"}, nil
	}

	dx, dy := 0.0, 0.0
	if p.Dx != nil {
		dx = *p.Dx
	}

	if p.Dy != nil {
		dy = *p.Dy
	}

	if !from.IsInteractable {
		return nil, ferrors.Newf(ferrors.CodeElementNotInteractable, "element %s is not interactable", from.FapID)
	}

	fromCenter := rectCenter(from)
	toPoint := image.Point{X: fromCenter.X + int(dx), Y: fromCenter.Y + int(dy)}

	if err := s.exec.Drag(ctx, fromCenter, toPoint, duration); err != nil {
		return nil, err
	}

	s.recordEvent("drag", p.Selector, map[string]any{"dx": dx, "dy": dy})

	return map[string]any{"status": "ok"}, nil
}

func rectCenter(elem *tree.IndexedElement) image.Point {
	return image.Point{
		X: int(elem.Rect.X + elem.Rect.W/2),
		Y: int(elem.Rect.Y + elem.Rect.H/2),
	}
}

type longPressParams struct {
	Selector   string `json:"selector"`
	DurationMs int    `json:"durationMs"`
}

func handleLongPress(ctx context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[longPressParams](raw)
	if err != nil {
		return nil, err
	}

	target, err := resolveSelector(ctx, s, p.Selector)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(p.DurationMs) * time.Millisecond
	if err := s.exec.LongPress(ctx, target, duration); err != nil {
		return nil, err
	}

	s.recordEvent("longPress", p.Selector, nil)

	return map[string]any{"status": "ok"}, nil
}

func handleDoubleTap(ctx context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[selectorParams](raw)
	if err != nil {
		return nil, err
	}

	target, err := resolveSelector(ctx, s, p.Selector)
	if err != nil {
		return nil, err
	}

	if err := s.exec.DoubleTap(ctx, target); err != nil {
		return nil, err
	}

	s.recordEvent("doubleTap", p.Selector, nil)

	return map[string]any{"status": "ok"}, nil
}

type getErrorsParams struct {
	Since int64 `json:"since"`
}

func handleGetErrors(_ context.Context, s *Server, raw json.RawMessage) (any, error) {
	p, err := decodeParams[getErrorsParams](raw)
	if err != nil {
		return nil, err
	}

	return s.obs.Errors(p.Since), nil
}

func handleGetLogs(_ context.Context, s *Server, _ json.RawMessage) (any, error) {
	return s.obs.Logs(), nil
}

func handleGetPerformanceMetrics(_ context.Context, s *Server, _ json.RawMessage) (any, error) {
	return s.obs.FrameTimings(), nil
}

func handleCaptureScreenshot(ctx context.Context, s *Server, _ json.RawMessage) (any, error) {
	png, err := s.host.CaptureImage(ctx, 1.0)
	if err != nil {
		return nil, err
	}

	return map[string]any{"base64": base64.StdEncoding.EncodeToString(png)}, nil
}

func handleStartRecording(_ context.Context, s *Server, _ json.RawMessage) (any, error) {
	s.recording.start()

	return map[string]any{"status": "ok"}, nil
}

func handleStopRecording(_ context.Context, s *Server, _ json.RawMessage) (any, error) {
	s.recording.stop()

	return map[string]any{"status": "ok"}, nil
}
