package rpc

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fap/internal/trace"
)

// conn is one accepted client connection: a read loop dispatching
// requests to method handlers, and a write mutex serializing outbound
// frames (gorilla/websocket connections are not safe for concurrent
// writers).
type conn struct {
	server *Server
	ws     *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex
}

func newConn(s *Server, ws *websocket.Conn) *conn {
	return &conn{server: s, ws: ws, logger: s.logger}
}

func (c *conn) run() {
	defer func() {
		c.server.removeConn(c)
		_ = c.ws.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}

		c.handleFrame(raw)
	}
}

func (c *conn) handleFrame(raw []byte) {
	var req request

	if err := json.Unmarshal(raw, &req); err != nil {
		c.logger.Warn("failed to decode request frame", zap.Error(err))

		return
	}

	if req.ID == nil {
		c.dispatch(context.Background(), req)

		return
	}

	traceID := trace.NewID()
	ctx := trace.WithTraceID(context.Background(), traceID)
	c.dispatch(ctx, req)
}

func (c *conn) dispatch(ctx context.Context, req request) {
	handler, ok := methodTable[req.Method]
	if !ok {
		c.writeError(req.ID, wireError{Code: WireCodeUnknownMethod, Message: "unknown method: " + req.Method})

		return
	}

	result, err := handler(ctx, c.server, req.Params)
	if err != nil {
		c.writeError(req.ID, wireErrorFor(err))

		return
	}

	if req.ID == nil {
		return
	}

	c.writeResult(req.ID, result)
}

func (c *conn) writeResult(id json.RawMessage, result any) {
	c.writeFrame(response{ID: id, Result: result})
}

func (c *conn) writeError(id json.RawMessage, wireErr wireError) {
	c.writeFrame(errorResponse{ID: id, Error: wireErr})
}

func (c *conn) sendNotification(method string, params any) error {
	return c.writeFrameErr(notification{Method: method, Params: params})
}

func (c *conn) writeFrame(v any) {
	if err := c.writeFrameErr(v); err != nil {
		c.logger.Warn("failed to write response frame", zap.Error(err))
	}
}

func (c *conn) writeFrameErr(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if len(payload) > c.server.cfg.CompressionThresholdBytes && c.server.cfg.CompressionThresholdBytes > 0 {
		compressed, err := gzipAndEncode(payload)
		if err != nil {
			return err
		}

		payload, err = json.Marshal(compressedEnvelope{Compressed: true, Data: compressed})
		if err != nil {
			return err
		}
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func gzipAndEncode(payload []byte) (string, error) {
	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload); err != nil {
		return "", err
	}

	if err := gz.Close(); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
