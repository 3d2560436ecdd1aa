package rpc

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fap/internal/config"
	"fap/internal/executor"
	"fap/internal/hostbridge"
	"fap/internal/observability"
	"fap/internal/tree"
)

// Server is the FAP RPC server: one HTTP listener upgrading every
// accepted connection to a WebSocket duplex stream, per spec §4.F/§6.
type Server struct {
	cfg    config.ServerConfig
	host   hostbridge.Port
	indexer *tree.Indexer
	exec   *executor.Executor
	obs    *observability.Buffers
	logger *zap.Logger

	upgrader websocket.Upgrader

	mu          sync.Mutex
	conns       map[*conn]struct{}
	activeCount int
	recording   *recordingState

	httpServer *http.Server
	listener   net.Listener
}

// Addr returns the server's bound address. It is only meaningful
// after Serve has started listening; callers typically synchronize
// with a readiness signal of their own (tests) or simply query the
// configured BindEnvVar ahead of time in production.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// New constructs a Server wiring the given subsystems. It does not
// start listening until Serve is called.
func New(cfg config.ServerConfig, host hostbridge.Port, indexer *tree.Indexer, exec *executor.Executor, obs *observability.Buffers, logger *zap.Logger) *Server {
	return &Server{
		cfg:       cfg,
		host:      host,
		indexer:   indexer,
		exec:      exec,
		obs:       obs,
		logger:    logger,
		upgrader:  websocket.Upgrader{HandshakeTimeout: cfg.HandshakeTimeout},
		conns:     make(map[*conn]struct{}),
		recording: newRecordingState(),
	}
}

// Serve blocks, accepting connections until ctx is canceled or an
// unrecoverable listener error occurs. It is a no-op, returning nil
// immediately, when the configured kill switch disables the server.
func (s *Server) Serve(ctx context.Context) error {
	if killSwitchDisabled(s.cfg.KillSwitchEnvVar) {
		s.logger.Info("rpc server disabled by kill switch", zap.String("envVar", s.cfg.KillSwitchEnvVar))

		return nil
	}

	addr := resolveBindAddr(s.cfg.BindEnvVar, s.logger)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleUpgrade)

	s.mu.Lock()
	s.httpServer = &http.Server{Handler: mux}
	s.listener = listener
	s.mu.Unlock()

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("rpc server listening", zap.String("addr", listener.Addr().String()))
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}

		return err
	}
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	if s.cfg.AuthToken != "" {
		header := r.Header.Get("Authorization")
		if header != "Bearer "+s.cfg.AuthToken {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))

		return
	}

	c := newConn(s, ws)
	s.addConn(c)

	go c.run()
}

func (s *Server) addConn(c *conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conns[c] = struct{}{}
	s.activeCount++

	if s.activeCount == 1 {
		if err := s.host.EnsureAccessibilityActive(context.Background()); err != nil {
			s.logger.Warn("ensure accessibility active failed", zap.Error(err))
		}
	}
}

func (s *Server) removeConn(c *conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conns, c)
	s.activeCount--

	if s.activeCount == 0 {
		if err := s.host.ReleaseAccessibility(context.Background()); err != nil {
			s.logger.Warn("release accessibility failed", zap.Error(err))
		}
	}
}

// recordEvent broadcasts a recording.event notification for an
// executed action when recording is active, per spec §4.F. It is a
// no-op while recording is stopped.
func (s *Server) recordEvent(action, selector string, extra map[string]any) {
	if !s.recording.isActive() {
		return
	}

	payload := map[string]any{
		"action":    action,
		"timestamp": time.Now().UnixMilli(),
	}

	if selector != "" {
		payload["selector"] = selector
	}

	for k, v := range extra {
		payload[k] = v
	}

	s.Broadcast("recording.event", payload)
}

// Broadcast sends a notification to every connected client. Failures
// writing to an individual connection are logged, not propagated —
// broadcast is best-effort (spec §1 Non-goals: "multi-agent contention
// beyond best-effort broadcast").
func (s *Server) Broadcast(method string, params any) {
	s.mu.Lock()
	targets := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		if err := c.sendNotification(method, params); err != nil {
			s.logger.Warn("broadcast to connection failed", zap.Error(err))
		}
	}
}
