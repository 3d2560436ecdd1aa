package fap

import (
	"context"

	"go.uber.org/zap"

	"fap/internal/config"
	"fap/internal/executor"
	"fap/internal/hostbridge"
	"fap/internal/observability"
	"fap/internal/rpc"
	"fap/internal/tree"
)

// Agent is the process-wide FAP context: the tree indexer, action
// executor, observability buffers, and RPC server wired against a
// single host bridge. Mirrors the teacher's internal/app.App
// struct-of-subsystems wiring, minus the overlay/hotkey/systray
// components that have no FAP equivalent.
type Agent struct {
	cfg    *config.Config
	host   hostbridge.Port
	logger *zap.Logger

	indexer  *tree.Indexer
	executor *executor.Executor
	obs      *observability.Buffers
	server   *rpc.Server

	cancel context.CancelFunc
	done   chan error
}

// New constructs an Agent wired against host. It does not start
// listening until Start is called.
func New(cfg *config.Config, host hostbridge.Port, logger *zap.Logger) *Agent {
	indexer := tree.NewIndexer(host, cfg.Tree.CacheTTL, cfg.Tree.CacheSizeLimit)
	exec := executor.New(host, cfg.Action, logger)

	obs := observability.New(cfg.Observability)
	obs.Attach(host)

	server := rpc.New(cfg.Server, host, indexer, exec, obs, logger)

	return &Agent{
		cfg:      cfg,
		host:     host,
		logger:   logger,
		indexer:  indexer,
		executor: exec,
		obs:      obs,
		server:   server,
	}
}

// Start launches the RPC listener in the background and returns
// immediately. The agent runs until ctx is canceled or Stop is called.
func (a *Agent) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan error, 1)

	go func() {
		a.done <- a.server.Serve(runCtx)
	}()

	a.logger.Info("fap agent started")

	return nil
}

// Stop requests a graceful shutdown and waits for the RPC listener to
// close, bounded by ctx.
func (a *Agent) Stop(ctx context.Context) error {
	if a.cancel == nil {
		return nil
	}

	a.cancel()

	select {
	case err := <-a.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Addr returns the RPC server's bound address, empty until Start has
// brought up the listener.
func (a *Agent) Addr() string {
	return a.server.Addr()
}

// Broadcast pushes a server-initiated notification to every connected
// RPC client. Exposed so a host adapter can surface its own events
// (e.g. a custom lifecycle hook) through the same wire protocol.
func (a *Agent) Broadcast(method string, params any) {
	a.server.Broadcast(method, params)
}
