package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fap"
	"fap/internal/config"
	"fap/internal/hostbridge"
	"fap/internal/hostfake"
	"fap/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fap-harness agent and RPC server",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	service, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed, continuing with defaults: %v\n", err)
	}

	cfg := service.Get()

	logger, err := logging.New(logging.Options{Level: "info", DisableFileLogging: true})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	host := demoHost()
	agent := fap.New(cfg, host, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := agent.Start(ctx); err != nil {
		return fmt.Errorf("failed to start agent: %w", err)
	}

	for agent.Addr() == "" {
		time.Sleep(5 * time.Millisecond)
	}

	fmt.Fprintf(os.Stdout, "fap-harness listening on ws://%s/\n", agent.Addr())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return agent.Stop(shutdownCtx)
}

// demoHost builds a small representative widget tree so getTree/tap/
// enterText have something to exercise without a real platform adapter.
func demoHost() *hostfake.Host {
	submit := hostfake.NewNode(2, "ElevatedButton", hostbridge.Rect{X: 20, Y: 120, W: 200, H: 48}, hostbridge.NewActionSet(hostbridge.ActionTap)).
		WithKey("submit_btn").
		WithLabel("Submit").
		WithFlags(hostbridge.FlagIsButton)

	nameField := hostfake.NewNode(3, "TextField", hostbridge.Rect{X: 20, Y: 40, W: 200, H: 48},
		hostbridge.NewActionSet(hostbridge.ActionSetText, hostbridge.ActionSetSelection)).
		WithKey("name_field").
		WithHint("Your name").
		WithFlags(hostbridge.FlagIsTextField)

	root := hostfake.NewNode(1, "Column", hostbridge.Rect{X: 0, Y: 0, W: 240, H: 200}, hostbridge.NewActionSet()).
		AddChild(nameField).
		AddChild(submit)

	return hostfake.NewHost(root)
}
