package main

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath string
	timeoutSec int

	// version is set via ldflags at build time.
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "fap-harness",
	Short:   "Reference harness for the Flutter Agent Protocol",
	Long:    `fap-harness wires a fake host bridge to the FAP agent and serves its RPC protocol over a local WebSocket, for exercising the protocol before writing a real platform adapter.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 5, "RPC dial timeout in seconds")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

func timeout() time.Duration {
	return time.Duration(timeoutSec) * time.Second
}
