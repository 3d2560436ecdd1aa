// Package main is the fap-harness entry point: a runnable reference
// harness wiring a fake host bridge to the FAP agent, the way the
// teacher's cmd/neru wires a real platform adapter to internal/app.App.
// It exists so an integrator can exercise the RPC protocol end to end
// before writing a real host adapter; it is not a driver SDK.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
