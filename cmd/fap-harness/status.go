package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [addr]",
	Short: "Ping a running fap-harness instance",
	Long:  `Dials a running fap-harness RPC server and issues a ping call, printing its reply.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, args []string) error {
	addr := "127.0.0.1:0"
	if len(args) == 1 {
		addr = args[0]
	}

	target := url.URL{Scheme: "ws", Host: addr, Path: "/"}

	ctx, cancel := context.WithTimeout(context.Background(), timeout())
	defer cancel()

	dialer := websocket.Dialer{}

	conn, _, err := dialer.DialContext(ctx, target.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to reach fap-harness at %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"id": 1, "method": "ping"}); err != nil {
		return fmt.Errorf("failed to send ping: %w", err)
	}

	var reply map[string]any
	if err := conn.ReadJSON(&reply); err != nil {
		return fmt.Errorf("failed to read ping reply: %w", err)
	}

	encoded, err := json.MarshalIndent(reply, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(encoded))

	return nil
}
