// The simulator binary launches the mcp-apps server as a stdio
// subprocess and plays a scripted conversation against it, rendering
// each tool result through the matching embedded view.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/swapp1990/mcp-apps/internal/config"
	"github.com/swapp1990/mcp-apps/internal/simulator"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
)

const clientVersion = "0.3.0"

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	log, err := config.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	serverBin := os.Getenv("MCP_APPS_SERVER_BIN")
	if serverBin == "" {
		serverBin = "mcp-apps-server"
	}

	client := mcpsdk.NewClient(
		&mcpsdk.Implementation{Name: "mcp-apps-simulator", Version: clientVersion},
		nil,
	)

	cmd := exec.CommandContext(ctx, serverBin)
	cmd.Stderr = os.Stderr

	session, err := client.Connect(ctx, &mcpsdk.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", serverBin, err)
	}
	defer func() { _ = session.Close() }()

	sim := simulator.New(&sessionCaller{session: session}, simulator.Options{Logger: log})

	return sim.Run(ctx, os.Stdin, os.Stdout)
}

// sessionCaller adapts an MCP client session to the simulator's caller
// interface, flattening result content to text blocks.
type sessionCaller struct {
	session *mcpsdk.ClientSession
}

func (c *sessionCaller) CallTool(ctx context.Context, tool string, args map[string]any) ([]envelope.Block, error) {
	res, err := c.session.CallTool(ctx, &mcpsdk.CallToolParams{Name: tool, Arguments: args})
	if err != nil {
		return nil, err
	}

	blocks := make([]envelope.Block, 0, len(res.Content))
	for _, content := range res.Content {
		if text, ok := content.(*mcpsdk.TextContent); ok {
			blocks = append(blocks, envelope.TextBlock(text.Text))
		}
	}

	return blocks, nil
}
