// Package mcpserver is the serving shell: it registers the demo app
// tools and their view resources on an MCP server and exposes stdio and
// streamable-HTTP modes. All tool semantics live in the handler layer;
// this package only adapts arguments in and content blocks out.
package mcpserver

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/ports"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/tools"
)

const (
	serverName    = "mcp-apps"
	serverVersion = "0.3.0"
)

// Server wires the tool handlers into an MCP server instance.
type Server struct {
	mcp *server.MCPServer
	log *zap.Logger

	appFinder *tools.AppFinder
	regex     tools.Regex
	loan      tools.Loan
}

// New creates a fully registered server.
func New(store ports.CatalogStore, qlog ports.QueryLogger, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		mcp: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithRecovery(),
			server.WithInstructions(
				"Demo MCP apps: app finder, regex playground and loan calculator. "+
					"Each tool returns a text summary plus a structured view payload.",
			),
		),
		log:       log,
		appFinder: &tools.AppFinder{Store: store, Log: qlog},
	}

	s.registerAppFinderTools()
	s.registerRegexTools()
	s.registerLoanTools()
	s.registerResources()

	return s
}

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("serving over stdio")

	return server.ServeStdio(s.mcp)
}

// ServeHTTP blocks serving the streamable HTTP transport on addr.
func (s *Server) ServeHTTP(addr string) error {
	s.log.Info("serving over http", zap.String("addr", addr))

	return server.NewStreamableHTTPServer(s.mcp).Start(addr)
}

// handle adapts a handler invocation into an MCP tool result: the Safe
// wrapper guarantees an envelope even on failure, and the envelope is
// mirrored into structuredContent for hosts that prefer that slot.
func (s *Server) handle(tool, marker string, fn func() (tools.ToolResult, error)) *mcp.CallToolResult {
	res := tools.Safe(marker, fn)

	blocks, err := res.Blocks()
	if err != nil {
		s.log.Error("encode tool result", zap.String("tool", tool), zap.Error(err))

		return mcp.NewToolResultError("internal error encoding the tool result")
	}

	content := make([]mcp.Content, 0, len(blocks))
	for _, b := range blocks {
		content = append(content, mcp.NewTextContent(b.Text))
	}

	structured, err := envelope.Encode(res.Envelope)
	if err != nil {
		return &mcp.CallToolResult{Content: content}
	}

	s.log.Debug("tool call served",
		zap.String("tool", tool),
		zap.String("viewType", res.Envelope.ViewType()),
	)

	return &mcp.CallToolResult{
		Content:           content,
		StructuredContent: json.RawMessage(structured),
	}
}

// bind decodes tool arguments into a typed struct, reporting a friendly
// error result on malformed input.
func bind[T any](req mcp.CallToolRequest) (T, error) {
	var args T
	err := req.BindArguments(&args)

	return args, err
}
