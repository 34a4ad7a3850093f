// Package tools implements the tool handler layer: it wraps each engine
// call, validates input, and produces a dual-format result, a
// human-readable text block for the AI consumer plus a structured
// envelope for the view consumer. Both always describe the same computed
// result.
package tools

import (
	"fmt"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
)

// ToolResult is the handler-layer output: the same result in two shapes.
type ToolResult struct {
	Text     string
	Envelope envelope.Envelope
}

// Blocks renders the result as tool content blocks: the plain text first,
// the serialized envelope second.
func (r ToolResult) Blocks() ([]envelope.Block, error) {
	envBlock, err := envelope.EncodeBlock(r.Envelope)
	if err != nil {
		return nil, err
	}

	return []envelope.Block{envelope.TextBlock(r.Text), envBlock}, nil
}

// Safe runs a handler and converts a returned error into an error-tagged
// envelope plus an AI-readable error line. A handler error therefore
// never propagates as an unhandled fault to the host.
func Safe(marker string, fn func() (ToolResult, error)) ToolResult {
	res, err := fn()
	if err != nil {
		return ToolResult{
			Text: fmt.Sprintf("Error: %s", err.Error()),
			Envelope: envelope.ErrorEnvelope{
				AppMarker: marker,
				Message:   err.Error(),
			},
		}
	}

	return res
}
