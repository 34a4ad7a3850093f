// Package bridge implements the host/view message-passing discipline: a
// JSON-RPC style wire with an initialize handshake, host-context
// propagation, tool-result delivery, size reporting and cancellation.
//
// The host and an embedded view each own a mirrored session state
// machine; both are deployed independently, so the method names and
// parameter shapes here must remain stable.
package bridge

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
)

// ProtocolVersion is the bridge wire protocol revision.
const ProtocolVersion = "2024-11-01"

// Wire method names. Initialize is the only request/response pair; the
// rest are notifications.
const (
	MethodInitialize         = "ui/initialize"
	MethodInitialized        = "ui/initialized"
	MethodToolInput          = "ui/toolInput"
	MethodToolResult         = "ui/toolResult"
	MethodToolCancelled      = "ui/toolCancelled"
	MethodHostContextChanged = "ui/hostContextChanged"
	MethodSizeChanged        = "ui/sizeChanged"
	MethodOpenLink           = "ui/openLink"
)

var (
	ErrNotReady = errors.New("bridge: session not ready")
	ErrClosed   = errors.New("bridge: session closed")
)

// Message is one JSON-RPC style wire envelope. Requests carry ID and
// Method; notifications carry Method only; responses carry ID and Result.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *WireError      `json:"error,omitempty"`
}

// WireError is a JSON-RPC style error object.
type WireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IsNotification reports whether the message carries no ID.
func (m Message) IsNotification() bool {
	return len(m.ID) == 0 || string(m.ID) == "null"
}

// newNotification builds a notification message for method with params.
func newNotification(method string, params any) (Message, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return Message{}, err
	}

	return Message{JSONRPC: "2.0", Method: method, Params: raw}, nil
}

// HostContext is theme and style information pushed from host to view.
// Sent once inside the initialize response and re-sent on every host
// side theme change; a view re-applies it on each receipt.
type HostContext struct {
	Theme  string  `json:"theme,omitempty"`
	Styles *Styles `json:"styles,omitempty"`
}

// Styles carries host CSS variables and font configuration.
type Styles struct {
	Variables map[string]string `json:"variables,omitempty"`
	CSS       *CSSConfig        `json:"css,omitempty"`
}

// CSSConfig carries font family configuration.
type CSSConfig struct {
	Fonts map[string]string `json:"fonts,omitempty"`
}

// ViewCapabilities advertises what a view supports in the handshake.
type ViewCapabilities struct {
	SizeReporting bool `json:"sizeReporting,omitempty"`
	OpenLink      bool `json:"openLink,omitempty"`
}

// HostCapabilities advertises what the host supports in the handshake.
type HostCapabilities struct {
	HostContextUpdates bool `json:"hostContextUpdates,omitempty"`
	ToolCancellation   bool `json:"toolCancellation,omitempty"`
}

// InitializeParams is the ui/initialize request payload (view to host).
type InitializeParams struct {
	ProtocolVersion string           `json:"protocolVersion"`
	Capabilities    ViewCapabilities `json:"capabilities"`
}

// InitializeResult is the ui/initialize response payload (host to view).
type InitializeResult struct {
	ProtocolVersion string           `json:"protocolVersion"`
	Capabilities    HostCapabilities `json:"capabilities"`
	HostContext     HostContext      `json:"hostContext"`
}

// ToolInputParams is the ui/toolInput notification payload.
type ToolInputParams struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ToolResultParams is the ui/toolResult notification payload: the full
// tool result content list, from which a view extracts its envelope.
type ToolResultParams struct {
	Tool    string           `json:"tool"`
	Content []envelope.Block `json:"content"`
}

// SizeChangedParams is the ui/sizeChanged notification payload. Advisory
// and unacknowledged; a later report supersedes an earlier one.
type SizeChangedParams struct {
	Height int `json:"height"`
}

// OpenLinkParams is the ui/openLink notification payload.
type OpenLinkParams struct {
	URL string `json:"url"`
}

// Conn is the bidirectional message channel a session runs over: the
// postMessage analogue. Implementations must make Send and Receive safe
// for concurrent use and must unblock both on Close.
type Conn interface {
	Send(ctx context.Context, msg Message) error
	Receive(ctx context.Context) (Message, error)
	Close() error
}
