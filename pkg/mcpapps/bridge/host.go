package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
)

// HostState is the host-side session lifecycle.
type HostState int

const (
	HostDisconnected HostState = iota
	HostHandshaking
	HostReady
	HostClosed
)

// HostOptions configures a host session. Callbacks are optional and are
// invoked from the session's read goroutine.
type HostOptions struct {
	HostContext   HostContext
	OnSizeChanged func(height int)
	OnOpenLink    func(url string)
}

// HostSession is the host side of one view iframe instance. It owns the
// handshake and delivers tool traffic once the view acknowledges
// initialization. Destroy the session with Close when the view is
// replaced, otherwise its read goroutine leaks.
type HostSession struct {
	conn Conn
	id   string
	opts HostOptions

	mu      sync.Mutex
	state   HostState
	hostCtx HostContext
}

// NewHostSession creates a host session over conn. Call Start to run the
// handshake.
func NewHostSession(conn Conn, opts HostOptions) *HostSession {
	return &HostSession{
		conn:    conn,
		id:      uuid.NewString(),
		opts:    opts,
		state:   HostDisconnected,
		hostCtx: opts.HostContext,
	}
}

// ID returns the session identifier.
func (s *HostSession) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *HostSession) State() HostState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Start runs the handshake: it waits for the view's ui/initialize
// request, responds with host capabilities and the initial host context,
// and waits for the ui/initialized acknowledgment. Only after Start
// returns may tool traffic be sent. Messages arriving before the
// handshake completes are dropped, never fatal.
func (s *HostSession) Start(ctx context.Context) error {
	s.setState(HostHandshaking)

	responded := false

	for {
		msg, err := s.conn.Receive(ctx)
		if err != nil {
			s.setState(HostClosed)

			return fmt.Errorf("bridge: handshake receive: %w", err)
		}

		switch {
		case msg.Method == MethodInitialize && !msg.IsNotification():
			if err := s.respondInitialize(ctx, msg); err != nil {
				s.setState(HostClosed)

				return err
			}
			responded = true

		case msg.Method == MethodInitialized && responded:
			s.setState(HostReady)
			go s.readLoop(ctx)

			return nil
		}
	}
}

// respondInitialize answers a ui/initialize request.
func (s *HostSession) respondInitialize(ctx context.Context, req Message) error {
	s.mu.Lock()
	hostCtx := s.hostCtx
	s.mu.Unlock()

	result, err := json.Marshal(InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: HostCapabilities{
			HostContextUpdates: true,
			ToolCancellation:   true,
		},
		HostContext: hostCtx,
	})
	if err != nil {
		return fmt.Errorf("bridge: marshal initialize result: %w", err)
	}

	resp := Message{JSONRPC: "2.0", ID: req.ID, Result: result}
	if err := s.conn.Send(ctx, resp); err != nil {
		return fmt.Errorf("bridge: send initialize result: %w", err)
	}

	return nil
}

// readLoop consumes view notifications (size reports, link opens) until
// the connection closes. Malformed messages are skipped.
func (s *HostSession) readLoop(ctx context.Context) {
	for {
		msg, err := s.conn.Receive(ctx)
		if err != nil {
			s.setState(HostClosed)

			return
		}

		switch msg.Method {
		case MethodSizeChanged:
			var p SizeChangedParams
			if json.Unmarshal(msg.Params, &p) == nil && s.opts.OnSizeChanged != nil {
				s.opts.OnSizeChanged(p.Height)
			}
		case MethodOpenLink:
			var p OpenLinkParams
			if json.Unmarshal(msg.Params, &p) == nil && s.opts.OnOpenLink != nil {
				s.opts.OnOpenLink(p.URL)
			}
		}
	}
}

// SendToolInput forwards the in-flight tool call's input to the view.
func (s *HostSession) SendToolInput(ctx context.Context, tool string, args map[string]any) error {
	return s.notifyReady(ctx, MethodToolInput, ToolInputParams{Tool: tool, Arguments: args})
}

// SendToolResult delivers one tool result content list. Exactly one per
// logical tool call; the view replaces its prior render state wholesale.
func (s *HostSession) SendToolResult(ctx context.Context, tool string, content []envelope.Block) error {
	return s.notifyReady(ctx, MethodToolResult, ToolResultParams{Tool: tool, Content: content})
}

// SendToolCancelled tells the view to clear to its cancelled state.
func (s *HostSession) SendToolCancelled(ctx context.Context) error {
	return s.notifyReady(ctx, MethodToolCancelled, struct{}{})
}

// SendHostContext pushes a theme/style change. Idempotent on the view
// side; may be called any number of times while ready.
func (s *HostSession) SendHostContext(ctx context.Context, hostCtx HostContext) error {
	s.mu.Lock()
	s.hostCtx = hostCtx
	s.mu.Unlock()

	return s.notifyReady(ctx, MethodHostContextChanged, hostCtx)
}

// notifyReady sends a notification, requiring the ready state.
func (s *HostSession) notifyReady(ctx context.Context, method string, params any) error {
	switch s.State() {
	case HostReady:
	case HostClosed:
		return ErrClosed
	default:
		return ErrNotReady
	}

	msg, err := newNotification(method, params)
	if err != nil {
		return fmt.Errorf("bridge: marshal %s params: %w", method, err)
	}

	return s.conn.Send(ctx, msg)
}

// Close terminates the session. Closed is terminal; no further messages
// are valid in either direction.
func (s *HostSession) Close() error {
	s.setState(HostClosed)

	return s.conn.Close()
}

func (s *HostSession) setState(state HostState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
