package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ViewState is the view-side session lifecycle, mirroring the host's.
type ViewState int

const (
	ViewIdle ViewState = iota
	ViewInitializing
	ViewReady
	ViewClosed
)

// ViewHandlers receives dispatched host traffic. All callbacks are
// optional; they are invoked from the session goroutine that is reading,
// so implementations should be quick and must not call back into the
// session's Connect or Run.
type ViewHandlers struct {
	OnToolInput   func(ToolInputParams)
	OnToolResult  func(ToolResultParams)
	OnCancelled   func()
	OnHostContext func(HostContext)
}

// ViewSession is the view side of the bridge. Connect performs the
// handshake; Run pumps host notifications to the handlers. Tool traffic
// that arrives before the handshake completes is queued and flushed in
// order the moment the session reaches ready.
type ViewSession struct {
	conn     Conn
	id       string
	handlers ViewHandlers

	mu       sync.Mutex
	state    ViewState
	pending  []Message
	hostCaps HostCapabilities
}

// NewViewSession creates a view session over conn.
func NewViewSession(conn Conn, handlers ViewHandlers) *ViewSession {
	return &ViewSession{
		conn:     conn,
		id:       uuid.NewString(),
		handlers: handlers,
		state:    ViewIdle,
	}
}

// State returns the current lifecycle state.
func (s *ViewSession) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// HostCapabilities returns the capabilities the host advertised in the
// handshake. Valid once Connect has returned.
func (s *ViewSession) HostCapabilities() HostCapabilities {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hostCaps
}

// Connect sends the ui/initialize request, waits for the host's
// response, applies the initial host context, and acknowledges with
// ui/initialized. Host notifications observed while waiting are queued
// and flushed once ready.
func (s *ViewSession) Connect(ctx context.Context) error {
	s.setState(ViewInitializing)

	reqID, err := json.Marshal(uuid.NewString())
	if err != nil {
		return fmt.Errorf("bridge: marshal request id: %w", err)
	}

	params, err := json.Marshal(InitializeParams{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    ViewCapabilities{SizeReporting: true, OpenLink: true},
	})
	if err != nil {
		return fmt.Errorf("bridge: marshal initialize params: %w", err)
	}

	req := Message{JSONRPC: "2.0", ID: reqID, Method: MethodInitialize, Params: params}
	if err := s.conn.Send(ctx, req); err != nil {
		s.setState(ViewClosed)

		return fmt.Errorf("bridge: send initialize: %w", err)
	}

	result, err := s.awaitInitializeResult(ctx, reqID)
	if err != nil {
		s.setState(ViewClosed)

		return err
	}

	if s.handlers.OnHostContext != nil {
		s.handlers.OnHostContext(result.HostContext)
	}

	ack, err := newNotification(MethodInitialized, struct{}{})
	if err != nil {
		return fmt.Errorf("bridge: marshal initialized: %w", err)
	}
	if err := s.conn.Send(ctx, ack); err != nil {
		s.setState(ViewClosed)

		return fmt.Errorf("bridge: send initialized: %w", err)
	}

	s.mu.Lock()
	s.state = ViewReady
	s.hostCaps = result.Capabilities
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, msg := range queued {
		s.dispatch(msg)
	}

	return nil
}

// awaitInitializeResult reads until the response to reqID arrives,
// queueing any tool traffic seen in the meantime.
func (s *ViewSession) awaitInitializeResult(ctx context.Context, reqID json.RawMessage) (InitializeResult, error) {
	for {
		msg, err := s.conn.Receive(ctx)
		if err != nil {
			return InitializeResult{}, fmt.Errorf("bridge: await initialize result: %w", err)
		}

		if msg.IsNotification() {
			s.mu.Lock()
			s.pending = append(s.pending, msg)
			s.mu.Unlock()

			continue
		}

		if string(msg.ID) != string(reqID) {
			continue
		}

		if msg.Error != nil {
			return InitializeResult{}, fmt.Errorf("bridge: initialize rejected: %s", msg.Error.Message)
		}

		var result InitializeResult
		if err := json.Unmarshal(msg.Result, &result); err != nil {
			return InitializeResult{}, fmt.Errorf("bridge: decode initialize result: %w", err)
		}

		return result, nil
	}
}

// Run pumps host notifications until the connection closes. It returns
// nil on a clean close. A malformed message degrades to a skip: the
// session stays able to receive a later valid tool result.
func (s *ViewSession) Run(ctx context.Context) error {
	for {
		msg, err := s.conn.Receive(ctx)
		if err != nil {
			s.setState(ViewClosed)

			if ctx.Err() != nil {
				return ctx.Err()
			}

			return nil
		}

		s.dispatch(msg)
	}
}

// dispatch routes one host notification to the handlers.
func (s *ViewSession) dispatch(msg Message) {
	switch msg.Method {
	case MethodToolInput:
		var p ToolInputParams
		if json.Unmarshal(msg.Params, &p) == nil && s.handlers.OnToolInput != nil {
			s.handlers.OnToolInput(p)
		}
	case MethodToolResult:
		var p ToolResultParams
		if json.Unmarshal(msg.Params, &p) == nil && s.handlers.OnToolResult != nil {
			s.handlers.OnToolResult(p)
		}
	case MethodToolCancelled:
		if s.handlers.OnCancelled != nil {
			s.handlers.OnCancelled()
		}
	case MethodHostContextChanged:
		var p HostContext
		if json.Unmarshal(msg.Params, &p) == nil && s.handlers.OnHostContext != nil {
			s.handlers.OnHostContext(p)
		}
	}
}

// ReportSize sends a fire-and-forget rendered-height report. Later
// reports supersede earlier ones, so callers need at most one
// outstanding report.
func (s *ViewSession) ReportSize(ctx context.Context, height int) error {
	return s.notifyReady(ctx, MethodSizeChanged, SizeChangedParams{Height: height})
}

// OpenLink asks the host to open a URL on the view's behalf.
func (s *ViewSession) OpenLink(ctx context.Context, url string) error {
	return s.notifyReady(ctx, MethodOpenLink, OpenLinkParams{URL: url})
}

func (s *ViewSession) notifyReady(ctx context.Context, method string, params any) error {
	switch s.State() {
	case ViewReady:
	case ViewClosed:
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

// Close terminates the session; terminal.
func (s *ViewSession) Close() error {
	s.setState(ViewClosed)

	return s.conn.Close()
}

func (s *ViewSession) setState(state ViewState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
