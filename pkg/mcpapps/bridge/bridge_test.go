package bridge_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/swapp1990/mcp-apps/internal/transport"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/bridge"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
)

// recorder collects dispatched view traffic.
type recorder struct {
	mu      sync.Mutex
	results []bridge.ToolResultParams
	inputs  []bridge.ToolInputParams
	themes  []string
	cancels int
}

func (r *recorder) handlers() bridge.ViewHandlers {
	return bridge.ViewHandlers{
		OnToolInput: func(p bridge.ToolInputParams) {
			r.mu.Lock()
			r.inputs = append(r.inputs, p)
			r.mu.Unlock()
		},
		OnToolResult: func(p bridge.ToolResultParams) {
			r.mu.Lock()
			r.results = append(r.results, p)
			r.mu.Unlock()
		},
		OnCancelled: func() {
			r.mu.Lock()
			r.cancels++
			r.mu.Unlock()
		},
		OnHostContext: func(hc bridge.HostContext) {
			r.mu.Lock()
			r.themes = append(r.themes, hc.Theme)
			r.mu.Unlock()
		},
	}
}

func (r *recorder) snapshot() (results int, cancels int, themes []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.results), r.cancels, append([]string(nil), r.themes...)
}

// connect runs the full handshake over a pipe and returns both ready
// sessions.
func connect(t *testing.T, rec *recorder, hostCtx bridge.HostContext) (*bridge.HostSession, *bridge.ViewSession) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	hostEnd, viewEnd := transport.NewPipe()
	host := bridge.NewHostSession(hostEnd, bridge.HostOptions{HostContext: hostCtx})
	view := bridge.NewViewSession(viewEnd, rec.handlers())

	started := make(chan error, 1)
	go func() { started <- host.Start(ctx) }()

	if err := view.Connect(ctx); err != nil {
		t.Fatalf("view connect: %v", err)
	}
	if err := <-started; err != nil {
		t.Fatalf("host start: %v", err)
	}

	t.Cleanup(func() { _ = host.Close() })

	return host, view
}

func TestHandshakeReachesReady(t *testing.T) {
	rec := &recorder{}
	host, view := connect(t, rec, bridge.HostContext{Theme: "dark"})

	if host.State() != bridge.HostReady {
		t.Errorf("host state: got %v", host.State())
	}
	if view.State() != bridge.ViewReady {
		t.Errorf("view state: got %v", view.State())
	}

	// The initial host context is applied during the handshake.
	_, _, themes := rec.snapshot()
	if len(themes) != 1 || themes[0] != "dark" {
		t.Errorf("themes: got %v", themes)
	}

	caps := view.HostCapabilities()
	if !caps.HostContextUpdates || !caps.ToolCancellation {
		t.Errorf("host capabilities: got %+v", caps)
	}
}

func TestSendBeforeReadyFails(t *testing.T) {
	hostEnd, _ := transport.NewPipe()
	host := bridge.NewHostSession(hostEnd, bridge.HostOptions{})

	err := host.SendToolResult(context.Background(), "test_regex", nil)
	if !errors.Is(err, bridge.ErrNotReady) {
		t.Errorf("got %v, want ErrNotReady", err)
	}
}

func TestToolTrafficDispatch(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	host, view := connect(t, rec, bridge.HostContext{})

	done := make(chan struct{})
	go func() {
		_ = view.Run(ctx)
		close(done)
	}()

	blocks := []envelope.Block{envelope.TextBlock("hello")}
	if err := host.SendToolInput(ctx, "test_regex", map[string]any{"pattern": "a"}); err != nil {
		t.Fatal(err)
	}
	if err := host.SendToolResult(ctx, "test_regex", blocks); err != nil {
		t.Fatal(err)
	}
	if err := host.SendToolCancelled(ctx); err != nil {
		t.Fatal(err)
	}
	if err := host.SendHostContext(ctx, bridge.HostContext{Theme: "dark"}); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		results, cancels, themes := rec.snapshot()

		return results == 1 && cancels == 1 && len(themes) == 2
	})

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.results[0].Tool != "test_regex" || len(rec.results[0].Content) != 1 {
		t.Errorf("result params: got %+v", rec.results[0])
	}
	if len(rec.inputs) != 1 || rec.inputs[0].Arguments["pattern"] != "a" {
		t.Errorf("input params: got %+v", rec.inputs)
	}

	_ = host.Close()
	<-done
}

// Tool traffic arriving before the initialize response must be queued,
// not dropped, and flushed the moment the session reaches ready. The
// host side is driven by hand so the interleaving is deterministic.
func TestPreReadyTrafficQueued(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hostEnd, viewEnd := transport.NewPipe()
	rec := &recorder{}
	view := bridge.NewViewSession(viewEnd, rec.handlers())

	hostDone := make(chan error, 1)
	go func() {
		hostDone <- func() error {
			req, err := hostEnd.Receive(ctx)
			if err != nil {
				return err
			}

			// Deliver a tool result BEFORE answering the initialize
			// request; a naive view would render it prematurely or lose
			// it.
			early, err := json.Marshal(bridge.ToolResultParams{
				Tool:    "calculate_loan",
				Content: []envelope.Block{envelope.TextBlock("early")},
			})
			if err != nil {
				return err
			}
			if err := hostEnd.Send(ctx, bridge.Message{
				JSONRPC: "2.0", Method: bridge.MethodToolResult, Params: early,
			}); err != nil {
				return err
			}

			result, err := json.Marshal(bridge.InitializeResult{
				ProtocolVersion: bridge.ProtocolVersion,
			})
			if err != nil {
				return err
			}

			return hostEnd.Send(ctx, bridge.Message{JSONRPC: "2.0", ID: req.ID, Result: result})
		}()
	}()

	if err := view.Connect(ctx); err != nil {
		t.Fatalf("view connect: %v", err)
	}
	if err := <-hostDone; err != nil {
		t.Fatalf("host script: %v", err)
	}

	// The queued result was flushed during Connect, before Run starts.
	results, _, _ := rec.snapshot()
	if results != 1 {
		t.Fatalf("queued results flushed: got %d, want 1", results)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.results[0].Content[0].Text != "early" {
		t.Errorf("flushed content: got %+v", rec.results[0])
	}

	_ = view.Close()
}

func TestClosedIsTerminal(t *testing.T) {
	rec := &recorder{}
	host, view := connect(t, rec, bridge.HostContext{})

	if err := host.Close(); err != nil {
		t.Fatal(err)
	}

	if err := host.SendToolResult(context.Background(), "t", nil); !errors.Is(err, bridge.ErrClosed) {
		t.Errorf("host send after close: got %v, want ErrClosed", err)
	}

	// The shared pipe close also ends the view's run loop.
	if err := view.Run(context.Background()); err != nil {
		t.Errorf("view run after close: got %v, want nil", err)
	}
	if view.State() != bridge.ViewClosed {
		t.Errorf("view state: got %v", view.State())
	}
}

func TestViewNotificationsReachHost(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	var heights []int
	var links []string

	hostEnd, viewEnd := transport.NewPipe()
	host := bridge.NewHostSession(hostEnd, bridge.HostOptions{
		OnSizeChanged: func(h int) {
			mu.Lock()
			heights = append(heights, h)
			mu.Unlock()
		},
		OnOpenLink: func(u string) {
			mu.Lock()
			links = append(links, u)
			mu.Unlock()
		},
	})
	view := bridge.NewViewSession(viewEnd, bridge.ViewHandlers{})

	started := make(chan error, 1)
	go func() { started <- host.Start(ctx) }()
	if err := view.Connect(ctx); err != nil {
		t.Fatal(err)
	}
	if err := <-started; err != nil {
		t.Fatal(err)
	}
	defer func() { _ = host.Close() }()

	if err := view.ReportSize(ctx, 42); err != nil {
		t.Fatal(err)
	}
	if err := view.OpenLink(ctx, "https://example.com"); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(heights) == 1 && len(links) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	if heights[0] != 42 {
		t.Errorf("height: got %d", heights[0])
	}
	if links[0] != "https://example.com" {
		t.Errorf("link: got %q", links[0])
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("condition not met in time")
}
