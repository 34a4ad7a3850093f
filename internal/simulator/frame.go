package simulator

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/swapp1990/mcp-apps/internal/transport"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/bridge"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/views"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/views/appview"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/views/loanview"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/views/regexview"
)

// frame is one live demo app instance: an in-process view connected to a
// host session over a pipe, standing in for an iframe plus postMessage.
type frame struct {
	app  string
	view views.View
	host *bridge.HostSession
	sess *bridge.ViewSession
	log  *zap.Logger

	// updated fires after the view applies a tool result or a cancel, so
	// the caller knows the next Render reflects the delivery.
	updated chan struct{}

	// viewHeight is the last height the view reported over the bridge,
	// the number a real host would size the iframe with.
	mu         sync.Mutex
	viewHeight int
}

func viewForApp(app string) views.View {
	switch app {
	case AppFinder:
		return appview.New()
	case AppRegex:
		return regexview.New()
	case AppLoanCalculator:
		return loanview.New()
	default:
		return nil
	}
}

// newFrame builds the pipe, runs the handshake on both ends, and leaves
// the frame ready for tool traffic.
func newFrame(ctx context.Context, app string, hostCtx bridge.HostContext, log *zap.Logger) (*frame, error) {
	view := viewForApp(app)
	if view == nil {
		return nil, fmt.Errorf("simulator: no view for app %q", app)
	}

	f := &frame{
		app:     app,
		view:    view,
		log:     log,
		updated: make(chan struct{}, 1),
	}

	hostEnd, viewEnd := transport.NewPipe()

	f.host = bridge.NewHostSession(hostEnd, bridge.HostOptions{
		HostContext: hostCtx,
		OnSizeChanged: func(height int) {
			f.setViewHeight(height)
			log.Debug("view size changed", zap.String("app", app), zap.Int("height", height))
		},
		OnOpenLink: func(url string) {
			log.Info("view requested link open", zap.String("app", app), zap.String("url", url))
		},
	})

	f.sess = bridge.NewViewSession(viewEnd, bridge.ViewHandlers{
		OnToolResult: func(p bridge.ToolResultParams) {
			f.view.ApplyContent(p.Content)
			f.reportSize(ctx)
			f.notify()
		},
		OnCancelled: func() {
			f.view.Cancel()
			f.reportSize(ctx)
			f.notify()
		},
		OnHostContext: func(hc bridge.HostContext) {
			f.view.ApplyTheme(hc.Theme)
		},
	})

	// The host waits for ui/initialize, the view sends it; run the host
	// side concurrently so neither end deadlocks on the other.
	started := make(chan error, 1)
	go func() { started <- f.host.Start(ctx) }()

	if err := f.sess.Connect(ctx); err != nil {
		f.host.Close()

		return nil, err
	}
	if err := <-started; err != nil {
		f.sess.Close()

		return nil, err
	}

	go func() { _ = f.sess.Run(ctx) }()

	return f, nil
}

func (f *frame) notify() {
	select {
	case f.updated <- struct{}{}:
	default:
	}
}

// reportSize tells the host how tall the current render is, after every
// content change. Advisory; a failed report does not fail the delivery.
func (f *frame) reportSize(ctx context.Context) {
	if err := f.sess.ReportSize(ctx, f.view.Render().Height()); err != nil {
		f.log.Debug("size report failed", zap.String("app", f.app), zap.Error(err))
	}
}

func (f *frame) setViewHeight(h int) {
	f.mu.Lock()
	f.viewHeight = h
	f.mu.Unlock()
}

// height is the last view height the host received.
func (f *frame) height() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.viewHeight
}

// deliver forwards one tool call's input and result to the view and
// waits for the view to apply it.
func (f *frame) deliver(ctx context.Context, tool string, args map[string]any, content []envelope.Block) error {
	if err := f.host.SendToolInput(ctx, tool, args); err != nil {
		return err
	}
	if err := f.host.SendToolResult(ctx, tool, content); err != nil {
		return err
	}

	return f.awaitUpdate(ctx)
}

// cancel clears the view to its cancelled placeholder.
func (f *frame) cancel(ctx context.Context) error {
	if err := f.host.SendToolCancelled(ctx); err != nil {
		return err
	}

	return f.awaitUpdate(ctx)
}

func (f *frame) awaitUpdate(ctx context.Context) error {
	select {
	case <-f.updated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// setTheme pushes a host context change carrying the new theme.
func (f *frame) setTheme(ctx context.Context, theme string) error {
	return f.host.SendHostContext(ctx, bridge.HostContext{Theme: theme})
}

// close tears the frame down. The shared pipe close also stops the view
// session's run loop.
func (f *frame) close() {
	_ = f.host.Close()
}
