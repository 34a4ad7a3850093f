// Package simulator is a terminal host for the demo MCP apps. It plays
// a scripted conversation: prompts are matched against a keyword table,
// the matched tool is called on a real MCP server, and the result is
// delivered over the view bridge to an in-process view whose render is
// printed to the terminal.
package simulator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/bridge"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/views"
)

// ToolCaller invokes a named tool on the MCP server and returns the
// result content blocks.
type ToolCaller interface {
	CallTool(ctx context.Context, tool string, args map[string]any) ([]envelope.Block, error)
}

// Options configures a Simulator.
type Options struct {
	Script []Step
	Theme  string
	Logger *zap.Logger
}

// Simulator drives the scripted conversation loop.
type Simulator struct {
	caller ToolCaller
	script []Step
	log    *zap.Logger

	hostCtx bridge.HostContext
	frame   *frame
}

// New creates a simulator. A nil script uses DefaultScript.
func New(caller ToolCaller, opts Options) *Simulator {
	script := opts.Script
	if script == nil {
		script = DefaultScript()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	theme := opts.Theme
	if theme == "" {
		theme = "light"
	}

	return &Simulator{
		caller:  caller,
		script:  script,
		log:     log,
		hostCtx: bridge.HostContext{Theme: theme},
	}
}

// Run reads prompts from in and writes the conversation to out until in
// is exhausted or ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	defer s.teardown()

	fmt.Fprintln(out, "mcp-apps simulator. Try: \"find me productivity apps\", \"test this regex\", \"calculate a loan\". Ctrl-D exits.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			continue
		}

		if handled, err := s.command(ctx, out, prompt); handled {
			if err != nil {
				fmt.Fprintf(out, "! %v\n", err)
			}

			continue
		}

		if err := s.Turn(ctx, out, prompt); err != nil {
			fmt.Fprintf(out, "! %v\n", err)
		}
	}

	return scanner.Err()
}

// command handles the non-conversational controls: theme switching and
// cancelling the in-flight view.
func (s *Simulator) command(ctx context.Context, out io.Writer, prompt string) (bool, error) {
	switch {
	case prompt == "/cancel":
		if s.frame == nil {
			return true, nil
		}
		if err := s.frame.cancel(ctx); err != nil {
			return true, err
		}
		s.render(out)

		return true, nil

	case strings.HasPrefix(prompt, "/theme "):
		theme := strings.TrimPrefix(prompt, "/theme ")
		s.hostCtx.Theme = theme
		if s.frame != nil {
			if err := s.frame.setTheme(ctx, theme); err != nil {
				return true, err
			}
		}
		fmt.Fprintf(out, "theme set to %s\n", theme)

		return true, nil
	}

	return false, nil
}

// Turn plays one scripted exchange for the prompt.
func (s *Simulator) Turn(ctx context.Context, out io.Writer, prompt string) error {
	step, ok := Match(s.script, prompt)
	if !ok {
		fmt.Fprintln(out, "I don't have a demo for that. Try apps, regex, or loans.")

		return nil
	}

	blocks, err := s.caller.CallTool(ctx, step.Tool, step.Args)
	if err != nil {
		return fmt.Errorf("call %s: %w", step.Tool, err)
	}

	if err := s.ensureFrame(ctx, AppForTool(step.Tool)); err != nil {
		return err
	}
	if err := s.frame.deliver(ctx, step.Tool, step.Args, blocks); err != nil {
		return err
	}

	fmt.Fprintln(out, step.Reply)
	s.render(out)

	return nil
}

// ensureFrame keeps the frame for app alive across turns, tearing down
// the previous app's frame on a switch. A closed session is also
// replaced, matching how a host recreates a crashed iframe.
func (s *Simulator) ensureFrame(ctx context.Context, app string) error {
	if s.frame != nil && s.frame.app == app && s.frame.host.State() == bridge.HostReady {
		return nil
	}

	s.teardown()

	f, err := newFrame(ctx, app, s.hostCtx, s.log)
	if err != nil {
		return fmt.Errorf("open %s view: %w", app, err)
	}
	s.frame = f
	s.log.Debug("view frame opened", zap.String("app", app), zap.String("session", f.host.ID()))

	return nil
}

func (s *Simulator) teardown() {
	if s.frame != nil {
		s.frame.close()
		s.frame = nil
	}
}

// render prints the active view's current render model.
func (s *Simulator) render(out io.Writer) {
	if s.frame == nil {
		return
	}

	model := s.frame.view.Render()
	printModel(out, model)
}

func printModel(out io.Writer, m views.RenderModel) {
	fmt.Fprintf(out, "┌─ %s", m.Title)
	if m.Theme != "" {
		fmt.Fprintf(out, " [%s]", m.Theme)
	}
	fmt.Fprintln(out)

	for _, sec := range m.Sections {
		if sec.Heading != "" {
			fmt.Fprintf(out, "│ %s\n", sec.Heading)
		}
		for _, line := range sec.Lines {
			fmt.Fprintf(out, "│   %s\n", line)
		}
	}
	fmt.Fprintf(out, "└─ %d lines\n", m.Height())
}
