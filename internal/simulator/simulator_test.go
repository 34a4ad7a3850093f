package simulator

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/loanengine"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/tools"
)

// fakeCaller serves a couple of tools in-process, recording each call.
type fakeCaller struct {
	calls []string
}

func (c *fakeCaller) CallTool(_ context.Context, tool string, args map[string]any) ([]envelope.Block, error) {
	c.calls = append(c.calls, tool)

	var (
		res tools.ToolResult
		err error
	)
	switch tool {
	case "calculate_loan":
		res, err = tools.Loan{}.Calculate(loanengine.Params{
			Principal:     350000,
			AnnualRatePct: 6.5,
			TermYears:     30,
		})
	case "test_regex":
		res, err = tools.Regex{}.Test(`\d+`, "g", "a1 b22", nil)
	default:
		return nil, fmt.Errorf("fake caller: no handler for %s", tool)
	}
	if err != nil {
		return nil, err
	}

	return res.Blocks()
}

func TestMatchFirstHit(t *testing.T) {
	script := DefaultScript()

	step, ok := Match(script, "Compare these LOANS for me")
	if !ok || step.Tool != "compare_loans" {
		t.Errorf("compare loans: got %q %v", step.Tool, ok)
	}

	step, ok = Match(script, "compare these two apps")
	if !ok || step.Tool != "compare_apps" {
		t.Errorf("compare apps: got %q %v", step.Tool, ok)
	}

	step, ok = Match(script, "test this regex")
	if !ok || step.Tool != "test_regex" {
		t.Errorf("regex: got %q %v", step.Tool, ok)
	}

	if _, ok := Match(script, "what is the weather"); ok {
		t.Error("unexpected match for an off-script prompt")
	}
}

func TestAppForTool(t *testing.T) {
	cases := map[string]string{
		"search_apps":           AppFinder,
		"get_alternatives":      AppFinder,
		"explain_regex":         AppRegex,
		"amortization_schedule": AppLoanCalculator,
		"unknown_tool":          "",
	}
	for tool, want := range cases {
		if got := AppForTool(tool); got != want {
			t.Errorf("AppForTool(%q) = %q, want %q", tool, got, want)
		}
	}
}

func TestTurnDeliversToView(t *testing.T) {
	caller := &fakeCaller{}
	sim := New(caller, Options{})
	defer sim.teardown()

	var out bytes.Buffer
	if err := sim.Turn(context.Background(), &out, "calculate a loan for me"); err != nil {
		t.Fatal(err)
	}

	if len(caller.calls) != 1 || caller.calls[0] != "calculate_loan" {
		t.Errorf("calls: got %v", caller.calls)
	}
	if !strings.Contains(out.String(), "Here is the monthly breakdown for that loan.") {
		t.Errorf("reply missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Loan Calculator") {
		t.Errorf("view render missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "$2212.24") {
		t.Errorf("computed payment missing:\n%s", out.String())
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestDeliveryReportsViewHeight(t *testing.T) {
	sim := New(&fakeCaller{}, Options{})
	defer sim.teardown()

	var out bytes.Buffer
	ctx := context.Background()

	if err := sim.Turn(ctx, &out, "calculate a loan"); err != nil {
		t.Fatal(err)
	}

	want := sim.frame.view.Render().Height()
	if want <= 1 {
		t.Fatalf("render height %d too small to be a delivered view", want)
	}
	waitFor(t, func() bool { return sim.frame.height() == want })

	// A cancel changes the render and re-reports the new height.
	if err := sim.frame.cancel(ctx); err != nil {
		t.Fatal(err)
	}
	cancelled := sim.frame.view.Render().Height()
	waitFor(t, func() bool { return sim.frame.height() == cancelled })
}

func TestTurnSwitchesFrameAcrossApps(t *testing.T) {
	sim := New(&fakeCaller{}, Options{})
	defer sim.teardown()

	var out bytes.Buffer
	ctx := context.Background()

	if err := sim.Turn(ctx, &out, "calculate a loan"); err != nil {
		t.Fatal(err)
	}
	first := sim.frame

	if err := sim.Turn(ctx, &out, "calculate a loan again"); err != nil {
		t.Fatal(err)
	}
	if sim.frame != first {
		t.Error("same-app turn must reuse the frame")
	}

	if err := sim.Turn(ctx, &out, "test this regex"); err != nil {
		t.Fatal(err)
	}
	if sim.frame == first {
		t.Error("app switch must replace the frame")
	}
	if sim.frame.app != AppRegex {
		t.Errorf("frame app: got %q", sim.frame.app)
	}
}

func TestTurnOffScriptPrompt(t *testing.T) {
	sim := New(&fakeCaller{}, Options{})
	defer sim.teardown()

	var out bytes.Buffer
	if err := sim.Turn(context.Background(), &out, "sing me a song"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "I don't have a demo for that") {
		t.Errorf("fallback reply missing:\n%s", out.String())
	}
}

func TestCancelCommand(t *testing.T) {
	sim := New(&fakeCaller{}, Options{})
	defer sim.teardown()

	var out bytes.Buffer
	ctx := context.Background()

	// Cancel with no frame open is a quiet no-op.
	handled, err := sim.command(ctx, &out, "/cancel")
	if !handled || err != nil {
		t.Fatalf("idle cancel: handled=%v err=%v", handled, err)
	}

	if err := sim.Turn(ctx, &out, "calculate a loan"); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	handled, err = sim.command(ctx, &out, "/cancel")
	if !handled || err != nil {
		t.Fatalf("cancel: handled=%v err=%v", handled, err)
	}
	if !strings.Contains(out.String(), "Loan Calculator") {
		t.Errorf("cancelled render missing:\n%s", out.String())
	}
}

func TestThemeCommand(t *testing.T) {
	sim := New(&fakeCaller{}, Options{Theme: "light"})
	defer sim.teardown()

	var out bytes.Buffer
	ctx := context.Background()

	handled, err := sim.command(ctx, &out, "/theme dark")
	if !handled || err != nil {
		t.Fatalf("theme: handled=%v err=%v", handled, err)
	}
	if !strings.Contains(out.String(), "theme set to dark") {
		t.Errorf("ack missing:\n%s", out.String())
	}

	// A frame opened afterwards picks the new theme up from the handshake.
	out.Reset()
	if err := sim.Turn(ctx, &out, "calculate a loan"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[dark]") {
		t.Errorf("theme not applied:\n%s", out.String())
	}
}
