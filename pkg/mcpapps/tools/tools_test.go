package tools

import (
	"fmt"
	"strings"
	"testing"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
)

func TestSafePassesThrough(t *testing.T) {
	want := ToolResult{Text: "ok", Envelope: envelope.CheatsheetEnvelope{}}

	got := Safe(envelope.MarkerRegex, func() (ToolResult, error) {
		return want, nil
	})

	if got.Text != "ok" {
		t.Errorf("text: got %q", got.Text)
	}
}

func TestSafeConvertsError(t *testing.T) {
	got := Safe(envelope.MarkerLoan, func() (ToolResult, error) {
		return ToolResult{}, fmt.Errorf("principal must be greater than zero")
	})

	if !strings.HasPrefix(got.Text, "Error: ") {
		t.Errorf("text: got %q", got.Text)
	}

	ee, ok := got.Envelope.(envelope.ErrorEnvelope)
	if !ok {
		t.Fatalf("envelope: got %T", got.Envelope)
	}
	if ee.AppMarker != envelope.MarkerLoan {
		t.Errorf("marker: got %q", ee.AppMarker)
	}
	if ee.Message != "principal must be greater than zero" {
		t.Errorf("message: got %q", ee.Message)
	}
}

func TestBlocksShape(t *testing.T) {
	res := ToolResult{Text: "summary line", Envelope: envelope.CheatsheetEnvelope{}}

	blocks, err := res.Blocks()
	if err != nil {
		t.Fatal(err)
	}

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Text != "summary line" {
		t.Errorf("first block: got %q", blocks[0].Text)
	}

	// The second block round-trips through the envelope decoder.
	d := envelope.Extract(blocks, envelope.MarkerRegex)
	if d.Kind != envelope.KindEnvelope {
		t.Errorf("extract kind: got %v", d.Kind)
	}
}
