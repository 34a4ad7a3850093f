package envelope

import "github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/regexengine"

// Regex playground viewTypes.
const (
	ViewTypeTest       = "test"
	ViewTypeExplain    = "explain"
	ViewTypeGenerate   = "generate"
	ViewTypeCheatsheet = "cheatsheet"
)

// TestEnvelope carries the inputs and outcome of a regex test run. The
// inputs are included so the view can seed its editable controls and
// recompute locally without any server state. Validation is set when the
// run included expected-match cases.
type TestEnvelope struct {
	Pattern    string                  `json:"pattern"`
	Flags      string                  `json:"flags"`
	Subject    string                  `json:"testString"`
	Result     regexengine.Result      `json:"result"`
	Validation *regexengine.Validation `json:"validation,omitempty"`
}

func (TestEnvelope) Marker() string   { return MarkerRegex }
func (TestEnvelope) ViewType() string { return ViewTypeTest }
func (TestEnvelope) envelope()        {}

// ExplainEnvelope carries a tokenized pattern explanation.
type ExplainEnvelope struct {
	Pattern     string                  `json:"pattern"`
	Flags       string                  `json:"flags"`
	Explanation regexengine.Explanation `json:"explanation"`
}

func (ExplainEnvelope) Marker() string   { return MarkerRegex }
func (ExplainEnvelope) ViewType() string { return ViewTypeExplain }
func (ExplainEnvelope) envelope()        {}

// GenerateEnvelope carries a ready-made pattern recipe.
type GenerateEnvelope struct {
	Request string             `json:"request"`
	Recipe  regexengine.Recipe `json:"recipe"`
}

func (GenerateEnvelope) Marker() string   { return MarkerRegex }
func (GenerateEnvelope) ViewType() string { return ViewTypeGenerate }
func (GenerateEnvelope) envelope()        {}

// CheatsheetEnvelope carries the static regex reference table.
type CheatsheetEnvelope struct {
	Sections []regexengine.CheatSection `json:"sections"`
}

func (CheatsheetEnvelope) Marker() string   { return MarkerRegex }
func (CheatsheetEnvelope) ViewType() string { return ViewTypeCheatsheet }
func (CheatsheetEnvelope) envelope()        {}
