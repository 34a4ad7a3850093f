// Package envelope implements the tool-result envelope protocol: a
// tagged union keyed by a per-app boolean marker and a viewType
// discriminator, serialized as a JSON text block inside the generic tool
// result content list.
//
// The union is a sealed interface with one variant struct per viewType,
// so the render boundary dispatches with a single exhaustive type switch
// instead of stringly-typed fallthrough.
package envelope

import (
	"encoding/json"
	"fmt"
)

// Per-app marker keys. The marker disambiguates which view family should
// consume a payload when multiple app types share a transport.
const (
	MarkerAppSearch = "appSearchResult"
	MarkerRegex     = "regexResult"
	MarkerLoan      = "loanResult"
)

// Envelope is the sealed interface over all payload variants.
type Envelope interface {
	// Marker returns the per-app marker key.
	Marker() string
	// ViewType returns the render-mode discriminator within the app.
	ViewType() string

	envelope()
}

// Block is one entry of a tool result content list. Only text blocks
// participate in envelope extraction.
type Block struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextBlock builds a plain text content block.
func TextBlock(text string) Block {
	return Block{Type: "text", Text: text}
}

// wire is the serialized shape shared by every variant:
// {"<marker>": true, "viewType": "...", "data": {...}}.
type wire struct {
	ViewType string          `json:"viewType"`
	Data     json.RawMessage `json:"data"`
}

// Encode serializes an envelope to its wire form.
func Encode(e Envelope) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("envelope: marshal %s data: %w", e.ViewType(), err)
	}

	return json.Marshal(map[string]any{
		e.Marker(): true,
		"viewType": e.ViewType(),
		"data":     json.RawMessage(data),
	})
}

// EncodeBlock serializes an envelope into a text content block ready to
// append to a tool result.
func EncodeBlock(e Envelope) (Block, error) {
	raw, err := Encode(e)
	if err != nil {
		return Block{}, err
	}

	return TextBlock(string(raw)), nil
}

// ErrorEnvelope reports a failed tool call for any app family. The
// handler wrapper produces it from validation errors so a failure always
// renders as an explanatory state.
type ErrorEnvelope struct {
	AppMarker string `json:"-"`
	Message   string `json:"message"`
}

func (e ErrorEnvelope) Marker() string { return e.AppMarker }
func (ErrorEnvelope) ViewType() string { return ViewTypeError }
func (ErrorEnvelope) envelope()        {}

// ViewTypeError is shared by every app family's error payload.
const ViewTypeError = "error"
