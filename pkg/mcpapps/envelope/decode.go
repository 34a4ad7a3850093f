package envelope

import (
	"encoding/json"
	"fmt"
)

// Decoded is the outcome of extracting an envelope from a content list.
// Exactly one of the three kinds applies:
//
//   - KindEnvelope: Env holds the decoded payload.
//   - KindText: no envelope matched; Text holds the first plain text
//     block for verbatim fallback rendering.
//   - KindEmpty: the content list was empty; render a neutral
//     placeholder.
type Decoded struct {
	Kind DecodedKind
	Env  Envelope
	Text string
}

// DecodedKind discriminates Decoded.
type DecodedKind int

const (
	KindEmpty DecodedKind = iota
	KindText
	KindEnvelope
)

// Extract scans content blocks for the first one that parses as JSON and
// carries the given app marker. Hosts place the structured payload in
// different slots, so every block is tried in order; if none matches the
// first text block is returned as a fallback, and an empty list yields a
// placeholder. Extract never fails: malformed blocks are skipped.
func Extract(blocks []Block, marker string) Decoded {
	for _, b := range blocks {
		if b.Type != "text" || b.Text == "" {
			continue
		}

		env, err := Decode([]byte(b.Text), marker)
		if err != nil {
			continue
		}

		return Decoded{Kind: KindEnvelope, Env: env}
	}

	for _, b := range blocks {
		if b.Type == "text" {
			return Decoded{Kind: KindText, Text: b.Text}
		}
	}

	return Decoded{Kind: KindEmpty}
}

// Decode parses a single JSON payload carrying the given marker into its
// envelope variant.
func Decode(raw []byte, marker string) (Envelope, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("envelope: not a JSON object: %w", err)
	}

	flag, ok := probe[marker]
	if !ok || string(flag) != "true" {
		return nil, fmt.Errorf("envelope: marker %q absent", marker)
	}

	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("envelope: malformed wire shape: %w", err)
	}

	env, err := decodeData(marker, w.ViewType, w.Data)
	if err != nil {
		return nil, err
	}

	return env, nil
}

// decodeData dispatches on marker and viewType to the variant struct.
func decodeData(marker, viewType string, data json.RawMessage) (Envelope, error) {
	switch marker {
	case MarkerAppSearch:
		return decodeAppSearch(viewType, data)
	case MarkerRegex:
		return decodeRegex(viewType, data)
	case MarkerLoan:
		return decodeLoan(viewType, data)
	default:
		return nil, fmt.Errorf("envelope: unknown marker %q", marker)
	}
}

func decodeAppSearch(viewType string, data json.RawMessage) (Envelope, error) {
	switch viewType {
	case ViewTypeSearch:
		return decodeInto[SearchEnvelope](data)
	case ViewTypeDetail:
		return decodeInto[DetailEnvelope](data)
	case ViewTypeCompareApps:
		return decodeInto[CompareAppsEnvelope](data)
	case ViewTypeAlternatives:
		return decodeInto[AlternativesEnvelope](data)
	case ViewTypeError:
		return decodeError(MarkerAppSearch, data)
	default:
		return nil, fmt.Errorf("envelope: unknown app search viewType %q", viewType)
	}
}

func decodeRegex(viewType string, data json.RawMessage) (Envelope, error) {
	switch viewType {
	case ViewTypeTest:
		return decodeInto[TestEnvelope](data)
	case ViewTypeExplain:
		return decodeInto[ExplainEnvelope](data)
	case ViewTypeGenerate:
		return decodeInto[GenerateEnvelope](data)
	case ViewTypeCheatsheet:
		return decodeInto[CheatsheetEnvelope](data)
	case ViewTypeError:
		return decodeError(MarkerRegex, data)
	default:
		return nil, fmt.Errorf("envelope: unknown regex viewType %q", viewType)
	}
}

func decodeLoan(viewType string, data json.RawMessage) (Envelope, error) {
	switch viewType {
	case ViewTypeCalculate:
		return decodeInto[CalculateEnvelope](data)
	case ViewTypeAmortization:
		return decodeInto[AmortizationEnvelope](data)
	case ViewTypeCompareLoans:
		return decodeInto[CompareLoansEnvelope](data)
	case ViewTypeError:
		return decodeError(MarkerLoan, data)
	default:
		return nil, fmt.Errorf("envelope: unknown loan viewType %q", viewType)
	}
}

func decodeInto[T Envelope](data json.RawMessage) (Envelope, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("envelope: decode %s data: %w", v.ViewType(), err)
	}

	return v, nil
}

func decodeError(marker string, data json.RawMessage) (Envelope, error) {
	var v ErrorEnvelope
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("envelope: decode error data: %w", err)
	}
	v.AppMarker = marker

	return v, nil
}
