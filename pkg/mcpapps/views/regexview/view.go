// Package regexview renders regex playground envelopes and recomputes
// matches locally when the pattern, flags or test string are edited in
// place. The recomputation calls the same regexengine package the server
// handlers use, so client and server results cannot drift.
package regexview

import (
	"fmt"
	"strings"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/regexengine"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/views"
)

// edit is the local overlay created by the first in-place edit. While
// present, the view displays a locally recomputed result instead of the
// server-delivered one.
type edit struct {
	pattern string
	flags   string
	subject string
}

// View is the regex playground view instance. Single-threaded,
// event-driven: not safe for concurrent use.
type View struct {
	env        envelope.Envelope
	fallback   string
	hasContent bool
	cancelled  bool
	theme      string
	edit       *edit
}

// New creates an empty view showing the waiting placeholder.
func New() *View { return &View{} }

// Marker implements views.View.
func (*View) Marker() string { return envelope.MarkerRegex }

// ApplyContent implements views.View. A new delivery fully replaces
// prior render state, including any local edit overlay.
func (v *View) ApplyContent(blocks []envelope.Block) {
	v.cancelled = false
	v.edit = nil
	v.env = nil
	v.fallback = ""

	decoded := envelope.Extract(blocks, envelope.MarkerRegex)
	switch decoded.Kind {
	case envelope.KindEnvelope:
		v.env = decoded.Env
		v.hasContent = true
	case envelope.KindText:
		v.fallback = decoded.Text
		v.hasContent = true
	case envelope.KindEmpty:
		v.hasContent = false
	}
}

// Cancel implements views.View.
func (v *View) Cancel() {
	v.cancelled = true
	v.edit = nil
}

// ApplyTheme implements views.View.
func (v *View) ApplyTheme(theme string) { v.theme = theme }

// SetPattern edits the pattern in place and recomputes locally.
func (v *View) SetPattern(pattern string) {
	if e := v.beginEdit(); e != nil {
		e.pattern = pattern
	}
}

// SetFlags edits the flags in place and recomputes locally.
func (v *View) SetFlags(flags string) {
	if e := v.beginEdit(); e != nil {
		e.flags = flags
	}
}

// SetSubject edits the test string in place and recomputes locally.
func (v *View) SetSubject(subject string) {
	if e := v.beginEdit(); e != nil {
		e.subject = subject
	}
}

// beginEdit starts (or continues) the edit overlay seeded from the last
// test envelope. Edits only apply in test mode.
func (v *View) beginEdit() *edit {
	if v.edit != nil {
		return v.edit
	}

	test, ok := v.env.(envelope.TestEnvelope)
	if !ok {
		return nil
	}

	v.edit = &edit{pattern: test.Pattern, flags: test.Flags, subject: test.Subject}

	return v.edit
}

// Render implements views.View with one exhaustive dispatch over the
// envelope variants.
func (v *View) Render() views.RenderModel {
	m := views.RenderModel{Title: "Regex Playground", Theme: v.theme}

	switch {
	case v.cancelled:
		m.Status = views.StatusCancelled
		m.Sections = []views.Section{{Lines: []string{"Tool call cancelled."}}}

		return m
	case !v.hasContent:
		m.Status = views.StatusWaiting
		m.Sections = []views.Section{{Lines: []string{"Waiting for data..."}}}

		return m
	case v.fallback != "":
		m.Status = views.StatusFallback
		m.Sections = []views.Section{{Lines: []string{v.fallback}}}

		return m
	}

	m.Status = views.StatusRendered

	switch env := v.env.(type) {
	case envelope.TestEnvelope:
		m.Sections = v.renderTest(env)
	case envelope.ExplainEnvelope:
		m.Sections = renderExplain(env)
	case envelope.GenerateEnvelope:
		m.Sections = renderGenerate(env)
	case envelope.CheatsheetEnvelope:
		m.Sections = renderCheatsheet(env)
	case envelope.ErrorEnvelope:
		m.Sections = []views.Section{{Heading: "Error", Lines: []string{env.Message}}}
	}

	return m
}

// renderTest shows the server result, or a locally recomputed one when
// an edit overlay is active.
func (v *View) renderTest(env envelope.TestEnvelope) []views.Section {
	pattern, flags, subject := env.Pattern, env.Flags, env.Subject
	result := env.Result
	source := "server"

	if v.edit != nil {
		pattern, flags, subject = v.edit.pattern, v.edit.flags, v.edit.subject
		result = regexengine.Test(pattern, flags, subject)
		source = "edited locally"
	}

	header := views.Section{
		Lines: []string{
			fmt.Sprintf("Pattern: /%s/%s (%s)", pattern, flags, source),
			fmt.Sprintf("Test string: %q", subject),
		},
	}

	if result.Error != "" {
		return []views.Section{header, {
			Heading: "Invalid pattern",
			Lines:   []string{result.Error},
		}}
	}

	matches := views.Section{Heading: fmt.Sprintf("Matches (%d)", result.MatchCount)}
	for _, match := range result.Matches {
		line := fmt.Sprintf("%q at index %d", match.MatchedText, match.Index)
		if len(match.CapturedGroups) > 0 {
			line += fmt.Sprintf(" groups [%s]", strings.Join(match.CapturedGroups, ", "))
		}
		matches.Lines = append(matches.Lines, line)
	}
	if result.MatchCount == 0 {
		matches.Lines = append(matches.Lines, "No matches.")
	}

	sections := []views.Section{header, matches}

	if v.edit == nil && env.Validation != nil {
		sections = append(sections, renderValidation(*env.Validation))
	}

	return sections
}

func renderValidation(val regexengine.Validation) views.Section {
	s := views.Section{
		Heading: fmt.Sprintf("Validation (%d/%d passed)", val.PassCount, val.TotalCount),
	}

	for _, r := range val.Results {
		status := "pass"
		if !r.Passed {
			status = "fail"
		}
		s.Lines = append(s.Lines, fmt.Sprintf("[%s] %q", status, r.Input))
	}

	return s
}

func renderExplain(env envelope.ExplainEnvelope) []views.Section {
	tokens := views.Section{Heading: "Tokens"}
	for _, tok := range env.Explanation.Tokens {
		tokens.Lines = append(tokens.Lines, fmt.Sprintf("%-8s %s", tok.Text, tok.Description))
	}

	sections := []views.Section{
		{Lines: []string{
			fmt.Sprintf("Pattern: /%s/%s", env.Pattern, env.Flags),
			env.Explanation.Summary,
		}},
		tokens,
	}

	if len(env.Explanation.FlagDescriptions) > 0 {
		sections = append(sections, views.Section{
			Heading: "Flags",
			Lines:   env.Explanation.FlagDescriptions,
		})
	}

	return sections
}

func renderGenerate(env envelope.GenerateEnvelope) []views.Section {
	return []views.Section{{
		Heading: fmt.Sprintf("Generated pattern: %s", env.Recipe.Name),
		Lines: []string{
			fmt.Sprintf("/%s/%s", env.Recipe.Pattern, env.Recipe.Flags),
			env.Recipe.Description,
			fmt.Sprintf("Example match: %s", env.Recipe.Example),
		},
	}}
}

func renderCheatsheet(env envelope.CheatsheetEnvelope) []views.Section {
	sections := make([]views.Section, 0, len(env.Sections))

	for _, cs := range env.Sections {
		s := views.Section{Heading: cs.Heading}
		for _, e := range cs.Entries {
			s.Lines = append(s.Lines, fmt.Sprintf("%-10s %s", e.Syntax, e.Description))
		}
		sections = append(sections, s)
	}

	return sections
}
