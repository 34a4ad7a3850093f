package tools

import (
	"fmt"
	"strings"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/regexengine"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
)

// Regex handles the regex playground tools. Stateless: every call is a
// pure engine invocation.
type Regex struct{}

// Test runs test_regex. An invalid pattern is data, not a handler error:
// the envelope's result carries the syntax error and the text explains
// it, because the tool did answer the question asked.
func (Regex) Test(pattern, flags, subject string, cases []regexengine.Case) (ToolResult, error) {
	if pattern == "" {
		return ToolResult{}, fmt.Errorf("pattern must not be empty")
	}

	result := regexengine.Test(pattern, flags, subject)

	env := envelope.TestEnvelope{
		Pattern: pattern,
		Flags:   flags,
		Subject: subject,
		Result:  result,
	}

	if len(cases) > 0 && result.Error == "" {
		v := regexengine.Validate(pattern, flags, cases)
		env.Validation = &v
	}

	return ToolResult{
		Text:     formatTestText(pattern, flags, result, env.Validation),
		Envelope: env,
	}, nil
}

// Explain runs explain_regex.
func (Regex) Explain(pattern, flags string) (ToolResult, error) {
	if pattern == "" {
		return ToolResult{}, fmt.Errorf("pattern must not be empty")
	}

	explanation := regexengine.Explain(pattern, flags)

	return ToolResult{
		Text: formatExplainText(pattern, flags, explanation),
		Envelope: envelope.ExplainEnvelope{
			Pattern:     pattern,
			Flags:       flags,
			Explanation: explanation,
		},
	}, nil
}

// Generate runs generate_regex against the fixed recipe table.
func (Regex) Generate(request string) (ToolResult, error) {
	recipe, ok := regexengine.Generate(request)
	if !ok {
		return ToolResult{}, fmt.Errorf(
			"no ready-made pattern for %q; known kinds: %s",
			request, strings.Join(regexengine.RecipeNames(), ", "),
		)
	}

	text := fmt.Sprintf("Pattern for %s: /%s/%s\n%s\nExample match: %s",
		recipe.Name, recipe.Pattern, recipe.Flags, recipe.Description, recipe.Example)

	return ToolResult{
		Text:     text,
		Envelope: envelope.GenerateEnvelope{Request: request, Recipe: recipe},
	}, nil
}

// Cheatsheet runs regex_cheatsheet.
func (Regex) Cheatsheet() (ToolResult, error) {
	sections := regexengine.Cheatsheet()

	var b strings.Builder
	b.WriteString("Regex quick reference:\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "%s:\n", s.Heading)
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "  %-10s %s\n", e.Syntax, e.Description)
		}
	}

	return ToolResult{
		Text:     strings.TrimRight(b.String(), "\n"),
		Envelope: envelope.CheatsheetEnvelope{Sections: sections},
	}, nil
}

func formatTestText(pattern, flags string, result regexengine.Result, v *regexengine.Validation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Pattern: /%s/%s\n", pattern, flags)

	if result.Error != "" {
		fmt.Fprintf(&b, "The pattern is invalid: %s", result.Error)

		return b.String()
	}

	fmt.Fprintf(&b, "Matches: %d\n", result.MatchCount)
	for i, m := range result.Matches {
		fmt.Fprintf(&b, "%d. %q at index %d", i+1, m.MatchedText, m.Index)
		if len(m.CapturedGroups) > 0 {
			fmt.Fprintf(&b, " (groups: %s)", strings.Join(m.CapturedGroups, ", "))
		}
		b.WriteString("\n")
	}

	if v != nil {
		fmt.Fprintf(&b, "Validation: %d/%d cases passed\n", v.PassCount, v.TotalCount)
		for _, r := range v.Results {
			status := "PASS"
			if !r.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(&b, "  [%s] %q (expected match: %t, matched: %t)\n",
				status, r.Input, r.ShouldMatch, r.DidMatch)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatExplainText(pattern, flags string, ex regexengine.Explanation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Pattern: /%s/%s\n", pattern, flags)
	fmt.Fprintf(&b, "%s\n", ex.Summary)

	for _, tok := range ex.Tokens {
		fmt.Fprintf(&b, "  %-8s %s\n", tok.Text, tok.Description)
	}

	for _, fd := range ex.FlagDescriptions {
		fmt.Fprintf(&b, "Flag %s\n", fd)
	}

	return strings.TrimRight(b.String(), "\n")
}
