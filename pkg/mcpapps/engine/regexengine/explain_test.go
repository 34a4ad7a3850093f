package regexengine

import (
	"strings"
	"testing"
)

// Tokens must concatenate back to the pattern exactly, whatever the
// input; the explain view relies on this to highlight spans.
func TestExplainTokensLossless(t *testing.T) {
	patterns := []string{
		`^\d{3}-\d{4}$`,
		`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		`(?:ab|cd)+?`,
		`(?<year>\d{4})-(?<month>\d{2})`,
		`(?<=\$)\d+`,
		`a{2,5}?[^\]x]\`,
		"",
		"{",
		"plain text",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			exp := Explain(pattern, "")

			var b strings.Builder
			for _, tok := range exp.Tokens {
				b.WriteString(tok.Text)
			}

			if b.String() != pattern {
				t.Errorf("tokens rebuild %q, want %q", b.String(), pattern)
			}
		})
	}
}

func TestExplainTokenCategories(t *testing.T) {
	exp := Explain(`^(\d+)|[ab]+?\w$`, "")

	byText := map[string]string{}
	for _, tok := range exp.Tokens {
		byText[tok.Text] = tok.Category
	}

	want := map[string]string{
		"^":    CategoryAnchor,
		"(":    CategoryGroup,
		`\d`:   CategoryEscape,
		"+":    CategoryQuantifier,
		")":    CategoryGroupClose,
		"|":    CategoryAlternation,
		"[ab]": CategoryClass,
		"+?":   CategoryQuantifier,
		`\w`:   CategoryEscape,
		"$":    CategoryAnchor,
	}

	for text, cat := range want {
		if byText[text] != cat {
			t.Errorf("token %q: got category %q, want %q", text, byText[text], cat)
		}
	}
}

func TestExplainGroupPrefixes(t *testing.T) {
	tests := []struct {
		pattern  string
		wantText string
		wantDesc string
	}{
		{`(?:abc)`, "(?:", "non-capturing"},
		{`(?=abc)`, "(?=", "lookahead"},
		{`(?!abc)`, "(?!", "negative lookahead"},
		{`(?<=abc)`, "(?<=", "lookbehind"},
		{`(?<!abc)`, "(?<!", "negative lookbehind"},
		{`(?<year>abc)`, "(?<year>", "named capturing group"},
	}

	for _, tt := range tests {
		t.Run(tt.wantText, func(t *testing.T) {
			exp := Explain(tt.pattern, "")
			first := exp.Tokens[0]

			if first.Text != tt.wantText {
				t.Errorf("first token: got %q, want %q", first.Text, tt.wantText)
			}
			if !strings.Contains(first.Description, tt.wantDesc) {
				t.Errorf("description %q should mention %q", first.Description, tt.wantDesc)
			}
		})
	}
}

func TestExplainBraceQuantifiers(t *testing.T) {
	tests := []struct {
		pattern string
		desc    string
	}{
		{`a{3}`, "exactly 3"},
		{`a{3,}`, "3 or more"},
		{`a{3,7}`, "between 3 and 7"},
		{`a{3,7}?`, "lazy"},
	}

	for _, tt := range tests {
		exp := Explain(tt.pattern, "")
		last := exp.Tokens[len(exp.Tokens)-1]
		if last.Category != CategoryQuantifier {
			t.Errorf("%s: last token category %q", tt.pattern, last.Category)
		}
		if !strings.Contains(last.Description, tt.desc) {
			t.Errorf("%s: description %q should mention %q", tt.pattern, last.Description, tt.desc)
		}
	}
}

func TestExplainSummary(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		flags   string
		want    string
	}{
		{"fully anchored", `^abc$`, "", "entire string"},
		{"start anchored", `^abc`, "", "start of the string"},
		{"unanchored", `abc`, "", "anywhere"},
		{"group count", `(a)(b)`, "", "Captures 2 groups."},
		{"non-capturing excluded", `(?:a)(b)`, "", "Captures 1 group."},
		{"lookahead excluded", `(?=a)(b)`, "", "Captures 1 group."},
		{"lookbehind excluded", `(?<=a)(?<!x)(b)`, "", "Captures 1 group."},
		{"named group counted", `(?<year>\d{4})-(\d{2})`, "", "Captures 2 groups."},
		{"alternation", `a|b`, "", "alternation"},
		{"case flag", `a`, "i", "case-insensitive"},
		{"empty pattern", "", "", "empty pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := Explain(tt.pattern, tt.flags)
			if !strings.Contains(exp.Summary, tt.want) {
				t.Errorf("summary %q should contain %q", exp.Summary, tt.want)
			}
		})
	}
}

func TestExplainFlagDescriptions(t *testing.T) {
	exp := Explain("a", "giz")

	if len(exp.FlagDescriptions) != 3 {
		t.Fatalf("expected 3 flag notes, got %d", len(exp.FlagDescriptions))
	}
	if !strings.Contains(exp.FlagDescriptions[2], "unrecognized") {
		t.Errorf("unknown flag note: %q", exp.FlagDescriptions[2])
	}
}

func TestGenerateRecipes(t *testing.T) {
	recipe, ok := Generate("I need a pattern for an email address")
	if !ok {
		t.Fatal("expected the email recipe")
	}
	if recipe.Name != "email" {
		t.Errorf("got recipe %q", recipe.Name)
	}

	// Every recipe's pattern must match its own example.
	for _, name := range RecipeNames() {
		r, ok := Generate(name)
		if !ok {
			t.Fatalf("recipe %q not found by its own name", name)
		}

		res := Test(r.Pattern, r.Flags, r.Example)
		if res.Error != "" {
			t.Errorf("recipe %q pattern does not compile: %s", name, res.Error)
		}
		if res.MatchCount == 0 {
			t.Errorf("recipe %q does not match its example %q", name, r.Example)
		}
	}
}

func TestGenerateUnknown(t *testing.T) {
	if _, ok := Generate("quantum flux capacitors"); ok {
		t.Error("expected no recipe")
	}
}

func TestCheatsheetNonEmpty(t *testing.T) {
	sections := Cheatsheet()
	if len(sections) == 0 {
		t.Fatal("cheatsheet is empty")
	}
	for _, sec := range sections {
		if sec.Heading == "" || len(sec.Entries) == 0 {
			t.Errorf("section %+v incomplete", sec.Heading)
		}
	}
}
