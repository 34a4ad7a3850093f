package regexengine

import (
	"fmt"
	"regexp"
	"strings"
)

// Token categories produced by Explain.
const (
	CategoryAnchor      = "anchor"
	CategoryEscape      = "escape"
	CategoryClass       = "class"
	CategoryGroup       = "group"
	CategoryGroupClose  = "groupClose"
	CategoryAlternation = "alternation"
	CategoryQuantifier  = "quantifier"
	CategoryLiteral     = "literal"
)

// Token is one lexical unit of a pattern.
type Token struct {
	Text        string `json:"text"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Explanation is the outcome of Explain: a token stream that concatenates
// losslessly back to the pattern, a one-paragraph summary, and per-flag
// notes.
type Explanation struct {
	Tokens           []Token  `json:"tokens"`
	Summary          string   `json:"summary"`
	FlagDescriptions []string `json:"flagDescriptions"`
}

// escapeDescriptions covers the common escape sequences; anything else is
// described as an escaped literal.
var escapeDescriptions = map[byte]string{
	'd': "any digit (0-9)",
	'D': "any non-digit",
	'w': "any word character (letters, digits, underscore)",
	'W': "any non-word character",
	's': "any whitespace character",
	'S': "any non-whitespace character",
	'b': "word boundary",
	'B': "non-word-boundary position",
	'n': "newline",
	't': "tab",
	'r': "carriage return",
}

var flagDescriptions = map[rune]string{
	'g': "g: global - find all matches rather than stopping at the first",
	'i': "i: ignore case - letters match both upper and lower case",
	'm': "m: multiline - ^ and $ match at line breaks",
	's': "s: dotall - . also matches newlines",
}

// groupPrefixes is ordered longest-first so lookbehind prefixes win over
// the named-group prefix.
var groupPrefixes = []struct {
	prefix      string
	description string
}{
	{"?<=", "lookbehind: matches only if preceded by the enclosed pattern"},
	{"?<!", "negative lookbehind: matches only if not preceded by the enclosed pattern"},
	{"?:", "non-capturing group: groups without capturing"},
	{"?=", "lookahead: matches only if followed by the enclosed pattern"},
	{"?!", "negative lookahead: matches only if not followed by the enclosed pattern"},
}

var (
	namedGroupRe = regexp.MustCompile(`^\?<([A-Za-z_][A-Za-z0-9_]*)>`)
	braceQuantRe = regexp.MustCompile(`^\{(\d+)(,(\d*))?\}`)
)

// Explain tokenizes pattern left to right, one token per lexical unit,
// and derives a natural-language summary. Tokenization never fails; an
// odd construct simply becomes a literal token.
func Explain(pattern, flags string) Explanation {
	tokens := tokenize(pattern)

	return Explanation{
		Tokens:           tokens,
		Summary:          summarize(pattern, tokens, flags),
		FlagDescriptions: describeFlags(flags),
	}
}

func tokenize(pattern string) []Token {
	tokens := []Token{}
	i := 0

	for i < len(pattern) {
		tok := nextToken(pattern, i)
		tokens = append(tokens, tok)
		i += len(tok.Text)
	}

	return tokens
}

// nextToken produces the token starting at position i.
func nextToken(pattern string, i int) Token {
	switch c := pattern[i]; c {
	case '^':
		return Token{Text: "^", Category: CategoryAnchor, Description: "start of string (or line with m flag)"}
	case '$':
		return Token{Text: "$", Category: CategoryAnchor, Description: "end of string (or line with m flag)"}
	case '\\':
		return escapeToken(pattern, i)
	case '[':
		return classToken(pattern, i)
	case '(':
		return groupToken(pattern, i)
	case ')':
		return Token{Text: ")", Category: CategoryGroupClose, Description: "end of group"}
	case '|':
		return Token{Text: "|", Category: CategoryAlternation, Description: "alternation: matches either side"}
	case '*', '+', '?':
		return simpleQuantifierToken(pattern, i)
	case '{':
		if tok, ok := braceQuantifierToken(pattern, i); ok {
			return tok
		}
		return literalToken("{")
	case '.':
		return Token{Text: ".", Category: CategoryClass, Description: "any character except newline"}
	default:
		return literalToken(string(c))
	}
}

func literalToken(text string) Token {
	return Token{
		Text:        text,
		Category:    CategoryLiteral,
		Description: fmt.Sprintf("the character %q", text),
	}
}

// escapeToken consumes a backslash plus the following character.
func escapeToken(pattern string, i int) Token {
	if i+1 >= len(pattern) {
		return Token{Text: "\\", Category: CategoryEscape, Description: "trailing backslash"}
	}

	c := pattern[i+1]
	text := pattern[i : i+2]

	if desc, ok := escapeDescriptions[c]; ok {
		return Token{Text: text, Category: CategoryEscape, Description: desc}
	}

	return Token{
		Text:        text,
		Category:    CategoryEscape,
		Description: fmt.Sprintf("the character %q (escaped)", string(c)),
	}
}

// classToken consumes a character class through the first unescaped ']'.
func classToken(pattern string, i int) Token {
	j := i + 1
	negated := false

	if j < len(pattern) && pattern[j] == '^' {
		negated = true
		j++
	}

	for j < len(pattern) {
		if pattern[j] == '\\' {
			j += 2

			continue
		}
		if pattern[j] == ']' {
			j++

			break
		}
		j++
	}

	if j > len(pattern) {
		j = len(pattern)
	}

	text := pattern[i:j]
	inner := strings.TrimPrefix(strings.TrimSuffix(text, "]"), "[")

	if !strings.HasSuffix(text, "]") {
		return Token{Text: text, Category: CategoryClass, Description: "unterminated character class"}
	}

	if negated {
		inner = strings.TrimPrefix(inner, "^")

		return Token{
			Text:        text,
			Category:    CategoryClass,
			Description: fmt.Sprintf("any character not in the set %q", inner),
		}
	}

	return Token{
		Text:        text,
		Category:    CategoryClass,
		Description: fmt.Sprintf("any character in the set %q", inner),
	}
}

// groupToken consumes '(' plus any special group prefix, matched
// longest-prefix-first.
func groupToken(pattern string, i int) Token {
	rest := pattern[i+1:]

	for _, gp := range groupPrefixes {
		if strings.HasPrefix(rest, gp.prefix) {
			return Token{
				Text:        "(" + gp.prefix,
				Category:    CategoryGroup,
				Description: gp.description,
			}
		}
	}

	if m := namedGroupRe.FindStringSubmatch(rest); m != nil {
		return Token{
			Text:        "(" + m[0],
			Category:    CategoryGroup,
			Description: fmt.Sprintf("named capturing group %q", m[1]),
		}
	}

	return Token{
		Text:        "(",
		Category:    CategoryGroup,
		Description: "capturing group: groups and captures the enclosed pattern",
	}
}

// simpleQuantifierToken handles *, + and ?, including the lazy variant.
func simpleQuantifierToken(pattern string, i int) Token {
	base := map[byte]string{
		'*': "zero or more of the preceding element",
		'+': "one or more of the preceding element",
		'?': "zero or one of the preceding element",
	}[pattern[i]]

	text := string(pattern[i])
	if i+1 < len(pattern) && pattern[i+1] == '?' {
		text += "?"

		return Token{
			Text:        text,
			Category:    CategoryQuantifier,
			Description: base + " (lazy: as few as possible)",
		}
	}

	return Token{
		Text:        text,
		Category:    CategoryQuantifier,
		Description: base + " (greedy)",
	}
}

// braceQuantifierToken parses {n}, {n,} and {n,m} with a single regexp
// match at the current position.
func braceQuantifierToken(pattern string, i int) (Token, bool) {
	m := braceQuantRe.FindStringSubmatch(pattern[i:])
	if m == nil {
		return Token{}, false
	}

	text := m[0]
	var desc string

	switch {
	case m[2] == "":
		desc = fmt.Sprintf("exactly %s of the preceding element", m[1])
	case m[3] == "":
		desc = fmt.Sprintf("%s or more of the preceding element", m[1])
	default:
		desc = fmt.Sprintf("between %s and %s of the preceding element", m[1], m[3])
	}

	if i+len(text) < len(pattern) && pattern[i+len(text)] == '?' {
		text += "?"
		desc += " (lazy: as few as possible)"
	} else {
		desc += " (greedy)"
	}

	return Token{Text: text, Category: CategoryQuantifier, Description: desc}, true
}

// summarize applies a small fixed rule set: anchoring, group count,
// alternation presence, and flag notes.
func summarize(pattern string, tokens []Token, flags string) string {
	if pattern == "" {
		return "An empty pattern that matches at every position."
	}

	var parts []string

	anchoredStart := len(tokens) > 0 && tokens[0].Text == "^"
	anchoredEnd := len(tokens) > 0 && tokens[len(tokens)-1].Text == "$"

	switch {
	case anchoredStart && anchoredEnd:
		parts = append(parts, "Matches the entire string from start to end.")
	case anchoredStart:
		parts = append(parts, "Matches at the start of the string.")
	case anchoredEnd:
		parts = append(parts, "Matches at the end of the string.")
	default:
		parts = append(parts, "Matches anywhere in the string.")
	}

	groups := 0
	alternation := false
	for _, tok := range tokens {
		if tok.Category == CategoryGroup && isCapturingGroup(tok.Text) {
			groups++
		}
		if tok.Category == CategoryAlternation {
			alternation = true
		}
	}

	if groups == 1 {
		parts = append(parts, "Captures 1 group.")
	} else if groups > 1 {
		parts = append(parts, fmt.Sprintf("Captures %d groups.", groups))
	}

	if alternation {
		parts = append(parts, "Contains alternation between multiple branches.")
	}

	if strings.ContainsRune(flags, 'i') {
		parts = append(parts, "Matching is case-insensitive.")
	}
	if strings.ContainsRune(flags, 'g') {
		parts = append(parts, "All occurrences are found, not just the first.")
	}

	return strings.Join(parts, " ")
}

// isCapturingGroup reports whether a group-open token captures: a bare
// "(" or a named group. Lookarounds and non-capturing groups do not.
func isCapturingGroup(text string) bool {
	if text == "(" {
		return true
	}

	return namedGroupRe.MatchString(strings.TrimPrefix(text, "("))
}

func describeFlags(flags string) []string {
	descs := []string{}

	for _, f := range flags {
		if d, ok := flagDescriptions[f]; ok {
			descs = append(descs, d)
		} else {
			descs = append(descs, fmt.Sprintf("%s: unrecognized flag", string(f)))
		}
	}

	return descs
}
