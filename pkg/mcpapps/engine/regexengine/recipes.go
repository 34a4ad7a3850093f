package regexengine

import "strings"

// Recipe is a ready-made pattern returned by Generate.
type Recipe struct {
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Flags       string `json:"flags"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// recipes maps request keywords to ready-made patterns. Lookup is
// case-insensitive and matches on substring so "an email address" finds
// the email recipe.
var recipes = []Recipe{
	{
		Name:        "email",
		Pattern:     `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		Flags:       "g",
		Description: "Matches common email addresses.",
		Example:     "support@example.com",
	},
	{
		Name:        "url",
		Pattern:     `https?://[^\s/$.?#].[^\s]*`,
		Flags:       "g",
		Description: "Matches http and https URLs.",
		Example:     "https://example.com/docs",
	},
	{
		Name:        "phone",
		Pattern:     `\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`,
		Flags:       "g",
		Description: "Matches US phone numbers in common formats.",
		Example:     "(555) 123-4567",
	},
	{
		Name:        "date",
		Pattern:     `\d{4}-\d{2}-\d{2}`,
		Flags:       "g",
		Description: "Matches ISO dates (YYYY-MM-DD).",
		Example:     "2024-03-15",
	},
	{
		Name:        "ipv4",
		Pattern:     `\b(?:\d{1,3}\.){3}\d{1,3}\b`,
		Flags:       "g",
		Description: "Matches dotted-quad IPv4 addresses.",
		Example:     "192.168.0.1",
	},
	{
		Name:        "hexcolor",
		Pattern:     `#(?:[0-9a-fA-F]{3}){1,2}\b`,
		Flags:       "g",
		Description: "Matches 3- and 6-digit hex color codes.",
		Example:     "#ff8800",
	},
	{
		Name:        "zipcode",
		Pattern:     `\b\d{5}(?:-\d{4})?\b`,
		Flags:       "g",
		Description: "Matches US ZIP and ZIP+4 codes.",
		Example:     "94105-1234",
	},
	{
		Name:        "number",
		Pattern:     `-?\d+(?:\.\d+)?`,
		Flags:       "g",
		Description: "Matches integers and decimals, with optional sign.",
		Example:     "-12.5",
	},
}

// Generate looks up a ready-made recipe for a described pattern kind.
// The request is matched case-insensitively against recipe names.
func Generate(request string) (Recipe, bool) {
	lowered := strings.ToLower(request)

	for _, r := range recipes {
		if strings.Contains(lowered, r.Name) {
			return r, true
		}
	}

	return Recipe{}, false
}

// RecipeNames lists the available Generate recipe names in order.
func RecipeNames() []string {
	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}

	return names
}

// CheatEntry is one row of the cheatsheet.
type CheatEntry struct {
	Syntax      string `json:"syntax"`
	Description string `json:"description"`
}

// CheatSection groups cheatsheet rows under a heading.
type CheatSection struct {
	Heading string       `json:"heading"`
	Entries []CheatEntry `json:"entries"`
}

// Cheatsheet returns the static regex reference table rendered by the
// cheatsheet view.
func Cheatsheet() []CheatSection {
	return []CheatSection{
		{
			Heading: "Character Classes",
			Entries: []CheatEntry{
				{Syntax: ".", Description: "any character except newline"},
				{Syntax: `\d`, Description: "digit (0-9)"},
				{Syntax: `\w`, Description: "word character (letter, digit, underscore)"},
				{Syntax: `\s`, Description: "whitespace"},
				{Syntax: "[abc]", Description: "any of a, b or c"},
				{Syntax: "[^abc]", Description: "any character except a, b or c"},
				{Syntax: "[a-z]", Description: "any character in the range a-z"},
			},
		},
		{
			Heading: "Anchors",
			Entries: []CheatEntry{
				{Syntax: "^", Description: "start of string (or line with m flag)"},
				{Syntax: "$", Description: "end of string (or line with m flag)"},
				{Syntax: `\b`, Description: "word boundary"},
				{Syntax: `\B`, Description: "non-word-boundary"},
			},
		},
		{
			Heading: "Quantifiers",
			Entries: []CheatEntry{
				{Syntax: "*", Description: "zero or more (greedy)"},
				{Syntax: "+", Description: "one or more (greedy)"},
				{Syntax: "?", Description: "zero or one"},
				{Syntax: "{n}", Description: "exactly n"},
				{Syntax: "{n,}", Description: "n or more"},
				{Syntax: "{n,m}", Description: "between n and m"},
				{Syntax: "*?", Description: "zero or more (lazy)"},
			},
		},
		{
			Heading: "Groups and Alternation",
			Entries: []CheatEntry{
				{Syntax: "(abc)", Description: "capturing group"},
				{Syntax: "(?:abc)", Description: "non-capturing group"},
				{Syntax: "(?<name>abc)", Description: "named capturing group"},
				{Syntax: "a|b", Description: "a or b"},
			},
		},
		{
			Heading: "Flags",
			Entries: []CheatEntry{
				{Syntax: "g", Description: "global: find all matches"},
				{Syntax: "i", Description: "ignore case"},
				{Syntax: "m", Description: "multiline anchors"},
				{Syntax: "s", Description: "dot matches newline"},
			},
		},
	}
}
