package simulator

import "strings"

// Demo app identifiers. Each tool belongs to exactly one app; switching
// apps tears down the previous view frame.
const (
	AppFinder         = "app-finder"
	AppRegex          = "regex-playground"
	AppLoanCalculator = "loan-calculator"
)

// Step is one scripted exchange: when a prompt mentions every keyword,
// the simulator calls Tool with Args and prints Reply alongside the
// rendered view.
type Step struct {
	Keywords []string
	Tool     string
	Args     map[string]any
	Reply    string
}

// DefaultScript covers one walkthrough per demo app plus a few follow-up
// turns. Matching is first-hit in order, so more specific steps come
// before generic ones.
func DefaultScript() []Step {
	return []Step{
		{
			Keywords: []string{"compare", "app"},
			Tool:     "compare_apps",
			Args:     map[string]any{"names": []string{"TaskFlow Pro", "MindfulMe"}},
			Reply:    "Here is a side-by-side comparison of the two apps.",
		},
		{
			Keywords: []string{"alternative"},
			Tool:     "get_alternatives",
			Args:     map[string]any{"name": "TaskFlow Pro"},
			Reply:    "These apps sit in the same category and are worth a look.",
		},
		{
			Keywords: []string{"detail"},
			Tool:     "get_app_details",
			Args:     map[string]any{"name": "TaskFlow Pro"},
			Reply:    "Here is everything the catalog knows about that app.",
		},
		{
			Keywords: []string{"find", "app"},
			Tool:     "search_apps",
			Args:     map[string]any{"query": "productivity", "limit": 5},
			Reply:    "I searched the catalog for productivity apps.",
		},
		{
			Keywords: []string{"explain", "regex"},
			Tool:     "explain_regex",
			Args:     map[string]any{"pattern": `^\d{3}-\d{4}$`},
			Reply:    "Here is the pattern broken down token by token.",
		},
		{
			Keywords: []string{"regex", "email"},
			Tool:     "generate_regex",
			Args:     map[string]any{"description": "email address"},
			Reply:    "This pattern matches typical email addresses.",
		},
		{
			Keywords: []string{"cheatsheet"},
			Tool:     "regex_cheatsheet",
			Args:     map[string]any{},
			Reply:    "Here is the quick reference.",
		},
		{
			Keywords: []string{"regex"},
			Tool:     "test_regex",
			Args: map[string]any{
				"pattern":    `\b[A-Z][a-z]+\b`,
				"flags":      "g",
				"testString": "Hello World from Regex Playground",
			},
			Reply: "I ran the pattern against the sample text.",
		},
		{
			Keywords: []string{"amortization"},
			Tool:     "amortization_schedule",
			Args:     map[string]any{"principal": 350000.0, "annualRate": 6.5, "termYears": 30},
			Reply:    "Here is the month-by-month schedule.",
		},
		{
			Keywords: []string{"compare", "loan"},
			Tool:     "compare_loans",
			Args: map[string]any{"scenarios": []map[string]any{
				{"principal": 350000.0, "annualRate": 6.5, "termYears": 30, "label": "30-year"},
				{"principal": 350000.0, "annualRate": 5.9, "termYears": 15, "label": "15-year"},
			}},
			Reply: "The 15-year loan costs more per month but far less overall.",
		},
		{
			Keywords: []string{"loan"},
			Tool:     "calculate_loan",
			Args:     map[string]any{"principal": 350000.0, "annualRate": 6.5, "termYears": 30, "downPayment": 70000.0},
			Reply:    "Here is the monthly breakdown for that loan.",
		},
		{
			Keywords: []string{"mortgage"},
			Tool:     "calculate_loan",
			Args:     map[string]any{"principal": 350000.0, "annualRate": 6.5, "termYears": 30, "downPayment": 70000.0},
			Reply:    "Here is the monthly breakdown for that mortgage.",
		},
	}
}

// Match returns the first step whose keywords all appear in the prompt,
// case-insensitively.
func Match(script []Step, prompt string) (Step, bool) {
	lower := strings.ToLower(prompt)

	for _, step := range script {
		hit := true
		for _, kw := range step.Keywords {
			if !strings.Contains(lower, kw) {
				hit = false

				break
			}
		}
		if hit {
			return step, true
		}
	}

	return Step{}, false
}

// AppForTool maps a tool name to the demo app that renders its results.
func AppForTool(tool string) string {
	switch tool {
	case "search_apps", "get_app_details", "compare_apps", "get_alternatives":
		return AppFinder
	case "test_regex", "explain_regex", "generate_regex", "regex_cheatsheet":
		return AppRegex
	case "calculate_loan", "amortization_schedule", "compare_loans":
		return AppLoanCalculator
	default:
		return ""
	}
}
