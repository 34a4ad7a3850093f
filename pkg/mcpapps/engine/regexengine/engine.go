// Package regexengine implements the regex playground computation engine.
//
// The engine is a pure-function module shared by the tool handlers on the
// server side and by the regex view for client-side recomputation, so both
// always run the identical matching code path.
package regexengine

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxMatches caps the number of matches returned by a single scan.
// Bounds worst-case work on pathological patterns and zero-width loops.
const MaxMatches = 100

// Match describes a single match found in the subject string.
type Match struct {
	// Index is the byte offset of the match within the subject.
	Index int `json:"index"`

	// MatchedText is the full matched substring.
	MatchedText string `json:"matchedText"`

	// CapturedGroups holds positional capture group values, in order.
	// An unparticipating group is the empty string.
	CapturedGroups []string `json:"capturedGroups"`

	// NamedGroups maps group names to their captured values, when the
	// pattern declares named groups.
	NamedGroups map[string]string `json:"namedGroups,omitempty"`
}

// Result is the outcome of a Test scan.
//
// An invalid pattern is reported through Error rather than a Go error:
// the engine answered the question ("is this pattern valid?"), it just
// answered no. Callers must check Error before using Matches.
type Result struct {
	Matches    []Match `json:"matches"`
	MatchCount int     `json:"matchCount"`
	Error      string  `json:"error,omitempty"`
}

// Case is one validation case for Validate.
type Case struct {
	Input       string `json:"input"`
	ShouldMatch bool   `json:"shouldMatch"`
}

// CaseResult is the outcome of one validation case.
type CaseResult struct {
	Input       string `json:"input"`
	ShouldMatch bool   `json:"shouldMatch"`
	DidMatch    bool   `json:"didMatch"`
	Passed      bool   `json:"passed"`
}

// Validation is the outcome of a Validate run.
type Validation struct {
	Results    []CaseResult `json:"results"`
	PassCount  int          `json:"passCount"`
	TotalCount int          `json:"totalCount"`
	Error      string       `json:"error,omitempty"`
}

// compile translates JS-style flags into a Go inline-flag prefix and
// compiles the pattern. The "g" flag is accepted and ignored here because
// Test always scans globally.
func compile(pattern, flags string) (*regexp.Regexp, error) {
	var inline strings.Builder

	for _, f := range flags {
		switch f {
		case 'g':
			// Scanning is always global.
		case 'i', 'm', 's':
			inline.WriteRune(f)
		default:
			return nil, fmt.Errorf("unsupported flag %q", string(f))
		}
	}

	src := pattern
	if inline.Len() > 0 {
		src = "(?" + inline.String() + ")" + pattern
	}

	return regexp.Compile(src)
}

// Test scans subject with pattern and returns every match, up to
// MaxMatches. The scan is always global regardless of flags and runs
// over the whole subject in one pass, so anchors and word boundaries
// keep their positional meaning; a zero-length match advances the scan
// by one rune so it is guaranteed to terminate.
func Test(pattern, flags, subject string) Result {
	re, err := compile(pattern, flags)
	if err != nil {
		return Result{Matches: []Match{}, Error: err.Error()}
	}

	names := re.SubexpNames()
	matches := []Match{}

	for _, loc := range re.FindAllStringSubmatchIndex(subject, MaxMatches) {
		matches = append(matches, buildMatch(subject, loc, names))
	}

	return Result{Matches: matches, MatchCount: len(matches)}
}

// buildMatch converts a submatch index slice into a Match record.
func buildMatch(subject string, loc []int, names []string) Match {
	m := Match{
		Index:          loc[0],
		MatchedText:    subject[loc[0]:loc[1]],
		CapturedGroups: []string{},
	}

	for g := 1; g*2 < len(loc); g++ {
		var val string
		if loc[g*2] >= 0 {
			val = subject[loc[g*2]:loc[g*2+1]]
		}
		m.CapturedGroups = append(m.CapturedGroups, val)

		if names[g] != "" {
			if m.NamedGroups == nil {
				m.NamedGroups = make(map[string]string)
			}
			m.NamedGroups[names[g]] = val
		}
	}

	return m
}

// Validate runs pattern against each case and reports which cases behaved
// as expected. Passed is true exactly when DidMatch equals ShouldMatch.
func Validate(pattern, flags string, cases []Case) Validation {
	re, err := compile(pattern, flags)
	if err != nil {
		return Validation{
			Results:    []CaseResult{},
			TotalCount: len(cases),
			Error:      err.Error(),
		}
	}

	v := Validation{Results: []CaseResult{}, TotalCount: len(cases)}

	for _, c := range cases {
		didMatch := re.MatchString(c.Input)
		passed := didMatch == c.ShouldMatch
		if passed {
			v.PassCount++
		}
		v.Results = append(v.Results, CaseResult{
			Input:       c.Input,
			ShouldMatch: c.ShouldMatch,
			DidMatch:    didMatch,
			Passed:      passed,
		})
	}

	return v
}
