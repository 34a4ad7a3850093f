package regexengine

import (
	"strings"
	"testing"
)

func TestTestFindsAllMatches(t *testing.T) {
	res := Test(`\b[A-Z][a-z]+\b`, "g", "Hello World from Regex Playground")

	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.MatchCount != 4 {
		t.Fatalf("expected 4 matches, got %d", res.MatchCount)
	}

	want := []string{"Hello", "World", "Regex", "Playground"}
	for i, m := range res.Matches {
		if m.MatchedText != want[i] {
			t.Errorf("match %d: got %q, want %q", i, m.MatchedText, want[i])
		}
	}

	if res.Matches[0].Index != 0 {
		t.Errorf("first match index: got %d, want 0", res.Matches[0].Index)
	}
	if res.Matches[1].Index != 6 {
		t.Errorf("second match index: got %d, want 6", res.Matches[1].Index)
	}
}

func TestTestCapturesGroups(t *testing.T) {
	res := Test(`(\d{4})-(\d{2})`, "", "released 2024-03 and 2025-11")

	if res.MatchCount != 2 {
		t.Fatalf("expected 2 matches, got %d", res.MatchCount)
	}

	m := res.Matches[0]
	if len(m.CapturedGroups) != 2 || m.CapturedGroups[0] != "2024" || m.CapturedGroups[1] != "03" {
		t.Errorf("captured groups: got %v", m.CapturedGroups)
	}
}

func TestTestNamedGroups(t *testing.T) {
	res := Test(`(?P<year>\d{4})`, "", "since 1999")

	if res.MatchCount != 1 {
		t.Fatalf("expected 1 match, got %d", res.MatchCount)
	}
	if got := res.Matches[0].NamedGroups["year"]; got != "1999" {
		t.Errorf("named group year: got %q", got)
	}
}

func TestTestFlagTranslation(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		flags   string
		subject string
		want    int
	}{
		{"case sensitive misses", "hello", "", "Hello Hello", 0},
		{"i flag matches both", "hello", "gi", "Hello hello", 2},
		{"m flag anchors lines", "^b", "m", "a\nb", 1},
		{"s flag dotall", "a.b", "s", "a\nb", 1},
		{"dot misses newline without s", "a.b", "", "a\nb", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Test(tt.pattern, tt.flags, tt.subject)
			if res.Error != "" {
				t.Fatalf("unexpected error: %s", res.Error)
			}
			if res.MatchCount != tt.want {
				t.Errorf("got %d matches, want %d", res.MatchCount, tt.want)
			}
		})
	}
}

func TestTestUnsupportedFlag(t *testing.T) {
	res := Test("a", "gx", "aaa")

	if res.Error == "" {
		t.Fatal("expected an error for unsupported flag")
	}
	if !strings.Contains(res.Error, "x") {
		t.Errorf("error should name the flag: %s", res.Error)
	}
	if len(res.Matches) != 0 {
		t.Errorf("invalid flag must produce no matches, got %d", len(res.Matches))
	}
}

func TestTestInvalidPattern(t *testing.T) {
	res := Test("(unclosed", "", "whatever")

	if res.Error == "" {
		t.Fatal("expected a compile error")
	}
	if res.Matches == nil {
		t.Error("matches must be empty, not nil")
	}
}

func TestTestAnchorsKeepPosition(t *testing.T) {
	// The scan must not re-anchor ^ at the end of a previous match.
	res := Test("^a", "g", "aa")

	if res.MatchCount != 1 {
		t.Fatalf("expected 1 match, got %d", res.MatchCount)
	}
	if res.Matches[0].Index != 0 {
		t.Errorf("match index: got %d, want 0", res.Matches[0].Index)
	}
}

func TestTestWordBoundariesKeepPosition(t *testing.T) {
	// "catcat" has one word boundary before the first c; the scan must
	// not fabricate one at a previous match end.
	res := Test(`\bcat`, "g", "catcat")

	if res.MatchCount != 1 {
		t.Fatalf("expected 1 match, got %d", res.MatchCount)
	}
	if res.Matches[0].Index != 0 {
		t.Errorf("match index: got %d, want 0", res.Matches[0].Index)
	}

	// A real boundary mid-subject still matches.
	res = Test(`\bcat`, "g", "cat cat")
	if res.MatchCount != 2 {
		t.Fatalf("expected 2 matches, got %d", res.MatchCount)
	}
	if res.Matches[1].Index != 4 {
		t.Errorf("second match index: got %d, want 4", res.Matches[1].Index)
	}
}

func TestTestZeroWidthMatchAdvances(t *testing.T) {
	res := Test("a*", "", "bcd")

	// Zero-length matches at every position: 3 runes plus end of string.
	if res.MatchCount != 4 {
		t.Fatalf("expected 4 zero-width matches, got %d", res.MatchCount)
	}
	for i, m := range res.Matches {
		if m.Index != i {
			t.Errorf("match %d index: got %d", i, m.Index)
		}
	}
}

func TestTestZeroWidthMultibyte(t *testing.T) {
	// Each rune is 3 bytes; the scan must advance by whole runes.
	res := Test("x*", "", "日本語")

	if res.MatchCount != 4 {
		t.Fatalf("expected 4 matches, got %d", res.MatchCount)
	}
	if res.Matches[1].Index != 3 {
		t.Errorf("second match should start at byte 3, got %d", res.Matches[1].Index)
	}
}

func TestTestMatchCap(t *testing.T) {
	subject := strings.Repeat("a", 500)
	res := Test("a", "g", subject)

	if res.MatchCount != MaxMatches {
		t.Errorf("expected cap at %d matches, got %d", MaxMatches, res.MatchCount)
	}
}

func TestTestEmptySubject(t *testing.T) {
	res := Test("a+", "", "")

	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.MatchCount != 0 {
		t.Errorf("expected no matches, got %d", res.MatchCount)
	}
}

func TestValidateCounts(t *testing.T) {
	cases := []Case{
		{Input: "cat", ShouldMatch: true},
		{Input: "dog", ShouldMatch: false},
		{Input: "cart", ShouldMatch: false}, // fails: pattern does match
	}

	v := Validate("ca", "", cases)

	if v.Error != "" {
		t.Fatalf("unexpected error: %s", v.Error)
	}
	if v.TotalCount != 3 {
		t.Errorf("total: got %d, want 3", v.TotalCount)
	}
	if v.PassCount != 2 {
		t.Errorf("pass: got %d, want 2", v.PassCount)
	}

	last := v.Results[2]
	if last.Passed || !last.DidMatch {
		t.Errorf("third case: got %+v", last)
	}
}

func TestValidateInvalidPattern(t *testing.T) {
	v := Validate("(", "", []Case{{Input: "x", ShouldMatch: true}})

	if v.Error == "" {
		t.Fatal("expected a compile error")
	}
	if v.TotalCount != 1 || v.PassCount != 0 {
		t.Errorf("counts: got %d/%d", v.PassCount, v.TotalCount)
	}
	if len(v.Results) != 0 {
		t.Errorf("no case results expected, got %d", len(v.Results))
	}
}
