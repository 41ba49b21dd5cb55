package edit

import (
	"strings"
	"testing"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(defaultMinConfidence)
}

func TestLocateExact(t *testing.T) {
	e := testEngine(t)
	content := "alpha\nbeta\ngamma\n"

	res := e.Locate(content, EditSpec{Search: "beta", Replace: "delta"})
	if !res.Found {
		t.Fatalf("expected match, got reason %q", res.Reason)
	}
	if res.Tier != TierExact {
		t.Errorf("Tier = %s, want %s", res.Tier, TierExact)
	}
	if res.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", res.Confidence)
	}
	if res.Start != 6 || res.End != 10 {
		t.Errorf("span = [%d,%d), want [6,10)", res.Start, res.End)
	}
}

func TestLocateExactAmbiguous(t *testing.T) {
	e := testEngine(t)
	content := "x = 1\nfoo()\nx = 1\n"

	res := e.Locate(content, EditSpec{Search: "x = 1", Replace: "x = 2"})
	if res.Found {
		t.Fatal("expected ambiguous result, got a unique match")
	}
	if !res.Ambiguous {
		t.Fatalf("expected Ambiguous, got reason %q", res.Reason)
	}
	if len(res.Candidates) != 2 {
		t.Errorf("candidates = %d, want 2", len(res.Candidates))
	}
}

func TestLocateNormalized(t *testing.T) {
	e := testEngine(t)
	content := "\t\tresult :=  compute(x,\n\t\t\ty)\n"

	res := e.Locate(content, EditSpec{Search: "result := compute(x, y)", Replace: "result := compute(y, x)"})
	if !res.Found {
		t.Fatalf("expected match, got reason %q", res.Reason)
	}
	if res.Tier != TierNormalized {
		t.Errorf("Tier = %s, want %s", res.Tier, TierNormalized)
	}
	if res.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", res.Confidence)
	}
	if got := content[res.Start:res.End]; got != "result :=  compute(x,\n\t\t\ty)" {
		t.Errorf("matched %q", got)
	}
}

func TestLocateAnchoredBefore(t *testing.T) {
	e := testEngine(t)
	content := "x = 1\nfoo()\nx = 1\nbar()\n"

	res := e.Locate(content, EditSpec{
		Search:        "x = 1",
		Replace:       "x = 2",
		ContextBefore: "foo()",
	})
	if !res.Found {
		t.Fatalf("expected match, got reason %q", res.Reason)
	}
	if res.Tier != TierAnchored {
		t.Errorf("Tier = %s, want %s", res.Tier, TierAnchored)
	}
	if res.Start != 12 {
		t.Errorf("Start = %d, want 12 (second occurrence)", res.Start)
	}
}

func TestLocateAnchoredAfter(t *testing.T) {
	e := testEngine(t)
	content := "x = 1\nfoo()\nx = 1\nbar()\n"

	res := e.Locate(content, EditSpec{
		Search:       "x = 1",
		Replace:      "x = 2",
		ContextAfter: "foo()",
	})
	if !res.Found {
		t.Fatalf("expected match, got reason %q", res.Reason)
	}
	if res.Tier != TierAnchored {
		t.Errorf("Tier = %s, want %s", res.Tier, TierAnchored)
	}
	if res.Start != 0 {
		t.Errorf("Start = %d, want 0 (first occurrence)", res.Start)
	}
}

func TestLocateLineRange(t *testing.T) {
	e := testEngine(t)
	content := "x = 1\nfoo()\nx = 1\nbar()\n"

	res := e.Locate(content, EditSpec{
		Search:    "x = 1",
		Replace:   "x = 2",
		LineStart: 3,
		LineEnd:   3,
	})
	if !res.Found {
		t.Fatalf("expected match, got reason %q", res.Reason)
	}
	if res.Tier != TierLineRange {
		t.Errorf("Tier = %s, want %s", res.Tier, TierLineRange)
	}
	if res.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", res.Confidence)
	}
	if res.Start != 12 || res.End != 17 {
		t.Errorf("span = [%d,%d), want [12,17)", res.Start, res.End)
	}
}

func TestLocateLineRangeOutOfBounds(t *testing.T) {
	e := testEngine(t)
	content := "one\ntwo\n"

	res := e.Locate(content, EditSpec{Search: "two", Replace: "2", LineStart: 5, LineEnd: 9})
	if res.Found {
		t.Fatal("expected failure for out-of-range line bounds")
	}
	if !strings.Contains(res.Reason, "out of bounds") {
		t.Errorf("Reason = %q, want out-of-bounds error", res.Reason)
	}
}

func TestLocateFuzzySuggestion(t *testing.T) {
	e := testEngine(t)
	content := "func process(data []byte) error {\n\treturn nil\n}\n"

	res := e.Locate(content, EditSpec{
		Search:  "func process(data []string) error {\n",
		Replace: "func process(data []int) error {\n",
	})
	if res.Found {
		t.Fatal("fuzzy candidates must never be returned as matches")
	}
	if res.Tier != TierFuzzy {
		t.Errorf("Tier = %s, want %s", res.Tier, TierFuzzy)
	}
	if !strings.Contains(res.Suggestion, "[]byte") {
		t.Errorf("Suggestion = %q, want the near-miss line", res.Suggestion)
	}
	if res.SuggestionScore < defaultMinConfidence {
		t.Errorf("SuggestionScore = %v, want >= %v", res.SuggestionScore, defaultMinConfidence)
	}
}

func TestLocateNoMatchNoSuggestion(t *testing.T) {
	e := testEngine(t)
	content := "short file\n"

	res := e.Locate(content, EditSpec{Search: "zzz qqq completely unrelated ###\n", Replace: "x"})
	if res.Found {
		t.Fatal("expected no match")
	}
	if res.Suggestion != "" {
		t.Errorf("Suggestion = %q, want none below the confidence cutoff", res.Suggestion)
	}
	if res.Tier != TierNone {
		t.Errorf("Tier = %s, want %s", res.Tier, TierNone)
	}
}

func TestNormalizeWSMapping(t *testing.T) {
	norm, starts, ends := normalizeWS("a \t\n b")
	if norm != "a b" {
		t.Fatalf("norm = %q, want %q", norm, "a b")
	}
	if starts[0] != 0 || ends[0] != 1 {
		t.Errorf("char 0 maps to [%d,%d), want [0,1)", starts[0], ends[0])
	}
	if starts[1] != 1 || ends[1] != 5 {
		t.Errorf("collapsed run maps to [%d,%d), want [1,5)", starts[1], ends[1])
	}
	if starts[2] != 5 || ends[2] != 6 {
		t.Errorf("char 2 maps to [%d,%d), want [5,6)", starts[2], ends[2])
	}
}

func TestSplitLines(t *testing.T) {
	lines := splitLines("a\nb\nc")
	if len(lines) != 3 {
		t.Fatalf("len = %d, want 3", len(lines))
	}
	if lines[0] != "a\n" || lines[2] != "c" {
		t.Errorf("lines = %q", lines)
	}
	if got := splitLines(""); got != nil {
		t.Errorf("splitLines(\"\") = %q, want nil", got)
	}
}
