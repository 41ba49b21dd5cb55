package edit

import (
	"fmt"
	"strings"
)

// strategy is one tier of the matching cascade. attempt returns every span
// where the spec's search text could match; the engine stops at the first
// tier producing exactly one candidate. A strategy whose required hints are
// absent returns no candidates. An error means the spec's hints are invalid
// for this content (a hard input error, not a miss).
type strategy interface {
	tier() Tier
	attempt(content string, spec EditSpec) ([]Span, error)
}

// Engine locates edit targets by trying a fixed cascade of strategies, most
// strict first. Ambiguity at a tier escalates to the next tier instead of
// silently picking a span.
type Engine struct {
	strategies    []strategy
	minConfidence float64
}

// NewEngine creates a match engine. minConfidence is the similarity cutoff
// below which fuzzy suggestions are omitted from diagnostics.
func NewEngine(minConfidence float64) *Engine {
	return &Engine{
		strategies: []strategy{
			exactStrategy{},
			normalizedStrategy{},
			anchoredStrategy{},
			lineRangeStrategy{},
		},
		minConfidence: minConfidence,
	}
}

// Locate resolves spec against content. The result is Found only when some
// tier produced exactly one candidate. Otherwise the result records the last
// ambiguous tier's candidates (if any) and attaches the best fuzzy candidate
// as a diagnostic suggestion.
func (e *Engine) Locate(content string, spec EditSpec) MatchResult {
	var (
		ambTier  Tier
		ambSpans []Span
	)

	for _, s := range e.strategies {
		spans, err := s.attempt(content, spec)
		if err != nil {
			return MatchResult{
				Tier:   s.tier(),
				Reason: err.Error(),
			}
		}
		switch len(spans) {
		case 0:
			continue
		case 1:
			t := s.tier()
			return MatchResult{
				Tier:       t,
				Confidence: t.Confidence(),
				Found:      true,
				Start:      spans[0].Start,
				End:        spans[0].End,
			}
		default:
			ambTier = s.tier()
			ambSpans = spans
		}
	}

	res := MatchResult{Tier: TierNone, Reason: "no match found"}
	if len(ambSpans) > 0 {
		res.Tier = ambTier
		res.Ambiguous = true
		res.Candidates = ambSpans
		res.Reason = fmt.Sprintf("%d equally likely candidates at tier %s", len(ambSpans), ambTier)
	}

	if sug, ok := e.fuzzySuggest(content, spec); ok {
		res.Suggestion = sug.text
		res.SuggestionScore = sug.score
		if !res.Ambiguous {
			res.Tier = TierFuzzy
			res.Candidates = []Span{sug.span}
			res.Reason = fmt.Sprintf("no confident match; closest candidate scores %.0f%%", sug.score*100)
		}
	}
	return res
}

// exactStrategy finds literal occurrences of the search text.
type exactStrategy struct{}

func (exactStrategy) tier() Tier { return TierExact }

func (exactStrategy) attempt(content string, spec EditSpec) ([]Span, error) {
	return findAll(content, spec.Search, 0), nil
}

// findAll returns every non-overlapping occurrence of needle in haystack,
// with spans offset by base.
func findAll(haystack, needle string, base int) []Span {
	if needle == "" {
		return nil
	}
	var spans []Span
	off := 0
	for {
		i := strings.Index(haystack[off:], needle)
		if i < 0 {
			return spans
		}
		start := off + i
		spans = append(spans, Span{Start: base + start, End: base + start + len(needle)})
		off = start + len(needle)
	}
}

// normalizedStrategy collapses whitespace runs to a single space in both the
// content and the search text, matches in the normalized space, and maps
// candidates back to original byte offsets. This absorbs drift from
// reformatting (indentation changes, rewrapped lines).
type normalizedStrategy struct{}

func (normalizedStrategy) tier() Tier { return TierNormalized }

func (normalizedStrategy) attempt(content string, spec EditSpec) ([]Span, error) {
	return normalizedFind(content, spec.Search, 0), nil
}

// normalizedFind matches needle against haystack with whitespace tolerance,
// returning original-offset spans shifted by base.
func normalizedFind(haystack, needle string, base int) []Span {
	normNeedle, _, _ := normalizeWS(strings.TrimSpace(needle))
	if normNeedle == "" {
		return nil
	}
	normHay, starts, ends := normalizeWS(haystack)

	var spans []Span
	off := 0
	for {
		i := strings.Index(normHay[off:], normNeedle)
		if i < 0 {
			return spans
		}
		start := off + i
		last := start + len(normNeedle) - 1
		spans = append(spans, Span{Start: base + starts[start], End: base + ends[last]})
		off = start + len(normNeedle)
	}
}

// normalizeWS collapses every run of spaces, tabs, and newlines to a single
// space. starts[i] is the original offset where normalized byte i begins;
// ends[i] is the original offset just past it (past the whole run for a
// collapsed space).
func normalizeWS(s string) (norm string, starts []int, ends []int) {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			runStart := i
			for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
				i++
			}
			b.WriteByte(' ')
			starts = append(starts, runStart)
			ends = append(ends, i)
			continue
		}
		b.WriteByte(c)
		starts = append(starts, i)
		ends = append(ends, i+1)
		i++
	}
	return b.String(), starts, ends
}

// anchoredStrategy locates the caller-supplied context strings first and then
// searches for the target only inside the window they bound. Requires at
// least one of context_before/context_after.
type anchoredStrategy struct{}

func (anchoredStrategy) tier() Tier { return TierAnchored }

func (anchoredStrategy) attempt(content string, spec EditSpec) ([]Span, error) {
	before := strings.TrimSpace(spec.ContextBefore)
	after := strings.TrimSpace(spec.ContextAfter)
	if before == "" && after == "" {
		return nil, nil
	}

	windows := anchorWindows(content, before, after)
	seen := make(map[Span]bool)
	var spans []Span
	for _, w := range windows {
		segment := content[w.Start:w.End]
		cands := findAll(segment, spec.Search, w.Start)
		if len(cands) == 0 {
			cands = normalizedFind(segment, spec.Search, w.Start)
		}
		for _, c := range cands {
			if !seen[c] {
				seen[c] = true
				spans = append(spans, c)
			}
		}
	}
	return spans, nil
}

// anchorWindows computes the content windows bounded by the anchors. Each
// before-anchor occurrence opens a window ending at the nearest after-anchor
// occurrence past it (or EOF when no after anchor is given).
func anchorWindows(content, before, after string) []Span {
	locate := func(needle string) []Span {
		spans := findAll(content, needle, 0)
		if len(spans) == 0 {
			spans = normalizedFind(content, needle, 0)
		}
		return spans
	}

	var befores, afters []Span
	if before != "" {
		befores = locate(before)
	}
	if after != "" {
		afters = locate(after)
	}

	var windows []Span
	switch {
	case before != "" && after != "":
		for _, b := range befores {
			for _, a := range afters {
				if a.Start >= b.End {
					windows = append(windows, Span{Start: b.End, End: a.Start})
					break
				}
			}
		}
	case before != "":
		for _, b := range befores {
			windows = append(windows, Span{Start: b.End, End: len(content)})
		}
	default:
		for _, a := range afters {
			windows = append(windows, Span{Start: 0, End: a.Start})
		}
	}
	return windows
}

// lineRangeStrategy restricts matching to the 1-based inclusive line slice
// named by the spec. Bounds outside the file are a hard input error.
type lineRangeStrategy struct{}

func (lineRangeStrategy) tier() Tier { return TierLineRange }

func (lineRangeStrategy) attempt(content string, spec EditSpec) ([]Span, error) {
	if spec.LineStart == 0 {
		return nil, nil
	}
	lines := splitLines(content)
	end := spec.LineEnd
	if end == 0 {
		end = len(lines)
	}
	if spec.LineStart > len(lines) || end > len(lines) {
		return nil, fmt.Errorf("line range %d-%d out of bounds (file has %d lines)", spec.LineStart, end, len(lines))
	}

	offset := 0
	for _, l := range lines[:spec.LineStart-1] {
		offset += len(l)
	}
	var segment strings.Builder
	for _, l := range lines[spec.LineStart-1 : end] {
		segment.WriteString(l)
	}

	spans := findAll(segment.String(), spec.Search, offset)
	if len(spans) == 0 {
		spans = normalizedFind(segment.String(), spec.Search, offset)
	}
	return spans, nil
}

// splitLines splits content into lines keeping the trailing newline on each,
// so offsets reconstruct exactly.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, content[start:i+1])
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}
