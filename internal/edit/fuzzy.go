package edit

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// fuzzyCandidate is a diagnostic-only near-match. It is surfaced to callers
// so they can repair the spec; the executor never applies one.
type fuzzyCandidate struct {
	text  string
	score float64
	span  Span
}

// fuzzySuggest scans line-aligned windows the height of the search text and
// scores each against the search using normalized Levenshtein similarity
// (1 - distance/maxLen). Returns the best candidate at or above the engine's
// confidence cutoff.
func (e *Engine) fuzzySuggest(content string, spec EditSpec) (fuzzyCandidate, bool) {
	searchLines := splitLines(spec.Search)
	contentLines := splitLines(content)
	if len(searchLines) == 0 || len(contentLines) < len(searchLines) {
		return fuzzyCandidate{}, false
	}

	dmp := diffmatchpatch.New()
	best := fuzzyCandidate{score: -1}

	offset := 0
	for i := 0; i+len(searchLines) <= len(contentLines); i++ {
		windowLen := 0
		for _, l := range contentLines[i : i+len(searchLines)] {
			windowLen += len(l)
		}
		window := content[offset : offset+windowLen]

		score := similarity(dmp, spec.Search, window)
		if score > best.score {
			best = fuzzyCandidate{
				text:  window,
				score: score,
				span:  Span{Start: offset, End: offset + windowLen},
			}
		}
		offset += len(contentLines[i])
	}

	if best.score < e.minConfidence {
		return fuzzyCandidate{}, false
	}
	return best, true
}

// similarity is a normalized Levenshtein ratio in [0,1].
func similarity(dmp *diffmatchpatch.DiffMatchPatch, a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1.0
	}
	diffs := dmp.DiffMain(a, b, false)
	dist := dmp.DiffLevenshtein(diffs)
	return 1.0 - float64(dist)/float64(longest)
}
