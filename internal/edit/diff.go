package edit

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each hunk.
const diffContext = 3

// Preview renders a file plan as a unified-diff summary: added/removed line
// counts plus hunks. check-only callers should use counts alone.
func Preview(plan *FileEditPlan) DiffSummary {
	return Diff(plan.Path, plan.OldContent, plan.NewContent)
}

// Diff computes a line-level diff between two contents.
func Diff(path, oldContent, newContent string) DiffSummary {
	if oldContent == newContent {
		return DiffSummary{}
	}

	ops := lineDiff(oldContent, newContent)

	var sum DiffSummary
	for _, op := range ops {
		switch op.kind {
		case diffmatchpatch.DiffInsert:
			sum.Additions++
		case diffmatchpatch.DiffDelete:
			sum.Deletions++
		}
	}
	sum.Hunks = renderUnified(path, ops)
	return sum
}

// lineOp is one line of a line-level diff.
type lineOp struct {
	kind diffmatchpatch.Operation
	text string
}

// lineDiff produces per-line operations using diffmatchpatch's line-mode
// optimization (diff on line tokens, then expand back).
func lineDiff(oldContent, newContent string) []lineOp {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var ops []lineOp
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			ops = append(ops, lineOp{kind: d.Type, text: strings.TrimSuffix(line, "\n")})
		}
	}
	return ops
}

// renderUnified formats line ops as unified-diff hunks with standard
// a/ b/ headers.
func renderUnified(path string, ops []lineOp) string {
	type hunk struct {
		oldStart, oldCount int
		newStart, newCount int
		lines              []string
	}

	var hunks []hunk
	var cur *hunk
	oldLine, newLine := 1, 1
	pending := 0 // equal lines since last change, candidates for trailing context

	flush := func() {
		if cur != nil {
			// Drop context beyond the trailing window.
			if pending > diffContext {
				drop := pending - diffContext
				cur.lines = cur.lines[:len(cur.lines)-drop]
				cur.oldCount -= drop
				cur.newCount -= drop
			}
			hunks = append(hunks, *cur)
			cur = nil
		}
		pending = 0
	}

	for i, op := range ops {
		switch op.kind {
		case diffmatchpatch.DiffEqual:
			if cur != nil {
				cur.lines = append(cur.lines, " "+op.text)
				cur.oldCount++
				cur.newCount++
				pending++
				if pending > diffContext*2 {
					flush()
				}
			}
			oldLine++
			newLine++
		default:
			if cur == nil {
				cur = &hunk{oldStart: oldLine, newStart: newLine}
				// Leading context from the lines just passed.
				lead := diffContext
				if lead > i {
					lead = i
				}
				for j := i - lead; j < i; j++ {
					if ops[j].kind != diffmatchpatch.DiffEqual {
						continue
					}
					cur.lines = append(cur.lines, " "+ops[j].text)
					cur.oldStart--
					cur.newStart--
					cur.oldCount++
					cur.newCount++
				}
			}
			pending = 0
			if op.kind == diffmatchpatch.DiffDelete {
				cur.lines = append(cur.lines, "-"+op.text)
				cur.oldCount++
				oldLine++
			} else {
				cur.lines = append(cur.lines, "+"+op.text)
				cur.newCount++
				newLine++
			}
		}
	}
	flush()

	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.oldStart, h.oldCount, h.newStart, h.newCount)
		for _, line := range h.lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
