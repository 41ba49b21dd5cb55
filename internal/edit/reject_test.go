package edit

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteRejectFormatsFailedEdits(t *testing.T) {
	dir := t.TempDir()
	fp := &FileEditPlan{
		Path:   filepath.Join(dir, "a.txt"),
		Status: StatusBlocked,
		Edits: []ResolvedEdit{
			{Index: 0, Spec: EditSpec{Search: "ok", Replace: "fine"}, Match: MatchResult{Found: true, Tier: TierExact}},
			{Index: 1, Spec: EditSpec{Search: "missing", Replace: "new"}, Match: MatchResult{
				Tier:            TierFuzzy,
				Reason:          "no confident match; closest candidate scores 82%",
				Suggestion:      "mising",
				SuggestionScore: 0.82,
			}},
		},
	}

	path, err := WriteReject(fp, ".rej")
	if err != nil {
		t.Fatalf("WriteReject: %v", err)
	}
	if path != fp.Path+".rej" {
		t.Errorf("path = %q", path)
	}

	content := readFile(t, path)
	if strings.Contains(content, "Rejected edit 1") {
		t.Error("successful edits must not appear in the artifact")
	}
	for _, want := range []string{
		"Rejected edit 2",
		"<<<<<<< SEARCH",
		"missing",
		"=======",
		"new",
		">>>>>>> REPLACE",
		"82% similar",
		"mising",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("artifact missing %q:\n%s", want, content)
		}
	}
}

func TestWriteRejectAmbiguousCandidates(t *testing.T) {
	dir := t.TempDir()
	fp := &FileEditPlan{
		Path: filepath.Join(dir, "a.txt"),
		Edits: []ResolvedEdit{
			{Index: 0, Spec: EditSpec{Search: "dup", Replace: "x"}, Match: MatchResult{
				Tier:       TierNormalized,
				Ambiguous:  true,
				Candidates: []Span{{Start: 0, End: 3}, {Start: 10, End: 13}},
				Reason:     "2 equally likely candidates at tier normalized",
			}},
		},
	}

	path, err := WriteReject(fp, ".rej")
	if err != nil {
		t.Fatalf("WriteReject: %v", err)
	}
	content := readFile(t, path)
	if !strings.Contains(content, "[0,3)") || !strings.Contains(content, "[10,13)") {
		t.Errorf("artifact missing candidate spans:\n%s", content)
	}
}

func TestWriteRejectNothingToRecord(t *testing.T) {
	fp := &FileEditPlan{
		Path: filepath.Join(t.TempDir(), "a.txt"),
		Edits: []ResolvedEdit{
			{Index: 0, Spec: EditSpec{Search: "a", Replace: "b"}, Match: MatchResult{Found: true, Tier: TierExact}},
		},
	}
	path, err := WriteReject(fp, ".rej")
	if err != nil {
		t.Fatalf("WriteReject: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty when all edits resolved", path)
	}
}

func TestWriteRejectFileLevelFailure(t *testing.T) {
	fp := &FileEditPlan{
		Path:   filepath.Join(t.TempDir(), "a.txt"),
		Errors: []string{"content changed since the edit was planned (fingerprint mismatch)"},
	}
	path, err := WriteReject(fp, ".rej")
	if err != nil {
		t.Fatalf("WriteReject: %v", err)
	}
	content := readFile(t, path)
	if !strings.Contains(content, "fingerprint mismatch") {
		t.Errorf("artifact missing file-level error:\n%s", content)
	}
}
