package gitinfo

import (
	"fmt"
	"strings"
	"testing"
)

// mockGit returns canned output keyed by the joined argument list.
type mockGit struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (m *mockGit) Run(dir string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	m.calls = append(m.calls, key)
	if err, ok := m.errs[key]; ok {
		return "", err
	}
	if out, ok := m.responses[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("unexpected git call: %s", key)
}

func repoMock() *mockGit {
	return &mockGit{
		responses: map[string]string{
			"rev-parse --git-dir": ".git",
		},
		errs: map[string]error{},
	}
}

func TestGetStatusClean(t *testing.T) {
	git := repoMock()
	git.responses["branch --show-current"] = "main"
	git.errs["rev-list --left-right --count main@{upstream}...HEAD"] = fmt.Errorf("no upstream")
	git.responses["diff --cached --name-status"] = ""
	git.responses["diff --name-status"] = ""
	git.responses["ls-files --others --exclude-standard"] = ""
	git.responses["diff --name-only --diff-filter=U"] = ""

	s, err := GetStatus(git, ".")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !s.IsRepo || s.Branch != "main" {
		t.Errorf("status = %+v", s)
	}
	if s.Summary != "on main, clean" {
		t.Errorf("Summary = %q", s.Summary)
	}
}

func TestGetStatusDirty(t *testing.T) {
	git := repoMock()
	git.responses["branch --show-current"] = "feature/x"
	git.responses["rev-list --left-right --count feature/x@{upstream}...HEAD"] = "1\t3"
	git.responses["diff --cached --name-status"] = "A\tnew.go\nR100\told.go\trenamed.go"
	git.responses["diff --name-status"] = "M\tmain.go\nD\tgone.go"
	git.responses["ls-files --others --exclude-standard"] = "scratch.txt"
	git.responses["diff --name-only --diff-filter=U"] = "conflicted.go"

	s, err := GetStatus(git, ".")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if s.Ahead != 3 || s.Behind != 1 {
		t.Errorf("ahead/behind = %d/%d, want 3/1", s.Ahead, s.Behind)
	}
	if len(s.Staged) != 2 || s.Staged[0].Status != "added" || s.Staged[1] != (FileStatus{Path: "renamed.go", Status: "renamed"}) {
		t.Errorf("Staged = %+v", s.Staged)
	}
	if len(s.Unstaged) != 2 || s.Unstaged[1].Status != "deleted" {
		t.Errorf("Unstaged = %+v", s.Unstaged)
	}
	if len(s.Untracked) != 1 || s.Untracked[0] != "scratch.txt" {
		t.Errorf("Untracked = %+v", s.Untracked)
	}
	if !s.HasConflicts {
		t.Error("expected conflicts")
	}
	if !strings.Contains(s.Summary, "3 ahead") || !strings.Contains(s.Summary, "conflicts present") {
		t.Errorf("Summary = %q", s.Summary)
	}
}

func TestGetStatusNotARepo(t *testing.T) {
	git := &mockGit{errs: map[string]error{
		"rev-parse --git-dir": fmt.Errorf("not a repo"),
	}}
	s, err := GetStatus(git, "/tmp")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if s.IsRepo {
		t.Error("IsRepo should be false")
	}
}

func TestDiffFile(t *testing.T) {
	git := repoMock()
	git.responses["diff HEAD -- main.go"] = "diff --git a/main.go b/main.go"
	git.responses["diff --cached -- main.go"] = ""

	out, err := DiffFile(git, ".", "main.go", false)
	if err != nil {
		t.Fatalf("DiffFile: %v", err)
	}
	if !strings.HasPrefix(out, "diff --git") {
		t.Errorf("out = %q", out)
	}

	out, err = DiffFile(git, ".", "main.go", true)
	if err != nil {
		t.Fatalf("DiffFile staged: %v", err)
	}
	if out != "" {
		t.Errorf("staged diff = %q, want empty", out)
	}
}

func TestSuggestCommitFeature(t *testing.T) {
	git := repoMock()
	git.responses["diff --cached --name-status"] = "A\tinternal/api/server.go\nA\tinternal/api/routes.go"
	git.responses["diff --cached --shortstat"] = "2 files changed, 120 insertions(+)"

	sug, err := SuggestCommit(git, ".")
	if err != nil {
		t.Fatalf("SuggestCommit: %v", err)
	}
	if sug.Title != "feat: add internal" {
		t.Errorf("Title = %q", sug.Title)
	}
	if !strings.Contains(sug.Body, "- added internal/api/server.go") {
		t.Errorf("Body = %q", sug.Body)
	}
	if sug.Stats == "" {
		t.Error("expected shortstat")
	}
}

func TestSuggestCommitDocs(t *testing.T) {
	git := repoMock()
	git.responses["diff --cached --name-status"] = "M\tREADME.md"
	git.responses["diff --cached --shortstat"] = "1 file changed"

	sug, err := SuggestCommit(git, ".")
	if err != nil {
		t.Fatalf("SuggestCommit: %v", err)
	}
	if sug.Title != "docs: update README.md" {
		t.Errorf("Title = %q", sug.Title)
	}
	if sug.Body != "" {
		t.Errorf("Body = %q, want empty for single file", sug.Body)
	}
}

func TestSuggestCommitTests(t *testing.T) {
	git := repoMock()
	git.responses["diff --cached --name-status"] = "M\tinternal/api/server_test.go"
	git.responses["diff --cached --shortstat"] = "1 file changed"

	sug, err := SuggestCommit(git, ".")
	if err != nil {
		t.Fatalf("SuggestCommit: %v", err)
	}
	if !strings.HasPrefix(sug.Title, "test:") {
		t.Errorf("Title = %q", sug.Title)
	}
}

func TestSuggestCommitNothingStaged(t *testing.T) {
	git := repoMock()
	git.responses["diff --cached --name-status"] = ""

	if _, err := SuggestCommit(git, "."); err == nil {
		t.Error("expected error with nothing staged")
	}
}
