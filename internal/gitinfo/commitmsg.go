package gitinfo

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CommitSuggestion is a proposed commit message for the staged changes.
type CommitSuggestion struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Stats string `json:"stats,omitempty"`
}

// SuggestCommit builds a conventional-commit style message from the staged
// diff. Returns an error when nothing is staged.
func SuggestCommit(git GitRunner, dir string) (*CommitSuggestion, error) {
	if !IsRepo(git, dir) {
		return nil, fmt.Errorf("not a git repository: %s", dir)
	}
	out, err := git.Run(dir, "diff", "--cached", "--name-status")
	if err != nil {
		return nil, fmt.Errorf("staged diff: %w", err)
	}
	staged := parseNameStatus(out)
	if len(staged) == 0 {
		return nil, fmt.Errorf("no staged changes")
	}

	sug := &CommitSuggestion{
		Title: commitTitle(staged),
		Body:  commitBody(staged),
	}
	if stats, err := git.Run(dir, "diff", "--cached", "--shortstat"); err == nil {
		sug.Stats = stats
	}
	return sug, nil
}

func commitTitle(files []FileStatus) string {
	typ := commitType(files)
	scope := commitScope(files)

	var verb string
	switch {
	case allStatus(files, "added"):
		verb = "add"
	case allStatus(files, "deleted"):
		verb = "remove"
	default:
		verb = "update"
	}

	subject := scope
	if subject == "" {
		subject = fmt.Sprintf("%d files", len(files))
	}
	if len(files) == 1 {
		subject = filepath.Base(files[0].Path)
	}
	return fmt.Sprintf("%s: %s %s", typ, verb, subject)
}

// commitType picks a conventional-commit type from the staged paths.
func commitType(files []FileStatus) string {
	allDocs, allTests := true, true
	for _, f := range files {
		lower := strings.ToLower(f.Path)
		if !strings.HasSuffix(lower, ".md") && !strings.Contains(lower, "docs/") {
			allDocs = false
		}
		if !strings.Contains(lower, "_test.") && !strings.Contains(lower, "test_") && !strings.Contains(lower, "/tests/") {
			allTests = false
		}
	}
	switch {
	case allDocs:
		return "docs"
	case allTests:
		return "test"
	case allStatus(files, "added"):
		return "feat"
	default:
		return "fix"
	}
}

// commitScope is the shared top-level directory of the staged files, if any.
func commitScope(files []FileStatus) string {
	var scope string
	for i, f := range files {
		parts := strings.SplitN(filepath.ToSlash(f.Path), "/", 2)
		if len(parts) < 2 {
			return ""
		}
		if i == 0 {
			scope = parts[0]
		} else if parts[0] != scope {
			return ""
		}
	}
	return scope
}

func commitBody(files []FileStatus) string {
	if len(files) < 2 {
		return ""
	}
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "- %s %s\n", f.Status, f.Path)
	}
	return strings.TrimRight(b.String(), "\n")
}

func allStatus(files []FileStatus, status string) bool {
	for _, f := range files {
		if f.Status != status {
			return false
		}
	}
	return true
}
