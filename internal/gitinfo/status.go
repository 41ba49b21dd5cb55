package gitinfo

import (
	"fmt"
	"strconv"
	"strings"
)

// FileStatus is one changed file in the repository status.
type FileStatus struct {
	Path   string `json:"path"`
	Status string `json:"status"` // added, modified, deleted, renamed, copied
}

// Status is the structured repository state.
type Status struct {
	IsRepo       bool         `json:"is_git_repo"`
	Branch       string       `json:"branch,omitempty"`
	Ahead        int          `json:"ahead"`
	Behind       int          `json:"behind"`
	Staged       []FileStatus `json:"staged"`
	Unstaged     []FileStatus `json:"unstaged"`
	Untracked    []string     `json:"untracked"`
	HasConflicts bool         `json:"has_conflicts"`
	Summary      string       `json:"summary"`
}

// GetStatus queries the repository state: branch, ahead/behind counts,
// staged and unstaged changes, untracked files, and merge conflicts.
func GetStatus(git GitRunner, dir string) (*Status, error) {
	if !IsRepo(git, dir) {
		return &Status{Summary: "not a git repository"}, nil
	}

	s := &Status{IsRepo: true}
	s.Branch, _ = git.Run(dir, "branch", "--show-current")

	if s.Branch != "" {
		// Best-effort: fails when there is no upstream.
		if out, err := git.Run(dir, "rev-list", "--left-right", "--count", s.Branch+"@{upstream}...HEAD"); err == nil {
			if parts := strings.Fields(out); len(parts) == 2 {
				s.Behind, _ = strconv.Atoi(parts[0])
				s.Ahead, _ = strconv.Atoi(parts[1])
			}
		}
	}

	if out, err := git.Run(dir, "diff", "--cached", "--name-status"); err == nil {
		s.Staged = parseNameStatus(out)
	}
	if out, err := git.Run(dir, "diff", "--name-status"); err == nil {
		s.Unstaged = parseNameStatus(out)
	}
	if out, err := git.Run(dir, "ls-files", "--others", "--exclude-standard"); err == nil && out != "" {
		s.Untracked = strings.Split(out, "\n")
	}
	if out, err := git.Run(dir, "diff", "--name-only", "--diff-filter=U"); err == nil && out != "" {
		s.HasConflicts = true
	}

	s.Summary = summarizeStatus(s)
	return s, nil
}

// parseNameStatus parses `git diff --name-status` output. Renames and copies
// report the new path.
func parseNameStatus(out string) []FileStatus {
	var files []FileStatus
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		path := parts[len(parts)-1]
		files = append(files, FileStatus{Path: path, Status: statusWord(parts[0])})
	}
	return files
}

func statusWord(code string) string {
	switch code[0] {
	case 'A':
		return "added"
	case 'M':
		return "modified"
	case 'D':
		return "deleted"
	case 'R':
		return "renamed"
	case 'C':
		return "copied"
	default:
		return strings.ToLower(code)
	}
}

func summarizeStatus(s *Status) string {
	branch := s.Branch
	if branch == "" {
		branch = "(detached)"
	}
	parts := []string{"on " + branch}
	if s.Ahead > 0 {
		parts = append(parts, fmt.Sprintf("%d ahead", s.Ahead))
	}
	if s.Behind > 0 {
		parts = append(parts, fmt.Sprintf("%d behind", s.Behind))
	}
	if n := len(s.Staged); n > 0 {
		parts = append(parts, fmt.Sprintf("%d staged", n))
	}
	if n := len(s.Unstaged); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unstaged", n))
	}
	if n := len(s.Untracked); n > 0 {
		parts = append(parts, fmt.Sprintf("%d untracked", n))
	}
	if s.HasConflicts {
		parts = append(parts, "conflicts present")
	}
	if len(parts) == 1 {
		parts = append(parts, "clean")
	}
	return strings.Join(parts, ", ")
}
