package edit

import (
	"os"
	"path/filepath"
)

// SafetyCheck inspects the workspace git state and returns reasons the
// workspace must not be edited right now: a merge or rebase in progress, or
// a held index lock. An empty slice means editing may proceed. Non-git
// directories always pass.
func SafetyCheck(workdir string) []string {
	gitDir := filepath.Join(workdir, ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return nil
	}

	var reasons []string
	if _, err := os.Stat(filepath.Join(gitDir, "MERGE_HEAD")); err == nil {
		reasons = append(reasons, "git merge in progress; resolve it before editing")
	}
	for _, d := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(gitDir, d)); err == nil {
			reasons = append(reasons, "git rebase in progress; complete or abort it first")
			break
		}
	}
	if _, err := os.Stat(filepath.Join(gitDir, "index.lock")); err == nil {
		reasons = append(reasons, "git index is locked; another git process may be running")
	}
	return reasons
}
