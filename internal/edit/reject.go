package edit

import (
	"fmt"
	"strings"
)

// WriteReject persists a sidecar artifact next to the target file recording
// every edit in the plan that failed to resolve: the spec in SEARCH/REPLACE
// conflict-marker form, the diagnosis, and the best fuzzy candidate if one
// was found. The original file is never modified. Returns "" when the plan
// has no failed edits to record.
func WriteReject(fp *FileEditPlan, suffix string) (string, error) {
	if suffix == "" {
		suffix = ".rej"
	}

	var parts []string
	for _, re := range fp.Edits {
		if re.Match.Found {
			continue
		}
		parts = append(parts, formatReject(re))
	}
	if len(parts) == 0 && len(fp.Errors) > 0 {
		// File-level failure (unreadable, conflict, too large): record the
		// errors so the artifact still explains what happened.
		parts = append(parts, "# File could not be edited:\n# "+strings.Join(fp.Errors, "\n# "))
	}
	if len(parts) == 0 {
		return "", nil
	}

	path := fp.Path + suffix
	content := strings.Join(parts, "\n\n") + "\n"
	if err := WriteAtomic(path, []byte(content)); err != nil {
		return "", fmt.Errorf("write reject artifact: %w", err)
	}
	return path, nil
}

func formatReject(re ResolvedEdit) string {
	m := re.Match
	lines := []string{
		fmt.Sprintf("# Rejected edit %d (tier: %s)", re.Index+1, m.Tier),
		fmt.Sprintf("# Reason: %s", m.Reason),
		"",
		"<<<<<<< SEARCH",
		re.Spec.Search,
		"=======",
		re.Spec.Replace,
		">>>>>>> REPLACE",
	}
	if m.Ambiguous {
		spans := make([]string, len(m.Candidates))
		for i, c := range m.Candidates {
			spans[i] = fmt.Sprintf("[%d,%d)", c.Start, c.End)
		}
		lines = append(lines, "", "# Candidate spans: "+strings.Join(spans, " "))
	}
	if m.Suggestion != "" {
		lines = append(lines,
			"",
			fmt.Sprintf("# Closest candidate (%.0f%% similar):", m.SuggestionScore*100),
			m.Suggestion,
		)
	}
	return strings.Join(lines, "\n")
}
