package edit

import (
	"encoding/json"
	"fmt"
	"time"
)

// Tier identifies one strategy in the matching cascade, ordered by
// decreasing strictness.
type Tier string

const (
	TierExact      Tier = "exact"
	TierNormalized Tier = "normalized"
	TierAnchored   Tier = "anchored"
	TierLineRange  Tier = "line_range"
	TierFuzzy      Tier = "fuzzy"
	TierNone       Tier = "none"
)

// Confidence returns the score assigned to a successful match at this tier.
// Fuzzy matches carry their own similarity score and are never applied.
func (t Tier) Confidence() float64 {
	switch t {
	case TierExact:
		return 1.0
	case TierNormalized:
		return 0.95
	case TierAnchored:
		return 0.90
	case TierLineRange:
		return 0.85
	default:
		return 0.0
	}
}

// EditSpec is a single search/replace operation with optional positional hints.
type EditSpec struct {
	Search  string `json:"search"`
	Replace string `json:"replace"`

	// Context anchors narrow the search window when the search text alone
	// is ambiguous.
	ContextBefore string `json:"context_before,omitempty"`
	ContextAfter  string `json:"context_after,omitempty"`

	// 1-based inclusive line bounds restricting where the search may match.
	LineStart int `json:"line_start,omitempty"`
	LineEnd   int `json:"line_end,omitempty"`
}

// FileEditRequest is an ordered sequence of edits against one file. Each edit
// operates on the content as rewritten by the edits before it.
type FileEditRequest struct {
	Path  string     `json:"path"`
	Edits []EditSpec `json:"edits"`

	// ExpectedHash optionally pins the content fingerprint the caller planned
	// against. A mismatch blocks the file before any matching runs.
	ExpectedHash string `json:"expected_hash,omitempty"`
}

// Batch is the top-level request: files to edit plus transaction flags.
type Batch struct {
	Files     []FileEditRequest `json:"files"`
	DryRun    bool              `json:"dry_run"`
	CheckOnly bool              `json:"check_only"`
	FailFast  bool              `json:"fail_fast"`
}

// DecodeBatch parses a Batch from JSON, applying the documented defaults
// (dry_run=true, fail_fast=true) for fields the caller omits.
func DecodeBatch(data []byte) (*Batch, error) {
	b := Batch{DryRun: true, FailFast: true}
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse batch JSON: %w", err)
	}
	return &b, nil
}

// Span is a byte range [Start, End) in file content.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MatchResult is the outcome of locating one EditSpec in file content.
// Found means exactly one span was resolved at tiers 1-4. A result that is
// not Found is either ambiguous (Candidates holds the equally-scored spans
// of the last ambiguous tier) or a no-match; in both cases Suggestion may
// carry the best fuzzy candidate for diagnostics.
type MatchResult struct {
	Tier       Tier    `json:"tier"`
	Confidence float64 `json:"confidence"`
	Found      bool    `json:"found"`
	Start      int     `json:"start,omitempty"`
	End        int     `json:"end,omitempty"`

	Ambiguous  bool   `json:"ambiguous,omitempty"`
	Candidates []Span `json:"candidates,omitempty"`

	// Fuzzy diagnostics. Never applied.
	Suggestion      string  `json:"suggestion,omitempty"`
	SuggestionScore float64 `json:"suggestion_score,omitempty"`

	Reason string `json:"reason,omitempty"`
}

// ResolvedEdit pairs an EditSpec with its match outcome inside a plan.
type ResolvedEdit struct {
	Index int         `json:"index"`
	Spec  EditSpec    `json:"spec"`
	Match MatchResult `json:"match"`
}

// PlanStatus is the aggregate state of a single file's plan.
type PlanStatus string

const (
	StatusReady   PlanStatus = "ready"
	StatusBlocked PlanStatus = "blocked"
)

// FileEditPlan is the fully-resolved, not-yet-applied plan for one file.
// OldContent and NewContent are both materialized so the plan is
// deterministic and the previewer needs no further disk reads.
type FileEditPlan struct {
	Path         string         `json:"path"`
	BaselineHash string         `json:"baseline_hash"`
	Status       PlanStatus     `json:"status"`
	Edits        []ResolvedEdit `json:"edits"`
	OldContent   string         `json:"-"`
	NewContent   string         `json:"-"`
	Errors       []string       `json:"errors,omitempty"`
}

// TxnStatus is the aggregate state of a TransactionPlan.
type TxnStatus string

const (
	TxnAllReady         TxnStatus = "all_ready"
	TxnPartiallyBlocked TxnStatus = "partially_blocked"
)

// TransactionPlan is an immutable plan covering every file in a batch.
type TransactionPlan struct {
	Files     []FileEditPlan `json:"files"`
	Status    TxnStatus      `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// FileStatus is the per-file result of a transaction.
type FileStatus string

const (
	FileReady      FileStatus = "ready"
	FileBlocked    FileStatus = "blocked"
	FileApplied    FileStatus = "applied"
	FileRolledBack FileStatus = "rolled_back"
	FileRejected   FileStatus = "rejected"
	FileSkipped    FileStatus = "skipped_dry_run"
)

// DiffSummary holds the rendered preview for one file.
type DiffSummary struct {
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Hunks     string `json:"hunks,omitempty"`
}

// FileOutcome is the per-file slice of a TransactionOutcome.
type FileOutcome struct {
	Path       string      `json:"path"`
	Status     FileStatus  `json:"status"`
	Tier       Tier        `json:"tier,omitempty"`
	Conflict   bool        `json:"conflict,omitempty"`
	BackupPath string      `json:"backup_path,omitempty"`
	RejectPath string      `json:"reject_path,omitempty"`
	Diff       DiffSummary `json:"diff,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// TxnState describes how far a transaction got.
type TxnState string

const (
	StateChecked    TxnState = "checked"
	StatePreviewed  TxnState = "previewed"
	StateApplied    TxnState = "applied"
	StateRolledBack TxnState = "rolled_back"
	StateFailed     TxnState = "failed"
)

// TransactionOutcome is the caller-facing result of one invocation.
type TransactionOutcome struct {
	ID      string        `json:"transaction_id"`
	State   TxnState      `json:"state"`
	Success bool          `json:"success"`
	Files   []FileOutcome `json:"files"`

	FilesChecked  int `json:"files_checked"`
	FilesModified int `json:"files_modified"`
	EditsTotal    int `json:"edits_total"`
	EditsApplied  int `json:"edits_applied"`
	EditsFailed   int `json:"edits_failed"`

	Summary string `json:"summary"`
}

// InputError reports a malformed batch or edit spec, detected before any
// planning or disk access.
type InputError struct {
	Path  string
	Index int // edit index within the file, -1 for file-level problems
	Msg   string
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid batch: %s", e.Msg)
	}
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: edit %d: %s", e.Path, e.Index+1, e.Msg)
}

// ValidateBatch checks the content-independent shape of a batch. Bounds that
// depend on file content (line ranges past EOF) are validated during
// planning instead.
func ValidateBatch(b *Batch) error {
	if len(b.Files) == 0 {
		return &InputError{Index: -1, Msg: "no files to edit"}
	}
	for _, f := range b.Files {
		if f.Path == "" {
			return &InputError{Index: -1, Msg: "file path is required"}
		}
		if len(f.Edits) == 0 {
			return &InputError{Path: f.Path, Index: -1, Msg: "no edits for file"}
		}
		for i, e := range f.Edits {
			if e.Search == "" {
				return &InputError{Path: f.Path, Index: i, Msg: "search text is required"}
			}
			if e.LineStart < 0 || e.LineEnd < 0 {
				return &InputError{Path: f.Path, Index: i, Msg: "line bounds must be positive"}
			}
			if e.LineStart > 0 && e.LineEnd > 0 && e.LineStart > e.LineEnd {
				return &InputError{Path: f.Path, Index: i, Msg: fmt.Sprintf("line_start %d > line_end %d", e.LineStart, e.LineEnd)}
			}
			if e.LineEnd > 0 && e.LineStart == 0 {
				return &InputError{Path: f.Path, Index: i, Msg: "line_end requires line_start"}
			}
		}
	}
	return nil
}
