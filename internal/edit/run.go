package edit

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Options configure a single Run invocation. Zero values fall back to the
// engine defaults.
type Options struct {
	Root          string  // workdir anchoring relative paths
	MaxFileSize   int64   // plan-time size guard, bytes
	MinConfidence float64 // fuzzy suggestion cutoff
	BackupSuffix  string
	RejectSuffix  string
}

const (
	defaultMaxFileSize   = 1_000_000
	defaultMinConfidence = 0.70
)

// Run plans a batch and, unless it is a check or dry run, applies it. The
// engine holds no state between invocations; everything intermediate (plan,
// fingerprints, backups) is scoped to this call.
func Run(batch *Batch, opts Options) (*TransactionOutcome, error) {
	if opts.MaxFileSize == 0 {
		opts.MaxFileSize = defaultMaxFileSize
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = defaultMinConfidence
	}

	engine := NewEngine(opts.MinConfidence)
	planner := NewPlanner(engine, opts.Root, opts.MaxFileSize)

	plan, err := planner.Plan(batch)
	if err != nil {
		return nil, err
	}

	outcome := &TransactionOutcome{ID: uuid.New().String()[:8]}
	for _, fp := range plan.Files {
		outcome.EditsTotal += len(fp.Edits)
		for _, re := range fp.Edits {
			if re.Match.Found {
				outcome.EditsApplied++
			} else {
				outcome.EditsFailed++
			}
		}
	}
	outcome.FilesChecked = len(plan.Files)

	switch {
	case batch.CheckOnly:
		outcome.State = StateChecked
		outcome.Files = checkOutcomes(plan)
	case batch.DryRun:
		outcome.State = StatePreviewed
		outcome.Files = previewOutcomes(plan)
	default:
		if reasons := SafetyCheck(opts.Root); len(reasons) > 0 {
			return nil, fmt.Errorf("unsafe to edit: %s", strings.Join(reasons, "; "))
		}
		executor := NewExecutor(opts.BackupSuffix, opts.RejectSuffix)
		outcome.Files = executor.Apply(plan, batch.FailFast)
	}

	finalize(outcome)
	return outcome, nil
}

// checkOutcomes reports match validity only; no diffs, nothing written.
func checkOutcomes(plan *TransactionPlan) []FileOutcome {
	outs := make([]FileOutcome, len(plan.Files))
	for i, fp := range plan.Files {
		status := FileReady
		if fp.Status != StatusReady {
			status = FileBlocked
		}
		outs[i] = FileOutcome{
			Path:   fp.Path,
			Status: status,
			Tier:   worstTier(&plan.Files[i]),
			Errors: fp.Errors,
		}
	}
	return outs
}

// previewOutcomes renders diffs without writing anything.
func previewOutcomes(plan *TransactionPlan) []FileOutcome {
	outs := make([]FileOutcome, len(plan.Files))
	for i := range plan.Files {
		fp := &plan.Files[i]
		status := FileSkipped
		if fp.Status != StatusReady {
			status = FileBlocked
		}
		outs[i] = FileOutcome{
			Path:   fp.Path,
			Status: status,
			Tier:   worstTier(fp),
			Errors: fp.Errors,
			Diff:   Preview(fp),
		}
	}
	return outs
}

// finalize computes aggregate counts, success, state, and the summary line.
func finalize(o *TransactionOutcome) {
	failed := 0
	rolledBack := false
	for _, f := range o.Files {
		switch f.Status {
		case FileApplied:
			o.FilesModified++
		case FileRolledBack:
			rolledBack = true
			failed++
		case FileRejected, FileBlocked:
			failed++
		}
	}
	o.Success = failed == 0

	if o.State == "" {
		switch {
		case rolledBack:
			o.State = StateRolledBack
		case failed > 0:
			o.State = StateFailed
		default:
			o.State = StateApplied
		}
	}
	if (o.State == StateChecked || o.State == StatePreviewed) && failed > 0 {
		o.Success = false
	}

	if o.State == StateRolledBack {
		o.EditsApplied = 0
	}

	switch o.State {
	case StateChecked:
		o.Summary = fmt.Sprintf("checked %d file(s): %d edit(s) valid, %d blocked", o.FilesChecked, o.EditsApplied, o.EditsFailed)
	case StatePreviewed:
		o.Summary = fmt.Sprintf("preview: %d edit(s) ready to apply across %d file(s)", o.EditsApplied, o.FilesChecked)
	case StateApplied:
		o.Summary = fmt.Sprintf("applied %d edit(s) to %d file(s)", o.EditsApplied, o.FilesModified)
	case StateRolledBack:
		o.Summary = fmt.Sprintf("rolled back: %d file(s) failed, all writes undone", failed)
	default:
		o.Summary = fmt.Sprintf("failed: %d of %d file(s) could not be edited", failed, o.FilesChecked)
	}
}
