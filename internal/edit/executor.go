package edit

import (
	"fmt"
)

// Executor applies a validated TransactionPlan to disk as a saga: for every
// file it records a compensating action (restore from backup) before the
// write, walks the files forward in plan order, and on failure under
// fail-fast walks the committed entries backward applying compensations.
type Executor struct {
	backupSuffix string
	rejectSuffix string
}

// NewExecutor creates an executor. Suffixes default to ".bak" and ".rej".
func NewExecutor(backupSuffix, rejectSuffix string) *Executor {
	if backupSuffix == "" {
		backupSuffix = ".bak"
	}
	if rejectSuffix == "" {
		rejectSuffix = ".rej"
	}
	return &Executor{backupSuffix: backupSuffix, rejectSuffix: rejectSuffix}
}

// committed tracks one applied file so it can be rolled back.
type committed struct {
	outcome    *FileOutcome
	path       string
	oldContent string
}

// Apply executes the plan. With failFast, any per-file failure rolls back
// every file already written and aborts; otherwise failures are isolated to
// the offending file (reject artifact written, original left untouched) and
// successes remain committed.
//
// Apply is only called for non-dry-run batches. Blocked files are never
// written; under failFast their presence aborts the transaction up front.
func (e *Executor) Apply(plan *TransactionPlan, failFast bool) []FileOutcome {
	outcomes := make([]FileOutcome, len(plan.Files))
	for i, fp := range plan.Files {
		outcomes[i] = FileOutcome{Path: fp.Path, Status: FileRejected, Tier: worstTier(&plan.Files[i])}
	}

	if plan.Status == TxnPartiallyBlocked && failFast {
		for i, fp := range plan.Files {
			outcomes[i].Status = FileRejected
			outcomes[i].Errors = fp.Errors
			if fp.Status == StatusReady {
				outcomes[i].Status = FileRolledBack
				outcomes[i].Errors = []string{"transaction aborted: another file is blocked"}
			}
		}
		return outcomes
	}

	var done []committed
	rollback := func(trigger string) {
		// Compensate in reverse commit order.
		for i := len(done) - 1; i >= 0; i-- {
			c := done[i]
			if err := WriteAtomic(c.path, []byte(c.oldContent)); err != nil {
				c.outcome.Errors = append(c.outcome.Errors, fmt.Sprintf("rollback failed, restore from %s manually: %v", c.outcome.BackupPath, err))
				continue
			}
			c.outcome.Status = FileRolledBack
			c.outcome.Errors = append(c.outcome.Errors, fmt.Sprintf("rolled back: %s", trigger))
		}
	}

	for i := range plan.Files {
		fp := &plan.Files[i]
		out := &outcomes[i]

		if fp.Status != StatusReady {
			out.Status = FileRejected
			out.Errors = fp.Errors
			e.writeReject(fp, out)
			continue
		}

		// Optimistic concurrency: the fingerprint taken at plan time must
		// still hold immediately before the write.
		currentHash, err := FingerprintFile(fp.Path)
		if err == nil && currentHash != fp.BaselineHash {
			err = fmt.Errorf("file changed since planning")
			out.Conflict = true
		}
		if err != nil {
			out.Status = FileRejected
			out.Errors = append(out.Errors, err.Error())
			if failFast {
				rollback(fmt.Sprintf("%s: %v", fp.Path, err))
				markAborted(outcomes[i+1:])
				return outcomes
			}
			e.writeReject(fp, out)
			continue
		}

		// Backup before write, unconditionally. An unbackuped overwrite is
		// never risked: backup failure fails this file before any write.
		backupPath := fp.Path + e.backupSuffix
		if err := WriteAtomic(backupPath, []byte(fp.OldContent)); err != nil {
			out.Status = FileRejected
			out.Errors = append(out.Errors, fmt.Sprintf("create backup: %v", err))
			if failFast {
				rollback(fmt.Sprintf("%s: backup failed", fp.Path))
				markAborted(outcomes[i+1:])
				return outcomes
			}
			e.writeReject(fp, out)
			continue
		}
		out.BackupPath = backupPath

		if err := WriteAtomic(fp.Path, []byte(fp.NewContent)); err != nil {
			out.Status = FileRejected
			out.Errors = append(out.Errors, fmt.Sprintf("write: %v", err))
			if failFast {
				rollback(fmt.Sprintf("%s: write failed", fp.Path))
				markAborted(outcomes[i+1:])
				return outcomes
			}
			e.writeReject(fp, out)
			continue
		}

		out.Status = FileApplied
		out.Diff = Preview(fp)
		done = append(done, committed{outcome: out, path: fp.Path, oldContent: fp.OldContent})
	}

	return outcomes
}

// markAborted flags files the executor never reached after a fail-fast abort.
func markAborted(outcomes []FileOutcome) {
	for i := range outcomes {
		outcomes[i].Status = FileRolledBack
		outcomes[i].Errors = append(outcomes[i].Errors, "transaction aborted before this file was attempted")
	}
}

// writeReject persists a reject artifact for a failed file, best-effort.
func (e *Executor) writeReject(fp *FileEditPlan, out *FileOutcome) {
	path, err := WriteReject(fp, e.rejectSuffix)
	if err != nil {
		out.Warnings = append(out.Warnings, fmt.Sprintf("write reject artifact: %v", err))
		return
	}
	if path != "" {
		out.RejectPath = path
	}
}

// worstTier reports the lowest-confidence tier among a plan's resolved edits,
// for journaling.
func worstTier(fp *FileEditPlan) Tier {
	worst := TierExact
	worstScore := 2.0
	for _, re := range fp.Edits {
		score := re.Match.Tier.Confidence()
		if !re.Match.Found {
			return TierNone
		}
		if score < worstScore {
			worstScore = score
			worst = re.Match.Tier
		}
	}
	if len(fp.Edits) == 0 {
		return TierNone
	}
	return worst
}
