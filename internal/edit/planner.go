package edit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Planner resolves a Batch into a TransactionPlan. Planning is strictly
// read-only: it reads each file once, threads the file's edits sequentially
// through the match engine over the progressively rewritten content, and
// records the final content without touching disk.
type Planner struct {
	engine      *Engine
	root        string
	maxFileSize int64
}

// NewPlanner creates a planner. root anchors relative paths; maxFileSize
// blocks oversized files at plan time (0 means no limit).
func NewPlanner(engine *Engine, root string, maxFileSize int64) *Planner {
	return &Planner{engine: engine, root: root, maxFileSize: maxFileSize}
}

// Plan validates the batch shape and plans every file. Files are independent
// so per-file planning runs concurrently; the returned order matches the
// input order, which the executor also uses for commit and rollback.
func (p *Planner) Plan(batch *Batch) (*TransactionPlan, error) {
	if err := ValidateBatch(batch); err != nil {
		return nil, err
	}

	plans := make([]FileEditPlan, len(batch.Files))
	var wg sync.WaitGroup
	for i, req := range batch.Files {
		wg.Add(1)
		go func(i int, req FileEditRequest) {
			defer wg.Done()
			plans[i] = p.planFile(req)
		}(i, req)
	}
	wg.Wait()

	status := TxnAllReady
	for _, fp := range plans {
		if fp.Status != StatusReady {
			status = TxnPartiallyBlocked
			break
		}
	}

	return &TransactionPlan{
		Files:     plans,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ResolvePath anchors a possibly-relative path at the planner root.
func (p *Planner) ResolvePath(path string) string {
	if filepath.IsAbs(path) || p.root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(p.root, path)
}

func (p *Planner) planFile(req FileEditRequest) FileEditPlan {
	path := p.ResolvePath(req.Path)
	plan := FileEditPlan{Path: path, Status: StatusBlocked}

	info, err := os.Stat(path)
	if err != nil {
		plan.Errors = append(plan.Errors, fmt.Sprintf("stat: %v", err))
		return plan
	}
	if info.IsDir() {
		plan.Errors = append(plan.Errors, "path is a directory")
		return plan
	}
	if p.maxFileSize > 0 && info.Size() > p.maxFileSize {
		plan.Errors = append(plan.Errors, fmt.Sprintf("file too large: %d bytes (limit %d)", info.Size(), p.maxFileSize))
		return plan
	}

	data, err := os.ReadFile(path)
	if err != nil {
		plan.Errors = append(plan.Errors, fmt.Sprintf("read: %v", err))
		return plan
	}
	content := string(data)
	plan.OldContent = content
	plan.BaselineHash = Fingerprint(content)

	if req.ExpectedHash != "" && req.ExpectedHash != plan.BaselineHash {
		plan.Errors = append(plan.Errors, "content changed since the edit was planned (fingerprint mismatch)")
		return plan
	}

	blocked := false
	current := content
	for i, spec := range req.Edits {
		match := p.engine.Locate(current, spec)
		plan.Edits = append(plan.Edits, ResolvedEdit{Index: i, Spec: spec, Match: match})
		if !match.Found {
			blocked = true
			plan.Errors = append(plan.Errors, fmt.Sprintf("edit %d: %s", i+1, match.Reason))
			continue
		}
		current = current[:match.Start] + spec.Replace + current[match.End:]
	}

	plan.NewContent = current
	if !blocked {
		plan.Status = StatusReady
	}
	return plan
}
