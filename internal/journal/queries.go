package journal

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lucasnoah/surgeon/internal/edit"
)

// Transaction represents a row in the transactions table.
type Transaction struct {
	ID           string
	State        string
	Success      bool
	FilesTotal   int
	FilesApplied int
	EditsTotal   int
	EditsApplied int
	EditsFailed  int
	Summary      string
	CreatedAt    string
}

// FileRecord represents a row in the transaction_files table.
type FileRecord struct {
	ID         int
	TxnID      string
	Path       string
	Status     string
	Tier       string
	Conflict   bool
	BackupPath string
	RejectPath string
	Detail     string
	CreatedAt  string
}

// Record inserts a transaction outcome and its per-file rows.
func (d *DB) Record(o *edit.TransactionOutcome) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO transactions (id, state, success, files_total, files_applied, edits_total, edits_applied, edits_failed, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, string(o.State), o.Success, o.FilesChecked, o.FilesModified,
		o.EditsTotal, o.EditsApplied, o.EditsFailed, o.Summary,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	for _, f := range o.Files {
		_, err = tx.Exec(`
			INSERT INTO transaction_files (txn_id, path, status, tier, conflict, backup_path, reject_path, detail)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, f.Path, string(f.Status), string(f.Tier), f.Conflict,
			f.BackupPath, f.RejectPath, strings.Join(f.Errors, "; "),
		)
		if err != nil {
			return fmt.Errorf("insert file row for %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Recent returns the most recent transactions, newest first.
func (d *DB) Recent(limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(`
		SELECT id, state, success, files_total, files_applied, edits_total, edits_applied, edits_failed, summary, created_at
		FROM transactions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.State, &t.Success, &t.FilesTotal, &t.FilesApplied,
			&t.EditsTotal, &t.EditsApplied, &t.EditsFailed, &t.Summary, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// Get returns a single transaction by ID.
func (d *DB) Get(id string) (*Transaction, error) {
	var t Transaction
	err := d.conn.QueryRow(`
		SELECT id, state, success, files_total, files_applied, edits_total, edits_applied, edits_failed, summary, created_at
		FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &t.State, &t.Success, &t.FilesTotal, &t.FilesApplied,
			&t.EditsTotal, &t.EditsApplied, &t.EditsFailed, &t.Summary, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query transaction: %w", err)
	}
	return &t, nil
}

// Files returns the per-file rows of a transaction, in insertion order.
func (d *DB) Files(txnID string) ([]FileRecord, error) {
	rows, err := d.conn.Query(`
		SELECT id, txn_id, path, status, tier, conflict, backup_path, reject_path, detail, created_at
		FROM transaction_files WHERE txn_id = ? ORDER BY id`, txnID)
	if err != nil {
		return nil, fmt.Errorf("query transaction files: %w", err)
	}
	defer rows.Close()
	return scanFileRecords(rows)
}

// FileHistory returns every recorded touch of a path, newest first.
func (d *DB) FileHistory(path string, limit int) ([]FileRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(`
		SELECT id, txn_id, path, status, tier, conflict, backup_path, reject_path, detail, created_at
		FROM transaction_files WHERE path = ? ORDER BY created_at DESC, id DESC LIMIT ?`, path, limit)
	if err != nil {
		return nil, fmt.Errorf("query file history: %w", err)
	}
	defer rows.Close()
	return scanFileRecords(rows)
}

func scanFileRecords(rows *sql.Rows) ([]FileRecord, error) {
	var recs []FileRecord
	for rows.Next() {
		var r FileRecord
		if err := rows.Scan(&r.ID, &r.TxnID, &r.Path, &r.Status, &r.Tier, &r.Conflict,
			&r.BackupPath, &r.RejectPath, &r.Detail, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
