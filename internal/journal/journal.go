package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite journal connection. The journal records what every
// edit transaction did so agents (and humans) can audit or retrace changes;
// recording is best-effort and never fails a transaction.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the journal database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying *sql.DB for advanced queries.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS transactions (
    id            TEXT PRIMARY KEY,
    state         TEXT NOT NULL CHECK(state IN ('checked','previewed','applied','rolled_back','failed')),
    success       INTEGER NOT NULL,
    files_total   INTEGER NOT NULL,
    files_applied INTEGER NOT NULL,
    edits_total   INTEGER NOT NULL,
    edits_applied INTEGER NOT NULL,
    edits_failed  INTEGER NOT NULL,
    summary       TEXT,
    created_at    TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS transaction_files (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    txn_id      TEXT NOT NULL REFERENCES transactions(id),
    path        TEXT NOT NULL,
    status      TEXT NOT NULL,
    tier        TEXT,
    conflict    INTEGER NOT NULL DEFAULT 0,
    backup_path TEXT,
    reject_path TEXT,
    detail      TEXT,
    created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_txn_files ON transaction_files(txn_id);
CREATE INDEX IF NOT EXISTS idx_txn_path ON transaction_files(path, created_at DESC);
`

// Migrate applies the schema, recording the version. Safe to call repeatedly.
func (d *DB) Migrate() error {
	if _, err := d.conn.Exec(schemaV1); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	var version int
	err := d.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version < 1 {
		if _, err := d.conn.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	}
	return nil
}
