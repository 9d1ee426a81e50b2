package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"macrodash/internal/snapshot"
)

// SQLiteRecorder persists snapshot history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so history readers don't block the refresh writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshot_rows (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			years      INTEGER NOT NULL,
			label      TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			latest     REAL,
			delta      REAL,
			available  INTEGER NOT NULL,
			reason     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshot_ts ON snapshot_rows(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshot_label ON snapshot_rows(label)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSnapshot inserts one row per instrument slot.
func (r *SQLiteRecorder) RecordSnapshot(years int, snap *snapshot.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	ts := snap.TakenAt.Unix()
	for _, row := range snap.Rows {
		available := 0
		if row.Available {
			available = 1
		}
		if _, err := tx.Exec(`INSERT INTO snapshot_rows
			(timestamp, years, label, symbol, latest, delta, available, reason)
			VALUES (?,?,?,?,?,?,?,?)`,
			ts, years, row.Label, row.Symbol, row.Latest, row.Delta, available, row.Reason,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert row %s: %w", row.Label, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
