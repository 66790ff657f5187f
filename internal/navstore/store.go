// Package navstore persists the last good NAV index to SQLite so a process
// restart inside the refresh window can serve mutual-fund data without an
// upstream call. Only the single latest snapshot is kept; this is graceful
// degradation across restarts, not a historical time series.
package navstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/finsightapp/market-data-backend/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS nav_snapshot (
	id         TEXT PRIMARY KEY,
	fetched_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS nav_record (
	snapshot_id TEXT NOT NULL REFERENCES nav_snapshot(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	scheme_code TEXT NOT NULL,
	scheme_name TEXT NOT NULL,
	nav         REAL NOT NULL,
	nav_date    TEXT NOT NULL,
	category    TEXT,
	fund_house  TEXT
);
CREATE INDEX IF NOT EXISTS idx_nav_record_snapshot ON nav_record(snapshot_id, position);
`

// Store provides data access to the snapshot tables.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping snapshot database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with the given record set. The previous
// snapshot is removed in the same transaction, so readers either load the
// old full set or the new full set, never a mix.
func (s *Store) Save(records []model.NavRecord, fetchedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	//nolint:errcheck // rollback after commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM nav_snapshot`); err != nil {
		return fmt.Errorf("failed to clear prior snapshot: %w", err)
	}

	snapshotID := uuid.New().String()
	if _, err := tx.Exec(
		`INSERT INTO nav_snapshot (id, fetched_at) VALUES (?, ?)`,
		snapshotID, fetchedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO nav_record
			(snapshot_id, position, scheme_code, scheme_name, nav, nav_date, category, fund_house)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(
			snapshotID, i, r.SchemeCode, r.SchemeName, r.Nav, r.NavDate, r.Category, r.FundHouse,
		); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.SchemeCode, err)
		}
	}

	return tx.Commit()
}

// Load returns the stored snapshot in its original ingestion order, with the
// time it was fetched from upstream. An empty store returns no records and a
// zero time, not an error.
func (s *Store) Load() ([]model.NavRecord, time.Time, error) {
	var (
		snapshotID string
		fetchedAt  time.Time
	)
	err := s.db.QueryRow(
		`SELECT id, fetched_at FROM nav_snapshot ORDER BY fetched_at DESC LIMIT 1`,
	).Scan(&snapshotID, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT scheme_code, scheme_name, nav, nav_date, category, fund_house
		FROM nav_record
		WHERE snapshot_id = ?
		ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot records: %w", err)
	}
	defer rows.Close()

	var records []model.NavRecord
	for rows.Next() {
		var r model.NavRecord
		if err := rows.Scan(&r.SchemeCode, &r.SchemeName, &r.Nav, &r.NavDate, &r.Category, &r.FundHouse); err != nil {
			return nil, time.Time{}, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	return records, fetchedAt, nil
}
