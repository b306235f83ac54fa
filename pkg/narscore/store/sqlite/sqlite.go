package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/narscore/pkg/narscore/internalerr"
	"github.com/cognicore/narscore/pkg/narscore/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite journal with WAL mode enabled, creating the
// schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", internalerr.ErrStoreUnavailable, err)
	}

	// One connection keeps the pragmas in force for every statement and
	// serializes writers.
	db.SetMaxOpenConns(1)

	for _, p := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: pragma %q: %w", internalerr.ErrStoreUnavailable, p, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: schema: %w", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS journal (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	cycle INTEGER NOT NULL,
	stamp_id INTEGER NOT NULL,
	sentence TEXT NOT NULL,
	punctuation TEXT NOT NULL,
	frequency REAL NOT NULL,
	confidence REAL NOT NULL,
	occurrence INTEGER NOT NULL,
	derived_by TEXT NOT NULL DEFAULT '',
	evidence TEXT NOT NULL DEFAULT '[]',
	UNIQUE(run_id, stamp_id)
);

CREATE INDEX IF NOT EXISTS journal_rule ON journal(run_id, derived_by);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Append adds a record; a duplicate run/stamp pair is ignored.
func (s *sqliteStore) Append(ctx context.Context, r store.Record) error {
	evidence := r.Evidence
	if evidence == nil {
		evidence = []int64{}
	}
	evidenceJSON, err := json.Marshal(evidence)
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO journal (run_id, cycle, stamp_id, sentence, punctuation, frequency, confidence, occurrence, derived_by, evidence)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id, stamp_id) DO NOTHING;
`
	_, err = s.db.ExecContext(ctx, stmt,
		r.RunID,
		r.Cycle,
		r.StampID,
		r.Sentence,
		r.Punctuation,
		r.Frequency,
		r.Confidence,
		r.Occurrence,
		r.DerivedBy,
		string(evidenceJSON),
	)
	return err
}

const selectRecord = `
SELECT run_id, cycle, stamp_id, sentence, punctuation, frequency, confidence, occurrence, derived_by, evidence
FROM journal
`

// ByRun lists a run in append order
func (s *sqliteStore) ByRun(ctx context.Context, runID string, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}
	rows, err := s.db.QueryContext(ctx, selectRecord+`WHERE run_id = ? ORDER BY seq LIMIT ?;`, runID, limit)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// ByRule lists the records of a run derived by one rule
func (s *sqliteStore) ByRule(ctx context.Context, runID, rule string) ([]store.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+`WHERE run_id = ? AND derived_by = ? ORDER BY seq;`, runID, rule)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// Get returns one record
func (s *sqliteStore) Get(ctx context.Context, runID string, stampID int64) (store.Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+`WHERE run_id = ? AND stamp_id = ?;`, runID, stampID)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, fmt.Errorf("%w: record %s/%d", internalerr.ErrNotFound, runID, stampID)
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (store.Record, error) {
	var r store.Record
	var evidenceJSON string
	if err := sc.Scan(
		&r.RunID,
		&r.Cycle,
		&r.StampID,
		&r.Sentence,
		&r.Punctuation,
		&r.Frequency,
		&r.Confidence,
		&r.Occurrence,
		&r.DerivedBy,
		&evidenceJSON,
	); err != nil {
		return store.Record{}, err
	}
	if err := json.Unmarshal([]byte(evidenceJSON), &r.Evidence); err != nil {
		return store.Record{}, fmt.Errorf("decode evidence of stamp %d: %w", r.StampID, err)
	}
	return r, nil
}

func scanRecords(rows *sql.Rows) ([]store.Record, error) {
	defer rows.Close()

	var out []store.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
