package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures
// WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS clean_runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	rows_in     INTEGER NOT NULL,
	rows_out    INTEGER NOT NULL,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS clean_passes (
	run_id    TEXT NOT NULL REFERENCES clean_runs(id),
	pass      TEXT NOT NULL,
	removed   INTEGER NOT NULL,
	remaining INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_clean_runs_source ON clean_runs(source);
CREATE INDEX IF NOT EXISTS idx_clean_passes_run_id ON clean_passes(run_id);
`

// Migrate creates the audit tables if they do not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run and its pass breakdown in one transaction.
func (s *SQLiteStore) RecordRun(ctx context.Context, run CleanRun, passes []PassRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO clean_runs (id, source, rows_in, rows_out, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.RowsIn, run.RowsOut,
		run.StartedAt.UTC(), run.FinishedAt.UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
	}

	for _, p := range passes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO clean_passes (run_id, pass, removed, remaining) VALUES (?, ?, ?, ?)`,
			run.ID, p.Pass, p.Removed, p.Remaining,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert pass %s/%s", run.ID, p.Pass)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

// GetRun loads one run and its passes.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*CleanRun, []PassRecord, error) {
	var run CleanRun
	var started, finished time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, rows_in, rows_out, started_at, finished_at FROM clean_runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.Source, &run.RowsIn, &run.RowsOut, &started, &finished)
	if err == sql.ErrNoRows {
		return nil, nil, eris.Errorf("sqlite: run %s not found", id)
	}
	if err != nil {
		return nil, nil, eris.Wrapf(err, "sqlite: get run %s", id)
	}
	run.StartedAt, run.FinishedAt = started, finished

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, pass, removed, remaining FROM clean_passes WHERE run_id = ? ORDER BY rowid`,
		id,
	)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "sqlite: get passes %s", id)
	}
	defer rows.Close() //nolint:errcheck

	var passes []PassRecord
	for rows.Next() {
		var p PassRecord
		if err := rows.Scan(&p.RunID, &p.Pass, &p.Removed, &p.Remaining); err != nil {
			return nil, nil, eris.Wrap(err, "sqlite: scan pass")
		}
		passes = append(passes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, eris.Wrap(err, "sqlite: iterate passes")
	}

	return &run, passes, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]CleanRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, rows_in, rows_out, started_at, finished_at
		 FROM clean_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []CleanRun
	for rows.Next() {
		var run CleanRun
		if err := rows.Scan(&run.ID, &run.Source, &run.RowsIn, &run.RowsOut, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}
