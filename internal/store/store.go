// Package store persists an audit trail of cleaning runs. The
// filtering library itself is stateless; the CLI writes here only when
// auditing is configured.
package store

import (
	"context"
	"time"
)

// CleanRun is one recorded invocation of the cleaning pipeline over a
// single source file.
type CleanRun struct {
	ID         string
	Source     string
	RowsIn     int
	RowsOut    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// PassRecord is the per-pass breakdown for a run.
type PassRecord struct {
	RunID     string
	Pass      string
	Removed   int
	Remaining int
}

// Store records cleaning runs and their pass breakdowns.
type Store interface {
	RecordRun(ctx context.Context, run CleanRun, passes []PassRecord) error
	GetRun(ctx context.Context, id string) (*CleanRun, []PassRecord, error)
	ListRuns(ctx context.Context, limit int) ([]CleanRun, error)
	Close() error
}
