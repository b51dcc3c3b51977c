package domain

import (
	"context"
	"time"
)

// WriterPort writes flags
type WriterPort interface {
	// WriteBatch inserts rows, skipping duplicates; returns the count of new rows
	WriteBatch(ctx context.Context, rows []Row) (int, error)
}

// ReaderPort queries flags and aggregates
type ReaderPort interface {
	// List returns up to Limit rows ordered by (created_at, flag_id)
	List(ctx context.Context, in ListInput) (rows []Row, next AfterKey, err error)

	// AggByKind counts flags per kind in [since, until)
	AggByKind(ctx context.Context, since, until time.Time) (map[string]int64, error)

	// TopEntries returns the most frequent (kind, entry) pairs in [since, until)
	TopEntries(ctx context.Context, since, until time.Time, limit int) ([]EntryCount, error)
}
