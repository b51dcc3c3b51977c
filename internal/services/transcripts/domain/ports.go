package domain

import (
	"context"
	"time"
)

// WriterPort ingests transcript segments
type WriterPort interface {
	// Write inserts rows, skipping duplicates; returns the count of new rows
	Write(ctx context.Context, rows []Row) (int, error)
}

// ReaderPort defines the read interface for transcripts
type ReaderPort interface {
	// List returns up to Limit rows ordered by (created_at, segment_id), applying filters
	List(ctx context.Context, in ListInput) (rows []Row, next AfterKey, err error)

	// Range streams rows created in [from, until) through fn in storage order;
	// the first error from fn stops the iteration
	Range(ctx context.Context, from, until time.Time, fn func(Row) error) error
}
