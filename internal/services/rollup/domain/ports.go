package domain

import (
	"context"
	"time"
)

// RunnerPort is the public entrypoint exposed by the module.
// The sweeper calls ApplyDay after moderating a day, and operators run
// batch jobs via RunRange
type RunnerPort interface {
	// ApplyDay rolls up exactly one UTC day (idempotent per day)
	ApplyDay(ctx context.Context, day time.Time) error

	// RunRange iterates [from, until] inclusive, applying one day at a time
	RunRange(ctx context.Context, from, until time.Time) error
}

// StorageRepo encapsulates the storage actions rollup performs.
// Typical impl: PG for flag aggregation and segment pruning; CH for the
// daily rollup slices
type StorageRepo interface {
	// AggDay aggregates flags into (kind, category, severity) counts
	// for [day, day+24h)
	AggDay(ctx context.Context, day time.Time) ([]Agg, error)

	// WriteRollup replaces the day's slice in flag_rollup_daily.
	// Safe to re-run: the existing slice for (day, detver) is cleared first
	WriteRollup(ctx context.Context, day time.Time, detver int, aggs []Agg) (int, error)

	// PruneSegments deletes segments created in [from, until) that carry no
	// flags. Returns (deleted, spared) where spared counts flagged rows kept
	PruneSegments(ctx context.Context, from, until time.Time) (deleted, spared int, err error)
}
