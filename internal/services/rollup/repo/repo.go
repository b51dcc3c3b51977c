// Package repo provides the rollup storage implementation
package repo

import (
	"context"
	"time"

	"mouthwash/internal/modkit/repokit"
	"mouthwash/internal/platform/store"
	rodom "mouthwash/internal/services/rollup/domain"
)

// RollupTable is the ClickHouse table holding daily flag counts
const RollupTable = "flag_rollup_daily"

// NewHybrid returns a binder that uses
// - Postgres for flag aggregation and segment pruning
// - ClickHouse for the daily rollup slices
func NewHybrid(ch store.Clickhouse) repokit.Binder[rodom.StorageRepo] {
	return &hybridBinder{ch: ch}
}

type hybridBinder struct{ ch store.Clickhouse }

func (b *hybridBinder) Bind(q repokit.Queryer) rodom.StorageRepo {
	return &hybridStore{pg: q, ch: b.ch}
}

type hybridStore struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

// AggDay implements StorageRepo
func (s *hybridStore) AggDay(ctx context.Context, day time.Time) ([]rodom.Agg, error) {
	from := day.UTC()
	until := from.Add(24 * time.Hour)

	rows, err := s.pg.Query(ctx, `
		SELECT f.kind, f.category, f.severity, COUNT(*) AS n
		FROM flags f
		WHERE f.created_at >= $1 AND f.created_at < $2
		GROUP BY f.kind, f.category, f.severity
		ORDER BY f.kind, f.category, f.severity`, from, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rodom.Agg
	for rows.Next() {
		var a rodom.Agg
		if err := rows.Scan(&a.Kind, &a.Category, &a.Severity, &a.N); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// WriteRollup implements StorageRepo. The day's slice is cleared before the
// insert so re-running a day (even one that went quiet) converges
func (s *hybridStore) WriteRollup(ctx context.Context, day time.Time, detver int, aggs []rodom.Agg) (int, error) {
	day = day.UTC()

	if err := s.ch.Exec(ctx, `
		ALTER TABLE `+RollupTable+`
		DELETE WHERE day = toDate(?) AND detver = ?
		SETTINGS mutations_sync=1`,
		day, int32(detver),
	); err != nil {
		return 0, err
	}
	if len(aggs) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, []any{day, a.Kind, a.Category, a.Severity, uint64(a.N), int32(detver)})
	}
	if err := s.ch.Insert(ctx, RollupTable, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// PruneSegments implements StorageRepo. Flagged segments are spared so every
// flag keeps its evidence
func (s *hybridStore) PruneSegments(ctx context.Context, from, until time.Time) (int, int, error) {
	from, until = from.UTC(), until.UTC()

	var total int
	if err := s.pg.QueryRow(ctx, `
		SELECT COUNT(*) FROM segments t
		WHERE t.created_at >= $1 AND t.created_at < $2`, from, until,
	).Scan(&total); err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}

	tag, err := s.pg.Exec(ctx, `
		DELETE FROM segments t
		WHERE t.created_at >= $1 AND t.created_at < $2
		AND NOT EXISTS (
			SELECT 1 FROM flags f WHERE f.segment_id = t.segment_id
		)`, from, until)
	if err != nil {
		return 0, 0, err
	}

	deleted := int(tag.RowsAffected())
	return deleted, total - deleted, nil
}
