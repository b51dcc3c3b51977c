// Package service provides the rollup implementation
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"mouthwash/internal/modkit/repokit"
	"mouthwash/internal/platform/logger"
	"mouthwash/internal/platform/store"
	ptime "mouthwash/internal/platform/time"
	rodom "mouthwash/internal/services/rollup/domain"
)

// Config controls versioning, retention, and concurrency
type Config struct {
	// DetVer is stamped on rollup slices for this run
	DetVer int

	// Retention is "full" (keep everything) or "timebox:<Nd>" (prune
	// unflagged segments once their day falls out of the window)
	Retention string

	Workers int

	// UseLease takes a per-day advisory lock so overlapping sweepers
	// skip days cleanly instead of racing
	UseLease bool
}

// Service wires TxRunner + Binder into the domain operations
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[rodom.StorageRepo]
	Cfg    Config

	now func() time.Time
}

// New constructs the rollup service
func New(db repokit.TxRunner, binder repokit.Binder[rodom.StorageRepo], cfg Config) *Service {
	if db == nil {
		panic("rollup.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("rollup.Service requires a non nil Repo binder")
	}
	if cfg.DetVer <= 0 {
		cfg.DetVer = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Service{DB: db, Binder: binder, Cfg: cfg, now: ptime.NowUTC}
}

// ApplyDay rolls up exactly one UTC day (idempotent)
func (s *Service) ApplyDay(ctx context.Context, day time.Time) error {
	day = ptime.FloorDay(day)
	l := logger.C(ctx).With().Str("mod", "rollup").Time("day", day).Logger()

	run := func(ctx context.Context, q store.RowQuerier) error {
		repo := s.Binder.Bind(q)

		t0 := time.Now()
		aggs, err := repo.AggDay(ctx, day)
		if err != nil {
			return err
		}
		wrote, err := repo.WriteRollup(ctx, day, s.Cfg.DetVer, aggs)
		if err != nil {
			return err
		}
		rollupMS := time.Since(t0).Milliseconds()

		var deleted, spared int
		var pruneMS int64
		if cut, ok := retentionCutoff(s.Cfg.Retention, s.now()); ok && day.Add(24*time.Hour).Before(cut) {
			t1 := time.Now()
			deleted, spared, err = repo.PruneSegments(ctx, day, day.Add(24*time.Hour))
			if err != nil {
				return err
			}
			pruneMS = time.Since(t1).Milliseconds()
		}

		l.Info().
			Int("rows", wrote).
			Int("deleted", deleted).
			Int("spared", spared).
			Int64("rollup_ms", rollupMS).
			Int64("prune_ms", pruneMS).
			Msg("rollup: day applied")
		return nil
	}

	if s.Cfg.UseLease {
		key := store.LockKey("rollup:" + day.Format("2006-01-02"))
		err := store.RunExclusive(ctx, s.DB, key, run)
		if errors.Is(err, store.ErrLockHeld) {
			l.Debug().Msg("rollup: day leased by another worker; clean skip")
			return nil
		}
		return err
	}
	return s.DB.Tx(ctx, func(q store.RowQuerier) error { return run(ctx, q) })
}

// RunRange applies [from, until] inclusive with a bounded worker pool.
// Failed days are logged and skipped so one bad day cannot stall a sweep
func (s *Service) RunRange(ctx context.Context, from, until time.Time) error {
	from = ptime.FloorDay(from)
	until = ptime.FloorDay(until)
	if until.Before(from) {
		return errors.New("until before from")
	}

	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}

	for day := from; !day.After(until); day = day.AddDate(0, 0, 1) {
		wg.Add(1)
		sem <- struct{}{}
		go func(day time.Time) {
			defer func() { <-sem; wg.Done() }()
			if err := s.ApplyDay(ctx, day); err != nil {
				logger.C(ctx).Error().Time("day", day).Err(err).Msg("rollup: ApplyDay failed")
			}
		}(day)
	}
	wg.Wait()
	return nil
}

// retentionCutoff parses the retention mode into a delete-before cutoff.
// "" and "full" keep everything; malformed timeboxes fail safe to keeping
func retentionCutoff(mode string, now time.Time) (time.Time, bool) {
	mode = strings.TrimSpace(strings.ToLower(mode))
	if mode == "" || mode == "full" {
		return time.Time{}, false
	}
	if !strings.HasPrefix(mode, "timebox:") {
		return time.Time{}, false
	}
	days, err := parseTimeboxDays(mode)
	if err != nil || days <= 0 {
		return time.Time{}, false
	}
	return now.UTC().Add(-time.Duration(days) * 24 * time.Hour), true
}

// parseTimeboxDays extracts the integer day window from "timebox:Nd"
func parseTimeboxDays(mode string) (int, error) {
	v := strings.TrimPrefix(mode, "timebox:")
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "d")
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("empty timebox days")
	}
	return strconv.Atoi(v)
}
