// Package service provides the flags service implementation
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mouthwash/internal/modkit/repokit"
	perr "mouthwash/internal/platform/errors"
	ptime "mouthwash/internal/platform/time"
	"mouthwash/internal/services/flags/domain"
	"mouthwash/internal/services/flags/repo"
)

// Config for the flags service
type Config struct {
	// DefaultLimit is used when a List call supplies no limit; defaults to 100
	DefaultLimit int
	// HardLimit caps any List call; defaults to 500
	HardLimit int
	// TopLimit caps TopEntries; defaults to 50
	TopLimit int
}

// Service implements domain.WriterPort and domain.ReaderPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config

	now func() time.Time
}

// New constructs a new flags service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 100
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 500
	}
	if cfg.TopLimit <= 0 {
		cfg.TopLimit = 50
	}
	return &Service{DB: db, Binder: b, Cfg: cfg, now: ptime.NowUTC}
}

func validKind(k string) bool {
	switch k {
	case domain.KindProfanity, domain.KindLanguagePolicy, domain.KindOffTopic:
		return true
	}
	return false
}

// WriteBatch implements domain.WriterPort
func (s *Service) WriteBatch(ctx context.Context, rows []domain.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stamped := make([]domain.Row, len(rows))
	now := s.now()
	for i, r := range rows {
		if r.SegmentID == "" {
			return 0, perr.InvalidArgf("flags: row %d missing segment_id", i)
		}
		if !validKind(r.Kind) {
			return 0, perr.InvalidArgf("flags: row %d bad kind %q", i, r.Kind)
		}
		if r.FlagID == "" {
			r.FlagID = uuid.NewString()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		stamped[i] = r
	}

	var wrote int
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		wrote, err = s.Binder.Bind(q).WriteBatch(ctx, stamped)
		return err
	})
	if err != nil {
		return 0, err
	}
	return wrote, nil
}

// List implements domain.ReaderPort
func (s *Service) List(ctx context.Context, in domain.ListInput) ([]domain.Row, domain.AfterKey, error) {
	if in.Kind != "" && !validKind(in.Kind) {
		return nil, domain.AfterKey{}, perr.InvalidArgf("flags: bad kind filter %q", in.Kind)
	}

	limit := in.Limit
	switch {
	case limit <= 0:
		limit = s.Cfg.DefaultLimit
	case limit > s.Cfg.HardLimit:
		limit = s.Cfg.HardLimit
	}

	var rows []domain.Row
	var next domain.AfterKey
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rows, next, err = s.Binder.Bind(q).List(ctx, in, limit)
		return err
	})
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	return rows, next, nil
}

// AggByKind implements domain.ReaderPort
func (s *Service) AggByKind(ctx context.Context, since, until time.Time) (map[string]int64, error) {
	var agg map[string]int64
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		agg, err = s.Binder.Bind(q).AggByKind(ctx, since, until)
		return err
	})
	return agg, err
}

// TopEntries implements domain.ReaderPort
func (s *Service) TopEntries(ctx context.Context, since, until time.Time, limit int) ([]domain.EntryCount, error) {
	if limit <= 0 || limit > s.Cfg.TopLimit {
		limit = s.Cfg.TopLimit
	}

	var out []domain.EntryCount
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).TopEntries(ctx, since, until, limit)
		return err
	})
	return out, err
}
