// Package service provides the transcripts service implementation
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mouthwash/internal/core/script"
	"mouthwash/internal/modkit/repokit"
	perr "mouthwash/internal/platform/errors"
	ptime "mouthwash/internal/platform/time"
	"mouthwash/internal/services/transcripts/domain"
	"mouthwash/internal/services/transcripts/repo"
)

// Config for the transcripts service
type Config struct {
	// DefaultLimit is used when a List call supplies no limit; defaults to 100
	DefaultLimit int
	// HardLimit caps any List call; defaults to 500
	HardLimit int
}

// Service implements domain.WriterPort and domain.ReaderPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config

	// now is a seam for tests
	now func() time.Time
}

// New constructs a new transcripts service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 100
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 500
	}
	return &Service{DB: db, Binder: b, Cfg: cfg, now: ptime.NowUTC}
}

// Write implements domain.WriterPort
// Rows are stamped before insert: segment ids are minted when absent,
// created_at defaults to now, and lang is filled with the dominant script
// of the text so language policy queries never see an empty tag
func (s *Service) Write(ctx context.Context, rows []domain.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stamped := make([]domain.Row, len(rows))
	now := s.now()
	for i, r := range rows {
		if r.SessionID == "" {
			return 0, perr.InvalidArgf("transcripts: row %d missing session_id", i)
		}
		if r.Text == "" {
			return 0, perr.InvalidArgf("transcripts: row %d missing text", i)
		}
		if r.SegmentID == "" {
			r.SegmentID = uuid.NewString()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.Lang == "" {
			tag, _ := script.Dominant(r.Text)
			r.Lang = string(tag)
		}
		stamped[i] = r
	}

	var wrote int
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		wrote, err = s.Binder.Bind(q).Write(ctx, stamped)
		return err
	})
	if err != nil {
		return 0, err
	}
	return wrote, nil
}

// List implements domain.ReaderPort
func (s *Service) List(ctx context.Context, in domain.ListInput) ([]domain.Row, domain.AfterKey, error) {
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

// Range implements domain.ReaderPort
func (s *Service) Range(ctx context.Context, from, until time.Time, fn func(domain.Row) error) error {
	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		return s.Binder.Bind(q).Range(ctx, from, until, fn)
	})
}
