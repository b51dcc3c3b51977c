// Package service contains flags query workflows
package service

import (
	"context"
	"time"

	perr "mouthwash/internal/platform/errors"
	"mouthwash/internal/services/api/flags/domain"
	fldom "mouthwash/internal/services/flags/domain"
)

// defaultTopN is used when a summary call supplies no top_n
const defaultTopN = 10

// Service defines the flags api service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the flags api service over the flags reader port
type Svc struct {
	flags fldom.ReaderPort
}

// New constructs a flags api service
func New(flags fldom.ReaderPort) *Svc {
	if flags == nil {
		panic("flags api service requires a non nil flags reader")
	}
	return &Svc{flags: flags}
}

// List returns one keyset page of stored flags
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.ListResponse, error) {
	since, until, err := parseRange(in.Range)
	if err != nil {
		return domain.ListResponse{}, err
	}

	q := fldom.ListInput{
		Since:     since,
		Until:     until,
		Limit:     in.Limit,
		Kind:      in.Kind,
		SessionID: in.SessionID,
		Severity:  in.Severity,
	}
	if in.After != nil {
		at, err := time.Parse(time.RFC3339, in.After.CreatedAt)
		if err != nil {
			return domain.ListResponse{}, perr.InvalidArgf("bad after.created_at: %v", err)
		}
		q.After = fldom.AfterKey{CreatedAt: at, FlagID: in.After.FlagID}
	}

	rows, next, err := s.flags.List(ctx, q)
	if err != nil {
		return domain.ListResponse{}, err
	}

	out := make([]domain.FlagRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.FlagRow{
			FlagID:    r.FlagID,
			SegmentID: r.SegmentID,
			SessionID: r.SessionID,
			Kind:      r.Kind,
			Entry:     r.Entry,
			Token:     r.Token,
			Category:  r.Category,
			Severity:  r.Severity,
			Score:     r.Score,
			StartOff:  r.StartOff,
			EndOff:    r.EndOff,
			Excerpt:   r.Excerpt,
			Validated: r.Validated,
			DetVer:    r.DetVer,
			CreatedAt: r.CreatedAt,
		})
	}

	resp := domain.ListResponse{Rows: out}
	if next.FlagID != "" {
		resp.Next = &domain.AfterKey{
			CreatedAt: next.CreatedAt.UTC().Format(time.RFC3339Nano),
			FlagID:    next.FlagID,
		}
	}
	return resp, nil
}

// Summary aggregates counts by kind and the top entries in the window
func (s *Svc) Summary(ctx context.Context, in domain.SummaryInput) (domain.SummaryResponse, error) {
	since, until, err := parseRange(in.Range)
	if err != nil {
		return domain.SummaryResponse{}, err
	}

	topN := in.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	byKind, err := s.flags.AggByKind(ctx, since, until)
	if err != nil {
		return domain.SummaryResponse{}, err
	}
	entries, err := s.flags.TopEntries(ctx, since, until, topN)
	if err != nil {
		return domain.SummaryResponse{}, err
	}

	top := make([]domain.EntryCount, 0, len(entries))
	for _, e := range entries {
		top = append(top, domain.EntryCount{Kind: e.Kind, Entry: e.Entry, N: e.N})
	}
	return domain.SummaryResponse{ByKind: byKind, Top: top}, nil
}

// parseRange turns the wire range into UTC bounds and rejects empty windows.
// The datetime validator upstream guarantees both strings parse
func parseRange(r domain.TimeRange) (time.Time, time.Time, error) {
	since, err := time.Parse(time.RFC3339, r.Since)
	if err != nil {
		return time.Time{}, time.Time{}, perr.InvalidArgf("bad range.since: %v", err)
	}
	until, err := time.Parse(time.RFC3339, r.Until)
	if err != nil {
		return time.Time{}, time.Time{}, perr.InvalidArgf("bad range.until: %v", err)
	}
	if !until.After(since) {
		return time.Time{}, time.Time{}, perr.InvalidArgf("range.until must be after range.since")
	}
	return since.UTC(), until.UTC(), nil
}
