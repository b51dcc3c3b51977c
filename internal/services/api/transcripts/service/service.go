// Package service contains transcript import and query workflows
package service

import (
	"context"
	"time"

	perr "mouthwash/internal/platform/errors"
	"mouthwash/internal/services/api/transcripts/domain"
	trdom "mouthwash/internal/services/transcripts/domain"
)

// Service defines the transcripts api service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the transcripts api service over the worker ports
type Svc struct {
	writer trdom.WriterPort
	reader trdom.ReaderPort
}

// New constructs a transcripts api service
func New(w trdom.WriterPort, rd trdom.ReaderPort) *Svc {
	if w == nil {
		panic("transcripts api service requires a non nil writer")
	}
	if rd == nil {
		panic("transcripts api service requires a non nil reader")
	}
	return &Svc{writer: w, reader: rd}
}

// Import stores a batch of segments, skipping duplicates
func (s *Svc) Import(ctx context.Context, in domain.ImportInput) (domain.ImportResponse, error) {
	rows := make([]trdom.Row, 0, len(in.Segments))
	for _, seg := range in.Segments {
		rows = append(rows, trdom.Row{
			SegmentID: seg.SegmentID,
			SessionID: seg.SessionID,
			Seq:       seg.Seq,
			Speaker:   seg.Speaker,
			Text:      seg.Text,
			StartMS:   seg.StartMS,
			EndMS:     seg.EndMS,
		})
	}
	wrote, err := s.writer.Write(ctx, rows)
	if err != nil {
		return domain.ImportResponse{}, err
	}
	return domain.ImportResponse{Wrote: wrote}, nil
}

// List returns one keyset page of stored segments
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.ListResponse, error) {
	since, until, err := parseRange(in.Range)
	if err != nil {
		return domain.ListResponse{}, err
	}

	q := trdom.ListInput{
		Since:     since,
		Until:     until,
		Limit:     in.Limit,
		SessionID: in.SessionID,
		Speaker:   in.Speaker,
		Lang:      in.Lang,
	}
	if in.After != nil {
		at, err := time.Parse(time.RFC3339, in.After.CreatedAt)
		if err != nil {
			return domain.ListResponse{}, perr.InvalidArgf("bad after.created_at: %v", err)
		}
		q.After = trdom.AfterKey{CreatedAt: at, SegmentID: in.After.SegmentID}
	}

	rows, next, err := s.reader.List(ctx, q)
	if err != nil {
		return domain.ListResponse{}, err
	}

	out := make([]domain.SegmentRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.SegmentRow{
			SegmentID: r.SegmentID,
			SessionID: r.SessionID,
			Seq:       r.Seq,
			Speaker:   r.Speaker,
			Text:      r.Text,
			StartMS:   r.StartMS,
			EndMS:     r.EndMS,
			Lang:      r.Lang,
			CreatedAt: r.CreatedAt,
		})
	}

	resp := domain.ListResponse{Rows: out}
	if next.SegmentID != "" {
		resp.Next = &domain.AfterKey{
			CreatedAt: next.CreatedAt.UTC().Format(time.RFC3339Nano),
			SegmentID: next.SegmentID,
		}
	}
	return resp, nil
}

// parseRange turns the wire range into UTC bounds and rejects empty windows
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
