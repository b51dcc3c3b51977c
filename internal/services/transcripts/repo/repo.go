// Package repo provides repository implementations for transcripts
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mouthwash/internal/modkit/repokit"
	"mouthwash/internal/services/transcripts/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the transcripts repository
type Storage interface {
	Write(ctx context.Context, rows []domain.Row) (int, error)
	List(ctx context.Context, in domain.ListInput, hardLimit int) ([]domain.Row, domain.AfterKey, error)
	Range(ctx context.Context, from, until time.Time, fn func(domain.Row) error) error
}

// Write implements Storage
func (s *pg) Write(ctx context.Context, rows []domain.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO segments
		(segment_id, session_id, seq, speaker, text, start_ms, end_ms, lang, created_at) VALUES `)

	args := make([]any, 0, len(rows)*9)
	for i, r := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*9 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)

		args = append(args,
			r.SegmentID, r.SessionID, r.Seq, r.Speaker, r.Text,
			r.StartMS, r.EndMS, r.Lang, r.CreatedAt,
		)
	}
	// Idempotent re-import: the same (session_id, seq) never lands twice
	sb.WriteString(` ON CONFLICT (session_id, seq) DO NOTHING`)

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// List implements Storage
func (s *pg) List(ctx context.Context, in domain.ListInput, hardLimit int) ([]domain.Row, domain.AfterKey, error) {
	// Dynamic WHERE with numbered args
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT
			t.segment_id::text,
			t.session_id,
			t.seq,
			t.speaker,
			t.text,
			t.start_ms,
			t.end_ms,
			t.lang,
			t.created_at
		FROM segments t
		WHERE t.created_at >= ` + arg(in.Since) + ` AND t.created_at < ` + arg(in.Until) + `
	`)

	// Keyset only when AfterKey is set (avoid ""::uuid on first page)
	if in.After.SegmentID != "" {
		sb.WriteString("  AND (t.created_at, t.segment_id) > (" + arg(in.After.CreatedAt) + ", " + arg(in.After.SegmentID) + "::uuid)\n")
	}

	if in.SessionID != "" {
		sb.WriteString("  AND t.session_id = " + arg(in.SessionID) + "\n")
	}
	if in.Speaker != "" {
		sb.WriteString("  AND t.speaker = " + arg(in.Speaker) + "\n")
	}
	if in.Lang != "" {
		sb.WriteString("  AND t.lang = " + arg(in.Lang) + "\n")
	}

	sb.WriteString("ORDER BY t.created_at, t.segment_id\nLIMIT " + arg(hardLimit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	defer rows.Close()

	out := make([]domain.Row, 0, hardLimit)
	var last domain.AfterKey
	for rows.Next() {
		var r domain.Row
		if err := rows.Scan(
			&r.SegmentID, &r.SessionID, &r.Seq, &r.Speaker, &r.Text,
			&r.StartMS, &r.EndMS, &r.Lang, &r.CreatedAt,
		); err != nil {
			return nil, domain.AfterKey{}, err
		}
		out = append(out, r)
		last = domain.AfterKey{CreatedAt: r.CreatedAt, SegmentID: r.SegmentID}
	}
	return out, last, rows.Err()
}

// Range implements Storage
func (s *pg) Range(ctx context.Context, from, until time.Time, fn func(domain.Row) error) error {
	rows, err := s.q.Query(ctx, `
		SELECT
			t.segment_id::text,
			t.session_id,
			t.seq,
			t.speaker,
			t.text,
			t.start_ms,
			t.end_ms,
			t.lang,
			t.created_at
		FROM segments t
		WHERE t.created_at >= $1 AND t.created_at < $2
		ORDER BY t.created_at, t.segment_id`, from, until)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.Row
		if err := rows.Scan(
			&r.SegmentID, &r.SessionID, &r.Seq, &r.Speaker, &r.Text,
			&r.StartMS, &r.EndMS, &r.Lang, &r.CreatedAt,
		); err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return rows.Err()
}
