// Package repo provides the flags repository implementation
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mouthwash/internal/modkit/repokit"
	"mouthwash/internal/services/flags/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the flags repository
type Storage interface {
	WriteBatch(ctx context.Context, rows []domain.Row) (int, error)
	List(ctx context.Context, in domain.ListInput, hardLimit int) ([]domain.Row, domain.AfterKey, error)
	AggByKind(ctx context.Context, since, until time.Time) (map[string]int64, error)
	TopEntries(ctx context.Context, since, until time.Time, limit int) ([]domain.EntryCount, error)
}

// WriteBatch implements Storage
func (s *pg) WriteBatch(ctx context.Context, rows []domain.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO flags
		(flag_id, segment_id, session_id, kind, entry, token, category, severity,
		score, start_off, end_off, excerpt, validated, detver, created_at) VALUES `)

	args := make([]any, 0, len(rows)*15)
	for i, r := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*15 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6, base+7,
			base+8, base+9, base+10, base+11, base+12, base+13, base+14)

		args = append(args,
			r.FlagID, r.SegmentID, r.SessionID, r.Kind, r.Entry, r.Token,
			r.Category, r.Severity, r.Score, r.StartOff, r.EndOff,
			r.Excerpt, r.Validated, r.DetVer, r.CreatedAt,
		)
	}
	// Re-moderating a segment never duplicates a flag
	sb.WriteString(` ON CONFLICT (segment_id, kind, entry, start_off) DO NOTHING`)

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// List implements Storage
func (s *pg) List(ctx context.Context, in domain.ListInput, hardLimit int) ([]domain.Row, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT
			f.flag_id::text,
			f.segment_id::text,
			f.session_id,
			f.kind,
			f.entry,
			f.token,
			f.category,
			f.severity,
			f.score,
			f.start_off,
			f.end_off,
			f.excerpt,
			f.validated,
			f.detver,
			f.created_at
		FROM flags f
		WHERE f.created_at >= ` + arg(in.Since) + ` AND f.created_at < ` + arg(in.Until) + `
	`)

	// Keyset only when AfterKey is set (avoid ""::uuid on first page)
	if in.After.FlagID != "" {
		sb.WriteString("  AND (f.created_at, f.flag_id) > (" + arg(in.After.CreatedAt) + ", " + arg(in.After.FlagID) + "::uuid)\n")
	}

	if in.Kind != "" {
		sb.WriteString("  AND f.kind = " + arg(in.Kind) + "\n")
	}
	if in.SessionID != "" {
		sb.WriteString("  AND f.session_id = " + arg(in.SessionID) + "\n")
	}
	if in.Severity != "" {
		sb.WriteString("  AND f.severity = " + arg(in.Severity) + "\n")
	}

	sb.WriteString("ORDER BY f.created_at, f.flag_id\nLIMIT " + arg(hardLimit))

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
			&r.FlagID, &r.SegmentID, &r.SessionID, &r.Kind, &r.Entry, &r.Token,
			&r.Category, &r.Severity, &r.Score, &r.StartOff, &r.EndOff,
			&r.Excerpt, &r.Validated, &r.DetVer, &r.CreatedAt,
		); err != nil {
			return nil, domain.AfterKey{}, err
		}
		out = append(out, r)
		last = domain.AfterKey{CreatedAt: r.CreatedAt, FlagID: r.FlagID}
	}
	return out, last, rows.Err()
}

// AggByKind implements Storage
func (s *pg) AggByKind(ctx context.Context, since, until time.Time) (map[string]int64, error) {
	rows, err := s.q.Query(ctx, `
		SELECT f.kind, COUNT(*) AS n
		FROM flags f
		WHERE f.created_at >= $1 AND f.created_at < $2
		GROUP BY f.kind`, since, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, rows.Err()
}

// TopEntries implements Storage
func (s *pg) TopEntries(ctx context.Context, since, until time.Time, limit int) ([]domain.EntryCount, error) {
	rows, err := s.q.Query(ctx, `
		SELECT f.kind, f.entry, COUNT(*) AS n
		FROM flags f
		WHERE f.created_at >= $1 AND f.created_at < $2
		GROUP BY f.kind, f.entry
		ORDER BY n DESC, f.kind, f.entry
		LIMIT $3`, since, until, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EntryCount
	for rows.Next() {
		var r domain.EntryCount
		if err := rows.Scan(&r.Kind, &r.Entry, &r.N); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
