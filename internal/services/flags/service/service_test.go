package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"mouthwash/internal/platform/store"
	"mouthwash/internal/services/flags/domain"
	"mouthwash/internal/services/flags/repo"
)

type fakeTag struct{ n int64 }

func (f fakeTag) String() string      { return "INSERT" }
func (f fakeTag) RowsAffected() int64 { return f.n }

type fakeRows struct {
	data [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	if len(row) != len(dest) {
		return errors.New("dest len mismatch")
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int:
			*d = v.(int)
		case *int64:
			*d = v.(int64)
		case *float64:
			*d = v.(float64)
		case *bool:
			*d = v.(bool)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return errors.New("unsupported dest type")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

type fakeDB struct {
	execSQL   []string
	execArgs  [][]any
	affected  int64
	querySQL  []string
	queryArgs [][]any
	rows      *fakeRows
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return fakeTag{n: f.affected}, nil
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.querySQL = append(f.querySQL, sql)
	f.queryArgs = append(f.queryArgs, args)
	if f.rows == nil {
		return &fakeRows{}, nil
	}
	return f.rows, nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, _ ...any) store.Row { return nil }

func (f *fakeDB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(f) }

func newSvc(db *fakeDB) *Service {
	s := New(db, repo.NewPG(), Config{})
	s.now = func() time.Time { return time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestWriteBatch_StampsAndConflictClause(t *testing.T) {
	db := &fakeDB{affected: 1}
	s := newSvc(db)

	n, err := s.WriteBatch(context.Background(), []domain.Row{{
		SegmentID: "33333333-3333-4333-8333-333333333333",
		SessionID: "sess-1",
		Kind:      domain.KindProfanity,
		Entry:     "ass",
		Token:     "a$$",
		Category:  "slur",
		Severity:  "high",
		Score:     0.98,
		StartOff:  11,
		EndOff:    14,
	}})
	if err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if n != 1 {
		t.Fatalf("wrote = %d, want 1", n)
	}

	sql := db.execSQL[0]
	if !strings.Contains(sql, "INSERT INTO flags") {
		t.Fatalf("unexpected SQL: %s", sql)
	}
	if !strings.Contains(sql, "ON CONFLICT (segment_id, kind, entry, start_off) DO NOTHING") {
		t.Fatalf("missing conflict clause: %s", sql)
	}

	args := db.execArgs[0]
	if len(args) != 15 {
		t.Fatalf("expected 15 args, got %d", len(args))
	}
	if _, err := uuid.Parse(args[0].(string)); err != nil {
		t.Fatalf("flag id not minted: %v", err)
	}
	if got := args[14].(time.Time); !got.Equal(time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("created_at = %v", got)
	}
}

func TestWriteBatch_RejectsBadRows(t *testing.T) {
	s := newSvc(&fakeDB{})

	if _, err := s.WriteBatch(context.Background(), []domain.Row{{Kind: domain.KindProfanity}}); err == nil {
		t.Fatal("expected error for missing segment_id")
	}
	if _, err := s.WriteBatch(context.Background(), []domain.Row{{
		SegmentID: "x", Kind: "swearing",
	}}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if n, err := s.WriteBatch(context.Background(), nil); err != nil || n != 0 {
		t.Fatalf("empty write: n=%d err=%v", n, err)
	}
}

func TestList_FilterValidationAndSQL(t *testing.T) {
	db := &fakeDB{}
	s := newSvc(db)

	if _, _, err := s.List(context.Background(), domain.ListInput{Kind: "nope"}); err == nil {
		t.Fatal("expected error for bad kind filter")
	}

	_, _, err := s.List(context.Background(), domain.ListInput{
		Since:     time.Unix(0, 0),
		Until:     time.Unix(10, 0),
		Kind:      domain.KindOffTopic,
		SessionID: "sess-2",
		Severity:  "medium",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	sql := db.querySQL[0]
	for _, frag := range []string{"f.kind =", "f.session_id =", "f.severity =", "ORDER BY f.created_at, f.flag_id"} {
		if !strings.Contains(sql, frag) {
			t.Fatalf("SQL missing %q:\n%s", frag, sql)
		}
	}
}

func TestAggByKind_MapsRows(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{data: [][]any{
		{"profanity", int64(41)},
		{"off_topic", int64(3)},
	}}}
	s := newSvc(db)

	agg, err := s.AggByKind(context.Background(), time.Unix(0, 0), time.Unix(10, 0))
	if err != nil {
		t.Fatalf("AggByKind: %v", err)
	}
	if agg["profanity"] != 41 || agg["off_topic"] != 3 {
		t.Fatalf("agg = %v", agg)
	}
}

func TestTopEntries_ClampsLimit(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{data: [][]any{
		{"profanity", "ass", int64(7)},
	}}}
	s := newSvc(db)

	out, err := s.TopEntries(context.Background(), time.Unix(0, 0), time.Unix(10, 0), 10000)
	if err != nil {
		t.Fatalf("TopEntries: %v", err)
	}
	if len(out) != 1 || out[0].Entry != "ass" || out[0].N != 7 {
		t.Fatalf("out = %+v", out)
	}

	args := db.queryArgs[0]
	if got := args[len(args)-1].(int); got != 50 {
		t.Fatalf("limit = %d, want clamp 50", got)
	}
}
