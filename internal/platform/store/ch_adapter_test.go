package store

import (
	"context"
	"errors"
	"testing"

	"mouthwash/internal/platform/store/ch"
)

type fakeCHRows struct {
	cols   []string
	closed bool
	err    error
}

func (f *fakeCHRows) Next() bool             { return false }
func (f *fakeCHRows) Scan(dest ...any) error { return nil }
func (f *fakeCHRows) Err() error             { return f.err }
func (f *fakeCHRows) Close() error           { f.closed = true; return nil }
func (f *fakeCHRows) Columns() []string      { return f.cols }

type fakeCHClient struct {
	insertTable string
	insertRows  [][]any
	execSQL     string
	execArgs    []any
	rows        *fakeCHRows
	queryErr    error
	pingErr     error
	closed      bool
}

func (f *fakeCHClient) Insert(_ context.Context, table string, rows [][]any) error {
	f.insertTable, f.insertRows = table, rows
	return nil
}

func (f *fakeCHClient) Exec(_ context.Context, sql string, args ...any) error {
	f.execSQL, f.execArgs = sql, args
	return nil
}

func (f *fakeCHClient) Query(_ context.Context, _ string, _ ...any) (ch.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeCHClient) Ping(_ context.Context) error { return f.pingErr }
func (f *fakeCHClient) Close() error                 { f.closed = true; return nil }

// Insert must unwrap the [][]any shape and reject anything else
func TestCHAdapter_InsertShape(t *testing.T) {
	t.Parallel()

	f := &fakeCHClient{}
	a := newCHAdapter(f)

	rows := [][]any{{"a", 1}, {"b", 2}}
	if err := a.Insert(context.Background(), "flag_rollup_daily", rows); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if f.insertTable != "flag_rollup_daily" || len(f.insertRows) != 2 {
		t.Fatalf("delegated insert = table %q rows %v", f.insertTable, f.insertRows)
	}

	if err := a.Insert(context.Background(), "t", struct{}{}); err == nil {
		t.Fatalf("Insert expected shape error for non [][]any data")
	}
}

func TestCHAdapter_ExecDelegates(t *testing.T) {
	t.Parallel()

	f := &fakeCHClient{}
	a := newCHAdapter(f)

	if err := a.Exec(context.Background(), "ALTER TABLE t DELETE WHERE day = ?", "2025-03-09"); err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if f.execSQL == "" || len(f.execArgs) != 1 {
		t.Fatalf("delegated exec = %q args %v", f.execSQL, f.execArgs)
	}
}

func TestCHAdapter_QueryWrapsRows(t *testing.T) {
	t.Parallel()

	inner := &fakeCHRows{cols: []string{"alpha", "beta"}}
	a := newCHAdapter(&fakeCHClient{rows: inner})

	rows, err := a.Query(context.Background(), "SELECT 1")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if rows.Next() {
		t.Fatalf("Next returned true on empty rows")
	}
	if cols := rows.Columns(); len(cols) != 2 || cols[0] != "alpha" {
		t.Fatalf("Columns = %v", cols)
	}
	rows.Close()
	if !inner.closed {
		t.Fatalf("Close did not delegate to underlying rows")
	}
}

func TestCHAdapter_QueryPropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	a := newCHAdapter(&fakeCHClient{queryErr: boom})

	rows, err := a.Query(context.Background(), "SELECT 1")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if rows != nil {
		t.Fatalf("rows = %#v, want nil on error", rows)
	}
}

func TestCHAdapter_PingDelegates(t *testing.T) {
	t.Parallel()

	boom := errors.New("refused")
	a := newCHAdapter(&fakeCHClient{pingErr: boom})

	p, ok := a.(Pinger)
	if !ok {
		t.Fatalf("adapter does not expose Ping")
	}
	if err := p.Ping(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Ping = %v, want refused", err)
	}
}

func TestCHAdapter_CloseDelegates(t *testing.T) {
	t.Parallel()

	f := &fakeCHClient{}
	a := newCHAdapter(f)
	if err := a.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if !f.closed {
		t.Fatalf("Close did not delegate")
	}
}
