package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"mouthwash/internal/core/lexicon"
	perr "mouthwash/internal/platform/errors"
	fldom "mouthwash/internal/services/flags/domain"
)

type fakeFlags struct {
	mu      sync.Mutex
	batches [][]fldom.Row
	err     error
}

func (f *fakeFlags) WriteBatch(ctx context.Context, rows []fldom.Row) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.batches = append(f.batches, rows)
	return len(rows), nil
}

func (f *fakeFlags) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func newSvc(t *testing.T, flags *fakeFlags, cfg Config) *Service {
	t.Helper()
	m := lexicon.NewMatcher(lexicon.MustLoad())
	return New(flags, m, cfg)
}

func TestIngest_PhraseAcrossChunks(t *testing.T) {
	t.Parallel()

	flags := &fakeFlags{}
	svc := newSvc(t, flags, Config{DetVer: 2})
	ctx := context.Background()

	for _, chunk := range []string{"what", "the"} {
		events, err := svc.Ingest(ctx, "sess-1", chunk)
		if err != nil {
			t.Fatalf("Ingest(%q) returned error: %v", chunk, err)
		}
		if len(events) != 0 {
			t.Fatalf("Ingest(%q) fired early: %+v", chunk, events)
		}
	}

	events, err := svc.Ingest(ctx, "sess-1", "hell")
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d want 1", len(events))
	}
	ev := events[0]
	if ev.Phrase != "what the hell" || ev.Entry != "what the hell" {
		t.Fatalf("event phrase/entry = %q/%q", ev.Phrase, ev.Entry)
	}
	if ev.Score != 1.0 || string(ev.Severity) != "high" {
		t.Fatalf("event score/severity = %v/%v", ev.Score, ev.Severity)
	}

	if flags.batchCount() != 1 {
		t.Fatalf("flag batches = %d want 1", flags.batchCount())
	}
	row := flags.batches[0][0]
	if row.Kind != fldom.KindProfanity {
		t.Fatalf("row kind = %q", row.Kind)
	}
	if row.SessionID != "sess-1" || row.Token != "what the hell" || row.Excerpt != "what the hell" {
		t.Fatalf("row session/token/excerpt = %q/%q/%q", row.SessionID, row.Token, row.Excerpt)
	}
	if row.Severity != "high" || row.Score != 1.0 || row.DetVer != 2 {
		t.Fatalf("row severity/score/detver = %q/%v/%d", row.Severity, row.Score, row.DetVer)
	}
	if _, err := uuid.Parse(row.SegmentID); err != nil {
		t.Fatalf("live rows must mint a segment id, got %q", row.SegmentID)
	}
	if row.Validated {
		t.Fatalf("live rows are never validator approved")
	}
}

func TestIngest_CleanChunkSkipsWrite(t *testing.T) {
	t.Parallel()

	flags := &fakeFlags{}
	svc := newSvc(t, flags, Config{})

	events, err := svc.Ingest(context.Background(), "sess-1", "lets review chapter two")
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if events != nil {
		t.Fatalf("clean chunk fired: %+v", events)
	}
	if flags.batchCount() != 0 {
		t.Fatalf("clean chunk must not write flags")
	}
}

func TestIngest_SessionsAreIsolated(t *testing.T) {
	t.Parallel()

	svc := newSvc(t, &fakeFlags{}, Config{})
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, "a", "what the"); err != nil {
		t.Fatalf("Ingest a: %v", err)
	}
	events, err := svc.Ingest(ctx, "b", "hell")
	if err != nil {
		t.Fatalf("Ingest b: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("session b saw session a's window: %+v", events)
	}

	events, err = svc.Ingest(ctx, "a", "hell")
	if err != nil {
		t.Fatalf("Ingest a: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("session a lost its window, events = %d", len(events))
	}
}

func TestIngest_EmptySessionID(t *testing.T) {
	t.Parallel()

	svc := newSvc(t, &fakeFlags{}, Config{})
	_, err := svc.Ingest(context.Background(), "  ", "hi")
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestIngest_WriteErrorFailsOpen(t *testing.T) {
	t.Parallel()

	flags := &fakeFlags{err: errors.New("pg down")}
	svc := newSvc(t, flags, Config{})

	events, err := svc.Ingest(context.Background(), "sess-1", "what the hell")
	if err != nil {
		t.Fatalf("a failed write must not fail the ingest, got %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d want 1", len(events))
	}
}

func TestReset_ClearsWindow(t *testing.T) {
	t.Parallel()

	svc := newSvc(t, &fakeFlags{}, Config{})
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, "a", "what the"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if err := svc.Reset(ctx, "a"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	events, err := svc.Ingest(ctx, "a", "hell")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("reset window still matched: %+v", events)
	}

	if err := svc.Reset(ctx, "never-seen"); err != nil {
		t.Fatalf("Reset of unknown session must be a no-op, got %v", err)
	}
}

func TestClose_EvictsSession(t *testing.T) {
	t.Parallel()

	svc := newSvc(t, &fakeFlags{}, Config{})
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, "a", "what the"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if err := svc.Close(ctx, "a"); err != nil {
		t.Fatalf("Close: %v", err)
	}

	svc.mu.Lock()
	n := len(svc.sessions)
	svc.mu.Unlock()
	if n != 0 {
		t.Fatalf("sessions after close = %d want 0", n)
	}

	// a new ingest under the same id starts from a fresh window
	events, err := svc.Ingest(ctx, "a", "hell")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("closed session's window leaked: %+v", events)
	}

	if err := svc.Close(ctx, "a"); err != nil {
		t.Fatalf("Close must be idempotent, got %v", err)
	}
}

func TestEvictIdle(t *testing.T) {
	t.Parallel()

	svc := newSvc(t, &fakeFlags{}, Config{IdleTTL: 30 * time.Minute})
	ctx := context.Background()

	base := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	if _, err := svc.Ingest(ctx, "stale", "hello"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	svc.now = func() time.Time { return base.Add(10 * time.Minute) }
	if _, err := svc.Ingest(ctx, "fresh", "hello"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	svc.now = func() time.Time { return base.Add(35 * time.Minute) }
	if n := svc.evictIdle(); n != 1 {
		t.Fatalf("evicted = %d want 1", n)
	}

	svc.mu.Lock()
	_, staleAlive := svc.sessions["stale"]
	_, freshAlive := svc.sessions["fresh"]
	svc.mu.Unlock()
	if staleAlive || !freshAlive {
		t.Fatalf("stale=%v fresh=%v want false/true", staleAlive, freshAlive)
	}
}
