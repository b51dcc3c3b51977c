// Package service provides the live implementation
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mouthwash/internal/core/lexicon"
	"mouthwash/internal/core/window"
	perr "mouthwash/internal/platform/errors"
	"mouthwash/internal/platform/logger"
	ptime "mouthwash/internal/platform/time"
	fldom "mouthwash/internal/services/flags/domain"
	"mouthwash/internal/services/live/domain"
)

// Config controls window sizing, eviction, and flag stamping
type Config struct {
	// WindowSize is the per-session token capacity; 0 selects the default
	WindowSize int

	// IdleTTL evicts sessions with no ingest or subscribe for this long
	IdleTTL time.Duration

	// SweepEvery is the janitor period
	SweepEvery time.Duration

	// DetVer is stamped on persisted flags
	DetVer int
}

// session is one live stream's state; mu serializes detector access
type session struct {
	mu   sync.Mutex
	det  *window.Detector
	last time.Time
}

// Service implements domain.ServicePort
type Service struct {
	flags fldom.WriterPort
	m     *lexicon.Matcher
	hub   *Hub
	cfg   Config

	mu       sync.Mutex
	sessions map[string]*session

	now func() time.Time
}

// New constructs the live service around a shared matcher
func New(flags fldom.WriterPort, m *lexicon.Matcher, cfg Config) *Service {
	if flags == nil {
		panic("live.Service requires a flags writer")
	}
	if m == nil {
		panic("live.Service requires a non nil matcher")
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = time.Minute
	}
	if cfg.DetVer <= 0 {
		cfg.DetVer = 1
	}
	return &Service{
		flags:    flags,
		m:        m,
		hub:      NewHub(),
		cfg:      cfg,
		sessions: make(map[string]*session),
		now:      ptime.NowUTC,
	}
}

// Run drives the hub and the idle janitor until ctx ends
func (s *Service) Run(ctx context.Context) error {
	go func() { _ = s.hub.Run(ctx) }()

	log := logger.Named("live-janitor")
	ticker := time.NewTicker(s.cfg.SweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.evictIdle(); n > 0 {
				log.Debug().Int("evicted", n).Msg("live: idle sessions evicted")
			}
		}
	}
}

// Ingest feeds one chunk into the session's window detector.
// A failed flag write is logged, not returned: erroring would make the
// transcriber retry the chunk and double-feed the window
func (s *Service) Ingest(ctx context.Context, sessionID, chunk string) ([]domain.Event, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, perr.InvalidArgf("session id required")
	}
	ctx = logger.WithRequest(ctx, "", sessionID)

	sess := s.session(sessionID)
	sess.mu.Lock()
	events := sess.det.Ingest(chunk)
	sess.last = s.now()
	sess.mu.Unlock()

	if len(events) == 0 {
		return nil, nil
	}

	if _, err := s.flags.WriteBatch(ctx, s.flagRows(sessionID, events)); err != nil {
		logger.C(ctx).Error().Err(err).Msg("live: flag write failed")
	}
	for i := range events {
		s.hub.Broadcast(sessionID, events[i])
	}
	return events, nil
}

// Subscribe attaches a websocket connection to the session's event feed
func (s *Service) Subscribe(ctx context.Context, sessionID string, conn *websocket.Conn) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return perr.InvalidArgf("session id required")
	}
	if conn == nil {
		return perr.InvalidArgf("nil websocket connection")
	}
	ctx = logger.WithRequest(ctx, "", sessionID)

	sess := s.session(sessionID)
	sess.mu.Lock()
	sess.last = s.now()
	sess.mu.Unlock()

	NewClient(s.hub, conn, sessionID).Start()
	logger.C(ctx).Debug().Msg("live: subscriber attached")
	return nil
}

// Reset clears the session's window; unknown sessions are a no-op
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return perr.InvalidArgf("session id required")
	}

	s.mu.Lock()
	sess := s.sessions[sessionID]
	s.mu.Unlock()
	if sess == nil {
		return nil
	}

	sess.mu.Lock()
	sess.det.Reset()
	sess.last = s.now()
	sess.mu.Unlock()
	return nil
}

// Close evicts the session and disconnects its subscribers; idempotent
func (s *Service) Close(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return perr.InvalidArgf("session id required")
	}
	ctx = logger.WithRequest(ctx, "", sessionID)

	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if ok {
		s.hub.CloseSession(sessionID)
		logger.C(ctx).Debug().Msg("live: session closed")
	}
	return nil
}

// session returns the session, creating it on first touch
func (s *Service) session(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := &session{
		det:  window.New(s.m, s.cfg.WindowSize),
		last: s.now(),
	}
	s.sessions[id] = sess
	return sess
}

// evictIdle drops sessions idle past the TTL and returns the count
func (s *Service) evictIdle() int {
	cutoff := s.now().Add(-s.cfg.IdleTTL)

	s.mu.Lock()
	var stale []string
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.last.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, id := range stale {
		s.hub.CloseSession(id)
	}
	return len(stale)
}

// flagRows maps live events onto flag rows. Live hits have no segment
// offsets; the phrase doubles as token and excerpt
func (s *Service) flagRows(sessionID string, events []domain.Event) []fldom.Row {
	rows := make([]fldom.Row, 0, len(events))
	for _, ev := range events {
		rows = append(rows, fldom.Row{
			SegmentID: uuid.NewString(),
			SessionID: sessionID,
			Kind:      fldom.KindProfanity,
			Entry:     ev.Entry,
			Token:     ev.Phrase,
			Category:  ev.Category,
			Severity:  string(ev.Severity),
			Score:     ev.Score,
			Excerpt:   ev.Phrase,
			Validated: false,
			DetVer:    s.cfg.DetVer,
		})
	}
	return rows
}
