// Package service adapts the live worker onto the http contract
package service

import (
	"context"

	"github.com/gorilla/websocket"

	livedom "mouthwash/internal/services/live/domain"

	"mouthwash/internal/services/api/live/domain"
)

// Service defines the live api service contract
type Service interface {
	domain.ServicePort
}

// Svc forwards to the live worker and shapes its replies for the wire
type Svc struct {
	live livedom.ServicePort
}

// New constructs a live api service
func New(live livedom.ServicePort) *Svc {
	if live == nil {
		panic("live api service requires a non nil live port")
	}
	return &Svc{live: live}
}

// Ingest appends a chunk to the session window and returns raised events
func (s *Svc) Ingest(ctx context.Context, sessionID string, in domain.IngestInput) (domain.IngestResponse, error) {
	events, err := s.live.Ingest(ctx, sessionID, in.Chunk)
	if err != nil {
		return domain.IngestResponse{}, err
	}
	if events == nil {
		events = []livedom.Event{}
	}
	return domain.IngestResponse{Events: events}, nil
}

// Subscribe attaches an upgraded websocket to the session event feed
func (s *Svc) Subscribe(ctx context.Context, sessionID string, conn *websocket.Conn) error {
	return s.live.Subscribe(ctx, sessionID, conn)
}

// Reset clears the session window without dropping subscribers
func (s *Svc) Reset(ctx context.Context, sessionID string) (domain.SessionAck, error) {
	if err := s.live.Reset(ctx, sessionID); err != nil {
		return domain.SessionAck{}, err
	}
	return domain.SessionAck{SessionID: sessionID, OK: true}, nil
}

// Close evicts the session and disconnects its subscribers
func (s *Svc) Close(ctx context.Context, sessionID string) (domain.SessionAck, error) {
	if err := s.live.Close(ctx, sessionID); err != nil {
		return domain.SessionAck{}, err
	}
	return domain.SessionAck{SessionID: sessionID, OK: true}, nil
}
