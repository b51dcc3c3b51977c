package module

import (
	"context"

	"github.com/gorilla/websocket"

	"mouthwash/internal/services/api/live/domain"
	livesvc "mouthwash/internal/services/api/live/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptLivePort struct{ svc livesvc.Service }

var _ domain.ServicePort = adaptLivePort{}

// Ingest appends a chunk to the session window and returns raised events
func (a adaptLivePort) Ingest(ctx context.Context, sessionID string, in domain.IngestInput) (domain.IngestResponse, error) {
	return a.svc.Ingest(ctx, sessionID, in)
}

// Subscribe attaches an upgraded websocket to the session event feed
func (a adaptLivePort) Subscribe(ctx context.Context, sessionID string, conn *websocket.Conn) error {
	return a.svc.Subscribe(ctx, sessionID, conn)
}

// Reset clears the session window without dropping subscribers
func (a adaptLivePort) Reset(ctx context.Context, sessionID string) (domain.SessionAck, error) {
	return a.svc.Reset(ctx, sessionID)
}

// Close evicts the session and disconnects its subscribers
func (a adaptLivePort) Close(ctx context.Context, sessionID string) (domain.SessionAck, error) {
	return a.svc.Close(ctx, sessionID)
}
