package domain

import (
	"context"

	"github.com/gorilla/websocket"
)

// ServicePort is the live session surface exposed over http
type ServicePort interface {
	// Ingest appends a chunk to the session window and returns raised events
	Ingest(ctx context.Context, sessionID string, in IngestInput) (IngestResponse, error)

	// Subscribe attaches an upgraded websocket to the session event feed
	Subscribe(ctx context.Context, sessionID string, conn *websocket.Conn) error

	// Reset clears the session window without dropping subscribers
	Reset(ctx context.Context, sessionID string) (SessionAck, error)

	// Close evicts the session and disconnects its subscribers
	Close(ctx context.Context, sessionID string) (SessionAck, error)
}
