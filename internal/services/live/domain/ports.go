package domain

import (
	"context"

	"github.com/gorilla/websocket"

	fldom "mouthwash/internal/services/flags/domain"
)

// ServicePort is the live session surface mounted by the API
type ServicePort interface {
	// Ingest feeds one chunk into the session's window detector, creating
	// the session if needed. Events are persisted and fanned out before
	// returning
	Ingest(ctx context.Context, sessionID, chunk string) ([]Event, error)

	// Subscribe attaches an upgraded websocket connection to the session's
	// event feed and starts its pumps
	Subscribe(ctx context.Context, sessionID string, conn *websocket.Conn) error

	// Reset clears the session's window without evicting it
	Reset(ctx context.Context, sessionID string) error

	// Close evicts the session and disconnects its subscribers
	Close(ctx context.Context, sessionID string) error

	// Run drives the fan-out hub and the idle janitor until ctx ends
	Run(ctx context.Context) error
}

// Ports declares the injected dependencies the live module needs
type Ports struct {
	Flags fldom.WriterPort
}
