// Package domain holds DTOs for live session http and service contracts
package domain

import (
	livedom "mouthwash/internal/services/live/domain"
)

// IngestInput is one transcript chunk appended to a session window
type IngestInput struct {
	Chunk string `json:"chunk" validate:"required,max=10000" example:"what the"`
}

// IngestResponse carries the window events this chunk raised
type IngestResponse struct {
	Events []livedom.Event `json:"events"`
}

// SessionAck reports the session a mutation touched
type SessionAck struct {
	SessionID string `json:"session_id" example:"class-7b"`
	OK        bool   `json:"ok" example:"true"`
}
