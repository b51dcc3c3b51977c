// Package domain holds DTOs for transcripts http and service contracts
package domain

import "time"

// SegmentIn is one transcript segment to store
type SegmentIn struct {
	SegmentID string `json:"segment_id,omitempty" validate:"omitempty,uuid4" example:"0b5e2b8a-7c1d-4a38-9a6e-1f2d3c4b5a69"`
	SessionID string `json:"session_id" validate:"required,max=128" example:"class-7b"`
	Seq       int    `json:"seq" validate:"gte=0" example:"12"`
	Speaker   string `json:"speaker,omitempty" validate:"omitempty,max=128" example:"teacher"`
	Text      string `json:"text" validate:"required,max=20000" example:"please open chapter four"`
	StartMS   int64  `json:"start_ms" validate:"gte=0" example:"93500"`
	EndMS     int64  `json:"end_ms" validate:"gte=0" example:"96100"`
}

// ImportInput is a batch of segments to store
type ImportInput struct {
	Segments []SegmentIn `json:"segments" validate:"required,min=1,max=1000,dive"`
}

// ImportResponse reports how many rows were new
type ImportResponse struct {
	Wrote int `json:"wrote" example:"42"`
}

// TimeRange bounds a query window. Times are RFC3339; until is exclusive
type TimeRange struct {
	Since string `json:"since" validate:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2026-03-01T00:00:00Z"`
	Until string `json:"until" validate:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2026-03-08T00:00:00Z"`
}

// AfterKey is the keyset cursor echoed from a previous page
type AfterKey struct {
	CreatedAt string `json:"created_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2026-03-01T09:30:00Z"`
	SegmentID string `json:"segment_id" validate:"required,uuid4" example:"0b5e2b8a-7c1d-4a38-9a6e-1f2d3c4b5a69"`
}

// ListInput filters and pages stored segments
type ListInput struct {
	Range TimeRange `json:"range"`
	After *AfterKey `json:"after,omitempty"`
	Limit int       `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`

	// optional filters, ANDed together
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128" example:"class-7b"`
	Speaker   string `json:"speaker,omitempty" validate:"omitempty,max=128" example:"teacher"`
	Lang      string `json:"lang,omitempty" validate:"omitempty,max=32" example:"Latin"`
}

// SegmentRow is one stored segment on the wire
type SegmentRow struct {
	SegmentID string    `json:"segment_id" example:"0b5e2b8a-7c1d-4a38-9a6e-1f2d3c4b5a69"`
	SessionID string    `json:"session_id" example:"class-7b"`
	Seq       int       `json:"seq" example:"12"`
	Speaker   string    `json:"speaker,omitempty" example:"teacher"`
	Text      string    `json:"text"`
	StartMS   int64     `json:"start_ms" example:"93500"`
	EndMS     int64     `json:"end_ms" example:"96100"`
	Lang      string    `json:"lang,omitempty" example:"Latin"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse is one page of segments plus the cursor for the next
type ListResponse struct {
	Rows []SegmentRow `json:"rows"`
	Next *AfterKey    `json:"next,omitempty"`
}
