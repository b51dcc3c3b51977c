// Package domain holds DTOs for flags http and service contracts
package domain

import "time"

// TimeRange bounds a query window. Times are RFC3339; until is exclusive
type TimeRange struct {
	Since string `json:"since" validate:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2026-03-01T00:00:00Z"`
	Until string `json:"until" validate:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2026-03-08T00:00:00Z"`
}

// AfterKey is the keyset cursor echoed from a previous page
type AfterKey struct {
	CreatedAt string `json:"created_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2026-03-01T09:30:00Z"`
	FlagID    string `json:"flag_id" validate:"required,uuid4" example:"0b5e2b8a-7c1d-4a38-9a6e-1f2d3c4b5a69"`
}

// ListInput filters and pages stored flags
type ListInput struct {
	Range TimeRange `json:"range"`
	After *AfterKey `json:"after,omitempty"`
	Limit int       `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`

	// optional filters, ANDed together
	Kind      string `json:"kind,omitempty" validate:"omitempty,oneof=profanity language_policy off_topic" example:"profanity"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128" example:"class-7b"`
	Severity  string `json:"severity,omitempty" validate:"omitempty,oneof=low medium high" example:"high"`
}

// FlagRow is one stored flag on the wire
type FlagRow struct {
	FlagID    string    `json:"flag_id" example:"0b5e2b8a-7c1d-4a38-9a6e-1f2d3c4b5a69"`
	SegmentID string    `json:"segment_id,omitempty"`
	SessionID string    `json:"session_id" example:"class-7b"`
	Kind      string    `json:"kind" example:"profanity"`
	Entry     string    `json:"entry,omitempty" example:"ass"`
	Token     string    `json:"token,omitempty" example:"a$$"`
	Category  string    `json:"category,omitempty" example:"slur"`
	Severity  string    `json:"severity,omitempty" example:"high"`
	Score     float64   `json:"score,omitempty" example:"0.8"`
	StartOff  int       `json:"start_off,omitempty" example:"11"`
	EndOff    int       `json:"end_off,omitempty" example:"14"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Validated bool      `json:"validated"`
	DetVer    int       `json:"detver" example:"1"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse is one page of flags plus the cursor for the next
type ListResponse struct {
	Rows []FlagRow `json:"rows"`
	Next *AfterKey `json:"next,omitempty"`
}

// SummaryInput bounds the aggregate window
type SummaryInput struct {
	Range TimeRange `json:"range"`
	TopN  int       `json:"top_n,omitempty" validate:"omitempty,min=1,max=50" example:"10"`
}

// EntryCount is one row of the top entries aggregate
type EntryCount struct {
	Kind  string `json:"kind" example:"profanity"`
	Entry string `json:"entry" example:"ass"`
	N     int64  `json:"n" example:"42"`
}

// SummaryResponse aggregates flags by kind plus the most frequent entries
type SummaryResponse struct {
	ByKind map[string]int64 `json:"by_kind"`
	Top    []EntryCount     `json:"top"`
}
