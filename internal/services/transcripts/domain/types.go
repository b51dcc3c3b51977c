// Package domain defines core types and interfaces for transcripts
package domain

import "time"

// AfterKey supports stable keyset pagination over (created_at, segment_id)
type AfterKey struct {
	CreatedAt time.Time
	SegmentID string // uuid
}

// ListInput defines the input parameters for listing segments
type ListInput struct {
	Since time.Time // inclusive
	Until time.Time // exclusive
	After AfterKey  // zero value = from start
	Limit int       // hard-capped in service

	// Optional filters (all ANDed)
	SessionID string
	Speaker   string
	Lang      string // dominant script tag, e.g. "Latin"
}

// Row is one stored transcript segment
type Row struct {
	SegmentID string // uuid; minted by the service when empty
	SessionID string
	Seq       int
	Speaker   string
	Text      string
	StartMS   int64
	EndMS     int64
	Lang      string // dominant script tag, stamped at write when empty
	CreatedAt time.Time
}
