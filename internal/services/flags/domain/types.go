// Package domain defines the types and interfaces for the flags service
package domain

import "time"

// Kinds a flag can carry; every row names exactly one
const (
	KindProfanity      = "profanity"
	KindLanguagePolicy = "language_policy"
	KindOffTopic       = "off_topic"
)

// AfterKey supports stable keyset pagination over (created_at, flag_id)
type AfterKey struct {
	CreatedAt time.Time
	FlagID    string // uuid
}

// ListInput defines filters for listing flags
type ListInput struct {
	Since time.Time // inclusive
	Until time.Time // exclusive
	After AfterKey  // zero value = from start
	Limit int       // hard-capped in service

	// Optional filters (all ANDed)
	Kind      string
	SessionID string
	Severity  string
}

// Row is one stored moderation flag
type Row struct {
	FlagID    string // uuid; minted by the service when empty
	SegmentID string
	SessionID string
	Kind      string // profanity | language_policy | off_topic
	Entry     string // matched lexicon entry, script tag, or topic reason
	Token     string // offending surface form, when the kind has one
	Category  string
	Severity  string
	Score     float64
	StartOff  int
	EndOff    int
	Excerpt   string
	Validated bool
	DetVer    int
	CreatedAt time.Time
}

// EntryCount is one row of the top-entries aggregate
type EntryCount struct {
	Kind  string
	Entry string
	N     int64
}
