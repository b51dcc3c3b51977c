// Package domain defines the types and interfaces for the moderation service
package domain

import "mouthwash/internal/core/topic"

// SegmentInput is one transcript segment handed to the pipeline.
// SegmentID may be empty for ad hoc calls; persistence mints one
type SegmentInput struct {
	SegmentID string  `json:"segment_id,omitempty"`
	SessionID string  `json:"session_id"`
	Seq       int     `json:"seq"`
	Speaker   string  `json:"speaker,omitempty"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// ProfanityFlag is one lexicon hit with byte offsets into the segment text
type ProfanityFlag struct {
	Token    string  `json:"token"`
	Entry    string  `json:"entry"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
}

// LanguageFlag is one stretch of text written in a script the policy disallows
type LanguageFlag struct {
	Script  string `json:"script"`
	Excerpt string `json:"excerpt"`
	Start   int    `json:"start"`
}

// TopicFlag mirrors topic.Flag for the wire
type TopicFlag struct {
	Excerpt string `json:"excerpt"`
	StartMS int64  `json:"start_ms"`
	Speaker string `json:"speaker,omitempty"`
	Reason  string `json:"reason"`
}

// ProposedFlags is everything the local pipeline found in one segment
type ProposedFlags struct {
	Profanity      []ProfanityFlag `json:"profanity,omitempty"`
	LanguagePolicy []LanguageFlag  `json:"language_policy,omitempty"`
	OffTopic       []TopicFlag     `json:"off_topic,omitempty"`
}

// Empty reports whether no flags were proposed
func (p ProposedFlags) Empty() bool {
	return len(p.Profanity) == 0 && len(p.LanguagePolicy) == 0 && len(p.OffTopic) == 0
}

// ReviewInput carries a proposal to the review step
type ReviewInput struct {
	Segment  SegmentInput
	Proposed ProposedFlags
	Prompt   string
}

// ReviewOutcome is what survives review. Validated is false whenever the
// outcome is a fail-open passthrough of the proposal
type ReviewOutcome struct {
	Kept      ProposedFlags `json:"kept"`
	Validated bool          `json:"validated"`
}

// Policy is the engine configuration for one deployment
type Policy struct {
	// AllowedLanguage is a script tag like "Latin"; empty disables language policy
	AllowedLanguage string
	Topic           topic.Config
	WindowSize      int
	DetVer          int
}
