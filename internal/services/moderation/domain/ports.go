package domain

import (
	"context"
	"time"

	fldom "mouthwash/internal/services/flags/domain"
	trdom "mouthwash/internal/services/transcripts/domain"
)

// ServicePort is the external port for the moderation pipeline
type ServicePort interface {
	// Propose runs the local analyzers over one segment
	Propose(ctx context.Context, seg SegmentInput) (ProposedFlags, error)

	// Review sends a proposal to the validator and falls back open on any failure
	Review(ctx context.Context, in ReviewInput) (ReviewOutcome, error)

	// Moderate is Propose then Review; persist writes kept flags through the flags service
	Moderate(ctx context.Context, seg SegmentInput, persist bool) (ReviewOutcome, error)

	// RunRange sweeps stored segments in [start, end) through the pipeline
	RunRange(ctx context.Context, start, end time.Time) error
}

// ValidatorPort reviews proposed flags out of process
type ValidatorPort interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewReply, error)
}

// ReviewRequest is the wire payload sent to the validator
type ReviewRequest struct {
	Segment  SegmentInput  `json:"segment"`
	Proposed ProposedFlags `json:"proposed"`
	Prompt   string        `json:"prompt,omitempty"`
}

// KeepSet holds indices into the proposed lists
type KeepSet struct {
	Profanity      []int `json:"profanity"`
	LanguagePolicy []int `json:"language_policy"`
	OffTopic       []int `json:"off_topic"`
}

// ReviewReply is the validator's verdict
type ReviewReply struct {
	Keep KeepSet `json:"keep"`
}

// Ports are dependencies injected into the moderation module
type Ports struct {
	Transcripts trdom.ReaderPort // required for RunRange
	Flags       fldom.WriterPort // required for persistence
	Validator   ValidatorPort    // optional; nil disables review
}
