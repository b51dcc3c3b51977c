// Package service contains analyze workflows
package service

import (
	"context"
	"strings"

	"mouthwash/internal/core/detector"
	"mouthwash/internal/core/lexicon"
	"mouthwash/internal/core/script"
	"mouthwash/internal/core/topic"
	perr "mouthwash/internal/platform/errors"
	"mouthwash/internal/services/api/analyze/domain"
	moddom "mouthwash/internal/services/moderation/domain"
)

// Service defines the analyze service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the analyze service
type Svc struct {
	det      *detector.Detector
	mod      moddom.ServicePort
	topicCfg topic.Config
}

// New constructs an analyze service. topicCfg supplies the server policy
// defaults applied when a topic request omits its lists
func New(m *lexicon.Matcher, mod moddom.ServicePort, topicCfg topic.Config) *Svc {
	if m == nil {
		panic("analyze.Service requires a non nil matcher")
	}
	if mod == nil {
		panic("analyze.Service requires the moderation port")
	}
	return &Svc{det: detector.New(m), mod: mod, topicCfg: topicCfg}
}

// Text scans finished text and returns hits plus the highlight partition
func (s *Svc) Text(ctx context.Context, in domain.TextInput) (domain.TextResponse, error) {
	hits := s.det.Detect(in.Text)
	spans := s.det.Highlight(in.Text)

	out := domain.TextResponse{
		Hits:         make([]domain.Hit, 0, len(hits)),
		Spans:        make([]domain.Span, 0, len(spans)),
		HasProfanity: len(hits) > 0,
	}
	for _, h := range hits {
		out.Hits = append(out.Hits, domain.Hit{
			Token:    h.Token,
			Entry:    h.Entry,
			Category: h.Category,
			Score:    h.Score,
			Start:    h.Start,
			End:      h.End,
		})
	}
	for _, sp := range spans {
		out.Spans = append(out.Spans, domain.Span{Start: sp.Start, End: sp.End, Flagged: sp.Flagged})
	}
	return out, nil
}

// Topic scores segments for subject adherence. Request lists override the
// server policy; an absent policy falls through to the scorer's defaults
func (s *Svc) Topic(ctx context.Context, in domain.TopicInput) (topic.Report, error) {
	cfg := topic.Config{
		Keywords:   s.topicCfg.Keywords,
		Indicators: s.topicCfg.Indicators,
		Prompt:     s.topicCfg.Prompt,
	}
	if len(in.Keywords) > 0 {
		cfg.Keywords = in.Keywords
	}
	if len(in.Indicators) > 0 {
		cfg.Indicators = in.Indicators
	}

	segs := make([]topic.Segment, 0, len(in.Segments))
	for _, seg := range in.Segments {
		segs = append(segs, topic.Segment{
			Text:      seg.Text,
			StartTime: seg.StartTime,
			EndTime:   seg.EndTime,
			Speaker:   seg.Speaker,
		})
	}
	return topic.Analyze(segs, cfg), nil
}

// Script returns the writing system runs and the dominant script
func (s *Svc) Script(ctx context.Context, in domain.ScriptInput) (domain.ScriptResponse, error) {
	runs := script.Runs(in.Text)
	dom, letters := script.Dominant(in.Text)

	out := domain.ScriptResponse{
		Runs:     make([]domain.ScriptRun, 0, len(runs)),
		Dominant: string(dom),
		Letters:  letters,
	}
	for _, run := range runs {
		out.Runs = append(out.Runs, domain.ScriptRun{
			Tag:   string(run.Tag),
			Text:  run.Text,
			Start: run.Start,
		})
	}
	return out, nil
}

// Moderate runs propose + review over one segment, persisting kept flags
// when asked
func (s *Svc) Moderate(ctx context.Context, in domain.ModerateInput) (moddom.ReviewOutcome, error) {
	if in.Persist && strings.TrimSpace(in.Segment.SessionID) == "" {
		return moddom.ReviewOutcome{}, perr.InvalidArgf("persist requires segment.session_id")
	}
	seg := moddom.SegmentInput{
		SegmentID: in.Segment.SegmentID,
		SessionID: in.Segment.SessionID,
		Seq:       in.Segment.Seq,
		Speaker:   in.Segment.Speaker,
		Text:      in.Segment.Text,
		StartTime: in.Segment.StartTime,
		EndTime:   in.Segment.EndTime,
	}
	return s.mod.Moderate(ctx, seg, in.Persist)
}
