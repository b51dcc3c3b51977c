// Package service implements the moderation pipeline
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"mouthwash/internal/core/detector"
	"mouthwash/internal/core/lexicon"
	"mouthwash/internal/core/script"
	"mouthwash/internal/core/topic"
	"mouthwash/internal/platform/logger"
	fldom "mouthwash/internal/services/flags/domain"
	"mouthwash/internal/services/moderation/domain"
	trdom "mouthwash/internal/services/transcripts/domain"
)

// severityFloor mirrors the live monitor's high-severity cutoff
const severityFloor = 0.95

// Config for the moderation service
type Config struct {
	Policy        domain.Policy
	Workers       int
	PageSize      int
	MaxRangeHours int // 0 = unlimited
	DryRun        bool
}

// Service implements domain.ServicePort
type Service struct {
	Transcripts trdom.ReaderPort
	Flags       fldom.WriterPort
	Validator   domain.ValidatorPort
	Det         *detector.Detector
	Cfg         Config
}

// New constructs the moderation service
func New(ports domain.Ports, m *lexicon.Matcher, cfg Config) *Service {
	w := cfg.Workers
	if w <= 0 {
		w = 1
	}
	ps := cfg.PageSize
	if ps <= 0 {
		ps = 500
	}
	if cfg.Policy.DetVer <= 0 {
		cfg.Policy.DetVer = 1
	}
	return &Service{
		Transcripts: ports.Transcripts,
		Flags:       ports.Flags,
		Validator:   ports.Validator,
		Det:         detector.New(m),
		Cfg: Config{
			Policy:        cfg.Policy,
			Workers:       w,
			PageSize:      ps,
			MaxRangeHours: cfg.MaxRangeHours,
			DryRun:        cfg.DryRun,
		},
	}
}

// Propose runs the batch detector, the language policy, and the topic scorer
// over one segment. Deterministic for a fixed lexicon and policy
func (s *Service) Propose(ctx context.Context, seg domain.SegmentInput) (domain.ProposedFlags, error) {
	var out domain.ProposedFlags
	if seg.Text == "" {
		return out, nil
	}

	for _, h := range s.Det.Detect(seg.Text) {
		out.Profanity = append(out.Profanity, domain.ProfanityFlag{
			Token:    h.Token,
			Entry:    h.Entry,
			Category: h.Category,
			Score:    h.Score,
			Start:    h.Start,
			End:      h.End,
		})
	}

	if allowed := script.Tag(s.Cfg.Policy.AllowedLanguage); allowed != "" {
		for _, run := range script.Runs(seg.Text) {
			// Other covers digits, punctuation, and whitespace; never a violation
			if run.Tag == allowed || run.Tag == script.Other {
				continue
			}
			out.LanguagePolicy = append(out.LanguagePolicy, domain.LanguageFlag{
				Script:  string(run.Tag),
				Excerpt: run.Text,
				Start:   run.Start,
			})
		}
	}

	rep := topic.Analyze([]topic.Segment{{
		Text:      seg.Text,
		StartTime: seg.StartTime,
		EndTime:   seg.EndTime,
		Speaker:   seg.Speaker,
	}}, s.Cfg.Policy.Topic)
	for _, f := range rep.Flags {
		out.OffTopic = append(out.OffTopic, domain.TopicFlag{
			Excerpt: f.Excerpt,
			StartMS: f.StartMS,
			Speaker: f.Speaker,
			Reason:  f.Reason,
		})
	}

	return out, nil
}

// Review asks the validator which proposed flags to keep. Fail-open: with no
// validator configured, or on any validator failure, the proposal passes
// through unchanged with Validated false and a nil error
func (s *Service) Review(ctx context.Context, in domain.ReviewInput) (domain.ReviewOutcome, error) {
	open := domain.ReviewOutcome{Kept: in.Proposed, Validated: false}

	if s.Validator == nil || in.Proposed.Empty() {
		return open, nil
	}

	reply, err := s.Validator.Review(ctx, domain.ReviewRequest{
		Segment:  in.Segment,
		Proposed: in.Proposed,
		Prompt:   in.Prompt,
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("moderation: validator review failed; keeping proposed flags")
		return open, nil
	}

	kept, err := applyKeep(in.Proposed, reply.Keep)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("moderation: validator reply malformed; keeping proposed flags")
		return open, nil
	}
	return domain.ReviewOutcome{Kept: kept, Validated: true}, nil
}

// Moderate is Propose then Review. With persist set, kept flags are written
// through the flags service (an empty SegmentID gets one minted first)
func (s *Service) Moderate(ctx context.Context, seg domain.SegmentInput, persist bool) (domain.ReviewOutcome, error) {
	proposed, err := s.Propose(ctx, seg)
	if err != nil {
		return domain.ReviewOutcome{}, err
	}

	out, err := s.Review(ctx, domain.ReviewInput{
		Segment:  seg,
		Proposed: proposed,
		Prompt:   s.Cfg.Policy.Topic.Prompt,
	})
	if err != nil {
		return domain.ReviewOutcome{}, err
	}

	if !persist || out.Kept.Empty() {
		return out, nil
	}
	if _, err := s.Flags.WriteBatch(ctx, s.flagRows(seg, out)); err != nil {
		return domain.ReviewOutcome{}, err
	}
	return out, nil
}

// RunRange sweeps stored segments in [start, end) through the pipeline with a
// bounded worker pool and writes kept flags one page at a time
func (s *Service) RunRange(ctx context.Context, start, end time.Time) error {
	start = start.Truncate(time.Hour).UTC()
	end = end.Truncate(time.Hour).UTC()
	if end.Before(start) {
		return errors.New("end before start")
	}
	if s.Cfg.MaxRangeHours > 0 && int(end.Sub(start).Hours()) > s.Cfg.MaxRangeHours {
		return errors.New("range exceeds MaxRangeHours")
	}

	after := trdom.AfterKey{}
	for {
		rows, next, err := s.Transcripts.List(ctx, trdom.ListInput{
			Since: start, Until: end,
			After: after, Limit: s.Cfg.PageSize,
		})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		type chunk struct{ xs []fldom.Row }
		out := make([]chunk, len(rows))

		sem := make(chan struct{}, s.Cfg.Workers)
		wg := sync.WaitGroup{}

		for i := range rows {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer func() { <-sem; wg.Done() }()
				r := rows[i]
				if r.Text == "" {
					return
				}
				seg := segmentFromRow(r)
				proposed, err := s.Propose(ctx, seg)
				if err != nil {
					logger.C(ctx).Error().Err(err).Str("segment_id", r.SegmentID).Msg("moderation: propose failed")
					return
				}
				if proposed.Empty() {
					return
				}
				oc, err := s.Review(ctx, domain.ReviewInput{
					Segment:  seg,
					Proposed: proposed,
					Prompt:   s.Cfg.Policy.Topic.Prompt,
				})
				if err != nil {
					logger.C(ctx).Error().Err(err).Str("segment_id", r.SegmentID).Msg("moderation: review failed")
					return
				}
				out[i] = chunk{xs: s.flagRows(seg, oc)}
			}(i)
		}
		wg.Wait()

		if !s.Cfg.DryRun {
			flat := make([]fldom.Row, 0, 512)
			for i := range out {
				flat = append(flat, out[i].xs...)
			}
			if len(flat) > 0 {
				if _, err := s.Flags.WriteBatch(ctx, flat); err != nil {
					return err
				}
			}
		}

		after = next
	}
}

// flagRows maps a review outcome onto flag rows for the given segment
func (s *Service) flagRows(seg domain.SegmentInput, out domain.ReviewOutcome) []fldom.Row {
	segID := seg.SegmentID
	if segID == "" {
		segID = uuid.NewString()
	}

	rows := make([]fldom.Row, 0, len(out.Kept.Profanity)+len(out.Kept.LanguagePolicy)+len(out.Kept.OffTopic))
	for _, f := range out.Kept.Profanity {
		rows = append(rows, fldom.Row{
			SegmentID: segID,
			SessionID: seg.SessionID,
			Kind:      fldom.KindProfanity,
			Entry:     f.Entry,
			Token:     f.Token,
			Category:  f.Category,
			Severity:  mapSeverity(f.Score),
			Score:     f.Score,
			StartOff:  f.Start,
			EndOff:    f.End,
			Validated: out.Validated,
			DetVer:    s.Cfg.Policy.DetVer,
		})
	}
	for _, f := range out.Kept.LanguagePolicy {
		rows = append(rows, fldom.Row{
			SegmentID: segID,
			SessionID: seg.SessionID,
			Kind:      fldom.KindLanguagePolicy,
			Entry:     f.Script,
			Severity:  "medium",
			Score:     1.0,
			StartOff:  f.Start,
			EndOff:    f.Start + len(f.Excerpt),
			Excerpt:   f.Excerpt,
			Validated: out.Validated,
			DetVer:    s.Cfg.Policy.DetVer,
		})
	}
	for _, f := range out.Kept.OffTopic {
		rows = append(rows, fldom.Row{
			SegmentID: segID,
			SessionID: seg.SessionID,
			Kind:      fldom.KindOffTopic,
			Entry:     f.Reason,
			Severity:  "low",
			Score:     1.0,
			Excerpt:   f.Excerpt,
			Validated: out.Validated,
			DetVer:    s.Cfg.Policy.DetVer,
		})
	}
	return rows
}

// mapSeverity buckets a profanity score; must match flag_severity values
func mapSeverity(score float64) string {
	if score >= severityFloor {
		return "high"
	}
	return "medium"
}

// applyKeep filters a proposal down to the validator's keep indices.
// Any out-of-range index rejects the whole reply
func applyKeep(p domain.ProposedFlags, keep domain.KeepSet) (domain.ProposedFlags, error) {
	var out domain.ProposedFlags
	for _, i := range keep.Profanity {
		if i < 0 || i >= len(p.Profanity) {
			return domain.ProposedFlags{}, fmt.Errorf("keep index %d out of range for profanity", i)
		}
		out.Profanity = append(out.Profanity, p.Profanity[i])
	}
	for _, i := range keep.LanguagePolicy {
		if i < 0 || i >= len(p.LanguagePolicy) {
			return domain.ProposedFlags{}, fmt.Errorf("keep index %d out of range for language_policy", i)
		}
		out.LanguagePolicy = append(out.LanguagePolicy, p.LanguagePolicy[i])
	}
	for _, i := range keep.OffTopic {
		if i < 0 || i >= len(p.OffTopic) {
			return domain.ProposedFlags{}, fmt.Errorf("keep index %d out of range for off_topic", i)
		}
		out.OffTopic = append(out.OffTopic, p.OffTopic[i])
	}
	return out, nil
}

// segmentFromRow adapts a stored transcript row for the pipeline
func segmentFromRow(r trdom.Row) domain.SegmentInput {
	return domain.SegmentInput{
		SegmentID: r.SegmentID,
		SessionID: r.SessionID,
		Seq:       r.Seq,
		Speaker:   r.Speaker,
		Text:      r.Text,
		StartTime: float64(r.StartMS) / 1000,
		EndTime:   float64(r.EndMS) / 1000,
	}
}
