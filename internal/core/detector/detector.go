// Package detector scans finished text for lexicon matches and reports them
// with exact byte offsets into the original string
package detector

import (
	"sort"
	"strings"

	"mouthwash/internal/core/lexicon"
)

// Detector is a stateless batch scanner over one compiled lexicon.
// Safe for concurrent use
type Detector struct {
	m *lexicon.Matcher
}

// New constructs a Detector over a compiled matcher
func New(m *lexicon.Matcher) *Detector {
	if m == nil {
		panic("detector.New requires a non-nil matcher")
	}
	return &Detector{m: m}
}

// Hit is one detected token. Start/End are byte offsets into the original
// text with End exclusive, so text[Start:End] == Token always holds
type Hit struct {
	Token    string  `json:"token"`
	Entry    string  `json:"entry"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
}

// Span is one stretch of highlighted text. Spans tile the input exactly
type Span struct {
	Start   int  `json:"start"`
	End     int  `json:"end"`
	Flagged bool `json:"flagged"`
}

// Detect tokenizes text on whitespace, evaluates each token against the
// lexicon, and returns hits ordered by Start. Hits never overlap: at most one
// per token.
//
// Offsets are recovered with a forward-only cursor so a token whose spelling
// recurs earlier in the text still maps to its own occurrence
func (d *Detector) Detect(text string) []Hit {
	return d.scan(text, 0)
}

// HasProfanity reports whether text contains at least one match. It stops at
// the first hit instead of building the full slice
func (d *Detector) HasProfanity(text string) bool {
	return len(d.scan(text, 1)) > 0
}

func (d *Detector) scan(text string, limit int) []Hit {
	if text == "" {
		return nil
	}

	var hits []Hit
	cursor := 0
	for _, tok := range strings.Fields(text) {
		rel := strings.Index(text[cursor:], tok)
		if rel < 0 {
			// unreachable for Fields output; skip rather than misattribute
			continue
		}
		start := cursor + rel
		cursor = start + len(tok)

		m := d.m.Token(tok)
		if m.Entry == "" {
			continue
		}
		hits = append(hits, Hit{
			Token:    tok,
			Entry:    m.Entry,
			Category: m.Category,
			Score:    m.Score,
			Start:    start,
			End:      start + len(tok),
		})
		if limit > 0 && len(hits) >= limit {
			break
		}
	}
	return hits
}

// Highlight partitions text into ordered flagged/unflagged spans.
// Concatenating text[s.Start:s.End] over the result reproduces text exactly.
// Empty text yields no spans
func (d *Detector) Highlight(text string) []Span {
	if text == "" {
		return nil
	}

	hits := d.Detect(text)
	// Detect emits in order today, but the partition must hold even if that
	// ever changes; re-sort before walking
	sort.Slice(hits, func(i, j int) bool { return hits[i].Start < hits[j].Start })

	var spans []Span
	pos := 0
	for _, h := range hits {
		if h.Start > pos {
			spans = append(spans, Span{Start: pos, End: h.Start})
		}
		spans = append(spans, Span{Start: h.Start, End: h.End, Flagged: true})
		pos = h.End
	}
	if pos < len(text) {
		spans = append(spans, Span{Start: pos, End: len(text)})
	}
	return spans
}
