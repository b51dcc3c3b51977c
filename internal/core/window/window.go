// Package window detects lexicon matches in live token streams. A Detector
// keeps a bounded FIFO of the most recent tokens so a multi-word phrase is
// caught the moment its last word arrives, without reprocessing the whole
// transcript
package window

import (
	"strings"

	"mouthwash/internal/core/lexicon"
)

// DefaultSize is the token capacity used when the caller does not pick one
const DefaultSize = 8

// severityFloor is the score at or above which an event is high severity
const severityFloor = 0.95

// Severity buckets an event by score
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Event is one live detection. Phrase is the raw window suffix (space-joined
// tokens as they arrived) that matched; Entry is the canonical lexicon term
type Event struct {
	Phrase   string   `json:"phrase"`
	Entry    string   `json:"entry"`
	Category string   `json:"category"`
	Score    float64  `json:"score"`
	Severity Severity `json:"severity"`
}

// Detector is the per-stream live matcher. Use one instance per logical
// stream and serialize calls on it externally; independent instances share
// the read-only matcher freely and never touch each other's state
type Detector struct {
	m      *lexicon.Matcher
	size   int
	tokens []string
}

// New builds a Detector over a compiled matcher. size <= 0 selects
// DefaultSize
func New(m *lexicon.Matcher, size int) *Detector {
	if m == nil {
		panic("window.New requires a non-nil matcher")
	}
	if size <= 0 {
		size = DefaultSize
	}
	return &Detector{m: m, size: size, tokens: make([]string, 0, size)}
}

// Ingest feeds one chunk of live text. The chunk may carry any number of
// whitespace-delimited tokens; each is pushed into the window (evicting the
// oldest past capacity) and the window's suffixes ending at it are rescanned.
// At most one event fires per pushed token. Events come back in arrival
// order; nil when nothing fired
func (d *Detector) Ingest(chunk string) []Event {
	var events []Event
	for _, tok := range strings.Fields(chunk) {
		d.tokens = append(d.tokens, tok)
		if len(d.tokens) > d.size {
			d.tokens = d.tokens[1:]
		}
		if ev, ok := d.scan(); ok {
			events = append(events, ev)
		}
	}
	return events
}

// scan tries the window suffixes shortest first and stops at the first
// match, so only the shortest sufficient candidate fires for one arrival
func (d *Detector) scan() (Event, bool) {
	for l := 1; l <= len(d.tokens); l++ {
		phrase := strings.Join(d.tokens[len(d.tokens)-l:], " ")
		m := d.m.Token(phrase)
		if m.Entry == "" {
			continue
		}
		sev := SeverityMedium
		if m.Score >= severityFloor {
			sev = SeverityHigh
		}
		return Event{
			Phrase:   phrase,
			Entry:    m.Entry,
			Category: m.Category,
			Score:    m.Score,
			Severity: sev,
		}, true
	}
	return Event{}, false
}

// Reset clears the window; afterwards the detector behaves as freshly
// constructed. Call it when the stream or session ends
func (d *Detector) Reset() { d.tokens = d.tokens[:0] }

// Window returns a copy of the buffered tokens, oldest first
func (d *Detector) Window() []string {
	out := make([]string, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// Size returns the configured token capacity
func (d *Detector) Size() int { return d.size }
