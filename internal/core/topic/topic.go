// Package topic scores how well transcript segments stick to a configured
// subject. Pure functions, no state across calls
package topic

import (
	"math"
	"strings"

	"mouthwash/internal/core/normalize"
)

// excerptRunes is how much leading context a flag carries
const excerptRunes = 150

// ReasonOffTopic labels every flag this scorer produces
const ReasonOffTopic = "off_topic"

// Defaults applied when the config omits a list.
//
// Keywords mark a segment on-topic when any appears as a whole token after
// punctuation stripping; indicators suggest drift when any appears as a
// substring of the lowercased text. The asymmetry is intentional: indicators
// are phrases, keywords are words
var (
	DefaultKeywords = []string{
		"topic", "lesson", "class", "subject", "question", "answer",
		"discuss", "learn", "study", "homework", "assignment", "chapter",
	}

	DefaultIndicators = []string{
		"bored", "boring", "game", "play", "movie", "party", "lunch",
		"weekend", "tiktok", "off topic", "talk about something else",
	}
)

// Segment is one stretch of transcribed speech
type Segment struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Speaker   string  `json:"speaker,omitempty"`
}

// Config tunes the scorer. Zero-value lists fall back to the defaults;
// Prompt is carried through to the external validator and unused locally
type Config struct {
	Keywords   []string
	Indicators []string
	Prompt     string
}

// Flag is one off-topic finding
type Flag struct {
	Excerpt string `json:"excerpt"`
	StartMS int64  `json:"start_ms"`
	Speaker string `json:"speaker,omitempty"`
	Reason  string `json:"reason"`
}

// Report is the adherence verdict for a batch of segments
type Report struct {
	Score   float64 `json:"score"`
	Flags   []Flag  `json:"flags,omitempty"`
	Total   int     `json:"total"`
	OnTopic int     `json:"on_topic"`
}

// Analyze scores segs against cfg. A segment is off-topic only when an
// indicator occurs in its lowercased text AND no topic keyword appears among
// its tokens; absence of both signals stays on-topic, since drift needs
// positive evidence. An empty batch is vacuously on-topic at 1.0
func Analyze(segs []Segment, cfg Config) Report {
	keywords := cfg.Keywords
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	indicators := cfg.Indicators
	if len(indicators) == 0 {
		indicators = DefaultIndicators
	}

	rep := Report{Total: len(segs)}
	if len(segs) == 0 {
		rep.Score = 1.0
		return rep
	}

	kw := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		if c := canonToken(k); c != "" {
			kw[c] = struct{}{}
		}
	}

	for _, seg := range segs {
		if offTopic(seg.Text, kw, indicators) {
			rep.Flags = append(rep.Flags, Flag{
				Excerpt: excerpt(seg.Text),
				StartMS: int64(math.Floor(seg.StartTime * 1000)),
				Speaker: seg.Speaker,
				Reason:  ReasonOffTopic,
			})
			continue
		}
		rep.OnTopic++
	}
	rep.Score = float64(rep.OnTopic) / float64(rep.Total)
	return rep
}

func offTopic(text string, kw map[string]struct{}, indicators []string) bool {
	lower := strings.ToLower(text)

	hit := false
	for _, ind := range indicators {
		ind = strings.ToLower(strings.TrimSpace(ind))
		if ind != "" && strings.Contains(lower, ind) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}

	// a single topic keyword rescues the segment
	for _, tok := range strings.Fields(lower) {
		if _, ok := kw[normalize.StripPunct(tok)]; ok {
			return false
		}
	}
	return true
}

// canonToken folds a configured keyword the same way segment tokens are
// folded, so "Let's" as a keyword matches the token "lets"
func canonToken(s string) string {
	return normalize.StripPunct(strings.ToLower(strings.TrimSpace(s)))
}

// excerpt cuts s at the rune boundary after excerptRunes characters
func excerpt(s string) string {
	n := 0
	for i := range s {
		if n == excerptRunes {
			return s[:i]
		}
		n++
	}
	return s
}
