package lexicon

import (
	"unicode/utf8"

	"mouthwash/internal/core/fuzzy"
	"mouthwash/internal/core/normalize"
)

// Thresholds: short candidates demand a near-exact score or "as"/"ask" style
// neighbors slip through on a single edit; longer candidates can absorb a
// real typo
const (
	shortTokenRunes = 6
	strictThreshold = 0.95
	looseThreshold  = 0.85
)

// Match is the outcome of a lookup. A zero Score means no match; Entry and
// Category are empty in that case
type Match struct {
	Score    float64
	Entry    string
	Category string
}

// Matcher is a compiled Pack ready for lookups. Build once, share freely;
// all methods are safe for concurrent use
type Matcher struct {
	pack      *Pack
	allow     *automaton
	phraseAC  *automaton
	phraseIdx []int // automaton pattern ID -> Entries index
}

// NewMatcher compiles a Pack into a Matcher
func NewMatcher(p *Pack) *Matcher {
	m := &Matcher{pack: p}

	if len(p.Allow) > 0 {
		m.allow = newAutomaton()
		for i, t := range p.Allow {
			m.allow.add(t, i)
		}
		m.allow.build()
	}

	phrases := newAutomaton()
	hasPhrase := false
	for i, e := range p.Entries {
		if e.Phrase {
			phrases.add(e.Term, len(m.phraseIdx))
			m.phraseIdx = append(m.phraseIdx, i)
			hasPhrase = true
		}
	}
	if hasPhrase {
		phrases.build()
		m.phraseAC = phrases
	}

	return m
}

// Pack returns the pack this matcher was compiled from
func (m *Matcher) Pack() *Pack { return m.pack }

// prep folds a raw candidate into matching form: Unicode-normalized,
// case-folded, zero-width-stripped, with rune runs squashed to two
func prep(raw string) string {
	return normalize.CollapseRepeats(normalize.Normalize(raw), 2)
}

// Allowlisted reports whether any whitelist term occurs as a substring of the
// normalized form of s
func (m *Matcher) Allowlisted(s string) bool {
	if m.allow == nil {
		return false
	}
	cand := prep(s)
	return cand != "" && m.allow.any(cand)
}

// ContainedPhrase returns the first phrase entry (in pack order) occurring as
// a substring of the normalized form of s
func (m *Matcher) ContainedPhrase(s string) (Entry, bool) {
	if m.phraseAC == nil {
		return Entry{}, false
	}
	cand := prep(s)
	if cand == "" {
		return Entry{}, false
	}
	best := -1
	m.phraseAC.scan(cand, func(id int) bool {
		if idx := m.phraseIdx[id]; best == -1 || idx < best {
			best = idx
		}
		return true
	})
	if best == -1 {
		return Entry{}, false
	}
	return m.pack.Entries[best], true
}

// Phrases returns the multi-word entries in pack order
func (m *Matcher) Phrases() []Entry {
	var out []Entry
	for _, i := range m.phraseIdx {
		out = append(out, m.pack.Entries[i])
	}
	return out
}

// Token decides whether a raw candidate matches the lexicon. The candidate
// may be a single token or a space-joined run of window tokens; the same
// rules apply:
//
//  1. normalize and squash rune runs
//  2. whitelist substring wins: no match
//  3. walk entries in pack order: a contained phrase matches immediately at
//     1.0; single-word entries keep the best fuzzy score, short-circuiting
//     the walk at the masked-equal score
//  4. report only when the best score clears the floor for the candidate's
//     length
func (m *Matcher) Token(raw string) Match {
	cand := prep(raw)
	if cand == "" {
		return Match{}
	}

	if m.allow != nil && m.allow.any(cand) {
		return Match{}
	}

	var contained map[int]bool
	if m.phraseAC != nil {
		contained = make(map[int]bool, len(m.phraseIdx))
		m.phraseAC.scan(cand, func(id int) bool {
			contained[m.phraseIdx[id]] = true
			return true
		})
	}

	best := 0.0
	bestIdx := -1
	for i, e := range m.pack.Entries {
		if e.Phrase {
			if contained[i] {
				return Match{Score: 1.0, Entry: e.Term, Category: e.Category}
			}
			continue
		}
		if s := fuzzy.Score(cand, e.Term); s > best {
			best = s
			bestIdx = i
		}
		if best >= fuzzy.MaskedScore {
			break
		}
	}
	if bestIdx == -1 || best < thresholdFor(cand) {
		return Match{}
	}

	e := m.pack.Entries[bestIdx]
	return Match{Score: best, Entry: e.Term, Category: e.Category}
}

// thresholdFor picks the score floor by candidate length in runes
func thresholdFor(cand string) float64 {
	if utf8.RuneCountInString(cand) <= shortTokenRunes {
		return strictThreshold
	}
	return looseThreshold
}
