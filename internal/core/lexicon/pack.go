// Package lexicon loads and compiles the embedded lexicon.json into the
// matcher used by every detector in the engine.
// Entry order in the file is load-bearing: iteration, tie-breaks, and phrase
// selection all follow insertion order so results are deterministic for a
// fixed pack
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed lexicon.json
var embedded []byte

// DefaultCategory labels entries whose fragment did not set one
const DefaultCategory = "profanity"

type rawEntry struct {
	Term     string `json:"term"`
	Category string `json:"category,omitempty"`
}

type rawPack struct {
	Version string     `json:"version"`
	Entries []rawEntry `json:"entries"`
	Allow   []string   `json:"allow"`
}

// Entry is one compiled lexicon term
type Entry struct {
	Term     string
	Category string
	Phrase   bool // term contains whitespace
}

// Pack is the compiled lexicon
type Pack struct {
	Version string
	Entries []Entry  // insertion order preserved
	Allow   []string // whitelist terms, lowercased, deduped
}

// Load parses and compiles the embedded lexicon.json.
// Terms and allow entries are lowercased and trimmed; duplicates are dropped
// keeping the first occurrence; empties are skipped
func Load() (*Pack, error) {
	return Parse(embedded)
}

// MustLoad is Load or panic; for mains and tests
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// Parse compiles a lexicon from raw JSON bytes. The import and lexpack tools
// feed fragment files through the same path the embedded pack uses
func Parse(b []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(b, &rp); err != nil {
		return nil, fmt.Errorf("lexicon: parse: %w", err)
	}
	if strings.TrimSpace(rp.Version) == "" {
		return nil, fmt.Errorf("lexicon: missing version")
	}

	p := &Pack{Version: rp.Version}

	seen := make(map[string]struct{}, len(rp.Entries))
	for _, e := range rp.Entries {
		term := canonTerm(e.Term)
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}

		cat := strings.TrimSpace(e.Category)
		if cat == "" {
			cat = DefaultCategory
		}
		p.Entries = append(p.Entries, Entry{
			Term:     term,
			Category: cat,
			Phrase:   strings.ContainsRune(term, ' '),
		})
	}
	if len(p.Entries) == 0 {
		return nil, fmt.Errorf("lexicon: no entries")
	}

	seenAllow := make(map[string]struct{}, len(rp.Allow))
	for _, a := range rp.Allow {
		term := canonTerm(a)
		if term == "" {
			continue
		}
		if _, dup := seenAllow[term]; dup {
			continue
		}
		// an allow term equal to an entry would shadow it entirely
		if _, clash := seen[term]; clash {
			return nil, fmt.Errorf("lexicon: allow term %q duplicates an entry", term)
		}
		seenAllow[term] = struct{}{}
		p.Allow = append(p.Allow, term)
	}

	return p, nil
}

// canonTerm lowercases, trims, and collapses interior whitespace to single
// spaces so phrase terms compare the way tokenized text joins
func canonTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
