// Package normalize provides the deterministic text canonicalizer used by the
// matching engine
// Pipeline order
// 1 sanitize drop controls and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove zero-width and format chars ZWJ ZWNJ FEFF etc
// 5 Width fold fullwidth forms to ASCII
// 6 Collapse whitespace runs to single spaces and trim
//
// Leet unmasking and punctuation stripping are NOT part of Normalize; they are
// separate stages (see stages.go) so the scorer can tell an exact match from a
// masked one
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains; transform.Chain is not safe for
// concurrent use so every caller checks one out
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Normalize returns the canonical form of s following the pipeline above.
// It is idempotent and safe for concurrent use
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// transform errors only arise on malformed input which Sanitize
		// already removed; fall back to the sanitized string
		ns = s
	}

	return collapseSpaces(ns)
}

// collapseSpaces converts any whitespace run to a single ASCII space and trims
// the edges. Transcript text is one utterance per segment so line breaks carry
// no meaning here
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
