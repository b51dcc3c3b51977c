// Package fuzzy scores how close a candidate token is to a lexicon entry.
// Distance is Damerau-Levenshtein in the optimal string alignment variant:
// unit cost for insert, delete, substitute, and adjacent transposition,
// computed rune-wise so multibyte text measures correctly
package fuzzy

import (
	"unicode/utf8"

	"mouthwash/internal/core/normalize"
)

// MaskedScore is returned when two strings differ only by leet substitutions
// and punctuation. It sits below exact (1.0) and above the strict match
// threshold so masked terms still flag on short entries
const MaskedScore = 0.98

// Distance returns the Damerau-Levenshtein distance between a and b.
// Symmetric; zero iff the strings are equal
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// three rolling rows; prev2 feeds the transposition term
	prev2 := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d := min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				d = min(d, prev2[j-2]+1) // adjacent transposition
			}
			curr[j] = d
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[len(rb)]
}

// Score returns a similarity in [0,1] between a candidate token and a lexicon
// entry:
//
//	1.0          exact equality (including both empty)
//	0.98         leet-unmasked, punctuation-stripped skeletons equal
//	1 - d/maxlen otherwise, with d and maxlen measured over the skeletons
//
// Unequal strings whose skeletons are both empty score 0: there is nothing
// left to compare and dividing by the zero length is undefined
func Score(token, entry string) float64 {
	if token == entry {
		return 1.0
	}

	ts := normalize.StripPunct(normalize.LeetUnmask(token))
	es := normalize.StripPunct(normalize.LeetUnmask(entry))
	if ts == es {
		if ts == "" {
			return 0.0
		}
		return MaskedScore
	}

	d := Distance(ts, es)
	maxLen := max(utf8.RuneCountInString(ts), utf8.RuneCountInString(es))
	s := 1.0 - float64(d)/float64(maxLen)
	if s < 0 {
		return 0
	}
	return s
}
