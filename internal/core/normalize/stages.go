package normalize

import (
	"strings"
	"unicode"
)

// CollapseRepeats squashes any run of the same rune longer than maxRun down to
// exactly maxRun (e.g. "fuuuuuck" -> "fuuck" at maxRun 2). The engine uses
// maxRun 2 everywhere so a doubled letter still scores as itself.
// maxRun below 1 is treated as 1
func CollapseRepeats(s string, maxRun int) string {
	if s == "" {
		return s
	}
	if maxRun < 1 {
		maxRun = 1
	}
	out := make([]rune, 0, len(s))
	var prev rune
	count := 0
	for _, r := range s {
		if r == prev {
			count++
			if count <= maxRun {
				out = append(out, r)
			}
			continue
		}
		prev = r
		count = 1
		out = append(out, r)
	}
	return string(out)
}

// leet maps the curated set of ASCII lookalikes to their letters
var leet = map[rune]rune{
	'4': 'a', '@': 'a',
	'3': 'e',
	'1': 'i', '!': 'i', '|': 'i',
	'0': 'o',
	'5': 's', '$': 's',
	'7': 't',
	'8': 'b',
}

// LeetUnmask rewrites leetspeak substitutions to their plain letters in a
// single rune-wise pass. Unmapped runes pass through untouched
func LeetUnmask(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if l, ok := leet[r]; ok {
			b.WriteRune(l)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StripPunct drops every rune that is not a letter, digit, or space. The
// result is the "skeleton" used for masked-equality scoring
func StripPunct(s string) string {
	if s == "" {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
