// Package script classifies text by writing system for language policy
// enforcement. Tags are coarse on purpose: policy cares about "which script is
// being spoken", not full BCP-47 identification
package script

import "unicode"

// Tag is a coarse writing system label
type Tag string

// Tags recognized by the classifier. Han, Hiragana, and Katakana all fold
// into CJK; anything unclassified (digits, punctuation, spaces, other
// scripts) is Other
const (
	Latin      Tag = "Latin"
	Devanagari Tag = "Devanagari"
	Arabic     Tag = "Arabic"
	CJK        Tag = "CJK"
	Hangul     Tag = "Hangul"
	Other      Tag = "Other"
)

// Run is a maximal stretch of adjacent runes sharing one Tag
type Run struct {
	Tag   Tag
	Text  string
	Start int // byte offset into the classified string
}

// Classify tags a single rune
func Classify(r rune) Tag {
	switch {
	case unicode.In(r, unicode.Hangul):
		return Hangul
	case unicode.In(r, unicode.Han), unicode.In(r, unicode.Hiragana), unicode.In(r, unicode.Katakana):
		return CJK
	case unicode.In(r, unicode.Arabic):
		return Arabic
	case unicode.In(r, unicode.Devanagari):
		return Devanagari
	case unicode.In(r, unicode.Latin):
		return Latin
	default:
		return Other
	}
}

// Runs walks s, tags each rune, and merges adjacent runes with the same tag.
// Concatenating Run.Text in order reproduces s exactly
func Runs(s string) []Run {
	if s == "" {
		return nil
	}
	var out []Run
	start := 0
	var cur Tag
	first := true
	for i, r := range s {
		t := Classify(r)
		if first {
			cur = t
			first = false
			continue
		}
		if t != cur {
			out = append(out, Run{Tag: cur, Text: s[start:i], Start: start})
			start = i
			cur = t
		}
	}
	out = append(out, Run{Tag: cur, Text: s[start:], Start: start})
	return out
}

// Dominant returns the most frequent non-Other tag among letters and its
// count. Ties break toward the tag seen first. Text with no classifiable
// letters reports (Other, 0)
func Dominant(s string) (Tag, int) {
	counts := map[Tag]int{}
	var order []Tag
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		t := Classify(r)
		if t == Other {
			continue
		}
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}
	best := Other
	bestN := 0
	for _, t := range order {
		if counts[t] > bestN {
			best = t
			bestN = counts[t]
		}
	}
	return best, bestN
}
