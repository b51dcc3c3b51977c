package fuzzy

import (
	"math"
	"testing"
)

func TestDistance_Table(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "shit", b: "shit", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "one empty", a: "", b: "ass", want: 3},
		{name: "substitution", a: "shit", b: "shot", want: 1},
		{name: "insertion", a: "dam", b: "damn", want: 1},
		{name: "deletion", a: "hells", b: "hell", want: 1},
		{name: "adjacent transposition", a: "hlel", b: "hell", want: 1},
		{name: "transposition beats two subs", a: "abdc", b: "abcd", want: 1},
		{name: "unicode runes", a: "naïve", b: "naive", want: 1},
		{name: "unrelated", a: "cat", b: "dog", want: 3},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Distance(tc.a, tc.b); got != tc.want {
				t.Fatalf("Distance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
			// symmetry holds for every pair
			if got := Distance(tc.b, tc.a); got != tc.want {
				t.Fatalf("Distance(%q, %q) = %d, want %d (asymmetric)", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestScore_Table(t *testing.T) {
	tests := []struct {
		name  string
		token string
		entry string
		want  float64
	}{
		{name: "exact", token: "hell", entry: "hell", want: 1.0},
		{name: "both empty", token: "", entry: "", want: 1.0},
		{name: "token empty", token: "", entry: "hell", want: 0.0},
		{name: "entry empty", token: "hell", entry: "", want: 0.0},
		{name: "leet masked", token: "a$$", entry: "ass", want: MaskedScore},
		{name: "punct masked", token: "s.h.i.t", entry: "shit", want: MaskedScore},
		{name: "one off", token: "shit", entry: "shot", want: 0.75},
		{name: "swap", token: "hlel", entry: "hell", want: 0.75},
		{name: "distance ratio", token: "damnn", entry: "damn", want: 0.8},
		// the ratio is measured over skeletons, so the leet digit is not
		// billed as an edit: only the trailing x counts
		{name: "ratio over skeletons", token: "sh1tx", entry: "shit", want: 0.8},
		{name: "punct only both sides", token: "??", entry: "--", want: 0.0},
		{name: "punct only one side", token: "??", entry: "ass", want: 0.0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.token, tc.entry)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Score(%q, %q) = %v, want %v", tc.token, tc.entry, got, tc.want)
			}
		})
	}
}

// Score(x, x) must be exactly 1 for anything the normalizer can emit.
func TestScore_Reflexive(t *testing.T) {
	for _, s := range []string{"", "a", "hell", "नमस्ते", "what the hell", "a$$"} {
		if got := Score(s, s); got != 1.0 {
			t.Fatalf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScore_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "zzzzzzzz"},
		{"abc", "xyz"},
		{"x", ""},
		{"аss", "ass"}, // cyrillic a vs latin a
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 1 || math.IsNaN(got) {
			t.Fatalf("Score(%q, %q) = %v out of [0,1]", p[0], p[1], got)
		}
	}
}
