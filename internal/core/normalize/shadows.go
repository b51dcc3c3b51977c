package normalize

// Shadows bundles the projections of a canonical string the matcher needs, so
// each is computed once per token instead of once per lexicon entry
type Shadows struct {
	Base     string // output of Normalize (what offsets and phrases use)
	Squashed string // Base with rune runs collapsed to 2 (what fuzzy scoring uses)
	Skeleton string // Squashed after leet unmasking and punctuation stripping
}

// BuildShadows constructs Shadows from a canonical string.
// Single pass each; safe to call per token
func BuildShadows(base string) Shadows {
	sq := CollapseRepeats(base, 2)
	return Shadows{
		Base:     base,
		Squashed: sq,
		Skeleton: StripPunct(LeetUnmask(sq)),
	}
}
