package lexicon

// A tiny stdlib-only Aho-Corasick automaton backing the two substring
// screens (whitelist, phrase containment). Inputs are normalized lowercased
// UTF-8. Each node carries a fixed 256-way transition table so the scan loop
// does no map lookups

type acNode struct {
	// trans[b] = next state or -1 if absent
	trans  [256]int
	fail   int
	output []int // pattern IDs ending at this node
}

type automaton struct {
	nodes []acNode
}

func newAutomaton() *automaton {
	a := &automaton{nodes: make([]acNode, 1)}
	for i := range a.nodes[0].trans {
		a.nodes[0].trans[i] = -1
	}
	a.nodes[0].fail = 0
	return a
}

// add inserts a pattern under an integer ID. Empty patterns are ignored
func (a *automaton) add(pat string, id int) {
	if pat == "" {
		return
	}
	state := 0
	for i := 0; i < len(pat); i++ {
		b := pat[i]
		nxt := a.nodes[state].trans[b]
		if nxt == -1 {
			nxt = len(a.nodes)
			a.nodes[state].trans[b] = nxt
			var n acNode
			for j := range n.trans {
				n.trans[j] = -1
			}
			a.nodes = append(a.nodes, n)
		}
		state = nxt
	}
	a.nodes[state].output = append(a.nodes[state].output, id)
}

// build finalizes failure links with a BFS over the trie
func (a *automaton) build() {
	q := make([]int, 0, 64)
	for b := range 256 {
		s := a.nodes[0].trans[byte(b)]
		if s != -1 {
			a.nodes[s].fail = 0
			q = append(q, s)
		}
	}

	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for b := range 256 {
			s := a.nodes[r].trans[byte(b)]
			if s == -1 {
				continue
			}
			q = append(q, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].trans[byte(b)] == -1 {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].trans[byte(b)]; nxt != -1 {
				a.nodes[s].fail = nxt
			} else {
				a.nodes[s].fail = 0
			}

			a.nodes[s].output = append(a.nodes[s].output, a.nodes[a.nodes[s].fail].output...)
		}
	}
}

// scan walks text and calls cb(patternID) for each match occurrence.
// Returning false from cb stops the scan early
func (a *automaton) scan(text string, cb func(id int) bool) {
	state := 0
	for i := 0; i < len(text); i++ {
		b := text[i]
		for state != 0 && a.nodes[state].trans[b] == -1 {
			state = a.nodes[state].fail
		}
		if nxt := a.nodes[state].trans[b]; nxt != -1 {
			state = nxt
		}
		for _, id := range a.nodes[state].output {
			if !cb(id) {
				return
			}
		}
	}
}

// any reports whether at least one pattern occurs in text
func (a *automaton) any(text string) bool {
	found := false
	a.scan(text, func(int) bool {
		found = true
		return false
	})
	return found
}
