package lexicon

import (
	"strings"
	"testing"
)

func TestLoad_Embedded(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Version == "" {
		t.Fatal("pack has no version")
	}
	if len(p.Entries) == 0 || len(p.Allow) == 0 {
		t.Fatalf("pack looks empty: %d entries, %d allow", len(p.Entries), len(p.Allow))
	}

	// insertion order must survive compilation
	if p.Entries[0].Term != "ass" {
		t.Fatalf("first entry = %q, want %q", p.Entries[0].Term, "ass")
	}

	for _, e := range p.Entries {
		if e.Category == "" {
			t.Fatalf("entry %q has empty category", e.Term)
		}
		if e.Phrase != strings.ContainsRune(e.Term, ' ') {
			t.Fatalf("entry %q phrase flag wrong", e.Term)
		}
		if e.Term != strings.ToLower(e.Term) {
			t.Fatalf("entry %q not lowercased", e.Term)
		}
	}
}

func TestParse_Table(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
		check   func(t *testing.T, p *Pack)
	}{
		{
			name: "dedupe keeps first",
			in:   `{"version":"t1","entries":[{"term":"Hell","category":"a"},{"term":"hell","category":"b"},{"term":"damn"}]}`,
			check: func(t *testing.T, p *Pack) {
				if len(p.Entries) != 2 {
					t.Fatalf("got %d entries, want 2", len(p.Entries))
				}
				if p.Entries[0].Term != "hell" || p.Entries[0].Category != "a" {
					t.Fatalf("first entry %+v, want hell/a", p.Entries[0])
				}
			},
		},
		{
			name: "default category",
			in:   `{"version":"t1","entries":[{"term":"damn"}]}`,
			check: func(t *testing.T, p *Pack) {
				if p.Entries[0].Category != DefaultCategory {
					t.Fatalf("category = %q", p.Entries[0].Category)
				}
			},
		},
		{
			name: "phrase whitespace canon",
			in:   `{"version":"t1","entries":[{"term":"  What   The  HELL "}]}`,
			check: func(t *testing.T, p *Pack) {
				if p.Entries[0].Term != "what the hell" || !p.Entries[0].Phrase {
					t.Fatalf("entry %+v", p.Entries[0])
				}
			},
		},
		{
			name:    "missing version",
			in:      `{"entries":[{"term":"damn"}]}`,
			wantErr: true,
		},
		{
			name:    "no entries",
			in:      `{"version":"t1","entries":[{"term":"  "}]}`,
			wantErr: true,
		},
		{
			name:    "allow shadowing entry rejected",
			in:      `{"version":"t1","entries":[{"term":"damn"}],"allow":["damn"]}`,
			wantErr: true,
		},
		{
			name:    "bad json",
			in:      `{"version":`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse([]byte(tc.in))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if tc.check != nil {
				tc.check(t, p)
			}
		})
	}
}
