// Command mouthwash-lexpack
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mouthwash/internal/core/lexicon"
)

// todo: centralize with lexicon/pack.go?
type fragmentFile struct {
	Entries []entry  `json:"entries"`
	Allow   []string `json:"allow,omitempty"`
}

type entry struct {
	Term     string `json:"term"`
	Category string `json:"category,omitempty"`
}

type outPack struct {
	Version string   `json:"version"`
	Entries []entry  `json:"entries"`
	Allow   []string `json:"allow,omitempty"`
}

func readJSON[T any](path string, into *T) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// canon matches the loader's term canonicalization: lowercase, trimmed,
// interior whitespace collapsed
func canon(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func findFragmentFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		// a previously packed output sitting at the root is not a fragment
		if filepath.Base(path) == "lexicon.json" && filepath.Dir(path) == root {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func assemble(root, version string) (outPack, error) {
	fragPaths, err := findFragmentFiles(root)
	if err != nil {
		return outPack{}, err
	}
	if len(fragPaths) == 0 {
		return outPack{}, errors.New("no fragment files found under " + root)
	}

	out := outPack{Version: version}
	seen := map[string]string{} // canonical term -> fragment that introduced it
	seenAllow := map[string]bool{}

	for _, p := range fragPaths {
		var fr fragmentFile
		if err := readJSON(p, &fr); err != nil {
			return outPack{}, err
		}
		for _, e := range fr.Entries {
			k := canon(e.Term)
			if k == "" {
				continue
			}
			if first, dup := seen[k]; dup {
				_, _ = fmt.Fprintf(os.Stderr, "warning: duplicate term %q in %s (kept from %s)\n", k, p, first)
				continue
			}
			seen[k] = p
			out.Entries = append(out.Entries, e)
		}
		for _, a := range fr.Allow {
			k := canon(a)
			if k == "" || seenAllow[k] {
				continue
			}
			seenAllow[k] = true
			out.Allow = append(out.Allow, a)
		}
	}
	return out, nil
}

func main() {
	var (
		flagRoot = flag.String("root", "./lexicon", "path to the fragment directory")
		out      = flag.String("out", "./internal/core/lexicon/lexicon.json", "output path or '-' for stdout")
		version  = flag.String("version", "", "version string stamped into the pack (e.g. v2026.08)")
		pretty   = flag.Bool("pretty", true, "pretty-print JSON")
		check    = flag.Bool("check", false, "validate the merged pack and exit without writing")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if strings.TrimSpace(*version) == "" {
		must(errors.New("-version is required (e.g. v2026.08)"))
	}

	obj, err := assemble(strings.TrimSpace(*flagRoot), *version)
	must(err)

	var enc []byte
	if *pretty {
		enc, err = json.MarshalIndent(obj, "", "  ")
	} else {
		enc, err = json.Marshal(obj)
	}
	must(err)

	// the merged pack must compile through the same loader the engine embeds;
	// this catches empty packs and allow terms that shadow entries
	pk, err := lexicon.Parse(enc)
	must(err)
	if *verbose || *check {
		_, _ = fmt.Fprintf(os.Stderr, "pack %s: %d entries, %d allow terms\n", pk.Version, len(pk.Entries), len(pk.Allow))
	}
	if *check {
		return
	}

	if *out == "-" {
		if _, err := os.Stdout.Write(enc); err != nil {
			must(err)
		}
		if _, err := os.Stdout.WriteString("\n"); err != nil {
			must(err)
		}
		return
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		must(err)
	}
	must(os.WriteFile(*out, enc, 0o644))
	if *verbose {
		_, _ = fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", *out, len(enc))
	}
}
