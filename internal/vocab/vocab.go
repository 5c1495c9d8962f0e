// Package vocab loads and holds the vocabulary and merge-rank tables a
// BPE encoder/decoder needs. Each Load/LoadMerges call reads its file
// anew; internal/registry memoizes them for load-once use. Loaded tables
// are immutable and safe for concurrent reads.
package vocab

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Width is the token-id type: uint16 for r50k/p50k-class vocabularies,
// uint32 for cl100k/o200k-class ones.
type Width interface {
	~uint16 | ~uint32
}

// Vocabulary is the bijective symbol<->token-id map for one named
// vocabulary (r50k, p50k, cl100k, o200k), parameterized by id width
// rather than duplicated per vocabulary (see spec §9, "Duplicated
// vocabulary structures").
type Vocabulary[T Width] struct {
	forward *orderedmap.OrderedMap[string, T]
	reverse []string // indexed by token id; sparse entries are ""
}

// Lookup returns the token id for symbol, if present.
func (v *Vocabulary[T]) Lookup(symbol string) (T, bool) {
	return v.forward.Get(symbol)
}

// Reverse returns the symbol bytes for a token id, if present. A symbol
// is by definition one or more concatenated visible codepoints (spec
// §3), so an empty reverse slot unambiguously means "unassigned".
func (v *Vocabulary[T]) Reverse(id T) (string, bool) {
	i := int(id)
	if i < 0 || i >= len(v.reverse) {
		return "", false
	}
	s := v.reverse[i]
	return s, s != ""
}

// Len reports the number of entries in the vocabulary.
func (v *Vocabulary[T]) Len() int {
	return v.forward.Len()
}

// ErrTableLoadFailure wraps any failure to read or parse a persisted
// vocabulary or merges file (spec §7, TableLoadFailure). It is fatal at
// first use of the affected table.
type ErrTableLoadFailure struct {
	Path string
	Err  error
}

func (e *ErrTableLoadFailure) Error() string {
	return fmt.Sprintf("vocab: failed to load %s: %v", e.Path, e.Err)
}

func (e *ErrTableLoadFailure) Unwrap() error { return e.Err }

// Load reads a <name>.jsonl vocabulary file: each line is a JSON object
// mapping one or more symbol strings (in the visible-codepoint alphabet)
// to token ids; all entries across all lines form the vocabulary.
// Insertion order is preserved across lines, matching the ordered-map
// data model of spec §3.
func Load[T Width](path string) (*Vocabulary[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrTableLoadFailure{Path: path, Err: err}
	}

	forward := orderedmap.New[string, T]()
	var maxID T

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		entries := orderedmap.New[string, T]()
		if err := json.Unmarshal(line, entries); err != nil {
			return nil, &ErrTableLoadFailure{Path: path, Err: fmt.Errorf("malformed vocab line %q: %w", line, err)}
		}

		for pair := entries.Oldest(); pair != nil; pair = pair.Next() {
			forward.Set(pair.Key, pair.Value)
			if pair.Value > maxID {
				maxID = pair.Value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ErrTableLoadFailure{Path: path, Err: err}
	}

	reverse := make([]string, int(maxID)+1)
	for pair := forward.Oldest(); pair != nil; pair = pair.Next() {
		reverse[int(pair.Value)] = pair.Key
	}

	return &Vocabulary[T]{forward: forward, reverse: reverse}, nil
}

// Merges is the pair-rank table loaded from merges.txt. Pair keys are
// the plain concatenation of the two symbols (no separator), matching
// the reference merges.txt line format and the reference decoder's
// `MERGES.get(&pair.concat())` lookup.
type Merges struct {
	rank map[string]int
}

// Rank returns the merge rank for the pair (a, b): 50000 minus the
// pair's line index in merges.txt, so older merges have higher ranks.
// Its signature matches internal/bpe.RankFunc, which merges the lowest
// rank first; the tokenizer negates these ranks before merging.
func (m *Merges) Rank(a, b string) (int, bool) {
	r, ok := m.rank[a+b]
	return r, ok
}

// LoadMerges reads merges.txt: line i (0-based) is the plain
// concatenation of a merge's two pieces (e.g. "lo" for merging "l"+"o")
// and is assigned rank 50000-i, so earlier lines (older merges) win.
// Blank lines and lines starting with "#" are skipped without affecting
// line numbering of surrounding entries' ranks, matching the reference
// format's comment header.
func LoadMerges(path string) (*Merges, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrTableLoadFailure{Path: path, Err: err}
	}

	rank := make(map[string]int)
	i := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rank[line] = 50000 - i
		i++
	}

	return &Merges{rank: rank}, nil
}
