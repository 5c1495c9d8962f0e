// Package tokenizer wires the pretokenizer, byte<->visible map and BPE
// merge engine together into the encode/decode driver, and provides the
// inverse decoding path.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bytepair/tokenizer/internal/bpe"
	"github.com/bytepair/tokenizer/internal/pretoken"
	"github.com/bytepair/tokenizer/internal/visible"
	"github.com/bytepair/tokenizer/internal/vocab"
)

// Tokenizer ties one vocabulary/merges pair together for encode/decode.
// T is the vocabulary's token-id width (uint16 for r50k/p50k, uint32 for
// cl100k/o200k).
type Tokenizer[T vocab.Width] struct {
	vocab  *vocab.Vocabulary[T]
	merges *vocab.Merges
}

// New builds a Tokenizer from an already-loaded vocabulary and merges
// table. Callers thread the handles through explicitly (spec §9 prefers
// this over implicit global singletons); see internal/registry for the
// lazy, memoized loaders the CLI and ABI layers use.
func New[T vocab.Width](v *vocab.Vocabulary[T], m *vocab.Merges) *Tokenizer[T] {
	return &Tokenizer[T]{vocab: v, merges: m}
}

// initialSymbols grapheme-segments the visible-codepoint rendering of a
// pretoken chunk so that multi-byte visible codepoints (U+0100 and
// above) stay intact as single initial BPE symbols.
func initialSymbols(chunk []byte) []string {
	s := visible.Encode(chunk)

	var symbols []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		symbols = append(symbols, g.Str())
	}
	return symbols
}

// Encode tokenizes b to token ids (spec §4.5). It never errors: a
// post-merge symbol absent from the vocabulary (VocabMiss) falls back to
// that chunk's per-visible-codepoint ids, each of which is guaranteed
// present by the vocabulary invariants in spec §3.
func (t *Tokenizer[T]) Encode(b []byte) []T {
	var ids []T

	for _, chunk := range pretoken.Split(b) {
		symbols := initialSymbols(chunk)
		if len(symbols) == 0 {
			continue
		}

		whole := strings.Join(symbols, "")
		if id, ok := t.vocab.Lookup(whole); ok {
			ids = append(ids, id)
			continue
		}

		// merges.txt ranks are 50000 minus the line index, so older merges
		// carry higher ranks; bpe.Merge merges the lowest rank first, so the
		// ranks are negated to apply older merges first.
		merged := bpe.Merge(symbols, func(a, b string) (int, bool) {
			r, ok := t.merges.Rank(a, b)
			return -r, ok
		})
		ids = append(ids, t.emit(merged, symbols)...)
	}

	return ids
}

// emit looks up each merged symbol's token id, falling back to the
// chunk's original per-visible-codepoint symbols on any miss.
func (t *Tokenizer[T]) emit(merged, fallback []string) []T {
	ids := make([]T, 0, len(merged))
	for _, s := range merged {
		id, ok := t.vocab.Lookup(s)
		if !ok {
			return t.fallbackIDs(fallback)
		}
		ids = append(ids, id)
	}
	return ids
}

func (t *Tokenizer[T]) fallbackIDs(symbols []string) []T {
	ids := make([]T, 0, len(symbols))
	for _, s := range symbols {
		if id, ok := t.vocab.Lookup(s); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// ErrUnknownID is recorded (not returned as a hard error) when Decode
// encounters a token id absent from the vocabulary's reverse index. It
// is accumulated across a single Decode call; decoding continues by
// skipping the offending id.
type ErrUnknownID struct {
	ID any
}

func (e *ErrUnknownID) Error() string {
	return fmt.Sprintf("tokenizer: unknown token id %v", e.ID)
}

// Decode reconstructs the UTF-8 byte string for a sequence of token ids
// (spec §4.6). It always returns a byte slice; ids absent from the
// vocabulary are skipped and reported via the returned error slice
// rather than aborting decoding.
func (t *Tokenizer[T]) Decode(ids []T) ([]byte, []error) {
	var sb strings.Builder
	var errs []error

	for _, id := range ids {
		sym, ok := t.vocab.Reverse(id)
		if !ok {
			errs = append(errs, &ErrUnknownID{ID: id})
			continue
		}
		sb.WriteString(sym)
	}

	return decodeVisible(sb.String()), errs
}

// decodeVisible grapheme-segments a visible-codepoint string and maps
// each cluster back to its byte, falling back to the cluster's raw
// UTF-8 bytes for a cluster that isn't a single mapped visible codepoint
// (defensive: should not occur for well-formed vocabulary entries).
func decodeVisible(s string) []byte {
	out := make([]byte, 0, len(s))

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 1 {
			if b, err := visible.ToByte(runes[0]); err == nil {
				out = append(out, b)
				continue
			}
		}
		out = append(out, []byte(g.Str())...)
	}

	return out
}
