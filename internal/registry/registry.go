// Package registry provides the lazy, memoized, process-wide vocabulary
// and merges handles the ABI layer needs (spec §9: "lazy statics are
// acceptable as an optimization for the ABI layer"). The CLI uses the
// same handles; library code and the tokenizer's own tests build explicit
// handles with tokenizer.New and thread them through.
package registry

import (
	"path/filepath"
	"sync"

	"github.com/bytepair/tokenizer/internal/config"
	"github.com/bytepair/tokenizer/internal/tokenizer"
	"github.com/bytepair/tokenizer/internal/vocab"
)

// mergesOnce is shared by every vocabulary: a single process only ever
// needs one merges.txt, loaded once no matter how many vocabularies
// (r50k/p50k/cl100k/o200k) consult it.
var mergesOnce = sync.OnceValues(func() (*vocab.Merges, error) {
	return vocab.LoadMerges(filepath.Join(config.VocabDir(), "merges.txt"))
})

func loadNarrow(name string) (*tokenizer.Tokenizer[uint16], error) {
	m, err := mergesOnce()
	if err != nil {
		return nil, err
	}
	v, err := vocab.Load[uint16](filepath.Join(config.VocabDir(), name+".jsonl"))
	if err != nil {
		return nil, err
	}
	return tokenizer.New(v, m), nil
}

func loadWide(name string) (*tokenizer.Tokenizer[uint32], error) {
	m, err := mergesOnce()
	if err != nil {
		return nil, err
	}
	v, err := vocab.Load[uint32](filepath.Join(config.VocabDir(), name+".jsonl"))
	if err != nil {
		return nil, err
	}
	return tokenizer.New(v, m), nil
}

var (
	r50kOnce   = sync.OnceValues(func() (*tokenizer.Tokenizer[uint16], error) { return loadNarrow("r50k") })
	p50kOnce   = sync.OnceValues(func() (*tokenizer.Tokenizer[uint16], error) { return loadNarrow("p50k") })
	cl100kOnce = sync.OnceValues(func() (*tokenizer.Tokenizer[uint32], error) { return loadWide("cl100k") })
	o200kOnce  = sync.OnceValues(func() (*tokenizer.Tokenizer[uint32], error) { return loadWide("o200k") })
)

// R50k returns the process-wide r50k tokenizer, loading it on first use.
func R50k() (*tokenizer.Tokenizer[uint16], error) { return r50kOnce() }

// P50k returns the process-wide p50k tokenizer, loading it on first use.
func P50k() (*tokenizer.Tokenizer[uint16], error) { return p50kOnce() }

// Cl100k returns the process-wide cl100k tokenizer, loading it on first use.
func Cl100k() (*tokenizer.Tokenizer[uint32], error) { return cl100kOnce() }

// O200k returns the process-wide o200k tokenizer, loading it on first use.
func O200k() (*tokenizer.Tokenizer[uint32], error) { return o200kOnce() }
