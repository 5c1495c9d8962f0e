package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bytepair/tokenizer/internal/visible"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	entries := make(map[string]int, 256)
	for b := 0; b < 256; b++ {
		entries[visible.Encode([]byte{byte(b)})] = b
	}
	line, err := json.Marshal(entries)
	require.NoError(t, err)

	for _, name := range []string{"r50k", "p50k", "cl100k", "o200k"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".jsonl"), line, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merges.txt"), []byte(""), 0o644))

	return dir
}

func TestRegistryLoadsOnce(t *testing.T) {
	t.Setenv("BPETOK_VOCAB_DIR", writeFixture(t))

	tok1, err := R50k()
	require.NoError(t, err)
	tok2, err := R50k()
	require.NoError(t, err)
	require.Same(t, tok1, tok2, "R50k must memoize the loaded tokenizer")

	ids := tok1.Encode([]byte("hi"))
	require.NotEmpty(t, ids)
	got, errs := tok1.Decode(ids)
	require.Empty(t, errs)
	require.Equal(t, "hi", string(got))
}

func TestRegistryWideVocabulary(t *testing.T) {
	t.Setenv("BPETOK_VOCAB_DIR", writeFixture(t))

	tok, err := Cl100k()
	require.NoError(t, err)
	ids := tok.Encode([]byte("ok"))
	got, errs := tok.Decode(ids)
	require.Empty(t, errs)
	require.Equal(t, "ok", string(got))
}
