package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bytepair/tokenizer/internal/visible"
)

func setupVocabDir(t *testing.T) {
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

	t.Setenv("BPETOK_VOCAB_DIR", dir)
}

func TestRunEncodeWritesDiagnosticLines(t *testing.T) {
	setupVocabDir(t)

	var out bytes.Buffer
	err := runEncode(strings.NewReader("hi\nbye\n"), &out, "r50k")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `[INFO][ENCODE]: "hi" ->`)
	require.Contains(t, lines[1], `[INFO][ENCODE]: "bye" ->`)
}

func TestRunEncodeDecodeRoundTrip(t *testing.T) {
	setupVocabDir(t)

	var encoded bytes.Buffer
	require.NoError(t, runEncode(strings.NewReader("hello"), &encoded, "r50k"))

	// Extract the bracketed id list from `[INFO][ENCODE]: "hello" -> [1, 2, 3]`
	text := encoded.String()
	tail := text[strings.Index(text, "->"):]
	ids := tail[strings.Index(tail, "["):]

	var decoded bytes.Buffer
	require.NoError(t, runDecode(strings.NewReader(ids), &decoded, "r50k"))
	require.Contains(t, decoded.String(), `"hello"`)
}

func TestRunEncodeUnknownVocab(t *testing.T) {
	setupVocabDir(t)
	var out bytes.Buffer
	err := runEncode(strings.NewReader("hi\n"), &out, "nope")
	require.Error(t, err)
}
