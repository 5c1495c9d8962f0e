// Package pretoken splits raw input bytes into the linguistically
// coherent chunks BPE merging operates on independently: contractions,
// letter runs, digit runs, punctuation runs and whitespace.
package pretoken

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// pattern is the canonical GPT-2 pretokenizer regex. dlclark/regexp2
// supports the (?!...) lookahead the original Python/fancy-regex pattern
// relies on, so it is used verbatim rather than patched around (see the
// teacher's rewritePatternForRE2, written for the stdlib RE2 engine,
// which cannot express lookahead at all).
const pattern = `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`

var re = mustCompile(pattern)

func mustCompile(p string) *regexp2.Regexp {
	// regexp2.None keeps .NET-style ordered alternation (first alternative
	// that matches wins), which is what the reference pattern assumes;
	// the RE2 option would switch to POSIX leftmost-longest semantics and
	// change which alternative wins on overlapping matches.
	re, err := regexp2.Compile(p, regexp2.None)
	if err != nil {
		// A fixed, hand-verified pattern failing to compile is a bug in
		// this package, not a runtime condition callers can recover from.
		panic(fmt.Sprintf("pretoken: fixed pattern failed to compile: %v", err))
	}
	return re
}

// Split partitions b into non-overlapping, non-empty, order-preserving
// chunks whose concatenation equals b.
func Split(b []byte) [][]byte {
	if len(b) == 0 {
		return nil
	}

	s := string(b)
	// regexp2 matches over the rune sequence, not raw UTF-8 bytes, so
	// Match.Index/Length are rune offsets: any gap has to be sliced out
	// of the rune sequence, not the string's byte indices, or a
	// multi-byte scalar before a match lands the cut mid-character. The
	// matched piece itself is taken from match.String() directly (as
	// the reference codec's own FindStringMatch/FindNextMatch loop
	// does), sidestepping the offset question entirely.
	runes := []rune(s)
	var chunks [][]byte

	m, _ := re.FindStringMatch(s)
	pos := 0
	for m != nil {
		start := m.Index
		end := m.Index + m.Length

		if start > pos {
			// Shouldn't happen for a total pattern over well-formed UTF-8,
			// but guard against an engine that leaves a gap rather than
			// silently dropping input runes.
			chunks = append(chunks, []byte(string(runes[pos:start])))
		}
		chunks = append(chunks, []byte(m.String()))
		pos = end

		next, _ := re.FindNextMatch(m)
		m = next
	}
	if pos < len(runes) {
		chunks = append(chunks, []byte(string(runes[pos:])))
	}

	return chunks
}
