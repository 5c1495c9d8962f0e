package visible

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBijection(t *testing.T) {
	seen := make(map[rune]bool, 256)
	for b := 0; b < 256; b++ {
		r := ToVisible(byte(b))
		require.Falsef(t, seen[r], "codepoint %U reused for byte %d", r, b)
		seen[r] = true

		got, err := ToByte(r)
		require.NoError(t, err)
		require.Equal(t, byte(b), got)
	}
	require.Len(t, seen, 256)
}

func TestNoWhitespaceOrControl(t *testing.T) {
	for b := 0; b < 256; b++ {
		r := ToVisible(byte(b))
		switch {
		case r == ' ':
			t.Errorf("byte %d mapped to ASCII space", b)
		case r <= 0x1F || (r >= 0x7F && r <= 0xA0) || r == 0xAD:
			t.Errorf("byte %d mapped to control codepoint %U", b, r)
		}
	}
}

func TestToByteUnknown(t *testing.T) {
	_, err := ToByte(0x10FFFF)
	require.Error(t, err)
	var bad ErrBadVisible
	require.ErrorAs(t, err, &bad)
}

func TestKnownMappings(t *testing.T) {
	// Ġ (U+0120) is the canonical visible mapping of the ASCII space, 0x20.
	require.Equal(t, rune(0x0120), ToVisible(0x20))
	b, err := ToByte(0x0120)
	require.NoError(t, err)
	require.Equal(t, byte(0x20), b)

	// Printable ASCII maps to itself.
	require.Equal(t, rune('A'), ToVisible('A'))
}
