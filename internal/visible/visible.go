// Package visible implements the byte<->visible-codepoint bijection that
// lets raw bytes be rendered as printable keys in a BPE vocabulary.
//
// The mapping is the GPT-2 "bytes_to_unicode" scheme: the 188 printable,
// non-whitespace, non-control scalars in 0x21..=0x7E, 0xA1..=0xAC and
// 0xAE..=0xFF map to themselves; the remaining 68 bytes are assigned the
// next unused scalar starting at U+0100, in ascending byte order.
package visible

import "fmt"

// ErrBadVisible is returned by ToByte for a codepoint outside the image
// of ToVisible.
type ErrBadVisible rune

func (e ErrBadVisible) Error() string {
	return fmt.Sprintf("visible: codepoint %U is not a mapped byte", rune(e))
}

var (
	byteToRune [256]rune
	runeToByte = make(map[rune]byte, 256)
)

func inPrintableRange(b int) bool {
	return (b >= 0x21 && b <= 0x7E) || (b >= 0xA1 && b <= 0xAC) || (b >= 0xAE && b <= 0xFF)
}

func init() {
	next := rune(0x100)
	for b := 0; b < 256; b++ {
		var r rune
		if inPrintableRange(b) {
			r = rune(b)
		} else {
			r = next
			next++
		}
		byteToRune[b] = r
		runeToByte[r] = byte(b)
	}
}

// ToVisible returns the visible codepoint for a raw byte. Total over 0..=255.
func ToVisible(b byte) rune {
	return byteToRune[b]
}

// ToByte returns the byte that maps to the given visible codepoint, or
// ErrBadVisible if r is not in the image of ToVisible.
func ToByte(r rune) (byte, error) {
	b, ok := runeToByte[r]
	if !ok {
		return 0, ErrBadVisible(r)
	}
	return b, nil
}

// Encode renders raw bytes as their visible-codepoint string, one
// codepoint per input byte.
func Encode(b []byte) string {
	rs := make([]rune, len(b))
	for i, c := range b {
		rs[i] = ToVisible(c)
	}
	return string(rs)
}
