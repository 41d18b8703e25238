// Package percent implements the WHATWG percent-encode/percent-decode
// codec: encode operates on the UTF-8 bytes of its input and is
// parameterized by a charset.Set of bytes (by code-point value) that must
// be escaped; decode operates on raw UTF-8 bytes and passes through any
// malformed escape unchanged.
package percent

import (
	"strings"

	"github.com/badu/whaturl/charset"
)

const upperHex = "0123456789ABCDEF"

// Encode percent-encodes the UTF-8 bytes of input. Any byte in set is
// replaced by "%XX" (uppercase hex). If spaceAsPlus is true, a literal
// space byte (0x20) is emitted as '+' instead of being tested against set.
func Encode(input string, set *charset.Set, spaceAsPlus bool) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if spaceAsPlus && c == 0x20 {
			b.WriteByte('+')
			continue
		}
		if set.Contains(rune(c)) {
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0xF])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EncodeCodePoint is Encode(string(r), set, false).
func EncodeCodePoint(r rune, set *charset.Set) string {
	return Encode(string(r), set, false)
}

// Decode percent-decodes the UTF-8 bytes of input. A '%' not followed by
// two ASCII hex digits is passed through unchanged, and scanning resumes
// at the next byte (not skipped as part of a failed escape).
func Decode(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c != '%' || i+2 >= len(input) || !isHex(input[i+1]) || !isHex(input[i+2]) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte(hexVal(input[i+1])<<4 | hexVal(input[i+2]))
		i += 2
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
