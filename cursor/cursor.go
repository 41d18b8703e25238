// Package cursor implements a random-access, bidirectional cursor over a
// code-point sequence, with the small lookahead pattern language the URL
// parsing state machine needs (literal code points and "%d" for an ASCII
// hex digit).
package cursor

// Kind distinguishes the three states a Cursor can be pointed at.
type Kind int

const (
	// KindCodePoint means the cursor addresses a valid code point.
	KindCodePoint Kind = iota
	// KindEof means the cursor is at or past the end of the input.
	KindEof
	// KindNowhere means the cursor was decreased below index 0.
	KindNowhere
)

// PointedAt is the value returned by Cursor.PointedAt.
type PointedAt struct {
	Kind      Kind
	CodePoint rune
}

func (p PointedAt) IsCodePoint() bool { return p.Kind == KindCodePoint }
func (p PointedAt) IsEof() bool       { return p.Kind == KindEof }

// Is reports whether the cursor is pointed at the given code point.
func (p PointedAt) Is(r rune) bool { return p.Kind == KindCodePoint && p.CodePoint == r }

// IsAnyOf reports whether the cursor is pointed at one of the given code points.
func (p PointedAt) IsAnyOf(rs ...rune) bool {
	if p.Kind != KindCodePoint {
		return false
	}
	for _, r := range rs {
		if p.CodePoint == r {
			return true
		}
	}
	return false
}

// Cursor walks a code-point sequence. The sequence is decoded to runes once
// at construction, so every subsequent step is a code-point step even for
// supplementary-plane input.
type Cursor struct {
	runes []rune
	index int
}

// New constructs a Cursor over s, positioned at the first code point.
func New(s string) *Cursor {
	return &Cursor{runes: []rune(s), index: 0}
}

// PointedAt reports what the cursor currently addresses.
func (c *Cursor) PointedAt() PointedAt {
	switch {
	case c.index < 0:
		return PointedAt{Kind: KindNowhere}
	case c.index >= len(c.runes):
		return PointedAt{Kind: KindEof}
	default:
		return PointedAt{Kind: KindCodePoint, CodePoint: c.runes[c.index]}
	}
}

// Increase moves the cursor forward by n code points, clamping at Eof.
func (c *Cursor) Increase(n int) { c.move(n) }

// Decrease moves the cursor backward by n code points, clamping at Nowhere.
func (c *Cursor) Decrease(n int) { c.move(-n) }

func (c *Cursor) move(n int) {
	next := c.index + n
	if next < -1 {
		next = -1
	}
	if next > len(c.runes) {
		next = len(c.runes)
	}
	c.index = next
}

// Reset returns the cursor to index 0.
func (c *Cursor) Reset() { c.index = 0 }

// Index returns the current code-point index.
func (c *Cursor) Index() int { return c.index }

// CodePointLen returns the number of code points in the input.
func (c *Cursor) CodePointLen() int { return len(c.runes) }

type patternToken struct {
	hexDigit bool
	literal  rune
}

func parsePattern(pattern string) []patternToken {
	rs := []rune(pattern)
	toks := make([]patternToken, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		if rs[i] == '%' && i+1 < len(rs) && rs[i+1] == 'd' {
			toks = append(toks, patternToken{hexDigit: true})
			i++
			continue
		}
		toks = append(toks, patternToken{literal: rs[i]})
	}
	return toks
}

// DoesRemainingStartWith reports whether the code points strictly after the
// current position match pattern. Pattern is a literal string except for
// the two-character sequence "%d", which matches one ASCII hex digit — the
// state machine only ever uses this to check for a valid percent-escape
// ("%d%d" after a '%'), which per WHATWG requires two hex digits.
func (c *Cursor) DoesRemainingStartWith(pattern string) bool {
	toks := parsePattern(pattern)
	start := c.index + 1
	if start < 0 || start+len(toks) > len(c.runes) {
		return false
	}
	for i, t := range toks {
		r := c.runes[start+i]
		if t.hexDigit {
			if !isASCIIHexDigit(r) {
				return false
			}
		} else if r != t.literal {
			return false
		}
	}
	return true
}

// DoesRemainingStartWithWindowsDriveLetter tests, starting at the current
// code point (inclusive): an ASCII alpha, then ':' or '|', then — if a
// third code point exists — one of '/', '\\', '?', '#'.
func (c *Cursor) DoesRemainingStartWithWindowsDriveLetter() bool {
	if c.index < 0 {
		return false
	}
	remaining := len(c.runes) - c.index
	if remaining < 2 {
		return false
	}
	if !isASCIIAlpha(c.runes[c.index]) {
		return false
	}
	second := c.runes[c.index+1]
	if second != ':' && second != '|' {
		return false
	}
	if remaining == 2 {
		return true
	}
	switch c.runes[c.index+2] {
	case '/', '\\', '?', '#':
		return true
	default:
		return false
	}
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
