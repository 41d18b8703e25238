package host

import (
	"strconv"
	"strings"

	"github.com/badu/whaturl/cursor"
	"github.com/badu/whaturl/diag"
)

// ipv6String implements the WHATWG IPv6 serializer: find the first
// longest run of two-or-more zero pieces and collapse it to "::",
// writing every other piece as lowercase hex.
func ipv6String(pieces [8]uint16) string {
	compress, runLen := longestZeroRun(pieces)
	if runLen <= 1 {
		compress = -1
	}

	var b strings.Builder
	ignoreZero := false
	for i := 0; i < 8; i++ {
		if ignoreZero {
			if pieces[i] == 0 {
				continue
			}
			ignoreZero = false
		}
		if i == compress {
			if i == 0 {
				b.WriteString("::")
			} else {
				b.WriteByte(':')
			}
			ignoreZero = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(pieces[i]), 16))
		if i != 7 {
			b.WriteByte(':')
		}
	}
	return b.String()
}

// longestZeroRun finds the longest run of zero pieces (ties broken by
// the first, per the WHATWG compression rule), returning (-1, 0) if there
// are no zero pieces. A run of length 1 is still returned; ipv6String
// does not compress it.
func longestZeroRun(pieces [8]uint16) (start, length int) {
	bestStart, bestLen := -1, 0
	curStart, curLen := -1, 0
	for i := 0; i < 8; i++ {
		if pieces[i] == 0 {
			if curStart == -1 {
				curStart = i
			}
			curLen++
		} else {
			if curLen > bestLen {
				bestStart, bestLen = curStart, curLen
			}
			curStart, curLen = -1, 0
		}
	}
	if curLen > bestLen {
		bestStart, bestLen = curStart, curLen
	}
	return bestStart, bestLen
}

// parseIPv6 parses the contents of a "[...]" host literal (brackets
// already stripped).
func parseIPv6(input string) (IPAddress, diag.Errors) {
	var errs diag.Errors
	var pieces [8]uint16
	pieceIndex := 0
	compress := -1

	c := cursor.New(input)

	if c.PointedAt().Is(':') {
		c.Increase(1)
		if !c.PointedAt().Is(':') {
			return IPAddress{}, append(errs, diag.New(diag.IPv6InvalidCompression))
		}
		c.Increase(1)
		pieceIndex++
		compress = pieceIndex
	}

	for !c.PointedAt().IsEof() {
		if pieceIndex >= 8 {
			return IPAddress{}, append(errs, diag.New(diag.IPv6TooManyPieces))
		}

		if c.PointedAt().Is(':') {
			if compress != -1 {
				return IPAddress{}, append(errs, diag.New(diag.IPv6MultipleCompression))
			}
			c.Increase(1)
			pieceIndex++
			compress = pieceIndex
			continue
		}

		value, length := readHex(c)
		if c.PointedAt().Is('.') {
			if length == 0 {
				return IPAddress{}, append(errs, diag.New(diag.IPv4InIPv6InvalidCodePoint))
			}
			c.Decrease(length)
			if pieceIndex > 6 {
				return IPAddress{}, append(errs, diag.New(diag.IPv4InIPv6TooManyPieces))
			}
			ipv4Errs := parseEmbeddedIPv4(c, &pieces, &pieceIndex)
			errs = append(errs, ipv4Errs...)
			if errs.HasFatal() {
				return IPAddress{}, errs
			}
			break
		} else if c.PointedAt().Is(':') {
			c.Increase(1)
			if c.PointedAt().IsEof() {
				return IPAddress{}, append(errs, diag.New(diag.IPv6InvalidCodePoint))
			}
		} else if !c.PointedAt().IsEof() {
			return IPAddress{}, append(errs, diag.New(diag.IPv6InvalidCodePoint))
		}

		pieces[pieceIndex] = value
		pieceIndex++
	}

	if compress != -1 {
		shiftForCompression(&pieces, compress, pieceIndex)
	} else if pieceIndex != 8 {
		return IPAddress{}, append(errs, diag.New(diag.IPv6TooFewPieces))
	}

	return IPAddress{Kind: IPv6Kind, V6: pieces}, errs
}

// readHex reads up to four ASCII hex digits, returning their value and
// how many digits were consumed.
func readHex(c *cursor.Cursor) (uint16, int) {
	var value uint16
	length := 0
	for length < 4 {
		p := c.PointedAt()
		if !p.IsCodePoint() {
			break
		}
		d, ok := hexDigit(p.CodePoint)
		if !ok {
			break
		}
		value = value*16 + uint16(d)
		length++
		c.Increase(1)
	}
	return value, length
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

func parseEmbeddedIPv4(c *cursor.Cursor, pieces *[8]uint16, pieceIndex *int) diag.Errors {
	var errs diag.Errors
	numbersCount := 0

	for {
		var numberValue uint16 = 0
		digitsSeen := 0
		for {
			p := c.PointedAt()
			if !p.IsCodePoint() || p.CodePoint < '0' || p.CodePoint > '9' {
				break
			}
			d := uint16(p.CodePoint - '0')
			if digitsSeen == 0 {
				numberValue = d
			} else {
				numberValue = numberValue*10 + d
			}
			digitsSeen++
			if numberValue > 255 {
				errs = append(errs, diag.New(diag.IPv4InIPv6OutOfRangePart))
				return errs
			}
			c.Increase(1)
		}
		if digitsSeen == 0 {
			errs = append(errs, diag.New(diag.IPv4InIPv6InvalidCodePoint))
			return errs
		}

		numbersCount++
		packIPv4Part(pieces, *pieceIndex, numbersCount, numberValue)

		if numbersCount == 4 {
			if !c.PointedAt().IsEof() {
				errs = append(errs, diag.New(diag.IPv4InIPv6InvalidCodePoint))
			}
			*pieceIndex += 2
			return errs
		}

		if !c.PointedAt().Is('.') {
			errs = append(errs, diag.New(diag.IPv4InIPv6TooFewParts))
			return errs
		}
		c.Increase(1)
	}
}

// packIPv4Part folds the n-th (1-indexed) decimal part of an embedded
// IPv4 address into pieces, two parts per 16-bit piece:
// piece = piece*0x100 + part.
func packIPv4Part(pieces *[8]uint16, pieceIndex, n int, part uint16) {
	idx := pieceIndex + (n-1)/2
	if n%2 == 1 {
		pieces[idx] = part
	} else {
		pieces[idx] = pieces[idx]*0x100 + part
	}
}

func shiftForCompression(pieces *[8]uint16, compress, pieceIndex int) {
	swaps := pieceIndex - compress
	if swaps == 0 {
		return
	}
	for i := 0; i < swaps; i++ {
		pieces[7-i], pieces[compress+swaps-1-i] = pieces[compress+swaps-1-i], pieces[7-i]
	}
}
