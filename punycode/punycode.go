// Package punycode implements the Bootstring encoding specified in RFC
// 3492, parameterized for IDNA (base 36, initial n=0x80, initial bias=72,
// skew=38, damp=700, tmin=1, tmax=26, delimiter '-').
package punycode

import (
	"errors"
	"strings"
)

const (
	base        = 36
	tMin        = 1
	tMax        = 26
	skew        = 38
	damp        = 700
	initialBias = 72
	initialN    = 0x80
	delimiter   = '-'
	maxRune     = 0x10FFFF
)

// ErrOverflow is returned when an intermediate value would exceed the
// range representable without wraparound.
var ErrOverflow = errors.New("punycode: overflow")

// ErrInvalidInput is returned when Decode is given input that does not
// correspond to a valid Bootstring encoding.
var ErrInvalidInput = errors.New("punycode: invalid input")

func adapt(delta, numPoints int, firstTime bool) int {
	if firstTime {
		delta /= damp
	} else {
		delta /= 2
	}
	delta += delta / numPoints
	k := 0
	for delta > ((base-tMin)*tMax)/2 {
		delta /= base - tMin
		k += base
	}
	return k + (base-tMin+1)*delta/(delta+skew)
}

// Encode converts a label containing arbitrary Unicode code points into
// its ASCII Bootstring encoding (without the "xn--" ACE prefix).
func Encode(label string) (string, error) {
	input := []rune(label)

	var out strings.Builder
	// Copy all basic (ASCII) code points through, in order.
	basicCount := 0
	for _, r := range input {
		if r < 0x80 {
			out.WriteRune(r)
			basicCount++
		}
	}
	if basicCount > 0 {
		out.WriteByte(delimiter)
	}

	n := initialN
	delta := 0
	bias := initialBias
	handled := basicCount

	for handled < len(input) {
		m := maxRune + 1
		for _, r := range input {
			if int(r) >= n && int(r) < m {
				m = int(r)
			}
		}

		if m-n > (maxRune-delta)/(handled+1) {
			return "", ErrOverflow
		}
		delta += (m - n) * (handled + 1)
		n = m

		for _, r := range input {
			if int(r) < n {
				delta++
				if delta < 0 {
					return "", ErrOverflow
				}
				continue
			}
			if int(r) > n {
				continue
			}
			q := delta
			for k := base; ; k += base {
				t := threshold(k, bias)
				if q < t {
					out.WriteByte(digitToBasic(q))
					break
				}
				out.WriteByte(digitToBasic(t + (q-t)%(base-t)))
				q = (q - t) / (base - t)
			}
			bias = adapt(delta, handled+1, handled == basicCount)
			delta = 0
			handled++
		}
		delta++
		n++
	}
	return out.String(), nil
}

func threshold(k, bias int) int {
	switch {
	case k <= bias+tMin:
		return tMin
	case k >= bias+tMax:
		return tMax
	default:
		return k - bias
	}
}

func digitToBasic(digit int) byte {
	if digit < 26 {
		return byte(digit + 'a')
	}
	return byte(digit - 26 + '0')
}

func basicToDigit(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	case c >= '0' && c <= '9':
		return int(c-'0') + 26, true
	default:
		return 0, false
	}
}

// Decode converts an ASCII Bootstring encoding (without the "xn--"
// prefix) back into its original Unicode code points.
func Decode(input string) (string, error) {
	n := initialN
	bias := initialBias
	out := []rune{}

	lastDelim := strings.LastIndexByte(input, delimiter)
	if lastDelim >= 0 {
		for i := 0; i < lastDelim; i++ {
			c := input[i]
			if c >= 0x80 {
				return "", ErrInvalidInput
			}
			out = append(out, rune(c))
		}
	}

	pos := lastDelim + 1
	i := 0
	for pos < len(input) {
		oldi := i
		w := 1
		for k := base; ; k += base {
			if pos >= len(input) {
				return "", ErrInvalidInput
			}
			digit, ok := basicToDigit(input[pos])
			pos++
			if !ok {
				return "", ErrInvalidInput
			}
			if digit > (maxRune-i)/w {
				return "", ErrOverflow
			}
			i += digit * w
			t := threshold(k, bias)
			if digit < t {
				break
			}
			if w > maxRune/(base-t) {
				return "", ErrOverflow
			}
			w *= base - t
		}
		bias = adapt(i-oldi, len(out)+1, oldi == 0)
		if i/(len(out)+1) > maxRune-n {
			return "", ErrOverflow
		}
		n += i / (len(out) + 1)
		i = i % (len(out) + 1)

		out = append(out, 0)
		copy(out[i+1:], out[i:])
		out[i] = rune(n)
		i++
	}
	return string(out), nil
}
