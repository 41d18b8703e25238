// Package idna implements the UTS #46 ToASCII pipeline used by IDNA
// domain processing: map code points via a versioned table, normalize to
// NFC, split into labels, decode any xn-- label via Punycode, and
// validate each label.
package idna

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/badu/whaturl/punycode"
)

// capitalSharpS is U+1E9E LATIN CAPITAL LETTER SHARP S. mapStep handles
// it before consulting the mapping table: it becomes "ss" only under
// transitional processing; under non-transitional processing it passes
// through the map step unchanged.
const capitalSharpS = 0x1E9E

// Params mirrors the seven options of IDNA ToASCII.
type Params struct {
	UseSTD3ASCIIRules      bool
	CheckHyphens           bool
	CheckBidi              bool
	CheckJoiners           bool
	TransitionalProcessing bool
	IgnoreInvalidPunycode  bool
	VerifyDNSLength        bool
}

// ToASCII runs the full map -> normalize -> label-split -> punycode ->
// validate pipeline and returns the resulting ASCII domain, or ("",
// false) if mapping or any label failed validation.
//
// CheckBidi and CheckJoiners are accepted but not enforced (acknowledged
// non-goal).
func ToASCII(domain string, p Params) (string, bool) {
	mapped, ok := mapStep(domain, p)
	if !ok {
		return "", false
	}

	normalized := norm.NFC.String(mapped)
	labels := strings.Split(normalized, ".")

	ok = true
	for i, label := range labels {
		processed, labelOK := processLabel(label, p)
		labels[i] = processed
		if !labelOK {
			ok = false
		}
	}
	if !ok {
		return "", false
	}

	// Labels that were not already an ACE ("xn--") form but still carry
	// non-ASCII code points must be Punycode-encoded for the ASCII output.
	for i, label := range labels {
		if label == "" || strings.HasPrefix(label, "xn--") || isAllBasic(label) {
			continue
		}
		encoded, err := punycode.Encode(label)
		if err != nil {
			return "", false
		}
		labels[i] = "xn--" + encoded
	}

	result := strings.Join(labels, ".")
	if p.VerifyDNSLength {
		if len(result) < 1 || len(result) > 253 {
			return "", false
		}
		for _, l := range labels {
			if len(l) < 1 || len(l) > 63 {
				return "", false
			}
		}
	}
	return result, true
}

func lookupEntry(r rune) (Status, []rune) {
	e, found := currentMapper().lookup(r)
	if !found {
		return Valid, nil
	}
	return e.status, e.mapping
}

func mapStep(input string, p Params) (string, bool) {
	var b strings.Builder
	b.Grow(len(input))
	ok := true

	for _, r := range input {
		if r == capitalSharpS {
			if p.TransitionalProcessing {
				b.WriteString("ss")
			} else {
				b.WriteRune(r)
			}
			continue
		}

		status, mapping := lookupEntry(r)
		switch status {
		case Valid:
			b.WriteRune(r)
		case DisallowedSTD3Valid:
			if p.UseSTD3ASCIIRules {
				ok = false
			} else {
				b.WriteRune(r)
			}
		case Mapped:
			for _, m := range mapping {
				b.WriteRune(m)
			}
		case DisallowedSTD3Mapped:
			if p.UseSTD3ASCIIRules {
				ok = false
			} else {
				for _, m := range mapping {
					b.WriteRune(m)
				}
			}
		case Deviation:
			if p.TransitionalProcessing {
				for _, m := range mapping {
					b.WriteRune(m)
				}
			} else {
				b.WriteRune(r)
			}
		case Ignored:
			// dropped
		case Disallowed:
			ok = false
		}
	}
	return b.String(), ok
}

func isAllBasic(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return len(s) > 0
}

// processLabel decodes an xn-- label via Punycode (if present) and runs
// label validation, returning the label to use in the reassembled domain
// and whether the label is valid.
func processLabel(label string, p Params) (string, bool) {
	const acePrefix = "xn--"

	hadACEPrefix := strings.HasPrefix(label, acePrefix)
	validationTarget := label
	decodeFailedKept := false

	if hadACEPrefix {
		rest := label[len(acePrefix):]
		if !isAllBasic(rest) {
			return label, false
		}
		decoded, err := punycode.Decode(rest)
		switch {
		case err == nil:
			validationTarget = decoded
		case p.IgnoreInvalidPunycode:
			validationTarget = label
			decodeFailedKept = true
		default:
			return label, false
		}
	}

	if !validateLabel(validationTarget, decodeFailedKept, p) {
		return label, false
	}

	// An "xn--" label keeps its already-ASCII form in the reassembled
	// output; a non-ACE label is returned as-is and Punycode-encoded
	// later by the caller if it still carries non-ASCII code points.
	if hadACEPrefix {
		return label, true
	}
	return validationTarget, true
}

// validateLabel implements ToASCII pipeline step 5.
func validateLabel(label string, decodeFailedKept bool, p Params) bool {
	if !norm.NFC.IsNormalString(label) {
		return false
	}

	runes := []rune(label)
	if p.CheckHyphens {
		if len(runes) >= 4 && runes[2] == '-' && runes[3] == '-' {
			return false
		}
		if len(runes) > 0 && (runes[0] == '-' || runes[len(runes)-1] == '-') {
			return false
		}
	} else if decodeFailedKept {
		// The label still literally begins with "xn--" because Punycode
		// decoding failed and IgnoreInvalidPunycode kept the raw ACE form.
		return false
	}

	if strings.Contains(label, ".") {
		return false
	}
	if len(runes) > 0 && unicode.Is(unicode.M, runes[0]) {
		return false
	}

	for _, r := range runes {
		status, _ := lookupEntry(r)
		switch status {
		case Valid:
		case Deviation:
			if p.TransitionalProcessing {
				return false
			}
		default:
			return false
		}
	}
	return true
}
