package host

import (
	"github.com/badu/whaturl/charset"
	"github.com/badu/whaturl/diag"
	"github.com/badu/whaturl/percent"
)

// parseOpaqueHost validates and percent-encodes a non-special-scheme
// host: no diagnostic here aborts parsing except a forbidden code
// point.
func parseOpaqueHost(input string) (string, diag.Errors) {
	var errs diag.Errors

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if charset.ForbiddenHost.Contains(r) {
			return "", append(errs, diag.New(diag.HostInvalidCodePoint))
		}
		if r == '%' {
			if !hasValidPercentEscape(runes, i) {
				errs = append(errs, diag.New(diag.InvalidURLUnit))
			}
			continue
		}
		if !charset.URLCodePoint(r) {
			errs = append(errs, diag.New(diag.InvalidURLUnit))
		}
	}

	return percent.Encode(input, charset.C0Control, false), errs
}

func hasValidPercentEscape(runes []rune, i int) bool {
	if i+2 >= len(runes) {
		return false
	}
	return isASCIIHexDigit(runes[i+1]) && isASCIIHexDigit(runes[i+2])
}

func isASCIIHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
