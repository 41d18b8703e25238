package whaturl

import "github.com/badu/whaturl/diag"

// preprocess strips a leading and trailing run of C0-control-or-space
// code points and removes every ASCII TAB/LF/CR/FF code point anywhere
// in the remainder, flagging invalid-url-unit for either transformation.
// Grounded on UrlParser.removeControlAndWhitespaceCharacters.
func preprocess(input string, errs *diag.Errors) string {
	if input == "" {
		return input
	}

	runes := []rune(input)

	start := 0
	for start < len(runes) && c0ControlOrSpace(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && c0ControlOrSpace(runes[end-1]) {
		end--
	}
	if start > 0 || end < len(runes) {
		*errs = append(*errs, diag.New(diag.InvalidURLUnit))
	}
	runes = runes[start:end]

	out := make([]rune, 0, len(runes))
	removed := false
	for _, r := range runes {
		if asciiTabOrNewline(r) {
			removed = true
			continue
		}
		out = append(out, r)
	}
	if removed {
		*errs = append(*errs, diag.New(diag.InvalidURLUnit))
	}

	return string(out)
}
