// Package diag defines the closed set of validation diagnostics produced
// while parsing a URL or a host, and the severity that determines
// whether a diagnostic aborts parsing or is merely accumulated.
package diag

import "fmt"

// Severity classifies a Kind as either recoverable (Validation) or
// aborting (Fatal).
type Severity int

const (
	Validation Severity = iota
	Fatal
)

// Kind enumerates every diagnostic the parser and host parser can raise.
type Kind int

const (
	InvalidURLUnit Kind = iota
	SpecialSchemeMissingFollowingSolidus
	MissingSchemeNonRelativeURL
	InvalidReverseSolidus
	InvalidCredentials
	HostMissing
	HostInvalidCodePoint
	IPv6Unclosed
	IPv6InvalidCompression
	IPv6TooManyPieces
	IPv6MultipleCompression
	IPv4InIPv6InvalidCodePoint
	IPv4InIPv6TooManyPieces
	IPv4InIPv6OutOfRangePart
	IPv4InIPv6TooFewParts
	IPv6InvalidCodePoint
	IPv6TooFewPieces
	PortOutOfRange
	PortInvalid
	FileInvalidWindowsDriveLetter
	FileInvalidWindowsDriveLetterHost
	DomainToASCII
	DomainInvalidCodePoint
)

var names = map[Kind]string{
	InvalidURLUnit:                        "invalid-url-unit",
	SpecialSchemeMissingFollowingSolidus:  "special-scheme-missing-following-solidus",
	MissingSchemeNonRelativeURL:           "missing-scheme-non-relative-url",
	InvalidReverseSolidus:                 "invalid-reverse-solidus",
	InvalidCredentials:                    "invalid-credentials",
	HostMissing:                           "host-missing",
	HostInvalidCodePoint:                  "host-invalid-code-point",
	IPv6Unclosed:                          "ipv6-unclosed",
	IPv6InvalidCompression:                "ipv6-invalid-compression",
	IPv6TooManyPieces:                     "ipv6-too-many-pieces",
	IPv6MultipleCompression:               "ipv6-multiple-compression",
	IPv4InIPv6InvalidCodePoint:            "ipv4-in-ipv6-invalid-code-point",
	IPv4InIPv6TooManyPieces:               "ipv4-in-ipv6-too-many-pieces",
	IPv4InIPv6OutOfRangePart:              "ipv4-in-ipv6-out-of-range-part",
	IPv4InIPv6TooFewParts:                 "ipv4-in-ipv6-too-few-parts",
	IPv6InvalidCodePoint:                  "ipv6-invalid-code-point",
	IPv6TooFewPieces:                      "ipv6-too-few-pieces",
	PortOutOfRange:                        "port-out-of-range",
	PortInvalid:                           "port-invalid",
	FileInvalidWindowsDriveLetter:         "file-invalid-windows-drive-letter",
	FileInvalidWindowsDriveLetterHost:     "file-invalid-windows-drive-letter-host",
	DomainToASCII:                         "domain-to-ascii",
	DomainInvalidCodePoint:                "domain-invalid-code-point",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown-validation-error"
}

// fatalKinds is exactly the set spec'd as aborting parsing; every other
// Kind is Validation severity.
var fatalKinds = map[Kind]bool{
	MissingSchemeNonRelativeURL: true,
	HostMissing:                 true,
	IPv6Unclosed:                true,
	IPv6InvalidCompression:      true,
	IPv6TooManyPieces:           true,
	IPv6MultipleCompression:     true,
	IPv6TooFewPieces:            true,
	IPv6InvalidCodePoint:        true,
	IPv4InIPv6InvalidCodePoint:  true,
	IPv4InIPv6TooManyPieces:     true,
	IPv4InIPv6OutOfRangePart:    true,
	IPv4InIPv6TooFewParts:       true,
	PortOutOfRange:              true,
	PortInvalid:                 true,
	HostInvalidCodePoint:        true,
	DomainInvalidCodePoint:      true,
	DomainToASCII:               true,
}

// Severity reports whether k is Fatal or merely Validation.
func (k Kind) Severity() Severity {
	if fatalKinds[k] {
		return Fatal
	}
	return Validation
}

// Error is one raised diagnostic, carrying the Kind and, for a handful of
// kinds where a plain name is not enough context, a free-form detail.
type Error struct {
	Kind   Kind
	Detail string
}

func New(kind Kind) Error { return Error{Kind: kind} }

func Newf(kind Kind, format string, args ...any) Error {
	return Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e Error) IsFatal() bool { return e.Kind.Severity() == Fatal }

// Errors is an accumulated list of validation diagnostics, as produced by
// a single Parse call.
type Errors []Error

func (es Errors) HasFatal() bool {
	for _, e := range es {
		if e.IsFatal() {
			return true
		}
	}
	return false
}
