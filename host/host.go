// Package host implements the WHATWG host parser: IPv6 literals in
// brackets (with embedded IPv4 and zero-run compression), opaque hosts,
// and IDNA domains with an IPv4-dotted-decimal fallback.
package host

import (
	"strings"

	"github.com/badu/whaturl/charset"
	"github.com/badu/whaturl/diag"
	"github.com/badu/whaturl/idna"
	"github.com/badu/whaturl/percent"
)

// Kind discriminates the four host variants of the WHATWG URL Standard.
type Kind int

const (
	Domain Kind = iota
	IPAddr
	Opaque
	Empty
)

// Host is an immutable value: a Domain(string), an IPAddr (IPv4 or
// IPv6), an Opaque(string), or Empty.
type Host struct {
	Kind      Kind
	DomainVal string
	IP        IPAddress
	OpaqueVal string
}

func NewDomain(s string) Host { return Host{Kind: Domain, DomainVal: s} }
func NewIPAddress(ip IPAddress) Host { return Host{Kind: IPAddr, IP: ip} }
func NewOpaque(s string) Host { return Host{Kind: Opaque, OpaqueVal: s} }
func NewEmpty() Host { return Host{Kind: Empty} }

// String renders the host the way it must appear in a serialized URL.
func (h Host) String() string {
	switch h.Kind {
	case Domain:
		return h.DomainVal
	case IPAddr:
		if h.IP.Kind == IPv6Kind {
			return "[" + h.IP.String() + "]"
		}
		return h.IP.String()
	case Opaque:
		return h.OpaqueVal
	default:
		return ""
	}
}

// ParseHost parses input (already stripped of any leading/trailing
// bracket markers is NOT assumed: brackets are handled here) into a
// Host, appending any diagnostics raised along the way. When the
// returned Errors contains a fatal diagnostic the returned Host is the
// zero value and must be discarded by the caller.
func ParseHost(input string, isOpaque bool) (Host, diag.Errors) {
	var errs diag.Errors

	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			return Host{}, append(errs, diag.New(diag.IPv6Unclosed))
		}
		ip, ipErrs := parseIPv6(input[1 : len(input)-1])
		errs = append(errs, ipErrs...)
		if errs.HasFatal() {
			return Host{}, errs
		}
		return NewIPAddress(ip), errs
	}

	if isOpaque {
		result, opErrs := parseOpaqueHost(input)
		errs = append(errs, opErrs...)
		if errs.HasFatal() {
			return Host{}, errs
		}
		return NewOpaque(result), errs
	}

	decoded := percent.Decode(input)

	ascii, ok := idna.ToASCII(decoded, idna.Params{
		UseSTD3ASCIIRules: false,
		CheckBidi:         true,
		CheckHyphens:      false,
		VerifyDNSLength:   false,
	})
	if !ok {
		return Host{}, append(errs, diag.New(diag.DomainToASCII))
	}

	for _, r := range ascii {
		if charset.ForbiddenHost.Contains(r) || (r >= 0x00 && r <= 0x1F) || r == 0x7F || r == '%' {
			return Host{}, append(errs, diag.New(diag.DomainInvalidCodePoint))
		}
	}

	if endsInNumber(ascii) {
		if v4, ok := parseIPv4(ascii); ok {
			return NewIPAddress(IPAddress{Kind: IPv4Kind, V4: v4}), errs
		}
	}

	return NewDomain(ascii), errs
}

// endsInNumber reports whether the final label looks like it was meant
// to be an IPv4 address (all decimal digits, or a "0x"/"0X" hex literal),
// per the WHATWG "ends in a number" check that gates the IPv4 fallback.
func endsInNumber(domain string) bool {
	labels := strings.Split(domain, ".")
	last := labels[len(labels)-1]
	if last == "" && len(labels) > 1 {
		last = labels[len(labels)-2]
	}
	if last == "" {
		return false
	}
	if strings.HasPrefix(last, "0x") || strings.HasPrefix(last, "0X") {
		rest := last[2:]
		return rest != "" && isAllHex(rest)
	}
	return isAllDigits(last)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAllHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
