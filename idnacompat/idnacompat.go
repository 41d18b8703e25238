// Package idnacompat is a cheap Host-header sanitizer distinct from this
// module's own full URL parse. It exists for callers that just need to
// canonicalize a raw "Host:"-style string — truncate at the first
// offending byte, split off a port, and run a non-ASCII host through
// this module's own WHATWG host algorithm — without constructing a Value.
package idnacompat

import (
	"net"
	"strings"

	"github.com/badu/whaturl/host"
)

// ASCII truncates in at the first space or slash and splits off a port if
// present. A host that is already all ASCII is returned as it is, without
// going through host.ParseHost (so it is neither lowercased nor checked).
// A host with non-ASCII code points is parsed by host.ParseHost as a
// non-opaque host and rendered with Host.String. If that parse fails, the
// truncated input is returned unchanged rather than as an error, matching
// the "garbage in, garbage out" behavior of a Host-header sanitizer.
func ASCII(in string) string {
	if i := strings.IndexAny(in, " /"); i != -1 {
		in = in[:i]
	}

	h, port, err := net.SplitHostPort(in)
	if err != nil {
		a, ok := toASCII(in)
		if !ok {
			return in
		}
		return a
	}
	a, ok := toASCII(h)
	if !ok {
		return in
	}
	return net.JoinHostPort(a, port)
}

// Of is the host.Host-consuming counterpart of ASCII, for callers that
// have already parsed a host and just want its header-safe rendering.
func Of(h host.Host) string { return h.String() }

func toASCII(v string) (string, bool) {
	if isASCII(v) {
		return v, true
	}
	parsed, errs := host.ParseHost(v, false)
	if errs.HasFatal() {
		return "", false
	}
	return parsed.String(), true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
