// Package whaturl parses and serializes URLs per the WHATWG URL Standard:
// the state-machine parser, host parsing (IPv6, opaque,
// IDNA domains), percent-encoding, and Punycode, wired together into a
// single Parse entry point that produces an immutable Value or a list of
// validation diagnostics.
package whaturl

import (
	"strconv"
	"strings"

	"github.com/badu/whaturl/host"
)

// Value is the immutable 7-tuple a successful parse produces: scheme,
// credentials, host, port, path, query, fragment. All fields are set
// once during parsing.
type Value struct {
	Scheme   string
	Username string
	Password string
	Host     *host.Host
	Port     *uint16
	Path     Path
	Query    *string
	Fragment *string
}

// Equal reports whether v and other have structurally equal fields.
func (v Value) Equal(other Value) bool {
	if v.Scheme != other.Scheme || v.Username != other.Username || v.Password != other.Password {
		return false
	}
	if !hostEqual(v.Host, other.Host) || !portEqual(v.Port, other.Port) {
		return false
	}
	if !pathEqual(v.Path, other.Path) {
		return false
	}
	return stringPtrEqual(v.Query, other.Query) && stringPtrEqual(v.Fragment, other.Fragment)
}

func hostEqual(a, b *host.Host) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func portEqual(a, b *uint16) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func pathEqual(a, b Path) bool {
	if a.opaque != b.opaque {
		return false
	}
	if a.opaque {
		return a.single == b.single
	}
	if len(a.segments) != len(b.segments) {
		return false
	}
	for i := range a.segments {
		if a.segments[i] != b.segments[i] {
			return false
		}
	}
	return true
}

// String serializes v per the WHATWG URL serializer: scheme, then, if a
// host is present, "//" plus optional credentials plus host plus
// optional port; then the path (with a disambiguating "/." prefix when
// the host is absent and the path would otherwise look like an
// authority); then "?query" and "#fragment" when present.
func (v Value) String() string {
	var b strings.Builder
	b.WriteString(v.Scheme)
	b.WriteByte(':')

	if v.Host != nil {
		b.WriteString("//")
		if v.Username != "" || v.Password != "" {
			b.WriteString(v.Username)
			if v.Password != "" {
				b.WriteByte(':')
				b.WriteString(v.Password)
			}
			b.WriteByte('@')
		}
		b.WriteString(v.Host.String())
		if v.Port != nil {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(int(*v.Port)))
		}
	}

	if v.Host == nil && !v.Path.opaque && len(v.Path.segments) > 1 && v.Path.segments[0] == "" {
		b.WriteString("/.")
	}

	b.WriteString(v.Path.String())

	if v.Query != nil {
		b.WriteByte('?')
		b.WriteString(*v.Query)
	}
	if v.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*v.Fragment)
	}

	return b.String()
}
