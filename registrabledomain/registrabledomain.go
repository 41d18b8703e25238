// Package registrabledomain computes the registrable domain (eTLD+1) of
// a parsed host, using the public suffix list.
package registrabledomain

import (
	"errors"

	"golang.org/x/net/publicsuffix"

	"github.com/badu/whaturl/host"
)

// ErrNotADomain is returned when the host is not a Domain-kind host
// (e.g. an IP address or an opaque host), which has no registrable
// domain.
var ErrNotADomain = errors.New("registrabledomain: host is not a domain")

// Of returns the registrable domain (eTLD+1) of h, e.g. "example.com"
// for "www.example.com" or "example.co.uk" for "sub.example.co.uk".
func Of(h host.Host) (string, error) {
	if h.Kind != host.Domain {
		return "", ErrNotADomain
	}
	return publicsuffix.EffectiveTLDPlusOne(h.DomainVal)
}

// PublicSuffix returns the public suffix of h's domain and whether that
// suffix is found in the ICANN-managed section of the list (as opposed
// to a privately registered one).
func PublicSuffix(h host.Host) (suffix string, icann bool, err error) {
	if h.Kind != host.Domain {
		return "", false, ErrNotADomain
	}
	suffix, icann = publicsuffix.PublicSuffix(h.DomainVal)
	return suffix, icann, nil
}
