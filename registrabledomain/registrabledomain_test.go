package registrabledomain

import (
	"testing"

	"github.com/badu/whaturl/host"
)

func TestOfSubdomain(t *testing.T) {
	got, err := Of(host.NewDomain("www.example.com"))
	if err != nil {
		t.Fatalf("Of: %v", err)
	}
	if got != "example.com" {
		t.Errorf("Of() = %q, want %q", got, "example.com")
	}
}

func TestOfRejectsNonDomainHost(t *testing.T) {
	ip := host.IPAddress{Kind: host.IPv4Kind, V4: 0x7F000001}
	if _, err := Of(host.NewIPAddress(ip)); err != ErrNotADomain {
		t.Errorf("Of(ip) error = %v, want ErrNotADomain", err)
	}
}
