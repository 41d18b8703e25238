package idnacompat

import (
	"testing"

	"github.com/badu/whaturl/host"
)

func TestASCIIPassesThroughPlainHost(t *testing.T) {
	if got := ASCII("example.com"); got != "example.com" {
		t.Errorf("ASCII() = %q, want %q", got, "example.com")
	}
}

func TestASCIITruncatesAtSpaceOrSlash(t *testing.T) {
	if got := ASCII("example.com/evil"); got != "example.com" {
		t.Errorf("ASCII() = %q, want %q", got, "example.com")
	}
	if got := ASCII("example.com evil"); got != "example.com" {
		t.Errorf("ASCII() = %q, want %q", got, "example.com")
	}
}

func TestASCIIPreservesPort(t *testing.T) {
	if got := ASCII("example.com:8080"); got != "example.com:8080" {
		t.Errorf("ASCII() = %q, want %q", got, "example.com:8080")
	}
}

func TestASCIIPunycodesUnicodeHost(t *testing.T) {
	got := ASCII("bücher.example")
	if got != "xn--bcher-kva.example" {
		t.Errorf("ASCII() = %q, want %q", got, "xn--bcher-kva.example")
	}
}

func TestOfRendersParsedHost(t *testing.T) {
	h := host.NewDomain("xn--bcher-kva.example")
	if got := Of(h); got != "xn--bcher-kva.example" {
		t.Errorf("Of() = %q, want %q", got, "xn--bcher-kva.example")
	}
}
