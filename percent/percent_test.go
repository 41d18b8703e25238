package percent

import (
	"testing"

	"github.com/badu/whaturl/charset"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		set   *charset.Set
	}{
		{"hello world", charset.Query},
		{"/a/b c/d?e#f", charset.Path},
		{"user:pa ss@word", charset.Userinfo},
		{"", charset.Fragment},
		{"héllo", charset.Path},
	}
	for _, tt := range tests {
		encoded := Encode(tt.input, tt.set, false)
		if got := Decode(encoded); got != tt.input {
			t.Errorf("Decode(Encode(%q)) = %q, want %q", tt.input, got, tt.input)
		}
	}
}

func TestEncodeUppercaseHex(t *testing.T) {
	if got := Encode(" ", charset.Query, false); got != "%20" {
		t.Errorf("Encode(space) = %q, want %%20", got)
	}
}

func TestEncodeSpaceAsPlus(t *testing.T) {
	if got := Encode("a b", charset.Query, true); got != "a+b" {
		t.Errorf("Encode(space-as-plus) = %q, want %q", got, "a+b")
	}
}

func TestDecodePassesThroughMalformedEscapes(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"100%", "100%"},
		{"100%2", "100%2"},
		{"100%2x", "100%2x"},
		{"100%25", "100%"},
		{"a%zzb", "a%zzb"},
	}
	for _, tt := range tests {
		if got := Decode(tt.input); got != tt.want {
			t.Errorf("Decode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEncodeCodePoint(t *testing.T) {
	if got := EncodeCodePoint(' ', charset.Query); got != "%20" {
		t.Errorf("EncodeCodePoint(space) = %q, want %%20", got)
	}
	if got := EncodeCodePoint('a', charset.Query); got != "a" {
		t.Errorf("EncodeCodePoint('a') = %q, want %q", got, "a")
	}
}
