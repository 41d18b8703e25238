package charset

import "testing"

func TestBuilderMergesAdjacentAndOverlapping(t *testing.T) {
	s := NewBuilder().
		AddRange('a', 'c').
		AddRange('d', 'f'). // adjacent to the previous range
		AddRange('e', 'z'). // overlaps
		Build()

	if len(s.ranges) != 1 {
		t.Fatalf("expected one merged range, got %d: %v", len(s.ranges), s.ranges)
	}
	if s.ranges[0] != (rangeEntry{'a', 'z'}) {
		t.Fatalf("unexpected merged range: %v", s.ranges[0])
	}
}

func TestSetContains(t *testing.T) {
	s := NewBuilder().AddRange('a', 'f').AddCodePoint('z').Build()

	for _, r := range []rune{'a', 'c', 'f', 'z'} {
		if !s.Contains(r) {
			t.Errorf("expected %q to be contained", r)
		}
	}
	for _, r := range []rune{'g', 'y', 0} {
		if s.Contains(r) {
			t.Errorf("expected %q to not be contained", r)
		}
	}
}

func TestC0Control(t *testing.T) {
	for _, r := range []rune{0x00, 0x1F, 0x7F, 0x80, 0x10FFFF} {
		if !C0Control.Contains(r) {
			t.Errorf("expected C0Control to contain %#x", r)
		}
	}
	for _, r := range []rune{0x20, 0x7E} {
		if C0Control.Contains(r) {
			t.Errorf("expected C0Control to exclude %#x", r)
		}
	}
}

func TestSetHierarchy(t *testing.T) {
	// Every set is built as a superset of the previous one; spot-check the
	// chain so a future edit that breaks the hierarchy is caught.
	for _, r := range []rune{0x00, 0x1F, 0x7F} {
		if !Fragment.Contains(r) || !Query.Contains(r) || !Path.Contains(r) || !Userinfo.Contains(r) {
			t.Errorf("expected all sets to inherit C0Control at %#x", r)
		}
	}
	if !SpecialQuery.Contains('\'') || Query.Contains('\'') {
		t.Error("'\\'' should only be in SpecialQuery, not Query")
	}
	if !Path.Contains('?') || Query.Contains('?') {
		t.Error("'?' should only be in Path (and above), not Query")
	}
	if !Userinfo.Contains('/') || Path.Contains('/') {
		t.Error("'/' should only be in Userinfo, not Path")
	}
}

func TestForbiddenHost(t *testing.T) {
	for _, r := range []rune{0x00, '\t', '\n', '\r', ' ', '#', '/', ':', '<', '>', '?', '@', '[', '\\', ']', '^', '|'} {
		if !ForbiddenHost.Contains(r) {
			t.Errorf("expected ForbiddenHost to contain %q", r)
		}
	}
	if ForbiddenHost.Contains('a') {
		t.Error("expected ForbiddenHost to exclude 'a'")
	}
}

func TestURLCodePoint(t *testing.T) {
	valid := []rune{'a', 'Z', '0', '!', '~', 0x00A0, 0x10FFFD}
	for _, r := range valid {
		if !URLCodePoint(r) {
			t.Errorf("expected %#x to be a URL code point", r)
		}
	}
	invalid := []rune{' ', '"', '<', 0xD800, 0xFFFE, 0x0099}
	for _, r := range invalid {
		if URLCodePoint(r) {
			t.Errorf("expected %#x to not be a URL code point", r)
		}
	}
}
