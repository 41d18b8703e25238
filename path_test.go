package whaturl

import "testing"

func TestPathAppendNonOpaque(t *testing.T) {
	p := NewPath().append("foo").append("bar")
	if got, want := p.String(), "/foo/bar"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPathOpaqueAppendConcatenates(t *testing.T) {
	p := NewOpaquePath("a").append("b")
	if got, want := p.String(), "ab"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPathShortenKeepsNormalizedWindowsDriveLetter(t *testing.T) {
	p := Path{segments: []string{"C:"}}
	got := p.shorten("file")
	if len(got.Segments()) != 1 || got.Segments()[0] != "C:" {
		t.Errorf("shorten() = %v, want the drive letter kept", got.Segments())
	}
}

func TestPathShortenDropsLastSegmentOtherwise(t *testing.T) {
	p := Path{segments: []string{"a", "b", "c"}}
	got := p.shorten("http")
	if got.String() != "/a/b" {
		t.Errorf("shorten() = %q, want %q", got.String(), "/a/b")
	}
}

func TestPathCopyIsIndependent(t *testing.T) {
	p := Path{segments: []string{"a"}}
	c := p.copy()
	c = c.append("b")
	if len(p.Segments()) != 1 {
		t.Errorf("original path mutated: %v", p.Segments())
	}
	if c.String() != "/a/b" {
		t.Errorf("copy().append() = %q, want %q", c.String(), "/a/b")
	}
}

func TestIsNormalizedWindowsDriveLetter(t *testing.T) {
	if !isNormalizedWindowsDriveLetter("C:") {
		t.Error("C: should be a normalized drive letter")
	}
	if isNormalizedWindowsDriveLetter("C|") {
		t.Error("C| is a drive letter but not normalized")
	}
	if !isWindowsDriveLetter("C|") {
		t.Error("C| should be a drive letter")
	}
	if isWindowsDriveLetter("CC") {
		t.Error("CC should not be a drive letter")
	}
}
