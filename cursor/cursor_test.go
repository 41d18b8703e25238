package cursor

import "testing"

func TestPointedAt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		steps int
		want  Kind
	}{
		{"start", "abc", 0, KindCodePoint},
		{"middle", "abc", 1, KindCodePoint},
		{"eof-at-len", "abc", 3, KindEof},
		{"eof-beyond", "abc", 10, KindEof},
		{"nowhere", "abc", -1, KindNowhere},
		{"nowhere-clamped", "abc", -10, KindNowhere},
		{"empty-is-eof", "", 0, KindEof},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.input)
			if tt.steps > 0 {
				c.Increase(tt.steps)
			} else if tt.steps < 0 {
				c.Decrease(-tt.steps)
			}
			if got := c.PointedAt().Kind; got != tt.want {
				t.Errorf("PointedAt().Kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointedAtCodePointValue(t *testing.T) {
	c := New("a\U0001F600b")
	if got := c.PointedAt().CodePoint; got != 'a' {
		t.Fatalf("got %q, want 'a'", got)
	}
	c.Increase(1)
	if got := c.PointedAt().CodePoint; got != 0x1F600 {
		t.Fatalf("got %#x, want emoji code point", got)
	}
	c.Increase(1)
	if got := c.PointedAt().CodePoint; got != 'b' {
		t.Fatalf("got %q, want 'b'", got)
	}
}

func TestSupplementaryPlaneIsOneStep(t *testing.T) {
	c := New("\U0001F600\U0001F601")
	if c.CodePointLen() != 2 {
		t.Fatalf("CodePointLen() = %d, want 2", c.CodePointLen())
	}
	c.Increase(1)
	if got := c.PointedAt().CodePoint; got != 0x1F601 {
		t.Fatalf("got %#x, want second emoji", got)
	}
}

func TestDoesRemainingStartWith(t *testing.T) {
	tests := []struct {
		input   string
		pattern string
		want    bool
	}{
		{"a//b", "/", true},
		{"a/b", "//", false},
		{"%1fz", "%d%d", true},
		{"%1gz", "%d%d", false},
		{"a%", "%d%d", false},
		{"ax", "x", true},
	}
	for _, tt := range tests {
		c := New(tt.input)
		if got := c.DoesRemainingStartWith(tt.pattern); got != tt.want {
			t.Errorf("DoesRemainingStartWith(%q) on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestDoesRemainingStartWithWindowsDriveLetter(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"C:/foo", true},
		{"C:", true},
		{"C|\\foo", true},
		{"C:x", false},
		{"1:/foo", false},
		{"C", false},
		{"", false},
	}
	for _, tt := range tests {
		c := New(tt.input)
		if got := c.DoesRemainingStartWithWindowsDriveLetter(); got != tt.want {
			t.Errorf("DoesRemainingStartWithWindowsDriveLetter(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIncreaseDecreaseRoundtrip(t *testing.T) {
	c := New("hello")
	c.Increase(3)
	c.Decrease(3)
	if got := c.PointedAt().CodePoint; got != 'h' {
		t.Fatalf("got %q, want 'h'", got)
	}
}

func TestReset(t *testing.T) {
	c := New("hello")
	c.Increase(4)
	c.Reset()
	if got := c.PointedAt().CodePoint; got != 'h' {
		t.Fatalf("got %q, want 'h' after Reset", got)
	}
}
