package idna

import "testing"

func TestLoadMapperParsesEmbeddedTable(t *testing.T) {
	m, err := loadMapper(tableCSV)
	if err != nil {
		t.Fatalf("loadMapper: %v", err)
	}
	if len(m.entries) == 0 {
		t.Fatal("expected at least one entry")
	}
	for i := 1; i < len(m.entries); i++ {
		if m.entries[i].lo <= m.entries[i-1].hi {
			t.Fatalf("entries not disjoint/sorted at index %d: %v, %v", i, m.entries[i-1], m.entries[i])
		}
	}
}

func TestMapperLookupUppercaseIsMapped(t *testing.T) {
	m, err := loadMapper(tableCSV)
	if err != nil {
		t.Fatalf("loadMapper: %v", err)
	}
	e, found := m.lookup('A')
	if !found {
		t.Fatal("expected 'A' to be found")
	}
	if e.status != Mapped || string(e.mapping) != "a" {
		t.Errorf("lookup('A') = %+v, want Mapped -> 'a'", e)
	}
}

func TestMapperLookupOutsideTableDefaultsAbsent(t *testing.T) {
	m, err := loadMapper(tableCSV)
	if err != nil {
		t.Fatalf("loadMapper: %v", err)
	}
	if _, found := m.lookup(0x4E2D); found { // a CJK code point not in the curated table
		t.Error("expected CJK code point to be absent from the curated table (defaults to Valid by the caller)")
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	if _, err := parseStatus("bogus"); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestParseCodePointsSingle(t *testing.T) {
	lo, hi, err := parseCodePoints("0041")
	if err != nil {
		t.Fatalf("parseCodePoints: %v", err)
	}
	if lo != 0x0041 || hi != 0x0041 {
		t.Errorf("parseCodePoints(%q) = (%x, %x), want (41, 41)", "0041", lo, hi)
	}
}

func TestParseCodePointsRange(t *testing.T) {
	lo, hi, err := parseCodePoints("0041..005a")
	if err != nil {
		t.Fatalf("parseCodePoints: %v", err)
	}
	if lo != 0x0041 || hi != 0x005a {
		t.Errorf("parseCodePoints(%q) = (%x, %x), want (41, 5a)", "0041..005a", lo, hi)
	}
}
