package idna

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Status is the disposition UTS #46 assigns to a code point during the
// map step of ToASCII.
type Status int

const (
	// Valid code points pass through unchanged.
	Valid Status = iota
	// Ignored code points are dropped.
	Ignored
	// Mapped code points are replaced by their Mapping.
	Mapped
	// Deviation code points are replaced by Mapping only when transitional
	// processing is requested; otherwise they pass through.
	Deviation
	// Disallowed code points always fail mapping.
	Disallowed
	// DisallowedSTD3Valid code points pass through unless use_std3_ascii_rules
	// is set, in which case they are disallowed.
	DisallowedSTD3Valid
	// DisallowedSTD3Mapped code points are mapped unless use_std3_ascii_rules
	// is set, in which case they are disallowed.
	DisallowedSTD3Mapped
)

func parseStatus(s string) (Status, error) {
	switch s {
	case "valid":
		return Valid, nil
	case "ignored":
		return Ignored, nil
	case "mapped":
		return Mapped, nil
	case "deviation":
		return Deviation, nil
	case "disallowed":
		return Disallowed, nil
	case "disallowed_std3_valid":
		return DisallowedSTD3Valid, nil
	case "disallowed_std3_mapped":
		return DisallowedSTD3Mapped, nil
	default:
		return 0, fmt.Errorf("idna: unknown status %q", s)
	}
}

// entry is one row of the mapping table: an inclusive code point range
// with a single status and an optional replacement mapping (which only
// ever applies to single-code-point entries in this table).
type entry struct {
	lo, hi  rune
	status  Status
	mapping []rune
}

//go:embed idnatables/idna-15.1.0.csv
var tableCSV string

type mapper struct {
	entries []entry // sorted by lo, disjoint
}

var (
	tableOnce sync.Once
	table     *mapper
	tableErr  error
)

// currentMapper returns the process-wide mapping table, parsing the
// embedded CSV on first use. A malformed embedded table is a build-time
// bug, not a caller error, so failure panics rather than threading a
// load error through every ToASCII call.
func currentMapper() *mapper {
	tableOnce.Do(func() {
		table, tableErr = loadMapper(tableCSV)
		if tableErr != nil {
			panic(fmt.Sprintf("idna: failed to load mapping table: %v", tableErr))
		}
	})
	return table
}

func loadMapper(data string) (*mapper, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("idna: reading mapping table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("idna: empty mapping table")
	}

	entries := make([]entry, 0, len(records)-1)
	for i, rec := range records[1:] { // skip header row
		if len(rec) < 2 {
			return nil, fmt.Errorf("idna: row %d: expected at least 2 fields, got %d", i+2, len(rec))
		}
		lo, hi, err := parseCodePoints(rec[0])
		if err != nil {
			return nil, fmt.Errorf("idna: row %d: codePoints: %w", i+2, err)
		}
		status, err := parseStatus(rec[1])
		if err != nil {
			return nil, fmt.Errorf("idna: row %d: %w", i+2, err)
		}
		var mapping []rune
		if len(rec) >= 3 && strings.TrimSpace(rec[2]) != "" {
			mapping, err = parseMapping(rec[2])
			if err != nil {
				return nil, fmt.Errorf("idna: row %d: mapping: %w", i+2, err)
			}
		}
		entries = append(entries, entry{lo: lo, hi: hi, status: status, mapping: mapping})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].lo < entries[j].lo })
	return &mapper{entries: entries}, nil
}

// parseCodePoints parses the codePoints column, either a single "hhhh" or
// a range "hhhh..hhhh", per CodePointsDeserializer's ".." split.
func parseCodePoints(s string) (lo, hi rune, err error) {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, ".."); idx >= 0 {
		lo, err = parseCodePoint(s[:idx])
		if err != nil {
			return 0, 0, err
		}
		hi, err = parseCodePoint(s[idx+2:])
		if err != nil {
			return 0, 0, err
		}
		return lo, hi, nil
	}
	lo, err = parseCodePoint(s)
	if err != nil {
		return 0, 0, err
	}
	return lo, lo, nil
}

func parseCodePoint(s string) (rune, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(v), nil
}

func parseMapping(s string) ([]rune, error) {
	fields := strings.Fields(s)
	out := make([]rune, 0, len(fields))
	for _, f := range fields {
		r, err := parseCodePoint(f)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// lookup returns the entry governing r, or (entry{}, false) if r falls
// outside every explicit range, in which case the caller treats r as
// Valid (the table's implicit default).
func (m *mapper) lookup(r rune) (entry, bool) {
	entries := m.entries
	i := sort.Search(len(entries), func(i int) bool { return entries[i].hi >= r })
	if i < len(entries) && entries[i].lo <= r {
		return entries[i], true
	}
	return entry{}, false
}
