package domain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// invLineWidth is the minimum inventory line length: the end offset of the
// last field. Shorter lines are malformed and abort the parse.
const invLineWidth = 107

// invField describes one fixed-width inventory column: where to slice it and
// how to store the substring on a Station.
type invField struct {
	name  string
	start int
	end   int
	set   func(*Station, string) error
}

// invFields is the GHCN-M v3 inventory column table. Offsets are 0-indexed
// and end-exclusive; see the package documentation for the full layout.
var invFields = []invField{
	{"id", 0, 11, asString(func(s *Station, v string) { s.ID = v })},
	{"latitude", 12, 20, asFloat(func(s *Station, v float64) { s.Lat = v })},
	{"longitude", 21, 30, asFloat(func(s *Station, v float64) { s.Lon = v })},
	{"elevation", 31, 37, asFloat(func(s *Station, v float64) { s.Elevation = v })},
	{"name", 38, 68, asTrimmedString(func(s *Station, v string) { s.Name = v })},
	{"ground_elevation", 69, 73, asOptionalInt(func(s *Station, v *int) { s.GroundElevation = v })},
	{"population_class", 73, 74, asString(func(s *Station, v string) { s.PopulationClass = v })},
	{"population_size", 75, 79, asOptionalInt(func(s *Station, v *int) { s.PopulationSize = v })},
	{"topography", 79, 81, asString(func(s *Station, v string) { s.Topography = v })},
	{"vegetation", 81, 83, asString(func(s *Station, v string) { s.Vegetation = v })},
	{"location", 83, 85, asString(func(s *Station, v string) { s.Location = v })},
	{"ocean_distance", 85, 87, asOptionalInt(func(s *Station, v *int) { s.OceanDistance = v })},
	{"airport_station", 87, 88, asString(func(s *Station, v string) { s.AirportStation = v })},
	{"town_distance", 88, 90, asOptionalInt(func(s *Station, v *int) { s.TownDistance = v })},
	{"ground_vegetation", 90, 106, asTrimmedString(func(s *Station, v string) { s.GroundVegetation = v })},
	{"population_class_secondary", 106, 107, asString(func(s *Station, v string) { s.PopulationClassSecondary = v })},
}

// asString stores the substring unchanged, whitespace included.
func asString(assign func(*Station, string)) func(*Station, string) error {
	return func(s *Station, raw string) error {
		assign(s, raw)
		return nil
	}
}

// asTrimmedString stores the substring with surrounding whitespace removed.
func asTrimmedString(assign func(*Station, string)) func(*Station, string) error {
	return func(s *Station, raw string) error {
		assign(s, strings.TrimSpace(raw))
		return nil
	}
}

// asFloat parses the substring as a float64; non-numeric input is an error.
func asFloat(assign func(*Station, float64)) func(*Station, string) error {
	return func(s *Station, raw string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("parse float %q: %w", raw, err)
		}
		assign(s, v)
		return nil
	}
}

// asOptionalInt stores nil for an all-blank substring; malformed non-blank
// input is an error, not a zero.
func asOptionalInt(assign func(*Station, *int)) func(*Station, string) error {
	return func(s *Station, raw string) error {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			assign(s, nil)
			return nil
		}
		v, err := strconv.Atoi(trimmed)
		if err != nil {
			return fmt.Errorf("parse int %q: %w", raw, err)
		}
		assign(s, &v)
		return nil
	}
}

// ParseError reports a malformed inventory or record line. Line is 1-based;
// Field is empty for structural problems such as a truncated line.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: field %s: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseInventory reads a GHCN-M v3 inventory from r, decoding it as
// ISO-8859-1, and returns the stations as an ordered id-keyed mapping.
//
// The first malformed line aborts the parse with a *ParseError; there is no
// partial output and no skip-and-continue.
func ParseInventory(r io.Reader) (*Inventory, error) {
	inv := NewInventory()

	sc := bufio.NewScanner(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	lineNum := 0
	for sc.Scan() {
		lineNum++
		s, err := parseInvLine(sc.Text(), lineNum)
		if err != nil {
			return nil, err
		}
		inv.Put(s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	return inv, nil
}

// parseInvLine slices one decoded inventory line by the column table.
//
// Slicing is by rune: ISO-8859-1 is a single-byte encoding, so rune offsets
// in the decoded line equal byte offsets in the source file even after names
// with accented characters become multi-byte UTF-8.
func parseInvLine(line string, lineNum int) (Station, error) {
	runes := []rune(line)
	if len(runes) < invLineWidth {
		return Station{}, &ParseError{
			Line: lineNum,
			Err:  fmt.Errorf("line is %d characters, need at least %d", len(runes), invLineWidth),
		}
	}

	var s Station
	for _, f := range invFields {
		if err := f.set(&s, string(runes[f.start:f.end])); err != nil {
			return Station{}, &ParseError{Line: lineNum, Field: f.name, Err: err}
		}
	}
	return s, nil
}
