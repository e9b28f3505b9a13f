package domain

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// MissingValue marks an unreported month in a GHCN-M record file.
const MissingValue = -9999

// datLineWidth is the minimum record line length: 11-char id, 4-char year,
// 4-char element, then twelve 8-char month blocks of which the value occupies
// the first 5 characters.
const datLineWidth = 19 + 12*8 - 3

// Series is the assembled monthly record for one station and element.
// Data holds twelve values per year from January of FirstYear, in hundredths
// of a degree Celsius, with MissingValue for unreported months.
type Series struct {
	ID        string
	Element   string
	FirstYear int
	Data      []int
}

// Gaps returns the length, in months, of each run of missing data strictly
// inside the series span. Leading and trailing missing months are not gaps;
// a gap is missing data surrounded by data on both sides.
func (s Series) Gaps() []int {
	data := trimMissing(s.Data)

	var gaps []int
	run := 0
	for _, v := range data {
		if v == MissingValue {
			run++
			continue
		}
		if run > 0 {
			gaps = append(gaps, run)
			run = 0
		}
	}
	return gaps
}

// trimMissing strips leading and trailing MissingValue entries.
func trimMissing(data []int) []int {
	lo := 0
	for lo < len(data) && data[lo] == MissingValue {
		lo++
	}
	hi := len(data)
	for hi > lo && data[hi-1] == MissingValue {
		hi--
	}
	return data[lo:hi]
}

// datRow is one parsed line of a record file.
type datRow struct {
	id      string
	year    int
	element string
	values  [12]int
	line    int
}

// ScanSeries reads a GHCN-M v3 record file and calls fn once per assembled
// series, in file order. Rows for one station are contiguous in the file;
// within a station block, rows are grouped by element. Skipped years are
// padded with missing months.
//
// Parsing is fail-fast: the first malformed or out-of-order row aborts the
// scan with a *ParseError.
func ScanSeries(r io.Reader, fn func(Series) error) error {
	sc := bufio.NewScanner(r)

	var block []datRow
	lineNum := 0
	for sc.Scan() {
		lineNum++
		row, err := parseDatLine(sc.Text(), lineNum)
		if err != nil {
			return err
		}
		if len(block) > 0 && block[0].id != row.id {
			if err := emitBlock(block, fn); err != nil {
				return err
			}
			block = block[:0]
		}
		block = append(block, row)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read records: %w", err)
	}
	if len(block) > 0 {
		return emitBlock(block, fn)
	}
	return nil
}

// ReadSeries collects every series of a record file into a slice.
func ReadSeries(r io.Reader) ([]Series, error) {
	var all []Series
	err := ScanSeries(r, func(s Series) error {
		all = append(all, s)
		return nil
	})
	return all, err
}

// emitBlock assembles one station's rows into per-element series.
func emitBlock(block []datRow, fn func(Series) error) error {
	sort.SliceStable(block, func(i, j int) bool {
		return block[i].element < block[j].element
	})

	for start := 0; start < len(block); {
		end := start
		for end < len(block) && block[end].element == block[start].element {
			end++
		}
		s, err := assembleSeries(block[start:end])
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		start = end
	}
	return nil
}

func assembleSeries(rows []datRow) (Series, error) {
	s := Series{
		ID:        rows[0].id,
		Element:   rows[0].element,
		FirstYear: rows[0].year,
	}
	for _, row := range rows {
		next := s.FirstYear + len(s.Data)/12
		if row.year < next {
			return Series{}, &ParseError{
				Line: row.line,
				Err:  fmt.Errorf("station %s element %s: year %d out of order", row.id, row.element, row.year),
			}
		}
		for next < row.year {
			s.Data = append(s.Data, missingYear()...)
			next++
		}
		s.Data = append(s.Data, row.values[:]...)
	}
	return s, nil
}

func missingYear() []int {
	year := make([]int, 12)
	for i := range year {
		year[i] = MissingValue
	}
	return year
}

func parseDatLine(line string, lineNum int) (datRow, error) {
	if len(line) < datLineWidth {
		return datRow{}, &ParseError{
			Line: lineNum,
			Err:  fmt.Errorf("line is %d characters, need at least %d", len(line), datLineWidth),
		}
	}

	year, err := strconv.Atoi(strings.TrimSpace(line[11:15]))
	if err != nil {
		return datRow{}, &ParseError{Line: lineNum, Field: "year", Err: err}
	}

	row := datRow{
		id:      line[:11],
		year:    year,
		element: line[15:19],
		line:    lineNum,
	}
	for m := 0; m < 12; m++ {
		raw := line[19+8*m : 24+8*m]
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return datRow{}, &ParseError{
				Line:  lineNum,
				Field: fmt.Sprintf("month %d", m+1),
				Err:   fmt.Errorf("parse value %q: %w", raw, err),
			}
		}
		row.values[m] = v
	}
	return row, nil
}
