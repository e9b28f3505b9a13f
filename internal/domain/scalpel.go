package domain

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DefaultScalpelGap is the default minimum run of missing months at which a
// series is cut, after Rohde et al 2013.
const DefaultScalpelGap = 18

// segment is a contiguous chunk of a cut series. firstMonth counts months
// from January of year 0.
type segment struct {
	firstMonth int
	data       []int
}

// Scalpel cuts every series in dat wherever a gap of minGap or more missing
// months occurs, writing a new record file to outDat and a matching inventory
// to outInv. Children produced by cutting reuse the parent's inventory
// columns under mutated ids; the newest segment keeps the parent id.
func Scalpel(dat, inv io.Reader, outDat, outInv io.Writer, minGap int) error {
	mutants := make(map[string][]string)

	err := ScanSeries(dat, func(s Series) error {
		segments := cutSeries(s, minGap)
		for i, seg := range segments {
			id := s.ID
			// All but the most recent segment get mutated ids.
			if i < len(segments)-1 {
				id = mutateID(s.ID, mutants)
			}
			if err := writeSeriesV3(outDat, id, s.Element, seg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeChildInventory(inv, outInv, mutants)
}

// cutSeries trims the series and splits it at every qualifying gap. Gaps
// shorter than minGap stay embedded in their segment.
func cutSeries(s Series, minGap int) []segment {
	data := s.Data
	firstMonth := s.FirstYear * 12
	for len(data) > 0 && data[0] == MissingValue {
		data = data[1:]
		firstMonth++
	}
	for len(data) > 0 && data[len(data)-1] == MissingValue {
		data = data[:len(data)-1]
	}

	var segments []segment
	var current []int
	month := firstMonth
	i := 0
	for i < len(data) {
		j := i
		for j < len(data) && (data[j] == MissingValue) == (data[i] == MissingValue) {
			j++
		}
		run := data[i:j]
		if data[i] == MissingValue && len(run) >= minGap {
			segments = append(segments, segment{firstMonth: month, data: current})
			month += len(current) + len(run)
			current = nil
		} else {
			current = append(current, run...)
		}
		i = j
	}
	segments = append(segments, segment{firstMonth: month, data: current})
	return segments
}

// mutateID derives a child id from the parent, recording it in mutants. The
// rightmost occurrence of the ASCIIbetically least character of the parent id
// (often a '0') is replaced with 'a' for the first child, 'b' for the second,
// and so on.
func mutateID(id string, mutants map[string][]string) string {
	least := id[0]
	for i := 1; i < len(id); i++ {
		if id[i] < least {
			least = id[i]
		}
	}
	pos := strings.LastIndexByte(id, least)

	letter := byte('a' + len(mutants[id]))
	child := id[:pos] + string(letter) + id[pos+1:]
	mutants[id] = append(mutants[id], child)
	return child
}

// writeSeriesV3 writes one segment in GHCN-M v3 record format: the segment is
// padded out to year boundaries with missing months and years with no data at
// all are skipped.
func writeSeriesV3(w io.Writer, id, element string, seg segment) error {
	firstMonth := seg.firstMonth
	data := seg.data
	for firstMonth%12 != 0 {
		data = append([]int{MissingValue}, data...)
		firstMonth--
	}
	for len(data)%12 != 0 {
		data = append(data, MissingValue)
	}

	for start := 0; start < len(data); start += 12 {
		year := firstMonth/12 + start/12
		yearData := data[start : start+12]
		if allMissing(yearData) {
			continue
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s%4d%s", id, year, element)
		for _, v := range yearData {
			fmt.Fprintf(&sb, "%5d   ", v)
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("write record for %s year %d: %w", id, year, err)
		}
	}
	return nil
}

func allMissing(yearData []int) bool {
	for _, v := range yearData {
		if v != MissingValue {
			return false
		}
	}
	return true
}

// writeChildInventory copies the source inventory to outInv, id-sorted, and
// follows each parent row with one row per child: the child id spliced onto
// the parent's remaining columns. Rows pass through byte-for-byte otherwise,
// so the output stays valid ISO-8859-1.
func writeChildInventory(inv io.Reader, outInv io.Writer, mutants map[string][]string) error {
	rows := make(map[string]string)
	sc := bufio.NewScanner(inv)
	for sc.Scan() {
		line := sc.Text()
		if len(line) < invLineWidth {
			continue
		}
		rows[line[:11]] = line
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read inventory: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		row := rows[id]
		if _, err := fmt.Fprintln(outInv, row); err != nil {
			return fmt.Errorf("write inventory row %s: %w", id, err)
		}
		for _, child := range mutants[id] {
			if _, err := fmt.Fprintf(outInv, "%s%s\n", child, row[11:]); err != nil {
				return fmt.Errorf("write inventory row %s: %w", child, err)
			}
		}
	}
	return nil
}
