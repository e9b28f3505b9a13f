package domain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SplitByYear copies every record line of dat to exactly one of pre or post:
// a station whose newest record year is splitAt or later goes to post, all
// others go to pre. Rows for one station are contiguous in the input and pass
// through unchanged.
func SplitByYear(dat io.Reader, pre, post io.Writer, splitAt int) error {
	sc := bufio.NewScanner(dat)

	var block []string
	maxYear := 0
	lineNum := 0

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		out := pre
		if maxYear >= splitAt {
			out = post
		}
		for _, line := range block {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return fmt.Errorf("write record for %s: %w", block[0][:11], err)
			}
		}
		block = block[:0]
		maxYear = 0
		return nil
	}

	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if len(line) < 15 {
			return &ParseError{Line: lineNum, Err: fmt.Errorf("line is %d characters, need at least 15", len(line))}
		}
		year, err := strconv.Atoi(strings.TrimSpace(line[11:15]))
		if err != nil {
			return &ParseError{Line: lineNum, Field: "year", Err: err}
		}
		if len(block) > 0 && block[0][:11] != line[:11] {
			if err := flush(); err != nil {
				return err
			}
		}
		block = append(block, line)
		if year > maxYear {
			maxYear = year
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read records: %w", err)
	}
	return flush()
}
