package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// datLine builds one GHCN-M v3 record line from twelve monthly values.
func datLine(id string, year int, element string, values [12]int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-11s%4d%-4s", id, year, element)
	for _, v := range values {
		fmt.Fprintf(&sb, "%5d   ", v)
	}
	return sb.String()
}

// fullYear returns twelve copies of v.
func fullYear(v int) [12]int {
	var vals [12]int
	for i := range vals {
		vals[i] = v
	}
	return vals
}

func TestReadSeries_SingleYear(t *testing.T) {
	input := datLine("10160355000", 1990, "TAVG", fullYear(1012)) + "\n"

	series, err := ReadSeries(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, series, 1)
	s := series[0]
	assert.Equal(t, "10160355000", s.ID)
	assert.Equal(t, "TAVG", s.Element)
	assert.Equal(t, 1990, s.FirstYear)
	require.Len(t, s.Data, 12)
	assert.Equal(t, 1012, s.Data[0])
}

func TestReadSeries_SkippedYearPadsMissing(t *testing.T) {
	input := datLine("10160355000", 1988, "TAVG", fullYear(100)) + "\n" +
		datLine("10160355000", 1990, "TAVG", fullYear(200)) + "\n"

	series, err := ReadSeries(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, series, 1)
	s := series[0]
	require.Len(t, s.Data, 36)
	assert.Equal(t, 100, s.Data[0])
	for m := 12; m < 24; m++ {
		assert.Equal(t, MissingValue, s.Data[m])
	}
	assert.Equal(t, 200, s.Data[24])
}

func TestReadSeries_MultipleElements(t *testing.T) {
	// TMAX filed before TAVG: element grouping sorts within the station block.
	input := datLine("10160355000", 1990, "TMAX", fullYear(1500)) + "\n" +
		datLine("10160355000", 1990, "TAVG", fullYear(1000)) + "\n"

	series, err := ReadSeries(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, "TAVG", series[0].Element)
	assert.Equal(t, "TMAX", series[1].Element)
}

func TestReadSeries_TwoStationsInFileOrder(t *testing.T) {
	input := datLine("20000000000", 1990, "TAVG", fullYear(1)) + "\n" +
		datLine("10000000000", 1990, "TAVG", fullYear(2)) + "\n"

	series, err := ReadSeries(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, "20000000000", series[0].ID)
	assert.Equal(t, "10000000000", series[1].ID)
}

func TestReadSeries_YearOutOfOrder(t *testing.T) {
	input := datLine("10160355000", 1990, "TAVG", fullYear(100)) + "\n" +
		datLine("10160355000", 1990, "TAVG", fullYear(200)) + "\n"

	_, err := ReadSeries(strings.NewReader(input))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, err.Error(), "out of order")
}

func TestReadSeries_ShortLine(t *testing.T) {
	_, err := ReadSeries(strings.NewReader("10160355000 1990\n"))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
}

func TestSeriesGaps(t *testing.T) {
	tests := []struct {
		name string
		data []int
		want []int
	}{
		{
			name: "no gaps",
			data: []int{1, 2, 3},
			want: nil,
		},
		{
			name: "single interior gap",
			data: []int{1, MissingValue, MissingValue, 2},
			want: []int{2},
		},
		{
			name: "two gaps",
			data: []int{1, MissingValue, 2, MissingValue, MissingValue, MissingValue, 3},
			want: []int{1, 3},
		},
		{
			name: "leading and trailing missing are not gaps",
			data: []int{MissingValue, 1, MissingValue, 2, MissingValue},
			want: []int{1},
		},
		{
			name: "all missing",
			data: []int{MissingValue, MissingValue},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Series{Data: tt.data}
			assert.Equal(t, tt.want, s.Gaps())
		})
	}
}
