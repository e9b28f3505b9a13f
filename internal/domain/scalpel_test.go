package domain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutateID(t *testing.T) {
	mutants := make(map[string][]string)

	// '0' is the ASCIIbetically least character; its rightmost occurrence is
	// the final digit.
	assert.Equal(t, "1016035500a", mutateID("10160355000", mutants))
	assert.Equal(t, "1016035500b", mutateID("10160355000", mutants))
	assert.Equal(t, []string{"1016035500a", "1016035500b"}, mutants["10160355000"])
}

func TestScalpel_CutsAtLongGap(t *testing.T) {
	// 1990 has data, 1991-1992 are absent (24 missing months), 1993 has data.
	dat := datLine("10160355000", 1990, "TAVG", fullYear(100)) + "\n" +
		datLine("10160355000", 1993, "TAVG", fullYear(200)) + "\n"
	inv := testParts().line() + "\n"

	var outDat, outInv bytes.Buffer
	require.NoError(t, Scalpel(strings.NewReader(dat), strings.NewReader(inv), &outDat, &outInv, DefaultScalpelGap))

	datLines := strings.Split(strings.TrimRight(outDat.String(), "\n"), "\n")
	require.Len(t, datLines, 2)
	// Oldest segment becomes child 'a'; the newest keeps the parent id.
	assert.Equal(t, datLine("1016035500a", 1990, "TAVG", fullYear(100)), datLines[0])
	assert.Equal(t, datLine("10160355000", 1993, "TAVG", fullYear(200)), datLines[1])

	invLines := strings.Split(strings.TrimRight(outInv.String(), "\n"), "\n")
	require.Len(t, invLines, 2)
	assert.Equal(t, testParts().line(), invLines[0])
	// Child row: mutated id spliced onto the parent's metadata columns.
	assert.Equal(t, "1016035500a"+testParts().line()[11:], invLines[1])
}

func TestScalpel_ShortGapSurvives(t *testing.T) {
	// A 12-month gap is below the 18-month threshold: no cut, and the gap
	// year is skipped on output because it holds no data at all.
	dat := datLine("10160355000", 1990, "TAVG", fullYear(100)) + "\n" +
		datLine("10160355000", 1992, "TAVG", fullYear(200)) + "\n"
	inv := testParts().line() + "\n"

	var outDat, outInv bytes.Buffer
	require.NoError(t, Scalpel(strings.NewReader(dat), strings.NewReader(inv), &outDat, &outInv, DefaultScalpelGap))

	datLines := strings.Split(strings.TrimRight(outDat.String(), "\n"), "\n")
	require.Len(t, datLines, 2)
	assert.Equal(t, datLine("10160355000", 1990, "TAVG", fullYear(100)), datLines[0])
	assert.Equal(t, datLine("10160355000", 1992, "TAVG", fullYear(200)), datLines[1])

	assert.Equal(t, testParts().line()+"\n", outInv.String())
}

func TestScalpel_RoundTripsFullYear(t *testing.T) {
	line := datLine("10160355000", 1990, "TAVG", fullYear(1012))

	var outDat, outInv bytes.Buffer
	err := Scalpel(strings.NewReader(line+"\n"), strings.NewReader(testParts().line()+"\n"),
		&outDat, &outInv, DefaultScalpelGap)
	require.NoError(t, err)

	assert.Equal(t, line+"\n", outDat.String())
}

func TestScalpel_PartialYearPadding(t *testing.T) {
	// Data covering only half a year must pad back out to a year boundary
	// with missing months on output.
	vals := fullYear(MissingValue)
	for m := 3; m < 9; m++ {
		vals[m] = 500
	}
	line := datLine("10160355000", 1990, "TAVG", vals)

	var outDat, outInv bytes.Buffer
	err := Scalpel(strings.NewReader(line+"\n"), strings.NewReader(testParts().line()+"\n"),
		&outDat, &outInv, DefaultScalpelGap)
	require.NoError(t, err)

	assert.Equal(t, line+"\n", outDat.String())
}

func TestCutSeries_TwoCuts(t *testing.T) {
	data := make([]int, 0, 100)
	appendRun := func(v, n int) {
		for i := 0; i < n; i++ {
			data = append(data, v)
		}
	}
	appendRun(100, 6)
	appendRun(MissingValue, 20)
	appendRun(200, 6)
	appendRun(MissingValue, 20)
	appendRun(300, 6)

	segments := cutSeries(Series{FirstYear: 1990, Data: data}, 18)

	require.Len(t, segments, 3)
	assert.Equal(t, 1990*12, segments[0].firstMonth)
	assert.Equal(t, []int{100, 100, 100, 100, 100, 100}, segments[0].data)
	assert.Equal(t, 1990*12+26, segments[1].firstMonth)
	assert.Equal(t, []int{200, 200, 200, 200, 200, 200}, segments[1].data)
	assert.Equal(t, 1990*12+52, segments[2].firstMonth)
	assert.Equal(t, []int{300, 300, 300, 300, 300, 300}, segments[2].data)
}
