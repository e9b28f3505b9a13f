package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invLineParts builds a syntactically valid 107-character inventory line from
// per-field strings, so blank optional fields are expressible.
type invLineParts struct {
	id, lat, lon, elev, name             string
	grElev, popCls, popSize              string
	topo, veg, loc, ocean, airport, town string
	groundVeg, popClsSec                 string
}

func (p invLineParts) line() string {
	return fmt.Sprintf("%-11s %8s %9s %6s %-30s %4s%1s %4s%2s%2s%2s%2s%1s%2s%-16s%1s",
		p.id, p.lat, p.lon, p.elev, p.name, p.grElev, p.popCls, p.popSize,
		p.topo, p.veg, p.loc, p.ocean, p.airport, p.town, p.groundVeg, p.popClsSec)
}

func testParts() invLineParts {
	return invLineParts{
		id: "10160355000", lat: "36.9300", lon: "6.9500", elev: "18.0",
		name: "SKIKDA", grElev: "18", popCls: "U", popSize: "107",
		topo: "HI", veg: "xx", loc: "CO", ocean: "1", airport: "A", town: "2",
		groundVeg: "WARM CROPS", popClsSec: "B",
	}
}

func parseOne(t *testing.T, line string) Station {
	t.Helper()
	inv, err := ParseInventory(strings.NewReader(line + "\n"))
	require.NoError(t, err)
	require.Equal(t, 1, inv.Len())
	return inv.Stations()[0]
}

func TestParseInventory_AllFields(t *testing.T) {
	line := testParts().line()
	require.Len(t, line, invLineWidth)

	s := parseOne(t, line)

	assert.Equal(t, "10160355000", s.ID)
	assert.Equal(t, 36.93, s.Lat)
	assert.Equal(t, 6.95, s.Lon)
	assert.Equal(t, 18.0, s.Elevation)
	assert.Equal(t, "SKIKDA", s.Name)

	require.NotNil(t, s.GroundElevation)
	assert.Equal(t, 18, *s.GroundElevation)
	require.NotNil(t, s.PopulationSize)
	assert.Equal(t, 107, *s.PopulationSize)
	require.NotNil(t, s.OceanDistance)
	assert.Equal(t, 1, *s.OceanDistance)
	require.NotNil(t, s.TownDistance)
	assert.Equal(t, 2, *s.TownDistance)

	// Categorical codes keep their fixed width, padding included.
	assert.Equal(t, "U", s.PopulationClass)
	assert.Equal(t, "HI", s.Topography)
	assert.Equal(t, "xx", s.Vegetation)
	assert.Equal(t, "CO", s.Location)
	assert.Equal(t, "A", s.AirportStation)
	assert.Equal(t, "B", s.PopulationClassSecondary)
	assert.Equal(t, "WARM CROPS", s.GroundVegetation)
}

func TestParseInventory_BlankOptionalFields(t *testing.T) {
	p := testParts()
	p.grElev, p.popSize, p.ocean, p.town = "", "", "", ""

	s := parseOne(t, p.line())

	assert.Nil(t, s.GroundElevation)
	assert.Nil(t, s.PopulationSize)
	assert.Nil(t, s.OceanDistance)
	assert.Nil(t, s.TownDistance)
}

func TestParseInventory_ISO88591Name(t *testing.T) {
	p := testParts()
	// 0xD6 is Ö in ISO-8859-1. The raw byte must decode to the accented rune
	// without shifting the byte offsets of the fields that follow.
	p.name = "MALM\xd6"

	s := parseOne(t, p.line())

	assert.Equal(t, "MALMÖ", s.Name)
	require.NotNil(t, s.GroundElevation)
	assert.Equal(t, 18, *s.GroundElevation)
	assert.Equal(t, "B", s.PopulationClassSecondary)
}

func TestParseInventory_ShortLine(t *testing.T) {
	line := testParts().line()[:80]

	_, err := ParseInventory(strings.NewReader(line + "\n"))

	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
	assert.Contains(t, err.Error(), "80 characters")
}

func TestParseInventory_TrailingContentIgnored(t *testing.T) {
	s := parseOne(t, testParts().line()+"   extra")
	assert.Equal(t, "B", s.PopulationClassSecondary)
}

func TestParseInventory_NonNumericFloat(t *testing.T) {
	p := testParts()
	p.lat = "badvalue"

	_, err := ParseInventory(strings.NewReader(p.line() + "\n"))

	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "latitude", perr.Field)
}

func TestParseInventory_MalformedOptionalInt(t *testing.T) {
	p := testParts()
	p.grElev = "12x4"

	_, err := ParseInventory(strings.NewReader(p.line() + "\n"))

	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "ground_elevation", perr.Field)
}

func TestParseInventory_ErrorReportsLineNumber(t *testing.T) {
	p := testParts()
	bad := p
	bad.lon = "x"
	input := p.line() + "\n" + bad.line() + "\n"

	_, err := ParseInventory(strings.NewReader(input))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}

func TestParseInventory_DuplicateIDLastWriteWins(t *testing.T) {
	first := testParts()
	other := testParts()
	other.id = "10160360000"
	other.name = "ANNABA"
	repeat := testParts()
	repeat.name = "SKIKDA CAP"
	repeat.elev = "25.0"

	input := first.line() + "\n" + other.line() + "\n" + repeat.line() + "\n"
	inv, err := ParseInventory(strings.NewReader(input))
	require.NoError(t, err)

	// Still two stations, and the repeated id kept its original slot with
	// the later line's fields.
	require.Equal(t, 2, inv.Len())
	assert.Equal(t, []string{"10160355000", "10160360000"}, inv.IDs())

	s, ok := inv.Get("10160355000")
	require.True(t, ok)
	assert.Equal(t, "SKIKDA CAP", s.Name)
	assert.Equal(t, 25.0, s.Elevation)
}

func TestParseInventory_Empty(t *testing.T) {
	inv, err := ParseInventory(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Len())
}

func TestParseInventory_RoundTripToFeature(t *testing.T) {
	p := testParts()
	p.id = "66010123456"
	p.lat = "40.7300"
	p.lon = "-73.9900"
	p.elev = "10.0"
	p.name = "NEW YORK CITY"

	inv, err := ParseInventory(strings.NewReader(p.line() + "\n"))
	require.NoError(t, err)

	fc := BuildFeatureCollection(inv)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, "66010123456", f.ID)
	assert.Equal(t, []float64{-73.99, 40.73, 10.0}, f.Geometry.Coordinates)
	assert.Equal(t, "NEW YORK CITY", f.Properties.Name)
}
