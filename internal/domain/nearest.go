package domain

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
)

// targetRe parses a signed latitude/longitude pair written back-to-back,
// e.g. "+40.73-73.99". Both signs are mandatory.
var targetRe = regexp.MustCompile(`^([-+]\d+(?:\.\d+)?)([-+]\d+(?:\.\d+)?)$`)

// ParseTarget parses a "±LAT±LON" location string into decimal degrees.
func ParseTarget(s string) (lat, lon float64, err error) {
	m := targetRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("parse target %q: want ±LAT±LON, e.g. +40.73-73.99", s)
	}
	lat, _ = strconv.ParseFloat(m[1], 64)
	lon, _ = strconv.ParseFloat(m[2], 64)
	return lat, lon, nil
}

// Nearest returns up to n stations ranked by distance from the given point.
// Stations with out-of-range coordinates are skipped; some source inventories
// (CRUTEM4 in particular) carry stations with invalid coordinates.
//
// Distance is the chord length between points on the unit sphere, which
// orders identically to great-circle distance.
func (inv *Inventory) Nearest(lat, lon float64, n int) []Station {
	target := xyz(lat, lon)

	type candidate struct {
		dist float64
		s    Station
	}
	candidates := make([]candidate, 0, inv.Len())
	for _, s := range inv.Stations() {
		if s.Lat < -90 || s.Lat > 90 || s.Lon < -180 || s.Lon > 180 {
			continue
		}
		candidates = append(candidates, candidate{dist: distance(xyz(s.Lat, s.Lon), target), s: s})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	nearest := make([]Station, 0, n)
	for _, c := range candidates[:n] {
		nearest = append(nearest, c.s)
	}
	return nearest
}

// xyz projects a lat/lon pair onto the unit sphere.
func xyz(lat, lon float64) [3]float64 {
	latR := lat * math.Pi / 180
	lonR := lon * math.Pi / 180
	return [3]float64{
		math.Cos(lonR) * math.Cos(latR),
		math.Sin(lonR) * math.Cos(latR),
		math.Sin(latR),
	}
}

func distance(p, q [3]float64) float64 {
	var sum float64
	for i := range p {
		d := p[i] - q[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
