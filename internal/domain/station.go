package domain

// Station is one row of a GHCN-M v3 inventory file.
//
// Optional integer fields are nil when the source field is blank; blank means
// unreported, not zero. Categorical code fields preserve the raw fixed-width
// substring, including any padding spaces.
type Station struct {
	ID        string
	Lat       float64
	Lon       float64
	Elevation float64
	Name      string

	GroundElevation          *int
	PopulationClass          string
	PopulationSize           *int
	Topography               string
	Vegetation               string
	Location                 string
	OceanDistance            *int
	AirportStation           string
	TownDistance             *int
	GroundVegetation         string
	PopulationClassSecondary string
}

// Inventory is an ordered mapping from station id to Station. Iteration
// follows input order; a repeated id overwrites the stored record in place
// without gaining a second slot.
type Inventory struct {
	ids  []string
	byID map[string]Station
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{byID: make(map[string]Station)}
}

// Put inserts a station, keyed by its id. A repeated id silently replaces the
// earlier record (last-write-wins) while keeping its original position.
func (inv *Inventory) Put(s Station) {
	if _, ok := inv.byID[s.ID]; !ok {
		inv.ids = append(inv.ids, s.ID)
	}
	inv.byID[s.ID] = s
}

// Get returns the station for id, if present.
func (inv *Inventory) Get(id string) (Station, bool) {
	s, ok := inv.byID[id]
	return s, ok
}

// Len returns the number of distinct stations.
func (inv *Inventory) Len() int {
	return len(inv.ids)
}

// IDs returns the station ids in input order.
func (inv *Inventory) IDs() []string {
	ids := make([]string, len(inv.ids))
	copy(ids, inv.ids)
	return ids
}

// Stations returns all stations in input order.
func (inv *Inventory) Stations() []Station {
	stations := make([]Station, 0, len(inv.ids))
	for _, id := range inv.ids {
		stations = append(stations, inv.byID[id])
	}
	return stations
}
