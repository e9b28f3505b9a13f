package domain

import (
	"encoding/json"
	"fmt"
	"io"
)

// GeoJSON type constants per RFC 7946.
const (
	featureCollectionType = "FeatureCollection"
	featureType           = "Feature"
	geometryPointType     = "Point"
)

// FeatureCollection is a GeoJSON FeatureCollection of station features.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single station as a GeoJSON Feature.
type Feature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Properties StationProperties `json:"properties"`
	Geometry   Geometry          `json:"geometry"`
}

// Geometry is a GeoJSON Point. Coordinates are [longitude, latitude,
// elevation], in the lon-before-lat order that GeoJSON mandates.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// StationProperties carries every inventory field of a station. Optional
// integers deliberately lack omitempty: an unreported field must appear as an
// explicit JSON null, not vanish.
type StationProperties struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Latitude                 float64 `json:"latitude"`
	Longitude                float64 `json:"longitude"`
	Elevation                float64 `json:"station_elevation"`
	GroundElevation          *int    `json:"ground_elevation"`
	PopulationClass          string  `json:"population_class"`
	PopulationSize           *int    `json:"population_size"`
	Topography               string  `json:"topography"`
	Vegetation               string  `json:"vegetation"`
	Location                 string  `json:"location"`
	OceanDistance            *int    `json:"ocean_distance"`
	AirportStation           string  `json:"airport_station"`
	TownDistance             *int    `json:"town_distance"`
	GroundVegetation         string  `json:"ground_vegetation"`
	PopulationClassSecondary string  `json:"population_class_secondary"`
}

// FeatureFromStation maps one station onto a GeoJSON Feature.
func FeatureFromStation(s Station) Feature {
	return Feature{
		Type: featureType,
		ID:   s.ID,
		Properties: StationProperties{
			ID:                       s.ID,
			Name:                     s.Name,
			Latitude:                 s.Lat,
			Longitude:                s.Lon,
			Elevation:                s.Elevation,
			GroundElevation:          s.GroundElevation,
			PopulationClass:          s.PopulationClass,
			PopulationSize:           s.PopulationSize,
			Topography:               s.Topography,
			Vegetation:               s.Vegetation,
			Location:                 s.Location,
			OceanDistance:            s.OceanDistance,
			AirportStation:           s.AirportStation,
			TownDistance:             s.TownDistance,
			GroundVegetation:         s.GroundVegetation,
			PopulationClassSecondary: s.PopulationClassSecondary,
		},
		Geometry: Geometry{
			Type:        geometryPointType,
			Coordinates: []float64{s.Lon, s.Lat, s.Elevation},
		},
	}
}

// BuildFeatureCollection maps an inventory onto a FeatureCollection, one
// Feature per station, preserving inventory iteration order. An empty
// inventory yields an empty (not null) features array.
func BuildFeatureCollection(inv *Inventory) FeatureCollection {
	features := make([]Feature, 0, inv.Len())
	for _, s := range inv.Stations() {
		features = append(features, FeatureFromStation(s))
	}
	return FeatureCollection{Type: featureCollectionType, Features: features}
}

// NewFeatureCollection wraps already-built features, normalizing a nil slice
// to an empty one so the JSON features array is never null.
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: featureCollectionType, Features: features}
}

// Encode serializes the collection as UTF-8 JSON onto w in a single call,
// with two-space indentation when pretty is set.
func (fc FeatureCollection) Encode(w io.Writer, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encode feature collection: %w", err)
	}
	return nil
}
