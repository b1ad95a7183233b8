package osmparser

import "github.com/lintang-b-s/bearmaps/pkg/datastructure"

type MapFormat int

const (
	FORMAT_OSM_XML MapFormat = iota
	FORMAT_OSM_PBF
)

func (f MapFormat) String() string {
	switch f {
	case FORMAT_OSM_XML:
		return "osmxml"
	case FORMAT_OSM_PBF:
		return "osmpbf"
	default:
		return "unknown"
	}
}

// Location a named point of the map, searchable by name.
type Location struct {
	ID   int64
	Name string
	Lat  float64
	Lon  float64
}

func NewLocation(id int64, name string, lat, lon float64) Location {
	return Location{ID: id, Name: name, Lat: lat, Lon: lon}
}

// MapData everything the engine needs from a map file.
type MapData struct {
	Vertices  []datastructure.VertexRecord
	Ways      []datastructure.WayRecord
	Locations []Location
}

var (
	acceptedHighway = map[string]struct{}{
		"motorway":         {},
		"motorway_link":    {},
		"trunk":            {},
		"trunk_link":       {},
		"primary":          {},
		"primary_link":     {},
		"secondary":        {},
		"secondary_link":   {},
		"tertiary":         {},
		"tertiary_link":    {},
		"residential":      {},
		"residential_link": {},
		"unclassified":     {},
		"living_street":    {},
		"service":          {},
		"road":             {},
		"motorroad":        {},
	}
)
