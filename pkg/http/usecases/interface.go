package usecases

import (
	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/osmparser"
)

type RoadGraph interface {
	Closest(lon, lat float64) (datastructure.VertexID, error)
	HasVertex(id datastructure.VertexID) bool
	GetVertex(id datastructure.VertexID) (*datastructure.Vertex, error)
	IsAdjacent(u, w datastructure.VertexID) bool
	ForAdjacent(id datastructure.VertexID, handle func(w datastructure.VertexID)) error
	CoordinatesOf(id datastructure.VertexID) (float64, float64, error)
	DistanceBetween(u, w datastructure.VertexID) (float64, error)
	BearingBetween(u, w datastructure.VertexID) (float64, error)
	RoadNameBetween(u, w datastructure.VertexID) (string, error)
}

type SpatialIndex interface {
	Nearest(qLon, qLat float64) (datastructure.VertexID, error)
}

type LocationIndex interface {
	Autocomplete(prefix string) []string
	Locations(locationName string) []osmparser.Location
}
