package routing

import (
	"context"

	da "github.com/lintang-b-s/bearmaps/pkg/datastructure"
)

// RoadGraph read-only view of the road network the search runs on. *datastructure.Graph implements it.
type RoadGraph interface {
	Closest(lon, lat float64) (da.VertexID, error)
	HasVertex(id da.VertexID) bool
	ForAdjacent(id da.VertexID, handle func(w da.VertexID)) error
	DistanceBetween(u, w da.VertexID) (float64, error)
}

type Router interface {
	ShortestPath(ctx context.Context, startLon, startLat, destLon, destLat float64) ([]da.VertexID, error)
	ShortestPathBetween(ctx context.Context, s, t da.VertexID) ([]da.VertexID, error)
}
