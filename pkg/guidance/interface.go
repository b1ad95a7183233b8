package guidance

import "github.com/lintang-b-s/bearmaps/pkg/datastructure"

type Graph interface {
	GetVertex(id datastructure.VertexID) (*datastructure.Vertex, error)
	IsAdjacent(u, w datastructure.VertexID) bool
	DistanceBetween(u, w datastructure.VertexID) (float64, error)
	BearingBetween(u, w datastructure.VertexID) (float64, error)
	RoadNameBetween(u, w datastructure.VertexID) (string, error)
}
