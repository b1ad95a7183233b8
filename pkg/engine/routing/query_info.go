package routing

import (
	da "github.com/lintang-b-s/bearmaps/pkg/datastructure"
)

const INVALID_VERTEX_ID da.VertexID = -1

// vertexInfo search label of a discovered vertex: best known cost from the source and the predecessor on that path.
type vertexInfo struct {
	costSoFar float64
	parent    da.VertexID
}

func newVertexInfo(costSoFar float64, parent da.VertexID) vertexInfo {
	return vertexInfo{
		costSoFar: costSoFar,
		parent:    parent,
	}
}

func (vi vertexInfo) getCostSoFar() float64 {
	return vi.costSoFar
}

func (vi vertexInfo) getParent() da.VertexID {
	return vi.parent
}
