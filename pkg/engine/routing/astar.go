package routing

import (
	"context"
	"errors"

	da "github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/util"
)

var ErrNoPathFound = errors.New("no path found")

/*
AStar. goal directed shortest path search over the road graph.
edge weight = great-circle distance of the endpoints, heuristic h(v) = great-circle distance from v to the target.
h is consistent because an edge is never shorter than the straight line between its endpoints, so the first time the
target is popped its cost is optimal.

the frontier never decreases a key: an improved vertex is inserted again and the stale entry is dropped when popped
(lazy deletion through the settled set).

one AStar instance per query, it is not safe for concurrent use. the graph is shared read-only.
*/
type AStar struct {
	graph RoadGraph

	info    map[da.VertexID]vertexInfo
	settled map[da.VertexID]struct{}
	pq      *da.MinHeap[da.VertexID]

	numSettledNodes int
}

func NewAStar(graph RoadGraph) *AStar {
	return &AStar{
		graph:   graph,
		info:    make(map[da.VertexID]vertexInfo),
		settled: make(map[da.VertexID]struct{}),
		pq:      da.NewFourAryHeap[da.VertexID](),
	}
}

func (as *AStar) GetNumSettledNodes() int {
	return as.numSettledNodes
}

// ShortestPath snaps both coordinates to their closest vertex and returns the vertex ids of the shortest path
// between them, source and target included.
func (as *AStar) ShortestPath(ctx context.Context, startLon, startLat, destLon, destLat float64) ([]da.VertexID, error) {
	s, err := as.graph.Closest(startLon, startLat)
	if err != nil {
		return nil, err
	}
	t, err := as.graph.Closest(destLon, destLat)
	if err != nil {
		return nil, err
	}
	return as.ShortestPathBetween(ctx, s, t)
}

// ShortestPathBetween returns the vertex ids of the shortest path from s to t. ErrNoPathFound when t is not reachable
// from s. the context is checked once per frontier pop, a cancelled search returns the context error.
func (as *AStar) ShortestPathBetween(ctx context.Context, s, t da.VertexID) ([]da.VertexID, error) {
	if !as.graph.HasVertex(s) {
		return nil, util.WrapErrorf(da.ErrUnknownVertex, util.ErrNotFound, "source vertex %d not found", s)
	}
	if !as.graph.HasVertex(t) {
		return nil, util.WrapErrorf(da.ErrUnknownVertex, util.ErrNotFound, "target vertex %d not found", t)
	}

	as.reset()

	if s == t {
		return []da.VertexID{s}, nil
	}

	hs, err := as.graph.DistanceBetween(s, t)
	if err != nil {
		return nil, err
	}
	as.info[s] = newVertexInfo(0, INVALID_VERTEX_ID)
	as.pq.Insert(da.NewPriorityQueueNode(hs, s))

	for !as.pq.IsEmpty() {
		if util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		node, _ := as.pq.ExtractMin()
		u := node.GetItem()

		if _, ok := as.settled[u]; ok {
			// stale entry
			continue
		}

		if u == t {
			return as.retrievePath(s, t), nil
		}

		as.settled[u] = struct{}{}
		as.numSettledNodes++

		if err := as.relax(u, t); err != nil {
			return nil, err
		}
	}

	return nil, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "vertex %d is not reachable from vertex %d", t, s)
}

// relax. for every neighbour w of u: if w is undiscovered or reaching it through u is strictly cheaper, update its
// label and push it with priority g(w) + h(w).
func (as *AStar) relax(u, t da.VertexID) error {
	gu := as.info[u].getCostSoFar()

	var relaxErr error
	err := as.graph.ForAdjacent(u, func(w da.VertexID) {
		if relaxErr != nil {
			return
		}
		if _, ok := as.settled[w]; ok {
			return
		}

		edgeWeight, err := as.graph.DistanceBetween(u, w)
		if err != nil {
			relaxErr = err
			return
		}

		newCost := gu + edgeWeight
		wInfo, discovered := as.info[w]
		if discovered && newCost >= wInfo.getCostSoFar() {
			return
		}

		h, err := as.graph.DistanceBetween(w, t)
		if err != nil {
			relaxErr = err
			return
		}

		as.info[w] = newVertexInfo(newCost, u)
		as.pq.Insert(da.NewPriorityQueueNode(newCost+h, w))
	})
	if err != nil {
		return err
	}
	return relaxErr
}

func (as *AStar) retrievePath(s, t da.VertexID) []da.VertexID {
	path := make([]da.VertexID, 0)
	for cur := t; cur != INVALID_VERTEX_ID; cur = as.info[cur].getParent() {
		path = append(path, cur)
		if cur == s {
			break
		}
	}
	return util.ReverseG(path)
}

func (as *AStar) reset() {
	as.info = make(map[da.VertexID]vertexInfo)
	as.settled = make(map[da.VertexID]struct{})
	as.pq.Clear()
	as.numSettledNodes = 0
}

// ShortestPath runs one A* query on graph. safe to call concurrently on the same graph.
func ShortestPath(ctx context.Context, graph RoadGraph, startLon, startLat, destLon, destLat float64) ([]da.VertexID, error) {
	return NewAStar(graph).ShortestPath(ctx, startLon, startLat, destLon, destLat)
}

// ShortestPathBetween runs one A* query between two known vertices.
func ShortestPathBetween(ctx context.Context, graph RoadGraph, s, t da.VertexID) ([]da.VertexID, error) {
	return NewAStar(graph).ShortestPathBetween(ctx, s, t)
}

// PathDistance total length in miles of a path.
func PathDistance(graph RoadGraph, path []da.VertexID) (float64, error) {
	total := 0.0
	for i := 1; i < len(path); i++ {
		d, err := graph.DistanceBetween(path[i-1], path[i])
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}
