package spatialindex

import (
	"math"
	"sort"

	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const (
	DEFAULT_SEARCH_RADIUS = 0.1 // miles
	RADIUS_GROWTH_FACTOR  = 4.0
	MAX_SEARCH_ROUNDS     = 6

	// a box built from the corners at bearing 225 & 45, distance r from the query point, contains the circle of radius
	// ~r/sqrt(2). candidates are only trusted inside a slightly smaller circle.
	INSCRIBED_CIRCLE_RATIO = 0.6
)

type Graph interface {
	ForVertices(handle func(v *datastructure.Vertex))
	Closest(lon, lat float64) (datastructure.VertexID, error)
}

type vertexPoint struct {
	id       datastructure.VertexID
	lon, lat float64
}

// Rtree. r-tree of the graph vertices for nearest vertex queries. read-only after Build.
type Rtree struct {
	tr           *rtree.RTreeG[vertexPoint]
	graph        Graph
	searchRadius float64
}

func NewRtree(searchRadius float64) *Rtree {
	if searchRadius <= 0 {
		searchRadius = DEFAULT_SEARCH_RADIUS
	}
	var tr rtree.RTreeG[vertexPoint]
	return &Rtree{
		tr:           &tr,
		searchRadius: searchRadius,
	}
}

// Build. insert every vertex of graph as a point.
func (rt *Rtree) Build(graph Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph
	graph.ForVertices(func(v *datastructure.Vertex) {
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, vertexPoint{id: v.GetID(), lon: v.GetLon(), lat: v.GetLat()})
	})
	log.Info("R-tree spatial index built.", zap.Int("vertices", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// searchBox returns the bounding box of the circle of radius (miles) around (qLon, qLat). ok is false when the box
// wraps around the antimeridian or a pole.
func searchBox(qLon, qLat, radius float64) (lo, hi [2]float64, ok bool) {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)
	if lowerLon >= qLon || upperLon <= qLon || lowerLat >= qLat || upperLat <= qLat {
		return lo, hi, false
	}
	return [2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}, true
}

// SearchWithinRadius returns the vertices at most radius (miles) away from (qLon, qLat), nearest first, ties by id.
func (rt *Rtree) SearchWithinRadius(qLon, qLat, radius float64) []datastructure.VertexID {
	type candidate struct {
		id   datastructure.VertexID
		dist float64
	}

	results := make([]candidate, 0, 10)
	boxRadius := radius / INSCRIBED_CIRCLE_RATIO
	lo, hi, ok := searchBox(qLon, qLat, boxRadius)
	if !ok {
		return []datastructure.VertexID{}
	}
	rt.tr.Search(lo, hi, func(_, _ [2]float64, data vertexPoint) bool {
		dist := geo.Distance(qLon, qLat, data.lon, data.lat)
		if dist <= radius {
			results = append(results, candidate{id: data.id, dist: dist})
		}
		return true
	})

	sort.Slice(results, func(i, j int) bool {
		if results[i].dist != results[j].dist {
			return results[i].dist < results[j].dist
		}
		return results[i].id < results[j].id
	})

	ids := make([]datastructure.VertexID, len(results))
	for i, c := range results {
		ids[i] = c.id
	}
	return ids
}

/*
Nearest. id of the vertex closest to (qLon, qLat), the same vertex Graph.Closest returns (ties resolve to the lowest
id).

search boxes grow by RADIUS_GROWTH_FACTOR from the configured radius. the best candidate found in a box is only
accepted when it lies inside the circle inscribed in that box: every vertex nearer than it is then also in the box.
if nothing can be accepted after MAX_SEARCH_ROUNDS, or the box is degenerate, fall back to the linear scan.
*/
func (rt *Rtree) Nearest(qLon, qLat float64) (datastructure.VertexID, error) {
	if err := datastructure.CheckCoordinate(qLon, qLat); err != nil {
		return 0, err
	}
	if rt.graph == nil || rt.tr.Len() == 0 {
		return 0, datastructure.ErrEmptyGraph
	}

	radius := rt.searchRadius
	for round := 0; round < MAX_SEARCH_ROUNDS; round++ {
		lo, hi, ok := searchBox(qLon, qLat, radius)
		if !ok {
			break
		}

		bestDist := math.Inf(1)
		var bestID datastructure.VertexID
		rt.tr.Search(lo, hi, func(_, _ [2]float64, data vertexPoint) bool {
			dist := geo.Distance(qLon, qLat, data.lon, data.lat)
			if dist < bestDist || (dist == bestDist && data.id < bestID) {
				bestDist = dist
				bestID = data.id
			}
			return true
		})

		if bestDist <= radius*INSCRIBED_CIRCLE_RATIO {
			return bestID, nil
		}
		radius *= RADIUS_GROWTH_FACTOR
	}

	return rt.graph.Closest(qLon, qLat)
}
