package datastructure

import (
	"errors"
	"math"
	"sort"

	"github.com/lintang-b-s/bearmaps/pkg/geo"
	"github.com/lintang-b-s/bearmaps/pkg/util"
	"go.uber.org/zap"
)

type VertexID int64

var (
	ErrUnknownVertex = errors.New("unknown vertex")
	ErrEmptyGraph    = errors.New("graph has no vertices")
	ErrMalformedWay  = errors.New("malformed way")
	ErrNotAdjacent   = errors.New("vertices are not adjacent")
	ErrBadCoordinate = errors.New("coordinate is not a finite number")
)

// VertexRecord is an intersection/point of the map as produced by map ingestion.
type VertexRecord struct {
	ID   VertexID
	Lat  float64
	Lon  float64
	Name string
}

func NewVertexRecord(id VertexID, lat, lon float64, name string) VertexRecord {
	return VertexRecord{ID: id, Lat: lat, Lon: lon, Name: name}
}

// WayRecord is an ordered polyline of vertex ids. only used while building the graph.
type WayRecord struct {
	ID        int64
	Name      string
	VertexIDs []VertexID
}

func NewWayRecord(id int64, name string, vertexIDs []VertexID) WayRecord {
	return WayRecord{ID: id, Name: name, VertexIDs: vertexIDs}
}

type Vertex struct {
	id        VertexID
	lat       float64
	lon       float64
	name      string
	roadNames []string   // distinct names of the ways touching this vertex, in the order they were connected
	adjacent  []VertexID // neighbour ids, no duplicates
	edgeRoads []string   // edgeRoads[i] = name of the way that connected this vertex to adjacent[i]
}

func NewVertex(id VertexID, lat, lon float64, name string) *Vertex {
	return &Vertex{
		id:        id,
		lat:       lat,
		lon:       lon,
		name:      name,
		roadNames: make([]string, 0, 1),
		adjacent:  make([]VertexID, 0, 2),
		edgeRoads: make([]string, 0, 2),
	}
}

func (v *Vertex) GetID() VertexID {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetName() string {
	return v.name
}

func (v *Vertex) GetRoadNames() []string {
	names := make([]string, len(v.roadNames))
	copy(names, v.roadNames)
	return names
}

func (v *Vertex) GetDegree() int {
	return len(v.adjacent)
}

func (v *Vertex) hasConnection() bool {
	return len(v.adjacent) > 0
}

func (v *Vertex) adjacentPos(w VertexID) int {
	for i, u := range v.adjacent {
		if u == w {
			return i
		}
	}
	return -1
}

func (v *Vertex) addConnection(w VertexID, roadName string) {
	if w == v.id || v.adjacentPos(w) != -1 {
		return
	}
	v.adjacent = append(v.adjacent, w)
	v.edgeRoads = append(v.edgeRoads, roadName)
}

func (v *Vertex) addRoadName(roadName string) {
	for _, name := range v.roadNames {
		if name == roadName {
			return
		}
	}
	v.roadNames = append(v.roadNames, roadName)
}

/*
Graph. road network graph. vertices are intersections/points of the map, an edge connects two vertices that are
consecutive in some way. edges are undirected and weighted by the great-circle distance of their endpoints.

the graph is an arena: it owns every Vertex, adjacency refers to other vertices by id.
after NewGraph returns the graph is never mutated, so it is safe for concurrent readers.
*/
type Graph struct {
	vertices map[VertexID]*Vertex
	ids      []VertexID // ascending, fixed scan order for Closest
}

/*
NewGraph. build the graph from ingested vertex and way records:
 1. insert every vertex.
 2. for each way, connect every pair of consecutive vertex ids in both directions and record the way name on
    every vertex the way touches. a way with less than 2 vertex ids is malformed: logged and skipped.
    a pair referencing an unknown vertex id is logged and skipped.
 3. prune every vertex that ended up with no adjacent vertex.

the ways are not kept. pruning only removes isolated points, the graph can still have several connected components.
*/
func NewGraph(vertices []VertexRecord, ways []WayRecord, log *zap.Logger) *Graph {
	if log == nil {
		log = zap.NewNop()
	}

	g := &Graph{
		vertices: make(map[VertexID]*Vertex, len(vertices)),
	}

	for _, rec := range vertices {
		if _, ok := g.vertices[rec.ID]; ok {
			log.Warn("duplicate vertex record, keeping the first one", zap.Int64("vertexId", int64(rec.ID)))
			continue
		}
		g.vertices[rec.ID] = NewVertex(rec.ID, rec.Lat, rec.Lon, rec.Name)
	}

	skippedWays := 0
	for _, way := range ways {
		if err := g.connectWay(way, log); err != nil {
			log.Debug("skipping way", zap.Int64("wayId", way.ID), zap.Error(err))
			skippedWays++
		}
	}

	removed := g.prune()

	g.ids = make([]VertexID, 0, len(g.vertices))
	for id := range g.vertices {
		g.ids = append(g.ids, id)
	}
	sort.Slice(g.ids, func(i, j int) bool {
		return g.ids[i] < g.ids[j]
	})

	log.Info("road network graph built",
		zap.Int("vertices", len(g.ids)),
		zap.Int("ways", len(ways)),
		zap.Int("skippedWays", skippedWays),
		zap.Int("prunedVertices", removed))
	return g
}

func (g *Graph) connectWay(way WayRecord, log *zap.Logger) error {
	ids := way.VertexIDs
	if len(ids) < 2 {
		return util.WrapErrorf(ErrMalformedWay, util.ErrBadParamInput, "way %d has %d vertices, need at least 2",
			way.ID, len(ids))
	}

	for _, id := range ids {
		if v, ok := g.vertices[id]; ok {
			v.addRoadName(way.Name)
		}
	}

	for i := 0; i < len(ids)-1; i++ {
		u, uOk := g.vertices[ids[i]]
		v, vOk := g.vertices[ids[i+1]]
		if !uOk || !vOk {
			log.Debug("way references unknown vertex, skipping segment",
				zap.Int64("wayId", way.ID),
				zap.Int64("from", int64(ids[i])),
				zap.Int64("to", int64(ids[i+1])))
			continue
		}

		u.addConnection(v.id, way.Name)
		v.addConnection(u.id, way.Name)
	}
	return nil
}

// prune removes every vertex without connection. returns the number of removed vertices.
func (g *Graph) prune() int {
	keysToRemove := make([]VertexID, 0)
	for id, v := range g.vertices {
		if !v.hasConnection() {
			keysToRemove = append(keysToRemove, id)
		}
	}

	for _, id := range keysToRemove {
		delete(g.vertices, id)
	}
	return len(keysToRemove)
}

func (g *Graph) NumberOfVertices() int {
	return len(g.ids)
}

// Vertices returns the ids of all vertices in ascending order.
func (g *Graph) Vertices() []VertexID {
	ids := make([]VertexID, len(g.ids))
	copy(ids, g.ids)
	return ids
}

// ForVertices calls handle for every vertex in ascending id order.
func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for _, id := range g.ids {
		handle(g.vertices[id])
	}
}

func (g *Graph) GetVertex(id VertexID) (*Vertex, error) {
	v, ok := g.vertices[id]
	if !ok {
		return nil, util.WrapErrorf(ErrUnknownVertex, util.ErrNotFound, "vertex %d not found", id)
	}
	return v, nil
}

func (g *Graph) HasVertex(id VertexID) bool {
	_, ok := g.vertices[id]
	return ok
}

// Adjacent returns the ids of the vertices adjacent to id.
func (g *Graph) Adjacent(id VertexID) ([]VertexID, error) {
	v, err := g.GetVertex(id)
	if err != nil {
		return nil, err
	}
	adj := make([]VertexID, len(v.adjacent))
	copy(adj, v.adjacent)
	return adj, nil
}

// ForAdjacent calls handle for every neighbour of id without copying the adjacency list.
func (g *Graph) ForAdjacent(id VertexID, handle func(w VertexID)) error {
	v, err := g.GetVertex(id)
	if err != nil {
		return err
	}
	for _, w := range v.adjacent {
		handle(w)
	}
	return nil
}

func (g *Graph) IsAdjacent(u, w VertexID) bool {
	v, ok := g.vertices[u]
	if !ok {
		return false
	}
	return v.adjacentPos(w) != -1
}

// CoordinatesOf returns (lon, lat) of vertex id.
func (g *Graph) CoordinatesOf(id VertexID) (float64, float64, error) {
	v, err := g.GetVertex(id)
	if err != nil {
		return 0, 0, err
	}
	return v.lon, v.lat, nil
}

// DistanceBetween returns the great-circle distance in miles between vertex u and vertex w.
func (g *Graph) DistanceBetween(u, w VertexID) (float64, error) {
	uv, err := g.GetVertex(u)
	if err != nil {
		return 0, err
	}
	wv, err := g.GetVertex(w)
	if err != nil {
		return 0, err
	}
	return geo.Distance(uv.lon, uv.lat, wv.lon, wv.lat), nil
}

// BearingBetween returns the initial bearing in degree from vertex u to vertex w.
func (g *Graph) BearingBetween(u, w VertexID) (float64, error) {
	uv, err := g.GetVertex(u)
	if err != nil {
		return 0, err
	}
	wv, err := g.GetVertex(w)
	if err != nil {
		return 0, err
	}
	return geo.Bearing(uv.lon, uv.lat, wv.lon, wv.lat), nil
}

// RoadNameBetween returns the name of the way that connected u and w.
func (g *Graph) RoadNameBetween(u, w VertexID) (string, error) {
	uv, err := g.GetVertex(u)
	if err != nil {
		return "", err
	}
	if !g.HasVertex(w) {
		return "", util.WrapErrorf(ErrUnknownVertex, util.ErrNotFound, "vertex %d not found", w)
	}
	pos := uv.adjacentPos(w)
	if pos == -1 {
		return "", util.WrapErrorf(ErrNotAdjacent, util.ErrBadParamInput, "vertex %d is not adjacent to %d", u, w)
	}
	return uv.edgeRoads[pos], nil
}

// CheckCoordinate rejects NaN and infinite coordinates, no vertex is closest to them.
func CheckCoordinate(lon, lat float64) error {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return util.WrapErrorf(ErrBadCoordinate, util.ErrBadParamInput, "invalid coordinate (%f, %f)", lon, lat)
	}
	return nil
}

/*
Closest. returns the id of the vertex nearest (great-circle distance) to (lon, lat).
brute force scan in ascending id order with strict comparison: when several vertices are equidistant the one with
the lowest id wins.
*/
func (g *Graph) Closest(lon, lat float64) (VertexID, error) {
	if err := CheckCoordinate(lon, lat); err != nil {
		return 0, err
	}
	if len(g.ids) == 0 {
		return 0, util.WrapErrorf(ErrEmptyGraph, util.ErrNotFound, "no vertex close to (%f, %f)", lon, lat)
	}

	minDistance := math.Inf(1)
	minID := g.ids[0]
	for _, id := range g.ids {
		v := g.vertices[id]
		dist := geo.Distance(lon, lat, v.lon, v.lat)
		if dist < minDistance {
			minDistance = dist
			minID = id
		}
	}
	return minID, nil
}
