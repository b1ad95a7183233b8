package usecases

import (
	"context"

	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/engine/routing"
	"github.com/lintang-b-s/bearmaps/pkg/geo"
	"github.com/lintang-b-s/bearmaps/pkg/guidance"
	"go.uber.org/zap"
)

type Route struct {
	Path       []datastructure.VertexID
	Distance   float64 // miles
	Polyline   string
	Directions []datastructure.Direction
}

type RoutingService struct {
	log          *zap.Logger
	graph        RoadGraph
	spatialIndex SpatialIndex
}

func NewRoutingService(log *zap.Logger, graph RoadGraph, spatialIndex SpatialIndex) *RoutingService {
	return &RoutingService{
		log:          log,
		graph:        graph,
		spatialIndex: spatialIndex,
	}
}

// ShortestPath snaps origin & destination to their nearest vertex, runs A* between them and builds the directions.
func (rs *RoutingService) ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (*Route, error) {
	s, err := rs.spatialIndex.Nearest(origLon, origLat)
	if err != nil {
		return nil, err
	}
	t, err := rs.spatialIndex.Nearest(dstLon, dstLat)
	if err != nil {
		return nil, err
	}

	path, err := routing.ShortestPathBetween(ctx, rs.graph, s, t)
	if err != nil {
		rs.log.Debug("shortest path query failed", zap.Int64("source", int64(s)), zap.Int64("target", int64(t)),
			zap.Error(err))
		return nil, err
	}

	dist, err := routing.PathDistance(rs.graph, path)
	if err != nil {
		return nil, err
	}

	coords := make([]geo.Coordinate, len(path))
	for i, id := range path {
		lon, lat, err := rs.graph.CoordinatesOf(id)
		if err != nil {
			return nil, err
		}
		coords[i] = geo.NewCoordinate(lat, lon)
	}

	directions, err := guidance.RouteDirections(rs.graph, path)
	if err != nil {
		return nil, err
	}

	return &Route{
		Path:       path,
		Distance:   dist,
		Polyline:   geo.PoylineFromCoords(coords),
		Directions: directions,
	}, nil
}

// NearestVertex returns the vertex closest to (lat, lon).
func (rs *RoutingService) NearestVertex(lat, lon float64) (*datastructure.Vertex, error) {
	id, err := rs.spatialIndex.Nearest(lon, lat)
	if err != nil {
		return nil, err
	}
	return rs.graph.GetVertex(id)
}
