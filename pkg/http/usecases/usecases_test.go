package usecases

import (
	"context"
	"testing"

	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/engine/routing"
	"github.com/lintang-b-s/bearmaps/pkg/geo"
	"github.com/lintang-b-s/bearmaps/pkg/osmparser"
	"github.com/lintang-b-s/bearmaps/pkg/search"
	"github.com/lintang-b-s/bearmaps/pkg/spatialindex"
	"github.com/lintang-b-s/bearmaps/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRoutingService() (*RoutingService, *datastructure.Graph) {
	vertices := []datastructure.VertexRecord{
		datastructure.NewVertexRecord(1, 37.87, -122.270, ""),
		datastructure.NewVertexRecord(2, 37.87, -122.269, ""),
		datastructure.NewVertexRecord(3, 37.87, -122.268, ""),
		datastructure.NewVertexRecord(4, 37.871, -122.268, ""),
		datastructure.NewVertexRecord(5, 37.80, -122.200, ""),
		datastructure.NewVertexRecord(6, 37.80, -122.199, ""),
	}
	ways := []datastructure.WayRecord{
		datastructure.NewWayRecord(1, "Durant Avenue", []datastructure.VertexID{1, 2, 3}),
		datastructure.NewWayRecord(2, "Telegraph Avenue", []datastructure.VertexID{3, 4}),
		datastructure.NewWayRecord(3, "Island Road", []datastructure.VertexID{5, 6}),
	}
	log := zap.NewNop()
	g := datastructure.NewGraph(vertices, ways, log)
	rt := spatialindex.NewRtree(0.1)
	rt.Build(g, log)
	return NewRoutingService(log, g, rt), g
}

func TestRoutingServiceShortestPath(t *testing.T) {
	rs, g := newTestRoutingService()

	route, err := rs.ShortestPath(context.Background(), 37.87, -122.270, 37.871, -122.268)
	require.NoError(t, err)
	assert.Equal(t, []datastructure.VertexID{1, 2, 3, 4}, route.Path)

	want, err := routing.PathDistance(g, route.Path)
	require.NoError(t, err)
	assert.InDelta(t, want, route.Distance, 1e-12)

	coords, err := geo.CoordsFromPolyline(route.Polyline)
	require.NoError(t, err)
	require.Len(t, coords, 4)
	assert.InDelta(t, 37.871, coords[3].GetLat(), 1e-5)
	assert.InDelta(t, -122.268, coords[3].GetLon(), 1e-5)

	require.Len(t, route.Directions, 2)
	assert.Equal(t, datastructure.START, route.Directions[0].GetTurn())
	assert.Equal(t, datastructure.TURN_LEFT, route.Directions[1].GetTurn())
	assert.Equal(t, "Telegraph Avenue", route.Directions[1].GetRoadName())
}

func TestRoutingServiceNoPath(t *testing.T) {
	rs, _ := newTestRoutingService()

	_, err := rs.ShortestPath(context.Background(), 37.87, -122.270, 37.80, -122.2)
	assert.ErrorIs(t, err, routing.ErrNoPathFound)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
}

func TestRoutingServiceNearestVertex(t *testing.T) {
	rs, _ := newTestRoutingService()

	v, err := rs.NearestVertex(37.8009, -122.1991)
	require.NoError(t, err)
	assert.Equal(t, datastructure.VertexID(6), v.GetID())
}

func TestSearchService(t *testing.T) {
	idx := search.NewIndex([]osmparser.Location{
		osmparser.NewLocation(1, "Top Dog", 37.87, -122.27),
		osmparser.NewLocation(2, "Tooth Doctor", 37.86, -122.26),
		osmparser.NewLocation(3, "Tofu House", 37.86, -122.26),
	}, nil)
	ss := NewSearchService(idx, 2)

	names, err := ss.Autocomplete("to")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tofu House", "Tooth Doctor"}, names)

	_, err = ss.Autocomplete("  ")
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))

	locs, err := ss.Locations("TOP DOG")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, int64(1), locs[0].ID)

	_, err = ss.Locations("nowhere")
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
}
