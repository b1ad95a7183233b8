package engine

import (
	"context"

	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/osmparser"
	"github.com/lintang-b-s/bearmaps/pkg/search"
	"github.com/lintang-b-s/bearmaps/pkg/spatialindex"
	"go.uber.org/zap"
)

// Engine read-only state shared by every query: the road graph, its spatial index and the location search index.
type Engine struct {
	graph        *datastructure.Graph
	spatialIndex *spatialindex.Rtree
	searchIndex  *search.Index
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetSpatialIndex() *spatialindex.Rtree {
	return e.spatialIndex
}

func (e *Engine) GetSearchIndex() *search.Index {
	return e.searchIndex
}

// NewEngine parses mapFile and builds every index. searchRadius is the initial r-tree search radius in miles.
func NewEngine(ctx context.Context, mapFile string, searchRadius float64, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting bearmaps routing engine...", zap.String("mapFile", mapFile))

	mapData, err := osmparser.NewOSMParser(logger).Parse(ctx, mapFile)
	if err != nil {
		return nil, err
	}
	return NewEngineFromMapData(mapData, searchRadius, logger), nil
}

func NewEngineFromMapData(mapData *osmparser.MapData, searchRadius float64, logger *zap.Logger) *Engine {
	graph := datastructure.NewGraph(mapData.Vertices, mapData.Ways, logger)

	rtree := spatialindex.NewRtree(searchRadius)
	rtree.Build(graph, logger)

	searchIndex := search.NewIndex(mapData.Locations, logger)

	return &Engine{
		graph:        graph,
		spatialIndex: rtree,
		searchIndex:  searchIndex,
	}
}
