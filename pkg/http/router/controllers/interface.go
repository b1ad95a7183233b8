package controllers

import (
	"context"

	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/http/usecases"
	"github.com/lintang-b-s/bearmaps/pkg/osmparser"
	"github.com/lintang-b-s/bearmaps/pkg/rasterer"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (*usecases.Route, error)
	NearestVertex(lat, lon float64) (*datastructure.Vertex, error)
}

type SearchService interface {
	Autocomplete(prefix string) ([]string, error)
	Locations(name string) ([]osmparser.Location, error)
}

type RasterService interface {
	GetMapRaster(query rasterer.Query) (*rasterer.Raster, error)
}
