package controllers

import (
	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/http/usecases"
	"github.com/lintang-b-s/bearmaps/pkg/osmparser"
	"github.com/lintang-b-s/bearmaps/pkg/rasterer"
	"github.com/lintang-b-s/bearmaps/pkg/util"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

type nearestVertexRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type autocompleteRequest struct {
	Prefix string `json:"prefix" validate:"required,max=100"`
}

type locationsRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type rasterRequest struct {
	UlLon  float64 `json:"ullon" validate:"min=-180,max=180"`
	UlLat  float64 `json:"ullat" validate:"min=-90,max=90"`
	LrLon  float64 `json:"lrlon" validate:"min=-180,max=180"`
	LrLat  float64 `json:"lrlat" validate:"min=-90,max=90"`
	Width  float64 `json:"w" validate:"gt=0,max=10000"`
	Height float64 `json:"h" validate:"gt=0,max=10000"`
}

type drivingDirection struct {
	Instruction string  `json:"instruction"`
	TurnType    string  `json:"turn_type"`
	StreetName  string  `json:"street_name"`
	Distance    float64 `json:"distance"`
}

func NewDrivingDirections(directions []datastructure.Direction) []drivingDirection {
	res := make([]drivingDirection, len(directions))
	for i, d := range directions {
		res[i] = drivingDirection{
			Instruction: d.String(),
			TurnType:    d.GetTurn().TurnType(),
			StreetName:  d.GetRoadName(),
			Distance:    util.RoundFloat(d.GetDistance(), 3),
		}
	}
	return res
}

type shortestPathResponse struct {
	Path       string             `json:"path"`
	Dist       float64            `json:"distance"`
	Vertices   []int64            `json:"vertices"`
	Directions []drivingDirection `json:"driving_directions"`
}

func NewShortestPathResponse(route *usecases.Route) shortestPathResponse {
	vertices := make([]int64, len(route.Path))
	for i, id := range route.Path {
		vertices[i] = int64(id)
	}
	return shortestPathResponse{
		Path:       route.Polyline,
		Dist:       util.RoundFloat(route.Distance, 6),
		Vertices:   vertices,
		Directions: NewDrivingDirections(route.Directions),
	}
}

type vertexResponse struct {
	ID        int64    `json:"id"`
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Name      string   `json:"name,omitempty"`
	RoadNames []string `json:"road_names"`
}

func NewVertexResponse(v *datastructure.Vertex) vertexResponse {
	return vertexResponse{
		ID:        int64(v.GetID()),
		Lat:       v.GetLat(),
		Lon:       v.GetLon(),
		Name:      v.GetName(),
		RoadNames: v.GetRoadNames(),
	}
}

type locationResponse struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func NewLocationsResponse(locs []osmparser.Location) []locationResponse {
	res := make([]locationResponse, len(locs))
	for i, l := range locs {
		res[i] = locationResponse{ID: l.ID, Name: l.Name, Lat: l.Lat, Lon: l.Lon}
	}
	return res
}

type rasterResponse struct {
	RenderGrid   [][]string `json:"render_grid"`
	RasterUlLon  float64    `json:"raster_ul_lon"`
	RasterUlLat  float64    `json:"raster_ul_lat"`
	RasterLrLon  float64    `json:"raster_lr_lon"`
	RasterLrLat  float64    `json:"raster_lr_lat"`
	Depth        int        `json:"depth"`
	QuerySuccess bool       `json:"query_success"`
}

func NewRasterResponse(raster *rasterer.Raster) rasterResponse {
	return rasterResponse{
		RenderGrid:   raster.RenderGrid,
		RasterUlLon:  raster.Box.UlLon,
		RasterUlLat:  raster.Box.UlLat,
		RasterLrLon:  raster.Box.LrLon,
		RasterLrLat:  raster.Box.LrLat,
		Depth:        raster.Depth,
		QuerySuccess: true,
	}
}
