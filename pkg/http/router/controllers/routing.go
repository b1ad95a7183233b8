package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/bearmaps/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	validator      *requestValidator
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		validator:      newRequestValidator(),
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/nearestVertex", api.nearestVertex)
}

// shortestPath
//
//	@Summary		shortest path between two coordinates with turn by turn directions
//	@Tags			routing
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Produce		application/json
//	@Router			/computeRoutes [get]
//	@Success		200	{object}	shortestPathResponse
//	@Failure		400
//	@Failure		404
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	if request.OriginLat, err = parseFloatQuery(r, "origin_lat"); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}
	if request.OriginLon, err = parseFloatQuery(r, "origin_lon"); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}
	if request.DestinationLat, err = parseFloatQuery(r, "destination_lat"); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}
	if request.DestinationLon, err = parseFloatQuery(r, "destination_lon"); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}
	if err := api.validator.check(request); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}

	route, err := api.routingService.ShortestPath(r.Context(), request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon)
	if err != nil {
		getStatusCode(api.log, w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route)}, nil); err != nil {
		serverErrorResponse(api.log, w, r, err)
	}
}

// nearestVertex
//
//	@Summary		road network vertex closest to a coordinate
//	@Tags			routing
//	@Param			lat	query	number	true	"latitude"
//	@Param			lon	query	number	true	"longitude"
//	@Produce		application/json
//	@Router			/nearestVertex [get]
//	@Success		200	{object}	vertexResponse
//	@Failure		400
func (api *routingAPI) nearestVertex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		request nearestVertexRequest
		err     error
	)
	if request.Lat, err = parseFloatQuery(r, "lat"); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}
	if request.Lon, err = parseFloatQuery(r, "lon"); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}
	if err := api.validator.check(request); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}

	v, err := api.routingService.NearestVertex(request.Lat, request.Lon)
	if err != nil {
		getStatusCode(api.log, w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewVertexResponse(v)}, nil); err != nil {
		serverErrorResponse(api.log, w, r, err)
	}
}
