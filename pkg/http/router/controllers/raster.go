package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/bearmaps/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/bearmaps/pkg/rasterer"
	"go.uber.org/zap"
)

type rasterAPI struct {
	rasterService RasterService
	validator     *requestValidator
	log           *zap.Logger
}

func NewRasterAPI(rasterService RasterService, log *zap.Logger) *rasterAPI {
	return &rasterAPI{
		rasterService: rasterService,
		validator:     newRequestValidator(),
		log:           log,
	}
}

func (api *rasterAPI) Routes(group *helper.RouteGroup) {
	group.GET("/raster", api.raster)
}

// raster
//
//	@Summary		map tiles covering a query box at the resolution of the viewport
//	@Tags			raster
//	@Param			ullon	query	number	true	"upper left longitude"
//	@Param			ullat	query	number	true	"upper left latitude"
//	@Param			lrlon	query	number	true	"lower right longitude"
//	@Param			lrlat	query	number	true	"lower right latitude"
//	@Param			w		query	number	true	"viewport width in pixels"
//	@Param			h		query	number	true	"viewport height in pixels"
//	@Produce		application/json
//	@Router			/raster [get]
//	@Success		200	{object}	rasterResponse
//	@Failure		400
//	@Failure		404
func (api *rasterAPI) raster(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		request rasterRequest
		err     error
	)

	fields := []struct {
		key string
		dst *float64
	}{
		{"ullon", &request.UlLon},
		{"ullat", &request.UlLat},
		{"lrlon", &request.LrLon},
		{"lrlat", &request.LrLat},
		{"w", &request.Width},
		{"h", &request.Height},
	}
	for _, f := range fields {
		if *f.dst, err = parseFloatQuery(r, f.key); err != nil {
			badRequestResponse(api.log, w, r, err)
			return
		}
	}

	if err := api.validator.check(request); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}

	raster, err := api.rasterService.GetMapRaster(rasterer.Query{
		Box:    rasterer.NewBoundingBox(request.UlLon, request.UlLat, request.LrLon, request.LrLat),
		Width:  request.Width,
		Height: request.Height,
	})
	if err != nil {
		getStatusCode(api.log, w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewRasterResponse(raster)}, nil); err != nil {
		serverErrorResponse(api.log, w, r, err)
	}
}
