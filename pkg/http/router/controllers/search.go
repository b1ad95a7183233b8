package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/bearmaps/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type searchAPI struct {
	searchService SearchService
	validator     *requestValidator
	log           *zap.Logger
}

func NewSearchAPI(searchService SearchService, log *zap.Logger) *searchAPI {
	return &searchAPI{
		searchService: searchService,
		validator:     newRequestValidator(),
		log:           log,
	}
}

func (api *searchAPI) Routes(group *helper.RouteGroup) {
	group.GET("/search/autocomplete", api.autocomplete)
	group.GET("/search/locations", api.locations)
}

// autocomplete
//
//	@Summary		location names starting with a prefix
//	@Tags			search
//	@Param			prefix	query	string	true	"prefix, case and punctuation are ignored"
//	@Produce		application/json
//	@Router			/search/autocomplete [get]
//	@Success		200	{array}	string
//	@Failure		400
func (api *searchAPI) autocomplete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := autocompleteRequest{Prefix: r.URL.Query().Get("prefix")}
	if err := api.validator.check(request); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}

	names, err := api.searchService.Autocomplete(request.Prefix)
	if err != nil {
		getStatusCode(api.log, w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": names}, nil); err != nil {
		serverErrorResponse(api.log, w, r, err)
	}
}

// locations
//
//	@Summary		every location with the given name
//	@Tags			search
//	@Param			name	query	string	true	"location name, case and punctuation are ignored"
//	@Produce		application/json
//	@Router			/search/locations [get]
//	@Success		200	{array}	locationResponse
//	@Failure		400
//	@Failure		404
func (api *searchAPI) locations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := locationsRequest{Name: r.URL.Query().Get("name")}
	if err := api.validator.check(request); err != nil {
		badRequestResponse(api.log, w, r, err)
		return
	}

	locs, err := api.searchService.Locations(request.Name)
	if err != nil {
		getStatusCode(api.log, w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewLocationsResponse(locs)}, nil); err != nil {
		serverErrorResponse(api.log, w, r, err)
	}
}
