package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/http/server"
	"github.com/lintang-b-s/bearmaps/pkg/http/usecases"
	"github.com/lintang-b-s/bearmaps/pkg/osmparser"
	"github.com/lintang-b-s/bearmaps/pkg/rasterer"
	"github.com/lintang-b-s/bearmaps/pkg/search"
	"github.com/lintang-b-s/bearmaps/pkg/spatialindex"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testHandler line A(1) - B(2) - C(3) on "Main St", C(3) - D(4) on "Oak St", plus a separate road 5 - 6.
func testHandler(t *testing.T, config server.Config) http.Handler {
	t.Helper()
	vertices := []datastructure.VertexRecord{
		datastructure.NewVertexRecord(1, 37.87, -122.270, "Top Dog"),
		datastructure.NewVertexRecord(2, 37.87, -122.269, ""),
		datastructure.NewVertexRecord(3, 37.87, -122.268, ""),
		datastructure.NewVertexRecord(4, 37.87, -122.267, ""),
		datastructure.NewVertexRecord(5, 37.80, -122.200, ""),
		datastructure.NewVertexRecord(6, 37.80, -122.199, ""),
	}
	ways := []datastructure.WayRecord{
		datastructure.NewWayRecord(1, "Main St", []datastructure.VertexID{1, 2, 3}),
		datastructure.NewWayRecord(2, "Oak St", []datastructure.VertexID{3, 4}),
		datastructure.NewWayRecord(3, "Island Rd", []datastructure.VertexID{5, 6}),
	}
	log := zap.NewNop()
	g := datastructure.NewGraph(vertices, ways, log)

	rt := spatialindex.NewRtree(0.1)
	rt.Build(g, log)

	idx := search.NewIndex([]osmparser.Location{
		osmparser.NewLocation(1, "Top Dog", 37.87, -122.27),
		osmparser.NewLocation(7, "Tooth Doctor", 37.86, -122.26),
	}, log)

	return NewAPI(log).Handler(config, prometheus.NewRegistry(),
		usecases.NewRoutingService(log, g, rt), usecases.NewSearchService(idx, 10), rasterer.NewBerkeleyRasterer())
}

func doGet(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestComputeRoutes(t *testing.T) {
	h := testHandler(t, server.Config{})

	rr := doGet(t, h, "/api/computeRoutes?origin_lat=37.87&origin_lon=-122.270&destination_lat=37.87&destination_lon=-122.267")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		Data struct {
			Path       string  `json:"path"`
			Distance   float64 `json:"distance"`
			Vertices   []int64 `json:"vertices"`
			Directions []struct {
				Instruction string  `json:"instruction"`
				TurnType    string  `json:"turn_type"`
				StreetName  string  `json:"street_name"`
				Distance    float64 `json:"distance"`
			} `json:"driving_directions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	assert.Equal(t, []int64{1, 2, 3, 4}, body.Data.Vertices)
	assert.NotEmpty(t, body.Data.Path)
	assert.Greater(t, body.Data.Distance, 0.0)
	require.Len(t, body.Data.Directions, 2)
	assert.Equal(t, "START", body.Data.Directions[0].TurnType)
	assert.Equal(t, "Main St", body.Data.Directions[0].StreetName)
	assert.True(t, strings.HasPrefix(body.Data.Directions[0].Instruction, "Start on Main St and continue for "))
	assert.Equal(t, "Oak St", body.Data.Directions[1].StreetName)

	_, err := datastructure.ParseDirection(body.Data.Directions[1].Instruction)
	assert.NoError(t, err)
}

func TestComputeRoutesErrors(t *testing.T) {
	h := testHandler(t, server.Config{})

	testCases := []struct {
		name string
		url  string
		want int
	}{
		{
			name: "missing parameter",
			url:  "/api/computeRoutes?origin_lat=37.87&origin_lon=-122.270&destination_lat=37.87",
			want: http.StatusBadRequest,
		},
		{
			name: "not a number",
			url:  "/api/computeRoutes?origin_lat=north&origin_lon=-122.270&destination_lat=37.87&destination_lon=-122.267",
			want: http.StatusBadRequest,
		},
		{
			name: "latitude out of range",
			url:  "/api/computeRoutes?origin_lat=97.87&origin_lon=-122.270&destination_lat=37.87&destination_lon=-122.267",
			want: http.StatusBadRequest,
		},
		{
			name: "unreachable destination",
			url:  "/api/computeRoutes?origin_lat=37.87&origin_lon=-122.270&destination_lat=37.80&destination_lon=-122.2",
			want: http.StatusNotFound,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rr := doGet(t, h, tt.url)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			assert.Contains(t, rr.Body.String(), `"error"`)
		})
	}
}

func TestNearestVertex(t *testing.T) {
	h := testHandler(t, server.Config{})

	rr := doGet(t, h, "/api/nearestVertex?lat=37.8701&lon=-122.2699")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data struct {
			ID        int64    `json:"id"`
			Name      string   `json:"name"`
			RoadNames []string `json:"road_names"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Data.ID)
	assert.Equal(t, "Top Dog", body.Data.Name)
	assert.Equal(t, []string{"Main St"}, body.Data.RoadNames)

	rr = doGet(t, h, "/api/nearestVertex?lat=37.8701")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSearch(t *testing.T) {
	h := testHandler(t, server.Config{})

	rr := doGet(t, h, "/api/search/autocomplete?prefix=to")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":["Tooth Doctor","Top Dog"]}`, rr.Body.String())

	rr = doGet(t, h, "/api/search/autocomplete?prefix=")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doGet(t, h, "/api/search/locations?name=top%20dog")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[{"id":1,"name":"Top Dog","lat":37.87,"lon":-122.27}]}`, rr.Body.String())

	rr = doGet(t, h, "/api/search/locations?name=nowhere")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRaster(t *testing.T) {
	h := testHandler(t, server.Config{})

	rr := doGet(t, h, "/api/raster?ullon=-122.241632&ullat=37.87655&lrlon=-122.24053&lrlat=37.87548&w=892&h=875")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		Data struct {
			RenderGrid   [][]string `json:"render_grid"`
			RasterUlLon  float64    `json:"raster_ul_lon"`
			RasterLrLat  float64    `json:"raster_lr_lat"`
			Depth        int        `json:"depth"`
			QuerySuccess bool       `json:"query_success"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Data.QuerySuccess)
	assert.Equal(t, 7, body.Data.Depth)
	require.Len(t, body.Data.RenderGrid, 3)
	assert.Equal(t, []string{"d7_x84_y28.png", "d7_x85_y28.png", "d7_x86_y28.png"}, body.Data.RenderGrid[0])
	assert.InDelta(t, -122.24212646484375, body.Data.RasterUlLon, 1e-9)
	assert.InDelta(t, 37.87538940251607, body.Data.RasterLrLat, 1e-9)

	testCases := []struct {
		name string
		url  string
		want int
	}{
		{
			name: "missing viewport",
			url:  "/api/raster?ullon=-122.25&ullat=37.88&lrlon=-122.24&lrlat=37.87&w=256",
			want: http.StatusBadRequest,
		},
		{
			name: "zero width",
			url:  "/api/raster?ullon=-122.25&ullat=37.88&lrlon=-122.24&lrlat=37.87&w=0&h=256",
			want: http.StatusBadRequest,
		},
		{
			name: "inverted box",
			url:  "/api/raster?ullon=-122.24&ullat=37.88&lrlon=-122.25&lrlat=37.87&w=256&h=256",
			want: http.StatusBadRequest,
		},
		{
			name: "outside the tiles",
			url:  "/api/raster?ullon=-100.25&ullat=40.88&lrlon=-100.24&lrlat=40.87&w=256&h=256",
			want: http.StatusNotFound,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rr := doGet(t, h, tt.url)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestHeartbeatAndMetrics(t *testing.T) {
	h := testHandler(t, server.Config{})

	rr := doGet(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ".", rr.Body.String())

	doGet(t, h, "/api/search/autocomplete?prefix=to")
	doGet(t, h, "/no/such/route")

	rr = doGet(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(),
		`bearmaps_http_requests_total{code="200",method="GET",path="/api/search/autocomplete"} 1`)
	assert.Contains(t, rr.Body.String(), `path="unmatched"`)
}

func TestRateLimit(t *testing.T) {
	h := testHandler(t, server.Config{UseRateLimit: true, RateLimitRPS: 0.001, RateLimitBurst: 1})

	rr := doGet(t, h, "/api/search/autocomplete?prefix=to")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = doGet(t, h, "/api/search/autocomplete?prefix=to")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}
