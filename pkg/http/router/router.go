package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/bearmaps/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/bearmaps/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/bearmaps/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

var apiPaths = []string{
	"/api/computeRoutes",
	"/api/nearestVertex",
	"/api/search/autocomplete",
	"/api/search/locations",
	"/api/raster",
}

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler builds the router and the middleware chain.
func (api *API) Handler(
	config http_server.Config,
	reg *prometheus.Registry,
	routingService controllers.RoutingService,
	searchService controllers.SearchService,
	rasterService controllers.RasterService,
) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	group := router_helper.NewRouteGroup(router, "/api")
	controllers.New(routingService, api.log).Routes(group)
	controllers.NewSearchAPI(searchService, api.log).Routes(group)
	controllers.NewRasterAPI(rasterService, api.log).Routes(group)

	metrics := NewMetrics(reg, apiPaths)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), PromHTTPMiddleware(metrics)}
	if config.UseRateLimit {
		mwChain = append(mwChain, Limit(config.RateLimitRPS, config.RateLimitBurst))
	}
	return alice.New(mwChain...).Then(router)
}

//	@title			bearmaps API
//	@version		1.0
//	@description	road routing engine for openstreetmap maps: shortest path, turn by turn directions, location search and map tiles.

// @host		localhost:6060
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	reg *prometheus.Registry,
	routingService controllers.RoutingService,
	searchService controllers.SearchService,
	rasterService controllers.RasterService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(config, reg, routingService, searchService, rasterService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-serverErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
