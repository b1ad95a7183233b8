package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/bearmaps/pkg/engine"
	"github.com/lintang-b-s/bearmaps/pkg/http"
	http_server "github.com/lintang-b-s/bearmaps/pkg/http/server"
	"github.com/lintang-b-s/bearmaps/pkg/http/usecases"
	"github.com/lintang-b-s/bearmaps/pkg/logger"
	"github.com/lintang-b-s/bearmaps/pkg/rasterer"
	"github.com/lintang-b-s/bearmaps/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mapFile = flag.String("f", "", "openstreetmap file (.osm, .pbf, optionally .bz2). overrides MAP_FILE")
)

func main() {
	flag.Parse()
	err := util.ReadConfig()
	if err != nil {
		panic(err)
	}
	if *mapFile != "" {
		viper.Set("MAP_FILE", *mapFile)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	routingEngine, err := engine.NewEngine(ctx, viper.GetString("MAP_FILE"), viper.GetFloat64("SPATIAL_INDEX_RADIUS"), logger)
	if err != nil {
		logger.Fatal("failed to build routing engine", zap.Error(err))
	}

	routingService := usecases.NewRoutingService(logger, routingEngine.GetGraph(), routingEngine.GetSpatialIndex())
	searchService := usecases.NewSearchService(routingEngine.GetSearchIndex(), viper.GetInt("AUTOCOMPLETE_LIMIT"))

	api := http.NewServer(logger)
	rasterService := rasterer.NewRastererFromViper()
	_, err = api.Use(ctx, http_server.ConfigFromViper(), routingService, searchService, rasterService)
	if err != nil {
		logger.Fatal("failed to start api server", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	logger.Info("bearmaps Routing Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("api server exited with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
