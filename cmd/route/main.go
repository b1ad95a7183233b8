package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lintang-b-s/bearmaps/pkg/concurrent"
	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/engine"
	"github.com/lintang-b-s/bearmaps/pkg/engine/routing"
	"github.com/lintang-b-s/bearmaps/pkg/guidance"
	"github.com/lintang-b-s/bearmaps/pkg/logger"
	"github.com/lintang-b-s/bearmaps/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mapFile     = flag.String("f", "", "openstreetmap file (.osm, .pbf, optionally .bz2). overrides MAP_FILE")
	queriesFile = flag.String("q", "./data/queries.csv", "query file, one origLat,origLon,dstLat,dstLon per line")
	numWorkers  = flag.Int("workers", 0, "number of routing goroutines. overrides ROUTE_WORKERS")
)

type query struct {
	line             int
	origLat, origLon float64
	dstLat, dstLon   float64
}

type answer struct {
	path       []datastructure.VertexID
	distance   float64
	directions []datastructure.Direction
	err        error
}

func main() {
	flag.Parse()
	err := util.ReadConfig()
	if err != nil {
		panic(err)
	}
	if *mapFile != "" {
		viper.Set("MAP_FILE", *mapFile)
	}
	if *numWorkers > 0 {
		viper.Set("ROUTE_WORKERS", *numWorkers)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	routingEngine, err := engine.NewEngine(ctx, viper.GetString("MAP_FILE"), viper.GetFloat64("SPATIAL_INDEX_RADIUS"), logger)
	if err != nil {
		logger.Fatal("failed to build routing engine", zap.Error(err))
	}

	queries, err := readQueries(*queriesFile)
	if err != nil {
		logger.Fatal("failed to read queries", zap.Error(err))
	}
	logger.Info("solving route queries", zap.Int("queries", len(queries)), zap.Int("workers", viper.GetInt("ROUTE_WORKERS")))

	answers, done := concurrent.Map(ctx, viper.GetInt("ROUTE_WORKERS"), queries,
		func(ctx context.Context, q query) answer {
			return solve(ctx, routingEngine, q)
		})

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for i, q := range queries {
		if !done[i] {
			continue
		}
		ans := answers[i]
		if ans.err != nil {
			fmt.Fprintf(w, "query %d: %v\n", q.line, ans.err)
			continue
		}
		fmt.Fprintf(w, "query %d: %d vertices, %.3f miles\n", q.line, len(ans.path), ans.distance)
		for _, d := range ans.directions {
			fmt.Fprintf(w, "  %s\n", d.String())
		}
	}
}

func solve(ctx context.Context, e *engine.Engine, q query) answer {
	s, err := e.GetSpatialIndex().Nearest(q.origLon, q.origLat)
	if err != nil {
		return answer{err: err}
	}
	t, err := e.GetSpatialIndex().Nearest(q.dstLon, q.dstLat)
	if err != nil {
		return answer{err: err}
	}

	path, err := routing.ShortestPathBetween(ctx, e.GetGraph(), s, t)
	if err != nil {
		return answer{err: err}
	}
	directions, err := guidance.RouteDirections(e.GetGraph(), path)
	if err != nil {
		return answer{err: err}
	}
	dist, err := routing.PathDistance(e.GetGraph(), path)
	if err != nil {
		return answer{err: err}
	}
	return answer{path: path, distance: dist, directions: directions}
}

func readQueries(filename string) ([]query, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	queries := make([]query, 0)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 fields, got %d", line, len(fields))
		}
		var coords [4]float64
		for i, field := range fields {
			coords[i], err = util.StringToFloat64(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		queries = append(queries, query{
			line:    line,
			origLat: coords[0],
			origLon: coords[1],
			dstLat:  coords[2],
			dstLon:  coords[3],
		})
	}
	return queries, scanner.Err()
}
