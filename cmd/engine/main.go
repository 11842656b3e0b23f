package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/roadroute/pkg/engine"
	"github.com/lintang-b-s/roadroute/pkg/http"
	"github.com/lintang-b-s/roadroute/pkg/http/usecases"
	"github.com/lintang-b-s/roadroute/pkg/logger"
	"github.com/lintang-b-s/roadroute/pkg/spatialindex"
	"github.com/lintang-b-s/roadroute/pkg/speedassigner"
	"github.com/lintang-b-s/roadroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile             = flag.String("graph", "./data/original.graph", "graph file written by cmd/preprocessor")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	useRateLimit          = flag.Bool("rate_limit", false, "enable the request rate limiter")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	profile, err := speedassigner.ProfileFromConfig()
	if err != nil {
		logger.Fatal("invalid speed profile", zap.Error(err))
	}

	cfg := engine.Config{
		Profile:        profile,
		RouteCacheSize: viper.GetInt("ROUTE_CACHE_SIZE"),
		BatchWorkers:   viper.GetInt("BATCH_WORKERS"),
	}
	routingEngine, err := engine.NewEngineFromFile(*graphFile, cfg, logger)
	if err != nil {
		logger.Fatal("load routing engine", zap.Error(err))
	}
	routingEngine.Prepare()

	rtree := spatialindex.NewRtree()
	rtree.Build(routingEngine.GetGraph(), *leafBoundingBoxRadius, logger)

	routingService := usecases.NewRoutingService(logger, routingEngine, rtree, viper.GetFloat64("SNAP_RADIUS_KM"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := http.NewServer(logger)
	err = api.Use(ctx, *useRateLimit, routingService)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", zap.Error(err))
		return
	}

	logger.Info("roadroute routing engine server stopped")
}
