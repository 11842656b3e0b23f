package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
	"github.com/lintang-b-s/roadroute/pkg/logger"
	"github.com/lintang-b-s/roadroute/pkg/speedassigner"
	"github.com/lintang-b-s/roadroute/pkg/util"
	"go.uber.org/zap"
)

var (
	graphFile = flag.String("graph", "./data/original.graph", "graph file written by cmd/preprocessor")
	origin    = flag.Int64("s", 0, "origin node id")
	target    = flag.Int64("t", 0, "destination node id")
	mode      = flag.String("mode", "distance", "cost model: distance, time or an edge attribute name")
	maxNodes  = flag.Int("max_settled", 0, "abort after this many settled nodes, 0 means no limit")
	dumpFile  = flag.String("dump", "", "write a human readable dump of the graph to this file and exit")
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
	cfg := engine.DefaultConfig()
	cfg.Profile = profile
	cfg.RouteCacheSize = 0

	re, err := engine.NewEngineFromFile(*graphFile, cfg, logger)
	if err != nil {
		logger.Fatal("load routing engine", zap.Error(err))
	}
	re.Prepare()

	if *dumpFile != "" {
		if err := dump(re.GetGraph(), *dumpFile); err != nil {
			logger.Fatal("dump graph", zap.Error(err))
		}
		logger.Info("graph dumped", zap.String("file", *dumpFile))
		return
	}

	route, err := re.ShortestPath(context.Background(), datastructure.NodeID(*origin), datastructure.NodeID(*target),
		costfunction.ParseCostModel(*mode), routing.WithMaxSettledNodes(*maxNodes))
	if err != nil {
		logger.Fatal("shortest path", zap.Error(err))
	}

	if !route.Found {
		fmt.Printf("node %d is unreachable from node %d\n", *target, *origin)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	type output struct {
		Nodes  []datastructure.NodeID `json:"nodes"`
		Hops   []routing.Hop          `json:"hops"`
		Cost   *float64               `json:"cost"`
		Length float64                `json:"length"`
		Found  bool                   `json:"found"`
		Stats  routing.QueryStats     `json:"stats"`
	}
	out := output{Nodes: route.Nodes, Hops: route.Hops, Length: route.Length(), Found: route.Found, Stats: route.Stats}
	if route.Found {
		out.Cost = &route.Cost
	}
	if err := enc.Encode(out); err != nil {
		logger.Fatal("encode route", zap.Error(err))
	}
}

func dump(graph *datastructure.Graph, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.DumpGraph(f)
}
