package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/roadroute/pkg/logger"
	"github.com/lintang-b-s/roadroute/pkg/osmparser"
	"github.com/lintang-b-s/roadroute/pkg/util"
	"go.uber.org/zap"
)

var (
	mapFile   = flag.String("f", "./data/diy.osm.pbf", "openstreetmap .osm.pbf file")
	graphFile = flag.String("out", "./data/original.graph", "output graph file")
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

	osmParser := osmparser.NewOSMParser(logger)
	graph, err := osmParser.Parse(context.Background(), *mapFile)
	if err != nil {
		logger.Fatal("parse osm file", zap.String("file", *mapFile), zap.Error(err))
	}

	_, sccs := graph.StronglyConnectedComponents()
	logger.Info("strongly connected components", zap.Int("count", sccs),
		zap.Int("largest", len(graph.LargestComponent())))

	if err := graph.WriteGraph(*graphFile); err != nil {
		logger.Fatal("write graph", zap.String("file", *graphFile), zap.Error(err))
	}

	logger.Sugar().Infof("Preprocessing completed successfully. %d nodes, %d edges written to %s",
		graph.NumberOfVertices(), graph.NumberOfEdges(), *graphFile)
}
