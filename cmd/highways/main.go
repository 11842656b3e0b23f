package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lintang-b-s/roadroute/pkg/logger"
	"github.com/lintang-b-s/roadroute/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	mapFile = flag.String("f", "./data/diy.osm.pbf", "openstreetmap .osm.pbf file")
	outFile = flag.String("out", "./data/highways.txt", "output text file")
)

// highways lists every distinct highway value of a map file with its way count and whether the
// graph builder keeps it.
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	counts, err := osmparser.SurveyHighways(context.Background(), *mapFile)
	if err != nil {
		logger.Fatal("survey highways", zap.String("file", *mapFile), zap.Error(err))
	}

	f, err := os.Create(*outFile)
	if err != nil {
		logger.Fatal("create output file", zap.Error(err))
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, hc := range counts {
		fmt.Fprintf(w, "%s %d %t\n", hc.Highway, hc.Ways, osmparser.IsDrivable(hc.Highway))
	}
	if err := w.Flush(); err != nil {
		logger.Fatal("write output file", zap.Error(err))
	}

	logger.Info("highway survey written", zap.String("file", *outFile), zap.Int("classifications", len(counts)))
}
