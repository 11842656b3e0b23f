package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/lintang-b-s/roadroute/pkg/concurrent"
	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine"
	log "github.com/lintang-b-s/roadroute/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	graphFile  = flag.String("graph", "./data/original.graph", "graph file written by cmd/preprocessor")
	numQueries = flag.Int("n", 10000, "number of random queries")
	seed       = flag.Uint64("seed", 1, "random query seed")
	mode       = flag.String("mode", "time", "cost model")
	workers    = flag.Int("workers", 8, "number of search goroutines")
	outFile    = flag.String("out", "rand_queries_result.csv", "result file")
)

type spParam struct {
	s, t da.NodeID
}

type spResult struct {
	spParam
	cost     float64
	settled  int
	duration time.Duration
	err      error
}

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := engine.DefaultConfig()
	cfg.RouteCacheSize = 0
	re, err := engine.NewEngineFromFile(*graphFile, cfg, logger)
	if err != nil {
		logger.Fatal("load routing engine", zap.Error(err))
	}
	re.Prepare()

	g := re.GetGraph()
	// sampling inside the largest component keeps unreachable pairs out of the timings.
	candidates := g.LargestComponent()
	if len(candidates) == 0 {
		logger.Fatal("empty graph")
	}
	logger.Info("sampling queries", zap.Int("component_nodes", len(candidates)),
		zap.Int("graph_nodes", g.NumberOfVertices()))

	rng := rand.New(rand.NewSource(*seed))
	queries := make([]spParam, *numQueries)
	for i := range queries {
		s := candidates[rng.Intn(len(candidates))]
		t := candidates[rng.Intn(len(candidates))]
		queries[i] = spParam{s: g.GetNodeID(s), t: g.GetNodeID(t)}
	}

	model := costfunction.ParseCostModel(*mode)
	ctx := context.Background()

	start := time.Now()
	results := concurrent.Map(*workers, queries, func(p spParam) spResult {
		before := time.Now()
		route, err := re.ShortestPath(ctx, p.s, p.t, model)
		res := spResult{spParam: p, duration: time.Since(before), err: err}
		if err == nil {
			res.cost = route.Cost
			res.settled = route.Stats.Settled
		}
		return res
	})
	total := time.Since(start)

	f, err := os.Create(*outFile)
	if err != nil {
		logger.Fatal("create result file", zap.Error(err))
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, "source,target,cost,settled,micros")
	durations := make([]time.Duration, 0, len(results))
	unreachable := 0
	for _, r := range results {
		if r.err != nil {
			logger.Error("query failed", zap.Int64("s", int64(r.s)), zap.Int64("t", int64(r.t)), zap.Error(r.err))
			continue
		}
		if math.IsInf(r.cost, 1) {
			unreachable++
		}
		durations = append(durations, r.duration)
		fmt.Fprintf(w, "%d,%d,%s,%d,%d\n", r.s, r.t, formatCost(r.cost), r.settled, r.duration.Microseconds())
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	logger.Info("random queries done",
		zap.Int("queries", len(queries)),
		zap.Int("unreachable", unreachable),
		zap.Duration("total", total),
		zap.Duration("p50", percentile(durations, 0.5)),
		zap.Duration("p99", percentile(durations, 0.99)),
	)
}

func formatCost(c float64) string {
	if math.IsInf(c, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.3f", c)
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(p*float64(len(sorted)-1))]
}
