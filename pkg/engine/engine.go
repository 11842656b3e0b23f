package engine

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/roadroute/pkg/concurrent"
	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
	"github.com/lintang-b-s/roadroute/pkg/speedassigner"
	"go.uber.org/zap"
)

type Config struct {
	Profile        speedassigner.Profile
	RouteCacheSize int // <= 0 disables the route cache
	BatchWorkers   int
}

func DefaultConfig() Config {
	return Config{
		Profile:        speedassigner.DefaultProfile(),
		RouteCacheSize: 4096,
		BatchWorkers:   8,
	}
}

type routeCacheKey struct {
	start, end datastructure.NodeID
	model      costfunction.CostModel
}

// Engine owns one graph snapshot. Speeds are assigned once, before the first search, and the
// graph is read-only afterwards, so any number of searches may run against it concurrently.
type Engine struct {
	graph      *datastructure.Graph
	cfg        Config
	logger     *zap.Logger
	routeCache *lru.Cache[routeCacheKey, *routing.Route]

	assignOnce sync.Once
	summary    speedassigner.AssignmentSummary
}

func NewEngine(graph *datastructure.Graph, cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		graph:  graph,
		cfg:    cfg,
		logger: logger,
	}
	if cfg.RouteCacheSize > 0 {
		cache, err := lru.New[routeCacheKey, *routing.Route](cfg.RouteCacheSize)
		if err != nil {
			return nil, err
		}
		e.routeCache = cache
	}
	return e, nil
}

// NewEngineFromFile reads a graph written by Graph.WriteGraph.
func NewEngineFromFile(graphFilePath string, cfg Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("Graph loaded", zap.Int("nodes", graph.NumberOfVertices()), zap.Int("edges", graph.NumberOfEdges()))
	return NewEngine(graph, cfg, logger)
}

// Prepare runs the speed assignment pass. Only the first call does any work.
func (e *Engine) Prepare() speedassigner.AssignmentSummary {
	e.assignOnce.Do(func() {
		e.summary = speedassigner.AssignSpeeds(e.graph, e.cfg.Profile)
		e.logger.Info("Speeds assigned",
			zap.Int("edges", e.summary.Edges),
			zap.Int("defaulted", e.summary.Defaulted),
			zap.Int("classifications", len(e.summary.PerClass)))
	})
	return e.summary
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetProfile() speedassigner.Profile {
	return e.cfg.Profile
}

func (e *Engine) GetAssignmentSummary() speedassigner.AssignmentSummary {
	return e.Prepare()
}

func (e *Engine) costFunction(model costfunction.CostModel) costfunction.CostFunction {
	if model == costfunction.Time {
		return costfunction.NewTimeCostFunction(e.cfg.Profile.FallbackSpeed)
	}
	return costfunction.NewCostFunction(model)
}

// ShortestPath returns the cheapest route from start to end under model. The returned route may be
// shared with other callers through the cache and must not be modified; the Stats of a cached route
// describe the search that filled the cache entry.
// Calls with opts bypass the cache in both directions, so their options always apply to a fresh search.
func (e *Engine) ShortestPath(ctx context.Context, start, end datastructure.NodeID,
	model costfunction.CostModel, opts ...routing.Option) (*routing.Route, error) {
	e.Prepare()

	useCache := e.routeCache != nil && len(opts) == 0
	key := routeCacheKey{start: start, end: end, model: model}
	if useCache {
		if route, ok := e.routeCache.Get(key); ok {
			return route, nil
		}
	}

	opts = append([]routing.Option{routing.WithContext(ctx)}, opts...)
	route, err := routing.NewDijkstra(e.graph, e.costFunction(model), opts...).ShortestPathSearch(start, end)
	if err != nil {
		return nil, err
	}

	if useCache {
		e.routeCache.Add(key, route)
	}
	return route, nil
}

type Query struct {
	Start datastructure.NodeID   `json:"start"`
	End   datastructure.NodeID   `json:"end"`
	Model costfunction.CostModel `json:"model"`
}

type BatchResult struct {
	Query Query
	Route *routing.Route
	Err   error
}

// ShortestPathBatch runs every query on the batch worker pool and returns the results in query order.
// A failed query does not stop the others.
func (e *Engine) ShortestPathBatch(ctx context.Context, queries []Query) []BatchResult {
	e.Prepare()

	return concurrent.Map(e.cfg.BatchWorkers, queries, func(q Query) BatchResult {
		route, err := e.ShortestPath(ctx, q.Start, q.End, q.Model)
		return BatchResult{Query: q, Route: route, Err: err}
	})
}
