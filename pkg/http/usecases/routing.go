package usecases

import (
	"context"
	"errors"
	"sort"

	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
	"github.com/lintang-b-s/roadroute/pkg/geo"
	"github.com/lintang-b-s/roadroute/pkg/guidance"
	"github.com/lintang-b-s/roadroute/pkg/spatialindex"
	"github.com/lintang-b-s/roadroute/pkg/util"
	"go.uber.org/zap"
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64 // km
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		searchRadius: searchRadius,
	}
}

// RouteResult is a route decorated for clients: eta in seconds and distance in meter regardless of
// the cost model, the map polyline and street instructions.
type RouteResult struct {
	Route        *routing.Route
	Origin       datastructure.NodeID
	Destination  datastructure.NodeID
	Distance     float64
	Eta          float64
	Polyline     string
	Instructions []guidance.Instruction
}

func (rs *RoutingService) ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
	mode string) (*RouteResult, error) {
	graph := rs.engine.GetGraph()

	origin, err := rs.snap(graph, origLat, origLon)
	if err != nil {
		return nil, err
	}
	destination, err := rs.snap(graph, dstLat, dstLon)
	if err != nil {
		return nil, err
	}

	return rs.ShortestPathByNode(ctx, graph.GetNodeID(origin.Node), graph.GetNodeID(destination.Node), mode)
}

func (rs *RoutingService) snap(graph *datastructure.Graph, lat, lon float64) (spatialindex.Snap, error) {
	snap, err := rs.spatialIndex.SnapToNearestNode(graph, lat, lon, rs.searchRadius)
	if err != nil {
		return snap, util.WrapErrorf(err, util.ErrNotFound,
			"no road within %.2f km of %f,%f", rs.searchRadius, lat, lon)
	}
	return snap, nil
}

func (rs *RoutingService) ShortestPathByNode(ctx context.Context, origin, destination datastructure.NodeID,
	mode string) (*RouteResult, error) {
	route, err := rs.engine.ShortestPath(ctx, origin, destination, costfunction.ParseCostModel(mode))
	if err != nil {
		return nil, rs.wrapSearchError(err)
	}
	return rs.Describe(origin, destination, route), nil
}

type BatchQuery struct {
	Origin      datastructure.NodeID
	Destination datastructure.NodeID
	Mode        string
}

type BatchRouteResult struct {
	Result *RouteResult
	Err    error
}

func (rs *RoutingService) ShortestPathBatch(ctx context.Context, queries []BatchQuery) []BatchRouteResult {
	engineQueries := make([]engine.Query, len(queries))
	for i, q := range queries {
		engineQueries[i] = engine.Query{Start: q.Origin, End: q.Destination, Model: costfunction.ParseCostModel(q.Mode)}
	}

	results := rs.engine.ShortestPathBatch(ctx, engineQueries)
	out := make([]BatchRouteResult, len(results))
	for i, res := range results {
		if res.Err != nil {
			out[i].Err = rs.wrapSearchError(res.Err)
			continue
		}
		out[i].Result = rs.Describe(queries[i].Origin, queries[i].Destination, res.Route)
	}
	return out
}

// Describe computes eta, polyline and instructions of a route. An unreachable route gets no
// polyline and no instructions.
func (rs *RoutingService) Describe(origin, destination datastructure.NodeID, route *routing.Route) *RouteResult {
	graph := rs.engine.GetGraph()
	timeCost := costfunction.NewTimeCostFunction(rs.engine.GetProfile().FallbackSpeed)

	res := &RouteResult{
		Route:        route,
		Origin:       origin,
		Destination:  destination,
		Distance:     route.Length(),
		Instructions: []guidance.Instruction{},
	}
	if !route.Found {
		return res
	}

	coords := make([]geo.Coordinate, 0, len(route.Nodes))
	for _, id := range route.Nodes {
		u, _ := graph.GetIndex(id)
		lat, lon := graph.GetVertexCoordinates(u)
		coords = append(coords, geo.NewCoordinate(lat, lon))
	}
	res.Polyline = geo.PolylineFromCoords(coords)

	for _, hop := range route.Hops {
		res.Eta += timeCost.GetWeight(graph.GetEdge(hop.GetEdgeId()))
	}

	res.Instructions = guidance.NewDirectionBuilder(graph, timeCost).GetDrivingDirections(route)
	return res
}

func (rs *RoutingService) wrapSearchError(err error) error {
	var uErr *util.Error
	if errors.As(err, &uErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, routing.ErrSearchAborted) {
		return util.WrapErrorf(err, util.ErrInternalServerError, "route search aborted: %v", err)
	}
	rs.log.Error("route search failed", zap.Error(err))
	return util.WrapErrorf(err, util.ErrInternalServerError, "route search failed: %v", err)
}

type RoadClassification struct {
	Classification string
	Edges          int
	Speed          float64 // km/h
}

// RoadClassifications lists the classifications found on the graph with the speed each one was
// assigned, most common first.
func (rs *RoutingService) RoadClassifications() []RoadClassification {
	summary := rs.engine.GetAssignmentSummary()
	out := make([]RoadClassification, 0, len(summary.PerClass))
	for class, n := range summary.PerClass {
		out = append(out, RoadClassification{Classification: class, Edges: n, Speed: summary.SpeedPerClass[class]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Edges != out[j].Edges {
			return out[i].Edges > out[j].Edges
		}
		return out[i].Classification < out[j].Classification
	})
	return out
}

// NewSession starts an interactive session bound to this service's engine.
func (rs *RoutingService) NewSession() *engine.Session {
	return rs.engine.NewSession()
}
