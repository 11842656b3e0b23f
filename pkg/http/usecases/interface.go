package usecases

import (
	"context"

	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
	"github.com/lintang-b-s/roadroute/pkg/spatialindex"
	"github.com/lintang-b-s/roadroute/pkg/speedassigner"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	GetProfile() speedassigner.Profile
	GetAssignmentSummary() speedassigner.AssignmentSummary
	ShortestPath(ctx context.Context, start, end datastructure.NodeID, model costfunction.CostModel,
		opts ...routing.Option) (*routing.Route, error)
	ShortestPathBatch(ctx context.Context, queries []engine.Query) []engine.BatchResult
	NewSession() *engine.Session
}

type SpatialIndex interface {
	SnapToNearestNode(graph *datastructure.Graph, lat, lon, radius float64) (spatialindex.Snap, error)
}
