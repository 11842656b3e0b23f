package controllers

import (
	"context"

	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
	"github.com/lintang-b-s/roadroute/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64, mode string) (*usecases.RouteResult, error)
	ShortestPathByNode(ctx context.Context, origin, destination datastructure.NodeID, mode string) (*usecases.RouteResult, error)
	ShortestPathBatch(ctx context.Context, queries []usecases.BatchQuery) []usecases.BatchRouteResult
	RoadClassifications() []usecases.RoadClassification
	Describe(origin, destination datastructure.NodeID, route *routing.Route) *usecases.RouteResult
	NewSession() *engine.Session
}
