package engine

import (
	"context"
	"errors"

	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
)

var ErrIncompleteSession = errors.New("origin and destination must both be set")

// Session is the interactive state of one client: the picked origin and destination, the cost
// model and the routes computed so far. It is owned by the caller and is not safe for concurrent use.
type Session struct {
	engine *Engine

	origin      datastructure.NodeID
	destination datastructure.NodeID
	hasOrigin   bool
	hasDest     bool
	model       costfunction.CostModel

	routes []*routing.Route
}

func (e *Engine) NewSession() *Session {
	return &Session{
		engine: e,
		model:  costfunction.Distance,
		routes: make([]*routing.Route, 0),
	}
}

func (s *Session) SetOrigin(id datastructure.NodeID) error {
	if !s.engine.graph.HasNode(id) {
		return routing.NodeNotFoundError(id)
	}
	s.origin, s.hasOrigin = id, true
	return nil
}

func (s *Session) SetDestination(id datastructure.NodeID) error {
	if !s.engine.graph.HasNode(id) {
		return routing.NodeNotFoundError(id)
	}
	s.destination, s.hasDest = id, true
	return nil
}

func (s *Session) SetModel(model costfunction.CostModel) {
	s.model = model
}

func (s *Session) GetOrigin() (datastructure.NodeID, bool) {
	return s.origin, s.hasOrigin
}

func (s *Session) GetDestination() (datastructure.NodeID, bool) {
	return s.destination, s.hasDest
}

func (s *Session) GetModel() costfunction.CostModel {
	return s.model
}

// Route computes the route between the selected endpoints and appends it to the session history.
func (s *Session) Route(ctx context.Context) (*routing.Route, error) {
	if !s.hasOrigin || !s.hasDest {
		return nil, ErrIncompleteSession
	}
	route, err := s.engine.ShortestPath(ctx, s.origin, s.destination, s.model)
	if err != nil {
		return nil, err
	}
	s.routes = append(s.routes, route)
	return route, nil
}

func (s *Session) GetRoutes() []*routing.Route {
	return s.routes
}

// Reset clears the selected endpoints and history, the cost model is kept.
func (s *Session) Reset() {
	s.hasOrigin, s.hasDest = false, false
	s.routes = s.routes[:0]
}
