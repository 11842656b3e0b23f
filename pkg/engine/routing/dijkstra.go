package routing

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/roadroute/pkg"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/util"
)

// Dijkstra is a single-source single-target search over a read-only graph snapshot.
// The frontier uses lazy deletion: an improved node is pushed again and its older
// entries are skipped when popped. A Dijkstra value holds no per-query state, so one
// value can serve concurrent searches as long as nobody mutates the graph meanwhile.
type Dijkstra struct {
	graph        *da.Graph
	costFunction CostFunction
	opts         searchOptions
}

func NewDijkstra(graph *da.Graph, costFunction CostFunction, opts ...Option) *Dijkstra {
	o := defaultSearchOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Dijkstra{
		graph:        graph,
		costFunction: costFunction,
		opts:         o,
	}
}

// ShortestPathSearch returns the cheapest route from start to end. An unreachable end is not an
// error: the route has Found=false, Cost=+Inf and the single node [end].
func (d *Dijkstra) ShortestPathSearch(start, end da.NodeID) (*Route, error) {
	s, ok := d.graph.GetIndex(start)
	if !ok {
		return nil, util.WrapErrorf(ErrNodeNotFound, util.ErrNotFound, "start node %d not found", start)
	}
	t, ok := d.graph.GetIndex(end)
	if !ok {
		return nil, util.WrapErrorf(ErrNodeNotFound, util.ErrNotFound, "end node %d not found", end)
	}

	if s == t {
		return &Route{
			Nodes: []da.NodeID{start},
			Hops:  []Hop{},
			Cost:  0,
			Found: true,
			Model: d.costFunction.Model(),
		}, nil
	}

	info, stats, err := d.Search(s, t)
	if err != nil {
		return nil, err
	}

	route := d.buildRoute(info, t)
	route.Stats = stats
	return route, nil
}

// Search runs the scan loop from s until t is settled or the frontier is empty, and returns the
// cost table and predecessor map.
func (d *Dijkstra) Search(s, t da.Index) (*QueryInfo, QueryStats, error) {
	var stats QueryStats

	info := NewQueryInfo(d.graph.NumberOfVertices())
	info.setSource(s)

	pq := da.NewdAryHeap[da.Index](d.opts.heapArity)
	pq.Preallocate(d.graph.NumberOfVertices())
	pq.Insert(da.NewPriorityQueueNode(0, s))
	stats.Pushes++

	for !pq.IsEmpty() {
		if err := d.checkAbort(stats); err != nil {
			return info, stats, err
		}

		qNode, _ := pq.ExtractMin()
		stats.Pops++
		uCost, u := qNode.GetRank(), qNode.GetItem()

		if uCost > info.GetCost(u) {
			// stale entry, u was improved after this one was queued
			stats.StalePops++
			continue
		}
		stats.Settled++

		if u == t {
			break
		}

		var relaxErr error
		d.graph.ForOutEdgesOf(u, func(e *da.Edge) {
			if relaxErr != nil {
				return
			}
			w := d.costFunction.GetWeight(e)
			if math.IsNaN(w) || w < 0 {
				relaxErr = fmt.Errorf("%w: edge (%d, %d, %d) weight %v", ErrInvalidWeight,
					d.graph.GetNodeID(u), d.graph.GetNodeID(e.GetHead()), e.GetKey(), w)
				return
			}

			v := e.GetHead()
			newCost := info.GetCost(u) + w
			oldCost := info.GetCost(v)
			if newCost >= oldCost {
				return
			}

			info.update(v, newCost, newVertexEdgePair(u, e.GetEdgeId()))
			if d.opts.relaxObserver != nil {
				d.opts.relaxObserver(d.graph.GetNodeID(v), oldCost, newCost)
			}
			pq.Insert(da.NewPriorityQueueNode(newCost, v))
			stats.Pushes++
		})
		if relaxErr != nil {
			return info, stats, relaxErr
		}
	}

	return info, stats, nil
}

func (d *Dijkstra) checkAbort(stats QueryStats) error {
	if d.opts.maxSettledNodes > 0 && stats.Settled >= d.opts.maxSettledNodes {
		return fmt.Errorf("%w: settled node limit %d reached", ErrSearchAborted, d.opts.maxSettledNodes)
	}
	if d.opts.ctx != nil && stats.Pops%CONTEXT_CHECK_INTERVAL == 0 {
		if util.StopConcurrentOperation(d.opts.ctx) {
			return fmt.Errorf("%w: %w", ErrSearchAborted, d.opts.ctx.Err())
		}
	}
	return nil
}

func (d *Dijkstra) buildRoute(info *QueryInfo, t da.Index) *Route {
	route := &Route{
		Cost:  info.GetCost(t),
		Model: d.costFunction.Model(),
	}
	route.Found = route.Cost < pkg.INF_WEIGHT

	vertices, edges := ReconstructPath(info, t)

	route.Nodes = make([]da.NodeID, len(vertices))
	for i, v := range vertices {
		route.Nodes[i] = d.graph.GetNodeID(v)
	}

	route.Hops = make([]Hop, len(edges))
	for i, eId := range edges {
		e := d.graph.GetEdge(eId)
		route.Hops[i] = Hop{
			From:   d.graph.GetNodeID(e.GetTail()),
			To:     d.graph.GetNodeID(e.GetHead()),
			Key:    e.GetKey(),
			Cost:   d.costFunction.GetWeight(e),
			Length: e.GetLength(),
			edgeId: eId,
		}
	}
	return route
}

var _ Router = (*Dijkstra)(nil)
