package routing

import (
	"context"

	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
)

type CostFunction interface {
	GetWeight(e costfunction.EdgeAttributes) float64
	Model() costfunction.CostModel
}

type Router interface {
	ShortestPathSearch(start, end da.NodeID) (*Route, error)
}

type Option func(*searchOptions)

type searchOptions struct {
	ctx             context.Context
	maxSettledNodes int
	relaxObserver   func(v da.NodeID, oldCost, newCost float64)
	heapArity       int
}

func defaultSearchOptions() searchOptions {
	return searchOptions{heapArity: 4}
}

// WithContext aborts the search with ErrSearchAborted once ctx is done. The context is polled
// at the top of the extract-min loop.
func WithContext(ctx context.Context) Option {
	return func(o *searchOptions) {
		o.ctx = ctx
	}
}

// WithMaxSettledNodes aborts the search with ErrSearchAborted after n nodes are settled. n <= 0 means no limit.
func WithMaxSettledNodes(n int) Option {
	return func(o *searchOptions) {
		o.maxSettledNodes = n
	}
}

// WithRelaxObserver is called on every cost table update.
func WithRelaxObserver(fn func(v da.NodeID, oldCost, newCost float64)) Option {
	return func(o *searchOptions) {
		o.relaxObserver = fn
	}
}

// WithHeapArity sets d of the d-ary heap frontier.
func WithHeapArity(d int) Option {
	return func(o *searchOptions) {
		o.heapArity = d
	}
}
