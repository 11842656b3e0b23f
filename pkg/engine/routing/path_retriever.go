package routing

import (
	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/util"
)

// Hop is one traversed edge of a route, (From, To, Key) identifies the exact parallel edge the search relaxed.
type Hop struct {
	From   da.NodeID `json:"from"`
	To     da.NodeID `json:"to"`
	Key    int       `json:"key"`
	Cost   float64   `json:"cost"`
	Length float64   `json:"length"`

	edgeId da.Index
}

func (h Hop) GetEdgeId() da.Index {
	return h.edgeId
}

type Route struct {
	Nodes []da.NodeID            `json:"nodes"`
	Hops  []Hop                  `json:"hops"`
	Cost  float64                `json:"cost"`
	Found bool                   `json:"found"`
	Model costfunction.CostModel `json:"model"`
	Stats QueryStats             `json:"stats"`
}

// Length sums the distance of every hop in meter.
func (r *Route) Length() float64 {
	total := 0.0
	for _, h := range r.Hops {
		total += h.Length
	}
	return total
}

// ReconstructPath walks the predecessor map back from t and returns the vertices from the
// start to t together with the edges between them. It does not check reachability: when t
// has no predecessor the result is just [t], so callers check the cost of t first.
func ReconstructPath(info *QueryInfo, t da.Index) ([]da.Index, []da.Index) {
	vertices := []da.Index{t}
	edges := []da.Index{}

	cur := t
	for {
		parent, edge, ok := info.GetParent(cur)
		if !ok {
			break
		}
		vertices = append(vertices, parent)
		edges = append(edges, edge)
		cur = parent
	}

	return util.ReverseG(vertices), util.ReverseG(edges)
}
