package routing

import (
	"github.com/lintang-b-s/roadroute/pkg"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
)

// vertexEdgePair is a predecessor entry: the vertex a node was reached from and the exact edge used.
type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func (ve vertexEdgePair) getVertex() da.Index {
	return ve.vertex
}

func (ve vertexEdgePair) getEdge() da.Index {
	return ve.edge
}

func (ve vertexEdgePair) isNone() bool {
	return ve.vertex == da.INVALID_INDEX
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{vertex: vertex, edge: edge}
}

var noParent = newVertexEdgePair(da.INVALID_INDEX, da.INVALID_INDEX)

// QueryInfo holds the cost table and predecessor map of one search. Both are
// written together by relax, never separately.
type QueryInfo struct {
	cost   []float64
	parent []vertexEdgePair
}

func NewQueryInfo(numberOfVertices int) *QueryInfo {
	qi := &QueryInfo{
		cost:   make([]float64, numberOfVertices),
		parent: make([]vertexEdgePair, numberOfVertices),
	}
	for i := range qi.cost {
		qi.cost[i] = pkg.INF_WEIGHT
		qi.parent[i] = noParent
	}
	return qi
}

func (qi *QueryInfo) GetCost(v da.Index) float64 {
	return qi.cost[v]
}

// GetParent returns the predecessor vertex and edge of v, ok is false when v has none.
func (qi *QueryInfo) GetParent(v da.Index) (da.Index, da.Index, bool) {
	p := qi.parent[v]
	return p.getVertex(), p.getEdge(), !p.isNone()
}

func (qi *QueryInfo) setSource(s da.Index) {
	qi.cost[s] = 0
}

func (qi *QueryInfo) update(v da.Index, cost float64, parent vertexEdgePair) {
	qi.cost[v] = cost
	qi.parent[v] = parent
}

// QueryStats describes the work one search did.
type QueryStats struct {
	Pushes    int `json:"pushes"`
	Pops      int `json:"pops"`
	StalePops int `json:"stale_pops"`
	Settled   int `json:"settled"`
}
