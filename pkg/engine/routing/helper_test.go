package routing

import (
	"math"
	"testing"

	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const (
	A da.NodeID = iota + 1
	B
	C
	D
	X
	Y
)

type testEdge struct {
	from, to da.NodeID
	dist     float64
	class    da.TagValue
	speed    float64 // 0 means absent
}

func f64(x float64) *float64 {
	return &x
}

func buildGraph(t *testing.T, nodes []da.NodeID, edges []testEdge) *da.Graph {
	g := da.NewGraph()
	for i, n := range nodes {
		_, err := g.AddNode(n, -7.75+float64(i)*0.001, 110.36+float64(i)*0.001)
		require.NoError(t, err)
	}
	for _, e := range edges {
		in := da.EdgeInput{Distance: f64(e.dist), Classification: e.class}
		if e.speed > 0 {
			in.Speed = f64(e.speed)
		}
		_, err := g.AddEdge(e.from, e.to, in)
		require.NoError(t, err)
	}
	return g
}

func diamondGraph(t *testing.T) *da.Graph {
	return buildGraph(t, []da.NodeID{A, B, C, D}, []testEdge{
		{from: A, to: B, dist: 10},
		{from: A, to: C, dist: 1},
		{from: C, to: B, dist: 1},
		{from: B, to: D, dist: 5},
		{from: C, to: D, dist: 20},
	})
}

// randomGraph builds a small multigraph with parallel edges and optional speeds.
func randomGraph(t *testing.T, rng *rand.Rand, n, m int) *da.Graph {
	nodes := make([]da.NodeID, n)
	for i := range nodes {
		nodes[i] = da.NodeID(100 + i)
	}
	classes := []string{"primary", "secondary", "residential", "service", "footway", ""}
	edges := make([]testEdge, 0, m)
	for i := 0; i < m; i++ {
		e := testEdge{
			from:  nodes[rng.Intn(n)],
			to:    nodes[rng.Intn(n)],
			dist:  float64(1 + rng.Intn(200)),
			class: da.ScalarTag(classes[rng.Intn(len(classes))]),
		}
		if rng.Intn(3) > 0 {
			e.speed = float64(5 + rng.Intn(80))
		}
		edges = append(edges, e)
	}
	return buildGraph(t, nodes, edges)
}

// bruteForceCost enumerates every simple path s -> t.
func bruteForceCost(g *da.Graph, cf costfunction.CostFunction, s, t da.Index) float64 {
	best := math.Inf(1)
	visited := make([]bool, g.NumberOfVertices())

	var dfs func(u da.Index, acc float64)
	dfs = func(u da.Index, acc float64) {
		if u == t {
			best = math.Min(best, acc)
			return
		}
		visited[u] = true
		g.ForOutEdgesOf(u, func(e *da.Edge) {
			v := e.GetHead()
			if visited[v] {
				return
			}
			dfs(v, acc+cf.GetWeight(e))
		})
		visited[u] = false
	}
	dfs(s, 0)
	return best
}

// pathCost sums the weights of the edges of a route through its recorded parallel keys.
func pathCost(t *testing.T, g *da.Graph, cf costfunction.CostFunction, r *Route) float64 {
	total := 0.0
	for _, h := range r.Hops {
		u, _ := g.GetIndex(h.From)
		v, _ := g.GetIndex(h.To)
		e, ok := g.GetEdgeByKey(u, v, h.Key)
		require.True(t, ok)
		total += cf.GetWeight(e)
	}
	return total
}
