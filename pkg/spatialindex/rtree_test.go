package spatialindex

import (
	"testing"

	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// an L shaped road: 1 -> 2 runs east, 2 -> 3 runs north, with a parallel 2 -> 3 edge.
func buildIndexedGraph(t *testing.T) (*datastructure.Graph, *Rtree) {
	g := datastructure.NewGraph()
	_, err := g.AddNode(1, -7.770, 110.370)
	require.NoError(t, err)
	_, err = g.AddNode(2, -7.770, 110.380)
	require.NoError(t, err)
	_, err = g.AddNode(3, -7.760, 110.380)
	require.NoError(t, err)

	for _, e := range [][2]datastructure.NodeID{{1, 2}, {2, 3}, {2, 3}} {
		_, err := g.AddEdge(e[0], e[1], datastructure.EdgeInput{})
		require.NoError(t, err)
	}

	rt := NewRtree()
	rt.Build(g, 0.05, zap.NewNop())
	return g, rt
}

func TestBuildIndexesParallelEdgesOnce(t *testing.T) {
	_, rt := buildIndexedGraph(t)
	assert.Equal(t, 2, rt.Len())
}

func TestSearchWithinRadius(t *testing.T) {
	_, rt := buildIndexedGraph(t)

	near := rt.SearchWithinRadius(-7.7701, 110.372, 0.1)
	require.Len(t, near, 1)
	assert.Equal(t, datastructure.Index(0), near[0].GetTail())
	assert.Equal(t, datastructure.Index(1), near[0].GetHead())

	assert.Empty(t, rt.SearchWithinRadius(-7.9, 110.5, 0.1))
}

func TestSnapToNearestNode(t *testing.T) {
	g, rt := buildIndexedGraph(t)

	testCases := []struct {
		name     string
		lat, lon float64
		wantNode datastructure.NodeID
	}{
		{name: "close to the west end", lat: -7.7702, lon: 110.371, wantNode: 1},
		{name: "close to the corner", lat: -7.7702, lon: 110.379, wantNode: 2},
		{name: "north end", lat: -7.7605, lon: 110.3803, wantNode: 3},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := rt.SnapToNearestNode(g, tt.lat, tt.lon, 0.5)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNode, g.GetNodeID(snap.Node))
			assert.Less(t, snap.Distance, 50.0)
		})
	}

	_, err := rt.SnapToNearestNode(g, -6.2, 106.8, 0.5)
	assert.ErrorIs(t, err, ErrNoNearbyNode)
}

// 150 parallel north-south roads about 11 m apart; road k runs from node 2k+1 to node 2k+2.
func buildDenseGrid(t *testing.T) (*datastructure.Graph, *Rtree) {
	g := datastructure.NewGraph()
	for k := 0; k < 150; k++ {
		lon := 110.37 + float64(k)*0.0001
		tail, head := datastructure.NodeID(2*k+1), datastructure.NodeID(2*k+2)
		_, err := g.AddNode(tail, -7.7700, lon)
		require.NoError(t, err)
		_, err = g.AddNode(head, -7.7695, lon)
		require.NoError(t, err)
		_, err = g.AddEdge(tail, head, datastructure.EdgeInput{})
		require.NoError(t, err)
	}

	rt := NewRtree()
	rt.Build(g, 0.01, zap.NewNop())
	return g, rt
}

func TestSnapToNearestNodeDenseArea(t *testing.T) {
	g, rt := buildDenseGrid(t)
	require.Greater(t, len(rt.SearchWithinRadius(-7.7699, 110.3775, 2)), 64)

	for k := 0; k < 150; k += 7 {
		lon := 110.37 + float64(k)*0.0001
		snap, err := rt.SnapToNearestNode(g, -7.7699, lon, 2)
		require.NoError(t, err)
		assert.Equal(t, datastructure.NodeID(2*k+1), g.GetNodeID(snap.Node), "query on road %d", k)
		assert.Less(t, snap.Distance, 1.0)
	}
}
