package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine"
	"github.com/lintang-b-s/roadroute/pkg/guidance"
	"github.com/lintang-b-s/roadroute/pkg/spatialindex"
	"github.com/lintang-b-s/roadroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func f64(x float64) *float64 {
	return &x
}

// 1 -> 2 -> 4 residential (20 km/h), 1 -> 3 -> 4 primary (70 km/h). 5 has no road.
func newTestService(t *testing.T) *RoutingService {
	g := da.NewGraph()
	coords := [][2]float64{{-7.76, 110.37}, {-7.761, 110.371}, {-7.762, 110.372}, {-7.763, 110.373}, {-7.8, 110.4}}
	for i, c := range coords {
		_, err := g.AddNode(da.NodeID(i+1), c[0], c[1])
		require.NoError(t, err)
	}
	edges := []struct {
		from, to da.NodeID
		dist     float64
		class    string
		name     string
	}{
		{1, 2, 400, "residential", "Jalan Kaliurang"},
		{2, 4, 400, "residential", "Jalan Kaliurang"},
		{1, 3, 600, "primary", "Jalan Magelang"},
		{3, 4, 600, "primary", "Jalan Magelang"},
	}
	for _, e := range edges {
		_, err := g.AddEdge(e.from, e.to, da.EdgeInput{
			Distance:       f64(e.dist),
			Classification: da.ScalarTag(e.class),
			Name:           da.ScalarTag(e.name),
		})
		require.NoError(t, err)
	}

	eng, err := engine.NewEngine(g, engine.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	rt := spatialindex.NewRtree()
	rt.Build(g, 0.05, zap.NewNop())
	return NewRoutingService(zap.NewNop(), eng, rt, 0.5)
}

func TestShortestPathByCoordinates(t *testing.T) {
	rs := newTestService(t)

	testCases := []struct {
		name         string
		mode         string
		wantNodes    []da.NodeID
		wantDistance float64
		wantEta      float64
	}{
		{"default mode is distance", "", []da.NodeID{1, 2, 4}, 800, 800 / (20 / 3.6)},
		{"time prefers the primary road", "time", []da.NodeID{1, 3, 4}, 1200, 1200 / (70 / 3.6)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res, err := rs.ShortestPath(context.Background(), -7.76, 110.37, -7.763, 110.373, tt.mode)
			require.NoError(t, err)

			assert.Equal(t, da.NodeID(1), res.Origin)
			assert.Equal(t, da.NodeID(4), res.Destination)
			assert.Equal(t, tt.wantNodes, res.Route.Nodes)
			assert.InDelta(t, tt.wantDistance, res.Distance, 1e-9)
			assert.InDelta(t, tt.wantEta, res.Eta, 1e-6)
			assert.NotEmpty(t, res.Polyline)
			require.NotEmpty(t, res.Instructions)
			assert.Equal(t, guidance.START, res.Instructions[0].Sign)
			assert.Equal(t, guidance.FINISH, res.Instructions[len(res.Instructions)-1].Sign)
		})
	}
}

func TestShortestPathNoNearbyRoad(t *testing.T) {
	rs := newTestService(t)

	_, err := rs.ShortestPath(context.Background(), -7.8, 110.4, -7.763, 110.373, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, spatialindex.ErrNoNearbyNode)

	var uErr *util.Error
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, util.ErrNotFound, uErr.Code())
}

func TestShortestPathByNode(t *testing.T) {
	rs := newTestService(t)
	ctx := context.Background()

	unreachable, err := rs.ShortestPathByNode(ctx, 1, 5, "distance")
	require.NoError(t, err)
	assert.False(t, unreachable.Route.Found)
	assert.Empty(t, unreachable.Polyline)
	assert.Empty(t, unreachable.Instructions)
	assert.Equal(t, 0.0, unreachable.Eta)

	_, err = rs.ShortestPathByNode(ctx, 1, 42, "distance")
	var uErr *util.Error
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, util.ErrNotFound, uErr.Code())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = rs.ShortestPathByNode(cancelled, 2, 3, "time")
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, util.ErrInternalServerError, uErr.Code())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShortestPathBatch(t *testing.T) {
	rs := newTestService(t)

	results := rs.ShortestPathBatch(context.Background(), []BatchQuery{
		{Origin: 1, Destination: 4, Mode: "time"},
		{Origin: 1, Destination: 77},
		{Origin: 4, Destination: 4},
	})
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, []da.NodeID{1, 3, 4}, results[0].Result.Route.Nodes)
	assert.Equal(t, costfunction.Time, results[0].Result.Route.Model)

	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Result)

	require.NoError(t, results[2].Err)
	assert.Equal(t, []da.NodeID{4}, results[2].Result.Route.Nodes)
	assert.Equal(t, 0.0, results[2].Result.Route.Cost)
}

func TestRoadClassifications(t *testing.T) {
	rs := newTestService(t)

	got := rs.RoadClassifications()
	assert.Equal(t, []RoadClassification{
		{Classification: "primary", Edges: 2, Speed: 70},
		{Classification: "residential", Edges: 2, Speed: 20},
	}, got)
}
