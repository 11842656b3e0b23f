package engine

import (
	"context"
	"testing"

	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	eng := newTestEngine(t, DefaultConfig())
	ctx := context.Background()

	s := eng.NewSession()
	_, err := s.Route(ctx)
	assert.ErrorIs(t, err, ErrIncompleteSession)

	require.NoError(t, s.SetOrigin(1))
	err = s.SetDestination(77)
	assert.ErrorIs(t, err, routing.ErrNodeNotFound)
	assert.Contains(t, err.Error(), "77")

	_, ok := s.GetDestination()
	assert.False(t, ok)

	require.NoError(t, s.SetDestination(4))
	route, err := s.Route(ctx)
	require.NoError(t, err)
	assert.Equal(t, []da.NodeID{1, 2, 4}, route.Nodes)

	s.SetModel(costfunction.Time)
	route, err = s.Route(ctx)
	require.NoError(t, err)
	assert.Equal(t, []da.NodeID{1, 3, 4}, route.Nodes)
	assert.Len(t, s.GetRoutes(), 2)

	s.Reset()
	assert.Empty(t, s.GetRoutes())
	assert.Equal(t, costfunction.Time, s.GetModel())
	_, ok = s.GetOrigin()
	assert.False(t, ok)
}

func TestSessionsAreIndependent(t *testing.T) {
	eng := newTestEngine(t, DefaultConfig())

	a, b := eng.NewSession(), eng.NewSession()
	require.NoError(t, a.SetOrigin(1))
	_, ok := b.GetOrigin()
	assert.False(t, ok)
}
