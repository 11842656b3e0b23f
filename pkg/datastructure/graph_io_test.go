package datastructure

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIOGraph(t *testing.T) *Graph {
	g := NewGraph()
	g.AddNode(100, -7.7956, 110.3695)
	g.AddNode(200, -7.7960, 110.3700)
	g.AddNode(300, -7.7970, 110.3710)

	_, err := g.AddEdge(100, 200, EdgeInput{Distance: f64(65.5), Classification: ScalarTag("residential"),
		Name: ScalarTag("Jalan \"Malioboro\"\tlama"), OsmWayID: 7})
	require.NoError(t, err)
	_, err = g.AddEdge(100, 200, EdgeInput{Distance: f64(80), Speed: f64(20),
		Attributes: map[string]float64{"toll": 2.5, "lanes": 2}})
	require.NoError(t, err)
	_, err = g.AddEdge(200, 300, EdgeInput{})
	require.NoError(t, err)
	return g
}

func TestWriteReadGraph(t *testing.T) {
	g := buildIOGraph(t)
	filename := filepath.Join(t.TempDir(), "test.graph")

	require.NoError(t, g.WriteGraph(filename))

	got, err := ReadGraph(filename)
	require.NoError(t, err)

	require.Equal(t, g.NumberOfVertices(), got.NumberOfVertices())
	require.Equal(t, g.NumberOfEdges(), got.NumberOfEdges())

	for i := 0; i < g.NumberOfEdges(); i++ {
		want, have := g.GetEdge(Index(i)), got.GetEdge(Index(i))
		assert.Equal(t, g.GetNodeID(want.GetTail()), got.GetNodeID(have.GetTail()))
		assert.Equal(t, g.GetNodeID(want.GetHead()), got.GetNodeID(have.GetHead()))
		assert.Equal(t, want.GetKey(), have.GetKey())
		assert.Equal(t, want.HasLength(), have.HasLength())
		assert.Equal(t, want.GetLength(), have.GetLength())
		assert.Equal(t, want.HasSpeed(), have.HasSpeed())
		assert.Equal(t, want.GetEdgeSpeed(), have.GetEdgeSpeed())
		assert.Equal(t, want.GetClassification(), have.GetClassification())
		assert.Equal(t, want.GetStreetName(), have.GetStreetName())
		assert.Equal(t, want.GetOsmWayId(), have.GetOsmWayId())
	}

	toll, ok := got.GetEdge(1).GetAttribute("toll")
	assert.True(t, ok)
	assert.Equal(t, 2.5, toll)
}

func TestDumpGraph(t *testing.T) {
	g := buildIOGraph(t)
	var buf bytes.Buffer
	require.NoError(t, g.DumpGraph(&buf))

	out := buf.String()
	assert.Contains(t, out, "=== nodes (3) ===")
	assert.Contains(t, out, "100 -> 200[0] 200[1]")
	assert.Contains(t, out, "(200, 300, 0) distance=- speed=-")
}

var errDiskFull = errors.New("disk full")

// limitedWriter accepts n bytes, then fails every write.
type limitedWriter struct {
	n int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	if len(p) > lw.n {
		written := lw.n
		lw.n = 0
		return written, errDiskFull
	}
	lw.n -= len(p)
	return len(p), nil
}

func TestWriteLinesReportsEveryFailedWrite(t *testing.T) {
	g := buildIOGraph(t)

	var full bytes.Buffer
	require.NoError(t, g.writeLines(&full))

	// cut off inside the node lines, the edge lines and at the final newline
	for _, limit := range []int{10, full.Len() - 40, full.Len() - 1} {
		err := g.writeLines(&limitedWriter{n: limit})
		assert.ErrorIs(t, err, errDiskFull, "limit %d", limit)
	}
}
