package costfunction

import (
	"testing"

	"github.com/lintang-b-s/roadroute/pkg"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(x float64) *float64 {
	return &x
}

func edgeOf(t *testing.T, in da.EdgeInput) *da.Edge {
	g := da.NewGraph()
	g.AddNode(1, 0, 0)
	g.AddNode(2, 0, 0.01)
	_, err := g.AddEdge(1, 2, in)
	require.NoError(t, err)
	return g.GetEdge(0)
}

func TestParseCostModel(t *testing.T) {
	testCases := []struct {
		in   string
		want CostModel
	}{
		{"distance", Distance},
		{"", Distance},
		{"Length", Distance},
		{"time", Time},
		{" fastest ", Time},
		{"toll", CostModel("toll")},
	}
	for _, tt := range testCases {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseCostModel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.IsGeneric(), got != Distance && got != Time)
		})
	}
}

func TestDistanceWeight(t *testing.T) {
	cf := NewCostFunction(Distance)
	assert.Equal(t, 120.0, cf.GetWeight(edgeOf(t, da.EdgeInput{Distance: f64(120)})))
	assert.Equal(t, pkg.DEFAULT_EDGE_DISTANCE, cf.GetWeight(edgeOf(t, da.EdgeInput{})))
	assert.Equal(t, "meter", cf.Model().Unit())
}

func TestTimeWeight(t *testing.T) {
	cf := NewCostFunction(Time)

	testCases := []struct {
		name string
		in   da.EdgeInput
		want float64
	}{
		{
			name: "residential speed 20 km/h over 500 m",
			in:   da.EdgeInput{Distance: f64(500), Speed: f64(20)},
			want: 90.0,
		},
		{
			name: "missing speed uses fallback",
			in:   da.EdgeInput{Distance: f64(500)},
			want: 500 / (pkg.FALLBACK_SPEED_KMH * 1000 / 3600),
		},
		{
			name: "zero speed uses fallback",
			in:   da.EdgeInput{Distance: f64(500), Speed: f64(0)},
			want: 500 / (pkg.FALLBACK_SPEED_KMH * 1000 / 3600),
		},
		{
			name: "missing distance uses distance default first",
			in:   da.EdgeInput{Speed: f64(36)},
			want: 0.1,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := cf.GetWeight(edgeOf(t, tt.in))
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestTimeWeightDecreasesWithSpeed(t *testing.T) {
	cf := NewTimeCostFunction(0)
	assert.Equal(t, pkg.FALLBACK_SPEED_KMH, cf.GetFallbackSpeed())

	slow := cf.GetWeight(edgeOf(t, da.EdgeInput{Distance: f64(1000), Speed: f64(20)}))
	fast := cf.GetWeight(edgeOf(t, da.EdgeInput{Distance: f64(1000), Speed: f64(40)}))
	assert.Less(t, fast, slow)
}

func TestAttributeWeight(t *testing.T) {
	cf := NewCostFunction(ParseCostModel("toll"))
	assert.Equal(t, 4.0, cf.GetWeight(edgeOf(t, da.EdgeInput{Attributes: map[string]float64{"toll": 4}})))
	assert.Equal(t, pkg.DEFAULT_ATTRIBUTE_COST, cf.GetWeight(edgeOf(t, da.EdgeInput{})))
	assert.Equal(t, "", cf.Model().Unit())

	speed := NewCostFunction(ParseCostModel("speed"))
	assert.Equal(t, 50.0, speed.GetWeight(edgeOf(t, da.EdgeInput{Speed: f64(50)})))
}
