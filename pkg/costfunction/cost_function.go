package costfunction

import (
	"strings"

	"github.com/lintang-b-s/roadroute/pkg"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
)

type EdgeAttributes interface {
	GetLength() float64
	GetEdgeSpeed() float64
	HasSpeed() bool
	GetAttribute(name string) (float64, bool)
	GetHighwayType() pkg.OsmHighwayType
}

// CostFunction returns the non-negative cost of traversing an edge.
type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
	Model() CostModel
}

// CostModel selects the scalar the search minimizes. Any value other than
// Distance and Time names a generic edge attribute.
type CostModel string

const (
	Distance CostModel = "distance"
	Time     CostModel = "time"
)

// ParseCostModel never fails: unknown names become generic attribute models.
func ParseCostModel(s string) CostModel {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "distance", "length", "shortest":
		return Distance
	case "time", "duration", "fastest":
		return Time
	default:
		return CostModel(s)
	}
}

func (m CostModel) IsGeneric() bool {
	return m != Distance && m != Time
}

// Unit is the unit of the accumulated cost, empty for generic attributes.
func (m CostModel) Unit() string {
	switch m {
	case Distance:
		return "meter"
	case Time:
		return "second"
	default:
		return ""
	}
}

func NewCostFunction(model CostModel) CostFunction {
	switch model {
	case Distance:
		return NewDistanceCostFunction()
	case Time:
		return NewTimeCostFunction(pkg.FALLBACK_SPEED_KMH)
	default:
		return NewAttributeCostFunction(string(model))
	}
}

// compile-time check that graph edges can be weighted.
var _ EdgeAttributes = (*datastructure.Edge)(nil)
