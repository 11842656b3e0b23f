package costfunction

import (
	"math"

	"github.com/lintang-b-s/roadroute/pkg"
)

// AttributeFunction weights an edge by a like-named numeric attribute. It has no unit semantics.
type AttributeFunction struct {
	name string
}

func NewAttributeCostFunction(name string) *AttributeFunction {
	return &AttributeFunction{name: name}
}

func (af *AttributeFunction) GetWeight(e EdgeAttributes) float64 {
	v, ok := e.GetAttribute(af.name)
	if !ok || math.IsNaN(v) || v < 0 {
		return pkg.DEFAULT_ATTRIBUTE_COST
	}
	return v
}

func (af *AttributeFunction) Model() CostModel {
	return CostModel(af.name)
}
