package guidance

import (
	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
)

type Graph interface {
	GetEdge(e datastructure.Index) *datastructure.Edge
	GetVertexCoordinates(u datastructure.Index) (float64, float64)
}

type CostFunction interface {
	GetWeight(e costfunction.EdgeAttributes) float64
}
