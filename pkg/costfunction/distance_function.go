package costfunction

type DistanceFunction struct {
}

func NewDistanceCostFunction() *DistanceFunction {
	return &DistanceFunction{}
}

// GetWeight returns the edge length in meter (1 when the edge has no distance).
func (df *DistanceFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetLength()
}

func (df *DistanceFunction) Model() CostModel {
	return Distance
}
