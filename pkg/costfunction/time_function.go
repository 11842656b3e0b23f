package costfunction

import (
	"github.com/lintang-b-s/roadroute/pkg"
)

type TimeFunction struct {
	fallbackSpeed float64 // km/h
}

func NewTimeCostFunction(fallbackSpeed float64) *TimeFunction {
	if !(fallbackSpeed > 0) {
		fallbackSpeed = pkg.FALLBACK_SPEED_KMH
	}
	return &TimeFunction{fallbackSpeed: fallbackSpeed}
}

// GetWeight returns the travel time in seconds: length (meter) / speed (meter per second).
// Edges without a positive speed use the fallback speed.
func (tf *TimeFunction) GetWeight(e EdgeAttributes) float64 {
	speed := e.GetEdgeSpeed()
	if !e.HasSpeed() || !(speed > 0) {
		speed = tf.fallbackSpeed
	}
	return e.GetLength() / (speed * pkg.KMH_TO_MS)
}

func (tf *TimeFunction) Model() CostModel {
	return Time
}

func (tf *TimeFunction) GetFallbackSpeed() float64 {
	return tf.fallbackSpeed
}
