package speedassigner

import (
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
)

const unknownClassification = "unknown"

// AssignmentSummary counts how many edges received a speed, per classification.
type AssignmentSummary struct {
	Edges         int
	PerClass      map[string]int
	Defaulted     int // edges whose classification is absent or not in the profile
	SpeedPerClass map[string]float64
}

// AssignSpeeds sets the speed of every edge from its classification, overwriting any previous value.
// It must run before time-cost searches and never concurrently with one.
func AssignSpeeds(graph *da.Graph, profile Profile) AssignmentSummary {
	summary := AssignmentSummary{
		PerClass:      make(map[string]int),
		SpeedPerClass: make(map[string]float64),
	}

	graph.ForEdges(func(e *da.Edge) {
		class := e.GetClassification()
		speed, known := profile.Speeds[class]
		if !known {
			speed = profile.DefaultSpeed
			summary.Defaulted++
			if class == "" {
				class = unknownClassification
			}
		}
		e.SetSpeed(speed)

		summary.Edges++
		summary.PerClass[class]++
		summary.SpeedPerClass[class] = speed
	})

	return summary
}
