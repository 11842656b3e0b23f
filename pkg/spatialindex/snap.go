package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/geo"
)

var ErrNoNearbyNode = errors.New("no road found near the query point")

type Snap struct {
	Node       datastructure.Index
	Projection geo.Coordinate
	Distance   float64 // meter, query point to the road
}

// SnapToNearestNode projects (lat, lon) onto every segment within radius km and returns the endpoint
// of the closest segment that is nearer to the projected point.
func (rt *Rtree) SnapToNearestNode(graph *datastructure.Graph, lat, lon, radius float64) (Snap, error) {
	candidates := rt.SearchWithinRadius(lat, lon, radius)
	if len(candidates) == 0 {
		return Snap{}, ErrNoNearbyNode
	}

	query := geo.NewCoordinate(lat, lon)
	best := Snap{Distance: math.Inf(1)}
	var bestSeg RoadSegment
	for _, seg := range candidates {
		tLat, tLon := graph.GetVertexCoordinates(seg.GetTail())
		hLat, hLon := graph.GetVertexCoordinates(seg.GetHead())
		proj := geo.ProjectPointToLineCoord(geo.NewCoordinate(tLat, tLon), geo.NewCoordinate(hLat, hLon), query)
		d := geo.CalculateHaversineDistance(lat, lon, proj.Lat, proj.Lon) * 1000
		if d < best.Distance || (d == best.Distance && seg.GetEdgeId() < bestSeg.GetEdgeId()) {
			best.Distance, best.Projection, bestSeg = d, proj, seg
		}
	}

	tLat, tLon := graph.GetVertexCoordinates(bestSeg.GetTail())
	hLat, hLon := graph.GetVertexCoordinates(bestSeg.GetHead())
	toTail := geo.CalculateHaversineDistance(best.Projection.Lat, best.Projection.Lon, tLat, tLon)
	toHead := geo.CalculateHaversineDistance(best.Projection.Lat, best.Projection.Lon, hLat, hLon)
	best.Node = bestSeg.GetTail()
	if toHead < toTail {
		best.Node = bestSeg.GetHead()
	}
	return best, nil
}
