package spatialindex

import (
	"math"

	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr *rtree.RTreeG[RoadSegment]
}

// RoadSegment is an indexed edge, a query point is snapped by projecting it onto the segment tail -> head.
type RoadSegment struct {
	edgeId datastructure.Index
	tail   datastructure.Index
	head   datastructure.Index
}

func (rs RoadSegment) GetEdgeId() datastructure.Index {
	return rs.edgeId
}

func (rs RoadSegment) GetTail() datastructure.Index {
	return rs.tail
}

func (rs RoadSegment) GetHead() datastructure.Index {
	return rs.head
}

func newRoadSegment(edgeId, tail, head datastructure.Index) RoadSegment {
	return RoadSegment{
		edgeId: edgeId,
		tail:   tail,
		head:   head,
	}
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[RoadSegment]
	return &Rtree{
		tr: &tr,
	}
}

// Build. build r-tree over every edge, each leaf box is the edge's bounding box grown by boundingBoxRadius (in km).
// Parallel edges are indexed once.
func (rt *Rtree) Build(graph *datastructure.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")

	seen := make(map[[2]datastructure.Index]struct{}, graph.NumberOfEdges())
	graph.ForEdges(func(e *datastructure.Edge) {
		from, to := e.GetTail(), e.GetHead()
		if _, ok := seen[[2]datastructure.Index{from, to}]; ok {
			return
		}
		seen[[2]datastructure.Index{from, to}] = struct{}{}

		fromLat, fromLon := graph.GetVertexCoordinates(from)
		toLat, toLon := graph.GetVertexCoordinates(to)
		lowerFromLat, lowerFromLon := geo.GetDestinationPoint(fromLat, fromLon, 225, boundingBoxRadius)
		upperFromLat, upperFromLon := geo.GetDestinationPoint(fromLat, fromLon, 45, boundingBoxRadius)

		lowerToLat, lowerToLon := geo.GetDestinationPoint(toLat, toLon, 225, boundingBoxRadius)
		upperToLat, upperToLon := geo.GetDestinationPoint(toLat, toLon, 45, boundingBoxRadius)

		minLat := math.Min(lowerFromLat, lowerToLat)
		minLon := math.Min(lowerFromLon, lowerToLon)
		maxLat := math.Max(upperFromLat, upperToLat)
		maxLon := math.Max(upperFromLon, upperToLon)

		rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
			newRoadSegment(e.GetEdgeId(), from, to))
	})

	log.Info("R-tree spatial index built.", zap.Int("segments", rt.tr.Len()))
}

// SearchWithinRadius returns every road segment whose box intersects the box of radius (in km) around (qLat, qLon),
// in no particular order.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []RoadSegment {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]RoadSegment, 0, 16)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data RoadSegment) bool {
			results = append(results, data)
			return true
		})
	return results
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}
