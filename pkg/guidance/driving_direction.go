package guidance

import (
	"fmt"

	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
	"github.com/lintang-b-s/roadroute/pkg/geo"
)

const unnamedStreet = "unnamed road"

type Instruction struct {
	Sign        TurnSign       `json:"sign"`
	StreetName  string         `json:"street_name"`
	Description string         `json:"description"`
	Point       geo.Coordinate `json:"point"`
	Bearing     float64        `json:"bearing"`
	Distance    float64        `json:"distance"`    // meter
	TravelTime  float64        `json:"travel_time"` // second
	Polyline    string         `json:"polyline"`

	edgeIds []datastructure.Index
	points  []geo.Coordinate
}

func (ins *Instruction) GetEdgeIds() []datastructure.Index {
	return ins.edgeIds
}

// DirectionBuilder turns a route into street-level instructions. Consecutive hops on the same
// street are merged into one instruction.
type DirectionBuilder struct {
	graph    Graph
	timeCost CostFunction

	instructions []*Instruction
	prevBearing  float64
}

func NewDirectionBuilder(graph Graph, timeCost CostFunction) *DirectionBuilder {
	return &DirectionBuilder{
		graph:        graph,
		timeCost:     timeCost,
		instructions: make([]*Instruction, 0),
	}
}

// GetDrivingDirections walks the exact edges recorded in the route hops. A route without hops
// yields no instructions.
func (db *DirectionBuilder) GetDrivingDirections(route *routing.Route) []Instruction {
	db.instructions = db.instructions[:0]
	if route == nil || !route.Found || len(route.Hops) == 0 {
		return []Instruction{}
	}

	for _, hop := range route.Hops {
		db.buildInstruction(db.graph.GetEdge(hop.GetEdgeId()))
	}
	db.buildFinalInstruction(route.Hops[len(route.Hops)-1])

	out := make([]Instruction, len(db.instructions))
	for i, ins := range db.instructions {
		ins.Description = describe(ins)
		if len(ins.points) > 0 {
			ins.Polyline = geo.PolylineFromCoords(ins.points)
		}
		out[i] = *ins
	}
	return out
}

func (db *DirectionBuilder) buildInstruction(edge *datastructure.Edge) {
	tailLat, tailLon := db.graph.GetVertexCoordinates(edge.GetTail())
	headLat, headLon := db.graph.GetVertexCoordinates(edge.GetHead())
	bearing := geo.BearingTo(tailLat, tailLon, headLat, headLon)

	streetName := edge.GetStreetName()
	if streetName == "" {
		streetName = unnamedStreet
	}

	var cur *Instruction
	if len(db.instructions) > 0 {
		cur = db.instructions[len(db.instructions)-1]
	}

	if cur == nil || cur.StreetName != streetName {
		sign := START
		if cur != nil {
			sign = getTurnSign(db.prevBearing, bearing)
		}
		cur = &Instruction{
			Sign:       sign,
			StreetName: streetName,
			Point:      geo.NewCoordinate(tailLat, tailLon),
			Bearing:    bearing,
			edgeIds:    make([]datastructure.Index, 0, 4),
			points:     []geo.Coordinate{geo.NewCoordinate(tailLat, tailLon)},
		}
		db.instructions = append(db.instructions, cur)
	}

	cur.Distance += edge.GetLength()
	cur.TravelTime += db.timeCost.GetWeight(edge)
	cur.edgeIds = append(cur.edgeIds, edge.GetEdgeId())
	cur.points = append(cur.points, geo.NewCoordinate(headLat, headLon))

	db.prevBearing = bearing
}

func (db *DirectionBuilder) buildFinalInstruction(last routing.Hop) {
	edge := db.graph.GetEdge(last.GetEdgeId())
	lat, lon := db.graph.GetVertexCoordinates(edge.GetHead())
	db.instructions = append(db.instructions, &Instruction{
		Sign:       FINISH,
		StreetName: db.instructions[len(db.instructions)-1].StreetName,
		Point:      geo.NewCoordinate(lat, lon),
		Bearing:    db.prevBearing,
	})
}

func describe(ins *Instruction) string {
	switch ins.Sign {
	case START:
		return fmt.Sprintf("Head %s on %s", compassDirection(ins.Bearing), ins.StreetName)
	case CONTINUE_ON_STREET:
		return fmt.Sprintf("Continue onto %s", ins.StreetName)
	case TURN_SLIGHT_LEFT:
		return fmt.Sprintf("Turn slight left onto %s", ins.StreetName)
	case TURN_SLIGHT_RIGHT:
		return fmt.Sprintf("Turn slight right onto %s", ins.StreetName)
	case TURN_LEFT:
		return fmt.Sprintf("Turn left onto %s", ins.StreetName)
	case TURN_RIGHT:
		return fmt.Sprintf("Turn right onto %s", ins.StreetName)
	case TURN_SHARP_LEFT:
		return fmt.Sprintf("Turn sharp left onto %s", ins.StreetName)
	case TURN_SHARP_RIGHT:
		return fmt.Sprintf("Turn sharp right onto %s", ins.StreetName)
	case FINISH:
		return "Arrive at destination"
	}
	return ""
}
