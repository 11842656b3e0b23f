package osmparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

var ErrMissingNodeCoord = errors.New("way references a node without coordinates")

// OsmParser builds a drivable road multigraph from an osm extract. Ways are split at junction
// nodes, so graph nodes are way ends and intersections while the nodes in between only add to the
// edge length. Two-way roads become one edge per direction and parallel edges are kept.
type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]NodeCoord
	ways            []osmWay
	logger          *zap.Logger
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]NodeCoord),
		ways:            make([]osmWay, 0),
		logger:          logger,
	}
}

// Parse reads mapFile twice: ways first to learn which nodes are needed, then node coordinates.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if p.ScanWay(way) {
			countWays++
			if countWays%50000 == 0 {
				p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	scanner = osmpbf.New(ctx, f, 1)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true
	countNodes := 0
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if p.ScanNode(node) {
			countNodes++
			if countNodes%500000 == 0 {
				p.logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	p.logger.Sugar().Infof("accepted ways: %d, way nodes: %d", countWays, countNodes)
	return p.BuildGraph()
}

// ScanWay registers a drivable way and counts how often each of its nodes is used.
// It reports whether the way was accepted.
func (p *OsmParser) ScanWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}

	w := osmWay{
		id:       int64(way.ID),
		nodes:    make([]int64, 0, len(way.Nodes)),
		highway:  way.Tags.Find("highway"),
		name:     way.Tags.Find("name"),
		maxSpeed: parseMaxSpeed(way.Tags.Find("maxspeed")),
	}
	if lanes, err := strconv.ParseFloat(way.Tags.Find("lanes"), 64); err == nil && lanes > 0 {
		w.lanes = lanes
	}
	w.oneWay, w.reversed = parseOneWay(way)

	for i, node := range way.Nodes {
		id := int64(node.ID)
		if i > 0 && w.nodes[len(w.nodes)-1] == id {
			continue
		}
		w.nodes = append(w.nodes, id)
	}
	if len(w.nodes) < 2 {
		return false
	}

	for i, id := range w.nodes {
		if _, ok := p.wayNodeMap[id]; !ok {
			if i == 0 || i == len(w.nodes)-1 {
				p.wayNodeMap[id] = END_NODE
			} else {
				p.wayNodeMap[id] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[id] = JUNCTION_NODE
		}
	}
	p.ways = append(p.ways, w)
	return true
}

// ScanNode keeps the coordinate of a node used by an accepted way.
func (p *OsmParser) ScanNode(node *osm.Node) bool {
	if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
		return false
	}
	p.acceptedNodeMap[int64(node.ID)] = NewNodeCoord(node.Lat, node.Lon)
	return true
}

// BuildGraph turns the scanned ways into the graph.
func (p *OsmParser) BuildGraph() (*datastructure.Graph, error) {
	graph := datastructure.NewGraph()

	for _, w := range p.ways {
		segment := make([]int64, 0, len(w.nodes))
		for i, id := range w.nodes {
			segment = append(segment, id)
			if i > 0 && (p.isGraphNode(id) || i == len(w.nodes)-1) {
				if err := p.addSegment(graph, w, segment); err != nil {
					return nil, err
				}
				segment = []int64{id}
			}
		}
	}

	p.logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	p.logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())
	return graph, nil
}

func (p *OsmParser) isGraphNode(id int64) bool {
	t := p.wayNodeMap[id]
	return t == JUNCTION_NODE || t == END_NODE
}

func (p *OsmParser) addSegment(graph *datastructure.Graph, w osmWay, segment []int64) error {
	distance := 0.0
	for i, id := range segment {
		coord, ok := p.acceptedNodeMap[id]
		if !ok {
			return fmt.Errorf("%w: way %d node %d", ErrMissingNodeCoord, w.id, id)
		}
		if i > 0 {
			prev := p.acceptedNodeMap[segment[i-1]]
			distance += geo.CalculateHaversineDistance(prev.lat, prev.lon, coord.lat, coord.lon)
		}
	}
	distanceInMeter := distance * 1000

	from, to := segment[0], segment[len(segment)-1]
	for _, id := range []int64{from, to} {
		coord := p.acceptedNodeMap[id]
		if _, err := graph.AddNode(datastructure.NodeID(id), coord.lat, coord.lon); err != nil {
			return err
		}
	}

	in := datastructure.EdgeInput{
		Distance:       &distanceInMeter,
		Classification: tagValue(w.highway),
		Name:           tagValue(w.name),
		OsmWayID:       w.id,
	}
	attributes := make(map[string]float64)
	if w.maxSpeed > 0 {
		attributes["maxspeed"] = w.maxSpeed
	}
	if w.lanes > 0 {
		attributes["lanes"] = w.lanes
	}
	if len(attributes) > 0 {
		in.Attributes = attributes
	}

	switch {
	case w.oneWay && w.reversed:
		_, err := graph.AddEdge(datastructure.NodeID(to), datastructure.NodeID(from), in)
		return err
	case w.oneWay:
		_, err := graph.AddEdge(datastructure.NodeID(from), datastructure.NodeID(to), in)
		return err
	default:
		if _, err := graph.AddEdge(datastructure.NodeID(from), datastructure.NodeID(to), in); err != nil {
			return err
		}
		if from == to {
			return nil
		}
		_, err := graph.AddEdge(datastructure.NodeID(to), datastructure.NodeID(from), in)
		return err
	}
}

func acceptOsmWay(way *osm.Way) bool {
	if !IsDrivable(firstValue(way.Tags.Find("highway"))) {
		return false
	}
	if _, ok := restrictedAccess[way.Tags.Find("access")]; ok {
		return false
	}
	if _, ok := restrictedAccess[way.Tags.Find("motor_vehicle")]; ok {
		return false
	}
	return way.Tags.Find("area") != "yes"
}

func parseOneWay(way *osm.Way) (oneWay bool, reversed bool) {
	switch way.Tags.Find("oneway") {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return true, true
	case "no", "false", "0":
		return false, false
	}
	junction := way.Tags.Find("junction")
	if junction == "roundabout" || junction == "circular" {
		return true, false
	}
	return way.Tags.Find("highway") == "motorway", false
}

// parseMaxSpeed returns km/h. A bare number is km/h, mph and knots are converted, anything else is 0.
func parseMaxSpeed(val string) float64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	factor := 1.0
	switch {
	case strings.HasSuffix(val, "mph"):
		factor, val = 1.60934, strings.TrimSuffix(val, "mph")
	case strings.HasSuffix(val, "knots"):
		factor, val = 1.852, strings.TrimSuffix(val, "knots")
	case strings.HasSuffix(val, "km/h"):
		val = strings.TrimSuffix(val, "km/h")
	}
	speed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || speed <= 0 {
		return 0
	}
	return speed * factor
}

func firstValue(val string) string {
	return datastructure.NormalizeTag(tagValue(val))
}

// tagValue maps osm's ';' separated multi values to a ListTag.
func tagValue(val string) datastructure.TagValue {
	if val == "" {
		return nil
	}
	if !strings.Contains(val, ";") {
		return datastructure.ScalarTag(val)
	}
	parts := strings.Split(val, ";")
	list := make(datastructure.ListTag, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}
