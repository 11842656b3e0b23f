package datastructure

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/roadroute/pkg"
)

type Index uint32

const INVALID_INDEX Index = math.MaxUint32

// NodeID is the external, stable identifier of a road network node (the osm node id).
type NodeID int64

var (
	ErrNodeNotFound       = errors.New("node not found")
	ErrNegativeAttribute  = errors.New("edge attribute must be a non-negative number")
	ErrDuplicateNodeCoord = errors.New("node already exists with different coordinates")
)

type Node struct {
	id  NodeID
	lat float64
	lon float64
}

func NewNode(id NodeID, lat, lon float64) *Node {
	return &Node{id: id, lat: lat, lon: lon}
}

func (n *Node) GetID() NodeID {
	return n.id
}

func (n *Node) GetLat() float64 {
	return n.lat
}

func (n *Node) GetLon() float64 {
	return n.lon
}

// EdgeInput is the ingestion shape of an edge. Nil pointers and nil tags mean the attribute is absent.
type EdgeInput struct {
	Distance       *float64 // meter
	Classification TagValue
	Name           TagValue
	Speed          *float64 // km/h
	Attributes     map[string]float64
	OsmWayID       int64
}

// Edge is a directed road segment. (from, to, key) identifies it, key separates parallel edges.
type Edge struct {
	edgeId      Index
	from, to    Index
	key         int
	distance    float64
	hasDistance bool
	speed       float64
	hasSpeed    bool

	classification string
	name           string
	attributes     map[string]float64
	osmWayId       int64
}

func (e *Edge) GetEdgeId() Index {
	return e.edgeId
}

func (e *Edge) GetTail() Index {
	return e.from
}

func (e *Edge) GetHead() Index {
	return e.to
}

func (e *Edge) GetKey() int {
	return e.key
}

// GetLength returns the distance in meter, or DEFAULT_EDGE_DISTANCE when the edge has none.
func (e *Edge) GetLength() float64 {
	if !e.hasDistance {
		return pkg.DEFAULT_EDGE_DISTANCE
	}
	return e.distance
}

func (e *Edge) HasLength() bool {
	return e.hasDistance
}

// GetEdgeSpeed returns the assigned speed in km/h, zero when no speed was assigned.
func (e *Edge) GetEdgeSpeed() float64 {
	if !e.hasSpeed {
		return 0
	}
	return e.speed
}

func (e *Edge) HasSpeed() bool {
	return e.hasSpeed
}

func (e *Edge) SetSpeed(kmh float64) {
	e.speed = kmh
	e.hasSpeed = true
}

func (e *Edge) GetClassification() string {
	return e.classification
}

func (e *Edge) GetHighwayType() pkg.OsmHighwayType {
	return pkg.GetHighwayType(e.classification)
}

func (e *Edge) GetStreetName() string {
	return e.name
}

func (e *Edge) GetOsmWayId() int64 {
	return e.osmWayId
}

// GetAttribute looks up a generic numeric attribute by name. distance and speed are served from their own fields.
func (e *Edge) GetAttribute(name string) (float64, bool) {
	switch name {
	case "distance", "length":
		return e.distance, e.hasDistance
	case "speed":
		return e.speed, e.hasSpeed
	}
	v, ok := e.attributes[name]
	return v, ok
}

type pairKey struct {
	from, to Index
}

// Graph is a directed road network multigraph. It is built once per map load and read-only during searches;
// the only mutation after load is Edge.SetSpeed by the speed assignment pass.
type Graph struct {
	nodes     []*Node
	nodeIndex map[NodeID]Index
	edges     []*Edge
	outEdges  [][]Index
	parallel  map[pairKey][]Index

	boundingBox *BoundingBox
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make([]*Node, 0),
		nodeIndex: make(map[NodeID]Index),
		edges:     make([]*Edge, 0),
		outEdges:  make([][]Index, 0),
		parallel:  make(map[pairKey][]Index),
	}
}

// AddNode inserts a node and returns its dense index. Re-adding an existing id returns the existing index.
func (g *Graph) AddNode(id NodeID, lat, lon float64) (Index, error) {
	if idx, ok := g.nodeIndex[id]; ok {
		n := g.nodes[idx]
		if n.lat != lat || n.lon != lon {
			return idx, fmt.Errorf("%w: %d", ErrDuplicateNodeCoord, id)
		}
		return idx, nil
	}
	idx := Index(len(g.nodes))
	g.nodes = append(g.nodes, NewNode(id, lat, lon))
	g.outEdges = append(g.outEdges, make([]Index, 0, 2))
	g.nodeIndex[id] = idx

	if g.boundingBox == nil {
		g.boundingBox = NewBoundingBox(lat, lon, lat, lon)
	} else {
		g.boundingBox.extend(lat, lon)
	}
	return idx, nil
}

// AddEdge inserts a directed edge from -> to and returns its parallel-edge key.
func (g *Graph) AddEdge(from, to NodeID, in EdgeInput) (int, error) {
	u, ok := g.nodeIndex[from]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNodeNotFound, from)
	}
	v, ok := g.nodeIndex[to]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNodeNotFound, to)
	}

	e := &Edge{
		edgeId:         Index(len(g.edges)),
		from:           u,
		to:             v,
		classification: NormalizeTag(in.Classification),
		name:           NormalizeTag(in.Name),
		osmWayId:       in.OsmWayID,
	}
	if in.Distance != nil {
		if !validAttribute(*in.Distance) {
			return 0, fmt.Errorf("%w: distance %v on edge %d->%d", ErrNegativeAttribute, *in.Distance, from, to)
		}
		e.distance, e.hasDistance = *in.Distance, true
	}
	if in.Speed != nil {
		if !validAttribute(*in.Speed) {
			return 0, fmt.Errorf("%w: speed %v on edge %d->%d", ErrNegativeAttribute, *in.Speed, from, to)
		}
		e.speed, e.hasSpeed = *in.Speed, true
	}
	if len(in.Attributes) > 0 {
		e.attributes = make(map[string]float64, len(in.Attributes))
		for name, val := range in.Attributes {
			if !validAttribute(val) {
				return 0, fmt.Errorf("%w: %s %v on edge %d->%d", ErrNegativeAttribute, name, val, from, to)
			}
			e.attributes[name] = val
		}
	}

	pk := pairKey{u, v}
	e.key = len(g.parallel[pk])
	g.parallel[pk] = append(g.parallel[pk], e.edgeId)

	g.edges = append(g.edges, e)
	g.outEdges[u] = append(g.outEdges[u], e.edgeId)
	return e.key, nil
}

func validAttribute(x float64) bool {
	return !math.IsNaN(x) && x >= 0
}

func (g *Graph) NumberOfVertices() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

func (g *Graph) GetIndex(id NodeID) (Index, bool) {
	idx, ok := g.nodeIndex[id]
	return idx, ok
}

func (g *Graph) GetNode(u Index) *Node {
	return g.nodes[u]
}

func (g *Graph) GetNodeID(u Index) NodeID {
	return g.nodes[u].id
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	return g.nodes[u].lat, g.nodes[u].lon
}

func (g *Graph) GetEdge(e Index) *Edge {
	return g.edges[e]
}

func (g *Graph) GetOutDegree(u Index) int {
	return len(g.outEdges[u])
}

// ForOutEdgesOf visits every outgoing edge of u, parallel edges included, in insertion order.
func (g *Graph) ForOutEdgesOf(u Index, handle func(e *Edge)) {
	for _, eId := range g.outEdges[u] {
		handle(g.edges[eId])
	}
}

func (g *Graph) ForEdges(handle func(e *Edge)) {
	for _, e := range g.edges {
		handle(e)
	}
}

func (g *Graph) ForNodes(handle func(u Index, n *Node)) {
	for i, n := range g.nodes {
		handle(Index(i), n)
	}
}

// GetEdgesBetween returns every parallel edge u -> v ordered by key.
func (g *Graph) GetEdgesBetween(u, v Index) []*Edge {
	ids := g.parallel[pairKey{u, v}]
	es := make([]*Edge, len(ids))
	for i, id := range ids {
		es[i] = g.edges[id]
	}
	return es
}

func (g *Graph) GetEdgeByKey(u, v Index, key int) (*Edge, bool) {
	ids := g.parallel[pairKey{u, v}]
	if key < 0 || key >= len(ids) {
		return nil, false
	}
	return g.edges[ids[key]], true
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}
