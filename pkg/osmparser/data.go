package osmparser

type NodeType int

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":       {},
		"motorway_link":  {},
		"motorroad":      {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"unclassified":   {},
		"residential":    {},
		"living_street":  {},
		"service":        {},
		"road":           {},
		"track":          {},
	}

	// access values that close a way to motor vehicles
	restrictedAccess = map[string]struct{}{
		"no":      {},
		"private": {},
	}
)

// node coordinate of a way node
type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

type osmWay struct {
	id       int64
	nodes    []int64
	highway  string
	name     string
	maxSpeed float64 // km/h, 0 when untagged
	lanes    float64 // 0 when untagged
	oneWay   bool
	reversed bool // oneway against the node order
}
