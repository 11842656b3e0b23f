package pkg

import "math"

// INF_WEIGHT is the cost of an unreachable node.
var INF_WEIGHT = math.Inf(1)

const (
	// DEFAULT_EDGE_DISTANCE is used when an edge carries no distance attribute.
	DEFAULT_EDGE_DISTANCE = 1.0
	// DEFAULT_ATTRIBUTE_COST is used when a generic cost attribute is missing.
	DEFAULT_ATTRIBUTE_COST = 1.0

	// DEFAULT_SPEED_KMH is assigned to edges with an absent or unknown road classification.
	DEFAULT_SPEED_KMH = 30.0
	// FALLBACK_SPEED_KMH is used by the time cost when an edge has no usable speed.
	FALLBACK_SPEED_KMH = 30.0

	KMH_TO_MS = 1000.0 / 3600.0
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY OsmHighwayType = iota
	TRUNK
	PRIMARY
	SECONDARY
	TERTIARY
	RESIDENTIAL
	SERVICE
	UNCLASSIFIED
	MOTORWAY_LINK
	TRUNK_LINK
	PRIMARY_LINK
	SECONDARY_LINK
	TERTIARY_LINK
	LIVING_STREET
	ROAD
	TRACK
	MOTORROAD
	PATH
	PEDESTRIAN
	FOOTWAY
	CONSTRUCTION
	UNKNOWN
)

var highwayTypeNames = [...]string{
	MOTORWAY:       "motorway",
	TRUNK:          "trunk",
	PRIMARY:        "primary",
	SECONDARY:      "secondary",
	TERTIARY:       "tertiary",
	RESIDENTIAL:    "residential",
	SERVICE:        "service",
	UNCLASSIFIED:   "unclassified",
	MOTORWAY_LINK:  "motorway_link",
	TRUNK_LINK:     "trunk_link",
	PRIMARY_LINK:   "primary_link",
	SECONDARY_LINK: "secondary_link",
	TERTIARY_LINK:  "tertiary_link",
	LIVING_STREET:  "living_street",
	ROAD:           "road",
	TRACK:          "track",
	MOTORROAD:      "motorroad",
	PATH:           "path",
	PEDESTRIAN:     "pedestrian",
	FOOTWAY:        "footway",
	CONSTRUCTION:   "construction",
	UNKNOWN:        "unknown",
}

func (h OsmHighwayType) String() string {
	if int(h) < len(highwayTypeNames) {
		return highwayTypeNames[h]
	}
	return highwayTypeNames[UNKNOWN]
}

func GetHighwayType(roadType string) OsmHighwayType {
	for i, name := range highwayTypeNames {
		if name == roadType && OsmHighwayType(i) != UNKNOWN {
			return OsmHighwayType(i)
		}
	}
	return UNKNOWN
}
