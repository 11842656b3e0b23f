package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes coords with the google encoded polyline algorithm (precision 5).
func PolylineFromCoords(coords []Coordinate) string {
	c := make([][]float64, len(coords))
	for i, coord := range coords {
		c[i] = []float64{coord.Lat, coord.Lon}
	}
	return string(polyline.EncodeCoords(c))
}

func CoordsFromPolyline(s string) ([]Coordinate, error) {
	c, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, len(c))
	for i, p := range c {
		coords[i] = NewCoordinate(p[0], p[1])
	}
	return coords, nil
}
