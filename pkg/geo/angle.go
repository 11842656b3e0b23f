package geo

import (
	"math"

	"github.com/lintang-b-s/roadroute/pkg/util"
)

/*
BearingTo. initial bearing in degree [0, 360) from p1 towards p2, clockwise from north.
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {
	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)
}

// DeltaBearing returns the signed change of heading in degree (-180, 180], positive means clockwise.
func DeltaBearing(prevBearing, bearing float64) float64 {
	d := math.Mod(bearing-prevBearing+540, 360) - 180
	if d == -180 {
		return 180
	}
	return d
}
