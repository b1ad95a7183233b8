package geo

import (
	"math"

	"github.com/lintang-b-s/bearmaps/pkg/util"
)

/*
Bearing. initial bearing (forward azimuth) from (lon1,lat1) to (lon2,lat2), in degree within (-180, 180].
0 is north, positive is clockwise (east).
https://www.movable-type.co.uk/scripts/latlong.html

bearing(p,q) is not -bearing(q,p): on a great circle the final bearing differs from the initial one.
*/
func Bearing(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := util.DegreeToRadians(lat1)
	phi2 := util.DegreeToRadians(lat2)
	dLambda := util.DegreeToRadians(lon2 - lon1)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) -
		math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	brng := util.RadiansToDegree(math.Atan2(y, x))
	if brng == -180 {
		// atan2 returns -pi for (-0, negative x)
		brng = 180
	}
	return brng
}

// DeltaBearing returns the signed change of heading (degree, (-180, 180]) when going from heading `from` to heading `to`.
// negative means the turn is to the left.
func DeltaBearing(from, to float64) float64 {
	delta := math.Mod(to-from, 360)
	if delta > 180 {
		delta -= 360
	} else if delta <= -180 {
		delta += 360
	}
	return delta
}
