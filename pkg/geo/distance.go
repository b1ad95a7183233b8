package geo

import (
	"math"

	"github.com/lintang-b-s/bearmaps/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

const (
	EarthRadiusMiles = 3963.0
)

/*
Distance. great-circle (haversine) distance in miles between (lon1,lat1) and (lon2,lat2).
https://www.movable-type.co.uk/scripts/latlong.html

the terms only depend on |lat2-lat1|, |lon2-lon1| and the product of both cosines, so swapping the two points
gives the same float64.
*/
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := util.DegreeToRadians(lat1)
	phi2 := util.DegreeToRadians(lat2)
	dPhi := util.DegreeToRadians(lat2 - lat1)
	dLambda := util.DegreeToRadians(lon2 - lon1)

	sinDPhi := math.Sin(dPhi / 2.0)
	sinDLambda := math.Sin(dLambda / 2.0)

	a := sinDPhi*sinDPhi + math.Cos(phi1)*math.Cos(phi2)*sinDLambda*sinDLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// GetDestinationPoint returns the (lat, lon) reached from (lat1, lon1) after travelling dist miles with the given initial bearing (degree).
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / EarthRadiusMiles

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2))
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}
