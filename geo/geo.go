package geo

import "math"

//*******************************************
// coordinates
//*******************************************

// EarthRadiusKm is the sphere radius used for all great-circle math.
const EarthRadiusKm = 6371.0

// Coord is a geographic coordinate in degrees.
type Coord struct {
	Lat float64
	Lon float64
}

//*******************************************
// distance
//*******************************************

// HaversineDistance returns the great-circle distance between a and b in
// kilometers. Symmetric, zero for identical coordinates.
func HaversineDistance(a, b Coord) float64 {
	lat1 := _Radians(a.Lat)
	lat2 := _Radians(b.Lat)
	delta_lat := _Radians(b.Lat - a.Lat)
	delta_lon := _Radians(b.Lon - a.Lon)

	h := math.Pow(math.Sin(delta_lat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(delta_lon/2), 2)

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

func _Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
