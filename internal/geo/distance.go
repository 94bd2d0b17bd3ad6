// Package geo computes distances over recorded GPS routes. TotalDistance is
// the single source of truth for every distance the service reports; callers
// must not re-derive path lengths themselves.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula
const EarthRadiusMeters = 6371000.0

// Point is a geographic coordinate in degrees
type Point struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the great-circle distance between two points in meters
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// TotalDistance returns the cumulative path length over an ordered sequence
// of points in meters. Sequences shorter than two points have zero length.
func TotalDistance(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}
