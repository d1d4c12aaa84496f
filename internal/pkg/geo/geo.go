package geo

import "math"

// DefaultRadiusMeters is how far from the organization's registered
// coordinate a check-in or check-out is still accepted.
const DefaultRadiusMeters = 100.0

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two
// coordinates given in degrees, using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinRadius reports whether the reported coordinate is inside the
// allowed radius of the reference coordinate.
func WithinRadius(refLat, refLon, lat, lon, radiusMeters float64) bool {
	return Distance(refLat, refLon, lat, lon) <= radiusMeters
}
