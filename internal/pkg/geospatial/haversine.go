package geospatial

import (
	"math"

	"github.com/samirrijal/quadroute/internal/core/domain"
)

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

// Distance is Haversine for two GeoPoints.
func Distance(a, b domain.GeoPoint) float64 {
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// EdgeLengths returns the ground length in meters of a tile's first pixel row (width)
// and of its left column (height).
func EdgeLengths(c domain.Corners) (width, height float64) {
	return Distance(c.UpperLeft, c.UpperRight), Distance(c.UpperLeft, c.LowerLeft)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
