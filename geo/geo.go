// Package geo provides the small geometry primitives used to derive
// per-segment distance and heading from GPS fixes.
//
// Distances within a city are computed with a cheap equirectangular
// approximation; the precise great-circle distance is available separately
// for validation.
package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is Earth's mean radius in metres.
const EarthRadiusMeters = 6371000.0

// PlanarDistance returns the approximate distance in metres between two
// lon/lat points. It projects the angular displacement onto a plane scaled
// by the cosine of the mean latitude, which holds up well at city scale.
// Callers must not apply it to widely separated points.
func PlanarDistance(lon1, lat1, lon2, lat2 float64) float64 {
	latFactor := math.Cos(((lat1 + lat2) / 2) * (math.Pi / 180))
	lonDelta := (lon1 - lon2) * latFactor
	latDelta := lat1 - lat2
	return math.Sqrt(lonDelta*lonDelta+latDelta*latDelta) * EarthRadiusMeters * (math.Pi / 180)
}

// PlanarHeading returns the direction in degrees from (lon2, lat2) to
// (lon1, lat1) in the rotated compass convention used throughout this
// dataset: 0 is west, 90 is north, -180 and 180 both denote east, -90 is
// south. This is not a standard bearing.
func PlanarHeading(lon1, lat1, lon2, lat2 float64) float64 {
	latFactor := math.Cos(((lat1 + lat2) / 2) * (math.Pi / 180))
	lonDelta := (lon2 - lon1) * latFactor
	latDelta := lat1 - lat2
	return math.Atan2(latDelta, lonDelta) * 180 / math.Pi
}

// HaversineDistance returns the great-circle distance in metres between two
// lon/lat points. Accurate for any pair of points; used to validate the
// planar approximation, not in the main pipeline.
func HaversineDistance(lon1, lat1, lon2, lat2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

var compassNames = [8]string{" W", "NW", " N", "NE", " E", "SE", " S", "SW"}

// CompassName returns the closest point of an eight-point compass rose for
// a heading in the rotated convention (W at 0, N at 90).
func CompassName(angle float64) string {
	ix := int(math.Round(angle*8/360)) % 8
	if ix < 0 {
		ix += 8
	}
	return compassNames[ix]
}
