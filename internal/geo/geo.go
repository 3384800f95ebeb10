// Package geo implements the ordering eligibility gate: a geofence around the
// restaurant. This is advisory client-side policy only — it shapes the diner
// experience and can be bypassed by a session that fabricates coordinates. It is
// not access control and must never be relied on as a security boundary.
package geo

import "math"

// meanEarthRadiusMeters per the haversine great-circle approximation.
const meanEarthRadiusMeters = 6371000

// DefaultThresholdMeters bounds how far from the restaurant a diner may order.
const DefaultThresholdMeters = 100

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Distance returns the great-circle distance between two points in meters,
// using the haversine formula.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	return 2 * meanEarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// IsEligible reports whether a diner at here may place orders. Eligibility is
// false whenever the restaurant location is unconfigured or the diner's position
// could not be obtained (either pointer nil): no location means no ordering.
func IsEligible(here, restaurant *Point, thresholdMeters float64) bool {
	if here == nil || restaurant == nil {
		return false
	}
	return Distance(*here, *restaurant) <= thresholdMeters
}
