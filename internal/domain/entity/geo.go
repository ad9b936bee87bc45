package entity

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// NewPoint builds a WGS84 point. orb stores points as (lon, lat).
func NewPoint(lat, lng float64) orb.Point {
	return orb.Point{lng, lat}
}

// ValidLatLng reports whether lat/lng are inside the WGS84 range.
func ValidLatLng(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// DistanceKm is the great-circle distance between two points in kilometers.
func DistanceKm(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b) / 1000.0
}

// RadiusBound returns a bounding box that contains every point within
// radiusKm of center. Used as a cheap pre-filter before DistanceKm.
// Min.Lon > Max.Lon when the box wraps the antimeridian.
func RadiusBound(center orb.Point, radiusKm float64) orb.Bound {
	return geo.NewBoundAroundPoint(center, radiusKm*1000.0).Pad(boundPadDegrees)
}

// boundPadDegrees absorbs float error at the edge of the radius.
const boundPadDegrees = 1e-9
