// internal/models/geo.go
package models

import (
	"fmt"
	"math"
)

// DefaultLocation is used when a request or professional arrives without a
// resolved location (Tel Aviv city centre).
var DefaultLocation = GeoPoint{Lat: 32.0853, Lng: 34.7818}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that both coordinates are finite and inside the WGS84 range.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return &ValidationError{Field: "lat", Reason: fmt.Sprintf("latitude %v out of range [-90, 90]", p.Lat)}
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || p.Lng < -180 || p.Lng > 180 {
		return &ValidationError{Field: "lng", Reason: fmt.Sprintf("longitude %v out of range [-180, 180]", p.Lng)}
	}
	return nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.Lat, p.Lng)
}

// LocationOrDefault dereferences p, falling back to DefaultLocation.
func LocationOrDefault(p *GeoPoint) GeoPoint {
	if p == nil {
		return DefaultLocation
	}
	return *p
}
