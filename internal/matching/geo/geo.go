// internal/matching/geo/geo.go
package geo

import (
	"fmt"
	"math"
	"sort"

	"marketplace-workers/internal/models"
)

const (
	earthRadiusKm = 6371.0

	// DefaultMaxRadiusKm is the geofence applied when the caller sets none.
	DefaultMaxRadiusKm = 40.0

	avgCitySpeedKmh = 30.0
	minETAMinutes   = 5
)

// Distance returns the great-circle distance between a and b in kilometres.
func Distance(a, b models.GeoPoint) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Located pairs an item index with its distance from the request.
type Located struct {
	Index      int
	DistanceKm float64
}

// FilterByRadius keeps the entries within maxKm and orders them by distance,
// nearest first. Ties keep their input order. maxKm <= 0 means DefaultMaxRadiusKm.
func FilterByRadius(in []Located, maxKm float64) []Located {
	if maxKm <= 0 {
		maxKm = DefaultMaxRadiusKm
	}
	out := make([]Located, 0, len(in))
	for _, l := range in {
		if l.DistanceKm <= maxKm {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// DistanceScore maps a distance onto the proximity staircase. Anything past
// maxRadiusKm scores zero.
func DistanceScore(km, maxRadiusKm float64) float64 {
	if maxRadiusKm <= 0 {
		maxRadiusKm = DefaultMaxRadiusKm
	}
	switch {
	case km > maxRadiusKm:
		return 0
	case km <= 2:
		return 100
	case km <= 5:
		return 90
	case km <= 10:
		return 75
	case km <= 20:
		return 50
	case km <= 30:
		return 30
	default:
		return 15
	}
}

// FormatDistance renders whole metres below one kilometre and kilometres with
// one decimal from there on.
func FormatDistance(km float64) string {
	if metres := int(math.Round(km * 1000)); metres < 1000 {
		return fmt.Sprintf("%d m", metres)
	}
	return fmt.Sprintf("%.1f km", km)
}

// ETAMinutes estimates travel time at average city speed, never below five minutes.
func ETAMinutes(km float64) int {
	minutes := int(math.Ceil(km / avgCitySpeedKmh * 60))
	if minutes < minETAMinutes {
		return minETAMinutes
	}
	return minutes
}

// Box is a lat/lng envelope used to prefilter snapshot queries.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// BoundingBox returns an envelope that contains every point within radiusKm
// of center. It is a superset; callers still apply Distance.
func BoundingBox(center models.GeoPoint, radiusKm float64) Box {
	angular := radiusKm / earthRadiusKm
	dLat := angular * 180 / math.Pi
	cosLat := math.Cos(toRadians(center.Lat))
	dLng := 180.0
	if s := math.Sin(angular); angular < math.Pi/2 && s < cosLat {
		dLng = math.Asin(s/cosLat) * 180 / math.Pi
	}
	return Box{
		MinLat: math.Max(-90, center.Lat-dLat),
		MaxLat: math.Min(90, center.Lat+dLat),
		MinLng: math.Max(-180, center.Lng-dLng),
		MaxLng: math.Min(180, center.Lng+dLng),
	}
}

// ValidatePoint reports a wrapped models.ErrInvalidInput for malformed coordinates.
func ValidatePoint(p models.GeoPoint) error {
	return p.Validate()
}
