package utils

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm = 6371

	// WalkingSpeedKmh is the pace used for travel time estimates to a clinic.
	WalkingSpeedKmh = 5.0
)

// HaversineDistance calculates the distance between two points on Earth
// using the Haversine formula. Returns distance in kilometers.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := degToRad(lat1)
	lat2Rad := degToRad(lat2)
	dlat := degToRad(lat2 - lat1)
	dlng := degToRad(lng2 - lng1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dlng/2)*math.Sin(dlng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// IsValidCoordinate checks that lat/lng fall inside the WGS84 ranges.
func IsValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// TravelMinutes estimates how long covering distanceKm takes at speedKmh.
func TravelMinutes(distanceKm, speedKmh float64) float64 {
	if speedKmh <= 0 {
		speedKmh = WalkingSpeedKmh
	}
	return distanceKm / speedKmh * 60
}

// FormatTravelTime renders minutes as "42 min" or "1 hr 5 min".
func FormatTravelTime(minutes float64) string {
	total := int(math.Round(minutes))
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	return fmt.Sprintf("%d hr %d min", total/60, total%60)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
