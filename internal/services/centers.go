package services

import (
	"sort"

	"github.com/chachabrian/pawcare-backend/internal/models"
	"github.com/chachabrian/pawcare-backend/pkg/utils"
)

// CenterDistance is a clinic annotated with how far it is from the caller.
type CenterDistance struct {
	models.VaccinationCenter
	DistanceKm    float64 `json:"distanceKm"`
	TravelMinutes float64 `json:"travelMinutes"`
	TravelTime    string  `json:"travelTime"`
}

// NearestCenters orders the clinic directory by distance from (lat, lng).
func NearestCenters(lat, lng float64) ([]CenterDistance, error) {
	if !utils.IsValidCoordinate(lat, lng) {
		return nil, invalid("Invalid coordinates: lat must be within ±90 and lng within ±180")
	}

	out := make([]CenterDistance, 0, len(models.VaccinationCenters))
	for _, c := range models.VaccinationCenters {
		d := utils.HaversineDistance(lat, lng, c.Latitude, c.Longitude)
		minutes := utils.TravelMinutes(d, utils.WalkingSpeedKmh)
		out = append(out, CenterDistance{
			VaccinationCenter: c,
			DistanceKm:        utils.RoundTo(d, 2),
			TravelMinutes:     utils.RoundTo(minutes, 1),
			TravelTime:        utils.FormatTravelTime(minutes),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}
