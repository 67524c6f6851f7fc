package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chachabrian/pawcare-backend/internal/models"
	"github.com/chachabrian/pawcare-backend/internal/services"
)

func GetVaccinationCenters() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, models.VaccinationCenters)
	}
}

// GetNearestVaccinationCenters orders the clinics by distance from ?lat=&lng=
func GetNearestVaccinationCenters() gin.HandlerFunc {
	return func(c *gin.Context) {
		var missing []string
		latStr, lngStr := c.Query("lat"), c.Query("lng")
		if latStr == "" {
			missing = append(missing, "lat")
		}
		if lngStr == "" {
			missing = append(missing, "lng")
		}
		if len(missing) > 0 {
			c.JSON(400, gin.H{"message": "Missing required fields", "missingFields": missing})
			return
		}

		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid latitude"})
			return
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid longitude"})
			return
		}

		centers, err := services.NearestCenters(lat, lng)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, centers)
	}
}
