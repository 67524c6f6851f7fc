package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chachabrian/pawcare-backend/internal/handlers"
	"github.com/chachabrian/pawcare-backend/internal/middleware"
	"github.com/chachabrian/pawcare-backend/internal/services"
)

// Deps is everything the router hands to its handlers.
type Deps struct {
	Vaccinations *services.VaccinationService
	Hub          *services.Hub
	StaffToken   string
	RateLimiter  *middleware.RateLimiter
	CORSOrigins  []string
	HealthChecks map[string]handlers.Pinger
}

// NewRouter sets up the gin engine with all endpoints.
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = d.CORSOrigins
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = []string{"*"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(config))

	r.GET("/health", handlers.HealthCheck(d.HealthChecks))

	limit := func(c *gin.Context) { c.Next() }
	if d.RateLimiter != nil {
		limit = d.RateLimiter.Middleware()
	}

	api := r.Group("/api")
	{
		vaccinations := api.Group("/vaccinations")
		{
			vaccinations.GET("", handlers.GetVaccinations(d.Vaccinations))
			vaccinations.POST("", limit, handlers.CreateVaccination(d.Vaccinations))
			vaccinations.GET("/availability", handlers.GetAvailability(d.Vaccinations))
			vaccinations.GET("/:id", handlers.GetVaccination(d.Vaccinations))
			vaccinations.GET("/:id/receipt", handlers.GetVaccinationReceipt(d.Vaccinations))
			vaccinations.PUT("/:id", limit, handlers.UpdateVaccination(d.Vaccinations))
			vaccinations.DELETE("/:id", limit, handlers.DeleteVaccination(d.Vaccinations))
			vaccinations.PATCH("/:id/cancel", limit, handlers.CancelVaccination(d.Vaccinations))
		}

		api.GET("/users/:userEmail/vaccinations", handlers.GetUserVaccinations(d.Vaccinations))

		centers := api.Group("/vaccination-centers")
		{
			centers.GET("", handlers.GetVaccinationCenters())
			centers.GET("/nearest", handlers.GetNearestVaccinationCenters())
		}

		if d.Hub != nil {
			api.GET("/ws", handlers.WebSocketHandler(d.Hub, d.StaffToken))
		}
	}

	return r
}
