package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chachabrian/pawcare-backend/internal/config"
	"github.com/chachabrian/pawcare-backend/internal/database"
	"github.com/chachabrian/pawcare-backend/internal/handlers"
	"github.com/chachabrian/pawcare-backend/internal/middleware"
	"github.com/chachabrian/pawcare-backend/internal/repository"
	"github.com/chachabrian/pawcare-backend/internal/server"
	"github.com/chachabrian/pawcare-backend/internal/services"
	"github.com/chachabrian/pawcare-backend/pkg/utils"
)

// storeWithPing is what main needs from a booking store.
type storeWithPing interface {
	services.VaccinationStore
	handlers.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	var store storeWithPing
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Println("Using in-memory booking store; data is lost on restart")
		store = repository.NewMemoryVaccinationRepo()
	default:
		db, err := database.InitDB(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		store = repository.NewVaccinationRepo(db)
	}

	healthChecks := map[string]handlers.Pinger{"store": store}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	notifiers := services.MultiNotifier{hub}

	// Redis is optional; without it events stay in-process
	if cfg.RedisURL != "" {
		client, err := services.InitRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		defer client.Close()
		redisNotifier := services.NewRedisNotifier(client)
		notifiers = append(notifiers, redisNotifier)
		healthChecks["redis"] = redisNotifier
	}

	if cfg.AMQPURL != "" {
		publisher, err := services.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ publisher: %v", err)
		}
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
	}

	if mailer := utils.NewMailer(cfg.EmailFrom, cfg.EmailPassword, cfg.SMTPHost, cfg.SMTPPort, cfg.FrontendURL); mailer != nil {
		notifiers = append(notifiers, services.AsyncNotifier{Next: services.NewEmailNotifier(mailer)})
	} else {
		log.Println("SMTP not configured; booking emails are disabled")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stop := make(chan struct{})
	defer close(stop)
	go limiter.RunCleanup(time.Minute, 10*time.Minute, stop)

	r := server.NewRouter(server.Deps{
		Vaccinations: services.NewVaccinationService(store, notifiers),
		Hub:          hub,
		StaffToken:   cfg.StaffToken,
		RateLimiter:  limiter,
		CORSOrigins:  cfg.CORSOrigins,
		HealthChecks: healthChecks,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
