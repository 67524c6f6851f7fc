package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything whose connection can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck pings every dependency and reports 503 if any is down.
func HealthCheck(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := 200
		checks := gin.H{}
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				checks[name] = err.Error()
				status = 503
				continue
			}
			checks[name] = "up"
		}

		overall := "ok"
		if status != 200 {
			overall = "degraded"
		}
		c.JSON(status, gin.H{"status": overall, "checks": checks})
	}
}
