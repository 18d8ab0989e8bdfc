package api

import (
	"context"  // Ping deadline
	"net/http" // HTTP status codes
	"time"     // Uptime

	"github.com/gin-gonic/gin" // Gin web framework
)

// HealthHandler reports liveness and, when ping is set, database reachability
func HealthHandler(started time.Time, environment string, ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, database := http.StatusOK, "up"
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				status, database = http.StatusServiceUnavailable, "down"
			}
		}
		message := "Service is healthy"
		if status != http.StatusOK {
			message = "Service is unhealthy"
		}
		c.JSON(status, gin.H{
			"success":     status == http.StatusOK,       // Outcome flag
			"message":     message,                       // Human readable summary
			"timestamp":   time.Now().UTC(),              // Current server time
			"uptime":      time.Since(started).Seconds(), // Seconds since start
			"environment": environment,                   // development or production
			"database":    database,                      // up or down
		})
	}
}
