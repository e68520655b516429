package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/route66/trip-service/internal/database"
	"github.com/route66/trip-service/internal/directory"
)

// DirectoryStatus exposes the health of the cached stop directory.
type DirectoryStatus interface {
	BreakerState() directory.BreakerState
	Age() (time.Duration, bool)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status         string  `json:"status"`
	Database       string  `json:"database"`
	Directory      string  `json:"directory"`
	SnapshotAgeSec float64 `json:"snapshotAgeSeconds,omitempty"`
}

// HealthCheck reports service health. The service stays up while the stop
// source is open-circuited as long as a snapshot can be served.
func HealthCheck(dir DirectoryStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{Status: "ok", Database: "not configured", Directory: "not configured"}
		status := http.StatusOK

		if database.Pool() != nil {
			if err := database.Status(c.Request.Context()); err != nil {
				response.Database = "disconnected"
				response.Status = "degraded"
			} else {
				response.Database = "connected"
			}
		}

		if dir != nil {
			age, loaded := dir.Age()
			response.Directory = dir.BreakerState().String()
			if loaded {
				response.SnapshotAgeSec = age.Seconds()
			}
			if dir.BreakerState() != directory.BreakerClosed {
				response.Status = "degraded"
				if !loaded {
					response.Status = "unavailable"
					status = http.StatusServiceUnavailable
				}
			}
		}

		c.JSON(status, response)
	}
}
