package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	started time.Time
	movies  int
}

// NewHealthHandler creates a new health handler for an engine holding movies records.
func NewHealthHandler(movies int) *HealthHandler {
	return &HealthHandler{started: time.Now(), movies: movies}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"movies":         h.movies,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
