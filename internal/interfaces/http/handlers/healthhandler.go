package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabinet/internal/shared/version"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ConnectionCounter reports the number of open realtime streams.
type ConnectionCounter interface {
	ConnectionCount() int
}

type HealthHandler struct {
	db    Pinger
	redis Pinger
	hub   ConnectionCounter
}

// NewHealthHandler accepts a nil redis pinger when Redis is disabled.
func NewHealthHandler(db Pinger, redis Pinger, hub ConnectionCounter) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, hub: hub}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok"}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.PingContext(ctx); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":               state,
		"version":              version.Current,
		"checks":               checks,
		"realtime_connections": h.hub.ConnectionCount(),
	})
}
