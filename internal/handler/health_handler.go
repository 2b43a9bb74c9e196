package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/lms-slot-api/pkg/errors"
	"github.com/noah-isme/lms-slot-api/pkg/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger reports whether the optional cache backend is reachable.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness, readiness and Prometheus endpoints.
type HealthHandler struct {
	db      Pinger
	cache   CachePinger
	metrics http.Handler
}

// NewHealthHandler constructs a health handler. cache and metrics may be nil.
func NewHealthHandler(db Pinger, cache CachePinger, metrics http.Handler) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, metrics: metrics}
}

// Health godoc
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness check
// @Description Fails only when the database is unreachable; a cache outage is reported as degraded.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} response.Envelope
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "cache": "disabled"}
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			response.Error(c, appErrors.Wrap(err, "UNAVAILABLE", http.StatusServiceUnavailable, "database unreachable"))
			return
		}
	}
	if h.cache != nil {
		status["cache"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			_ = c.Error(err)
			status["cache"] = "degraded"
		}
	}
	c.JSON(http.StatusOK, status)
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *HealthHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
