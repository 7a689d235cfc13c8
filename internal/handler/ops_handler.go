package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// OpsHandler serves the operational endpoints: health and metrics.
type OpsHandler struct {
	service  string
	store    Pinger
	gatherer prometheus.Gatherer
}

// NewOpsHandler creates a new OpsHandler. store may be nil when the service
// runs on the in-memory store.
func NewOpsHandler(service string, store Pinger, gatherer prometheus.Gatherer) *OpsHandler {
	return &OpsHandler{service: service, store: store, gatherer: gatherer}
}

// RegisterRoutes registers the ops routes.
func (h *OpsHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

// Health handles GET /health.
func (h *OpsHandler) Health(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"service": h.service,
				"status":  "unhealthy",
				"store":   err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"service": h.service,
		"status":  "ok",
	})
}
