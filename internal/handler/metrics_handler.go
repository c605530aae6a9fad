package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lgu-benefits-api/internal/service"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc adapts a plain function, such as a Redis ping, to Pinger.
type PingerFunc func(ctx context.Context) error

// PingContext calls f.
func (f PingerFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	deps    map[string]Pinger
}

// NewMetricsHandler constructs a metrics handler. deps are checked by Ready.
func NewMetricsHandler(metrics *service.MetricsService, deps map[string]Pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, deps: deps}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready pings every dependency and reports 503 when any is down.
func (h *MetricsHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	status := http.StatusOK
	for name, dep := range h.deps {
		if dep == nil {
			continue
		}
		if err := dep.PingContext(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	label := "ok"
	if status != http.StatusOK {
		label = "degraded"
	}
	c.JSON(status, gin.H{"status": label, "checks": checks})
}
