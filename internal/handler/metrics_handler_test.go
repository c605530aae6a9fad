package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lgu-benefits-api/internal/service"
)

func TestMetricsHandlerReady(t *testing.T) {
	ok := PingerFunc(func(ctx context.Context) error { return nil })
	down := PingerFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	h := NewMetricsHandler(nil, map[string]Pinger{"postgres": ok})
	c, w := newHandlerContext(http.MethodGet, "/ready", "", nil)
	h.Ready(c)
	require.Equal(t, http.StatusOK, w.Code)

	h = NewMetricsHandler(nil, map[string]Pinger{"postgres": ok, "redis": down})
	c, w = newHandlerContext(http.MethodGet, "/ready", "", nil)
	h.Ready(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Checks["postgres"])
	assert.Equal(t, "connection refused", body.Checks["redis"])
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordVoucherTransition("pending")
	h := NewMetricsHandler(metrics, nil)

	c, w := newHandlerContext(http.MethodGet, "/metrics", "", nil)
	h.Prometheus(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `voucher_transitions_total{status="pending"} 1`))

	c, w = newHandlerContext(http.MethodGet, "/metrics", "", nil)
	NewMetricsHandler(nil, nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
