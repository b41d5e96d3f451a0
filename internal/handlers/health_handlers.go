package handlers

import (
	"net/http"
	"time"

	"eggmart/internal/storage"

	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	kv      storage.KV
	version string
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(kv storage.KV, version string) *HealthHandlers {
	return &HealthHandlers{kv: kv, version: version}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// HealthCheck probes the KV backend and reports overall service health.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
	}

	// A missing probe key still proves the backend answers.
	if _, err := h.kv.Get(c.Request().Context(), "eggmart:health:probe"); err != nil && err != storage.ErrNotFound {
		health.Services["storage"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["storage"] = "healthy"
	}

	code := http.StatusOK
	if health.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, health)
}

// ReadinessCheck reports whether the service can accept traffic.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}
