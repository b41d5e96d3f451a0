package handlers

import (
	"net/http"

	"eggmart/internal/analytics"
	"eggmart/internal/common"

	"github.com/labstack/echo/v4"
)

// MetricsHandlers serves derived distributor metrics.
type MetricsHandlers struct {
	analyticsSvc *analytics.Service
}

func NewMetricsHandlers(analyticsSvc *analytics.Service) *MetricsHandlers {
	return &MetricsHandlers{analyticsSvc: analyticsSvc}
}

// DistributorMetrics returns the cached-or-computed metrics for the current
// record list.
func (h *MetricsHandlers) DistributorMetrics(c echo.Context) error {
	metrics, err := h.analyticsSvc.DistributorMetrics(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to compute distributor metrics")
	}
	return c.JSON(http.StatusOK, metrics)
}
