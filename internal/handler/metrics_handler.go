package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/landgov/landadmin-api/internal/service"
	"github.com/landgov/landadmin-api/pkg/response"
)

// MetricsHandler serves the lightweight diagnostics snapshot.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs the handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// System godoc
// @Summary Get aggregated runtime metrics
// @Tags Metrics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /metrics/system [get]
func (h *MetricsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
