package handlers

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Metric Handlers ---
//

type TrackMetricInput struct {
	BaleID     string `json:"baleId" binding:"required"`
	MetricType string `json:"metricType" binding:"required"`
}

// TrackBaleMetric is the handler for POST /v1/track-bale-metric
func (h *Handlers) TrackBaleMetric(c *gin.Context) {
	var input TrackMetricInput
	if !bindJSON(c, &input) {
		return
	}

	if _, err := h.Metrics.Track(c.Request.Context(), input.BaleID, models.MetricKind(input.MetricType)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResetMetrics is the handler for POST /v1/admin/reset-bale-metrics
func (h *Handlers) ResetMetrics(c *gin.Context) {
	n, err := h.Metrics.Reset(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Metrics reset", "reset_count": n})
}

// ListMetrics is the handler for GET /v1/admin/bale-metrics
func (h *Handlers) ListMetrics(c *gin.Context) {
	list, err := h.Metrics.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "metrics": list})
}

// GetMetric is the handler for GET /v1/admin/bale-metrics/:bale_id
func (h *Handlers) GetMetric(c *gin.Context) {
	m, err := h.Metrics.Get(c.Request.Context(), c.Param("bale_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "metric": m})
}
