package handlers

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/catalog"
	"github.com/gin-gonic/gin"
)

//
// --- Admin Dashboard Stats ---
//

type DashboardStats struct {
	catalog.InventoryStats
	TotalViews     int64 `json:"total_views"`
	TotalAddToCart int64 `json:"total_add_to_cart"`
}

// GetDashboardStats returns KPI data for the admin dashboard
// GET /v1/admin/dashboard-stats
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Stock valuation and bale availability
	inventory, err := h.Catalog.Stats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	stats := DashboardStats{InventoryStats: *inventory}

	// 2. Engagement since the last reset
	list, err := h.Metrics.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	for _, m := range list {
		stats.TotalViews += m.ViewCount
		stats.TotalAddToCart += m.AddToCartCount
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
