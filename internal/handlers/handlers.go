package handlers

import (
	"log"
	"net/http"

	"github.com/01moynul/bales-storefront/internal/ai"
	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/catalog"
	"github.com/01moynul/bales-storefront/internal/metrics"
	"github.com/01moynul/bales-storefront/internal/notify"
	"github.com/01moynul/bales-storefront/internal/orders"
	"github.com/01moynul/bales-storefront/internal/payment"
	"github.com/01moynul/bales-storefront/internal/tracking"
	"github.com/01moynul/bales-storefront/internal/verification"
	"github.com/gin-gonic/gin"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Verification *verification.Service
	Payments     *payment.Service
	Tracking     *tracking.Service
	Orders       *orders.Service
	Metrics      *metrics.Service
	Catalog      *catalog.Service
	Notify       *notify.Dispatcher
	Copywriter   *ai.Copywriter

	// Image uploads are written to UploadDir and served under BaseURL/uploads.
	UploadDir string
	BaseURL   string
}

// respondError logs the full error and replies with the public message only.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
	} else {
		log.Printf("WARNING: %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"success": false, "error": apperr.PublicMessage(err)})
}

// bindJSON binds the body or logs the detail and replies 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Printf("WARNING: %s %s: invalid body: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": invalidBodyMessage(err)})
		return false
	}
	return true
}
