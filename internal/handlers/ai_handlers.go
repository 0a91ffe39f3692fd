package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateDescriptionInput defines the structure of the JSON request body.
type GenerateDescriptionInput struct {
	Save bool `json:"save"`
}

// GenerateBaleDescription is the handler for POST /v1/admin/bales/:id/generate-description
func (h *Handlers) GenerateBaleDescription(c *gin.Context) {
	// 1. Parse Input (the body is optional)
	var input GenerateDescriptionInput
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}

	// 2. Call the AI copywriter
	baleID := c.Param("id")
	desc, err := h.Copywriter.GenerateBaleDescription(c.Request.Context(), baleID)
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. Optionally store it on the bale
	if input.Save {
		if _, err := h.Catalog.SetDescription(c.Request.Context(), baleID, desc.Text); err != nil {
			respondError(c, err)
			return
		}
	}

	// 4. Return the copy
	c.JSON(http.StatusOK, gin.H{"success": true, "description": desc.Text, "tokens_used": desc.TokensUsed, "saved": input.Save})
}
