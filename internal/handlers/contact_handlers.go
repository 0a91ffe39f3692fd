package handlers

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/notify"
	"github.com/gin-gonic/gin"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// SendContactEnquiry is the handler for POST /v1/contact
func (h *Handlers) SendContactEnquiry(c *gin.Context) {
	var input ContactInput
	if !bindJSON(c, &input) {
		return
	}

	err := h.Notify.SendContactEnquiry(c.Request.Context(), notify.Enquiry{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Message: input.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thanks! We'll be in touch soon."})
}
