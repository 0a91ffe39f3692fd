package handlers

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/verification"
	"github.com/gin-gonic/gin"
)

//
// --- Verification Handlers (Public) ---
//

type SendPinInput struct {
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Method string `json:"method" binding:"required,oneof=email sms"`
}

// SendVerificationPin is the handler for POST /v1/send-verification-pin
func (h *Handlers) SendVerificationPin(c *gin.Context) {
	// 1. --- Parse Input ---
	var input SendPinInput
	if !bindJSON(c, &input) {
		return
	}

	// 2. --- Issue and deliver the PIN ---
	err := h.Verification.RequestPin(c.Request.Context(), verification.RequestPinInput{
		Email:  input.Email,
		Phone:  input.Phone,
		Method: input.Method,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Send Success Response ---
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code sent"})
}

type VerifyPinInput struct {
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Pin    string `json:"pin" binding:"required"`
	Method string `json:"method" binding:"required,oneof=email sms"`
}

// VerifyPin is the handler for POST /v1/verify-pin
func (h *Handlers) VerifyPin(c *gin.Context) {
	var input VerifyPinInput
	if !bindJSON(c, &input) {
		return
	}

	err := h.Verification.VerifyPin(c.Request.Context(), verification.VerifyPinInput{
		Email:  input.Email,
		Phone:  input.Phone,
		Pin:    input.Pin,
		Method: input.Method,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "verified": true})
}
