package handlers

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/payment"
	"github.com/gin-gonic/gin"
)

//
// --- Payment Handlers ---
//

type InitializePaymentInput struct {
	Email       string  `json:"email" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	OrderNumber string  `json:"order_number" binding:"required"`
	CallbackURL string  `json:"callback_url"`
}

// InitializePayment is the handler for POST /v1/initialize-payment
func (h *Handlers) InitializePayment(c *gin.Context) {
	// 1. --- Parse Input ---
	var input InitializePaymentInput
	if !bindJSON(c, &input) {
		return
	}

	// 2. --- Open the hosted checkout ---
	auth, err := h.Payments.Initialize(c.Request.Context(), payment.InitializeInput{
		Email:       input.Email,
		Amount:      input.Amount,
		OrderNumber: input.OrderNumber,
		CallbackURL: input.CallbackURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Send Success Response ---
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"authorization_url": auth.AuthorizationURL,
		"access_code":       auth.AccessCode,
		"reference":         auth.Reference,
	})
}

type VerifyPaymentInput struct {
	Reference       string `json:"reference" binding:"required"`
	SkipOrderUpdate bool   `json:"skip_order_update"`
}

// VerifyPayment is the handler for POST /v1/verify-payment
func (h *Handlers) VerifyPayment(c *gin.Context) {
	// 1. --- Parse Input ---
	var input VerifyPaymentInput
	if !bindJSON(c, &input) {
		return
	}

	// 2. --- Ask the processor and reconcile ---
	v, err := h.Payments.Verify(c.Request.Context(), input.Reference, input.SkipOrderUpdate)
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Build the response ---
	// A failed charge is a normal outcome and still answers 200.
	if !v.PaymentVerified {
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"payment_verified": false,
			"message":          "Payment was not successful",
		})
		return
	}

	resp := gin.H{
		"success":          true,
		"payment_verified": true,
		"amount":           v.Amount,
	}
	if v.OrderUpdated != nil {
		resp["order_updated"] = *v.OrderUpdated
	}
	if v.ReconciliationError != nil {
		resp["reconciliation_gap"] = true
		resp["error"] = apperr.PublicMessage(v.ReconciliationError)
	}
	c.JSON(http.StatusOK, resp)
}

type FixPaymentInput struct {
	OrderNumber string `json:"order_number" binding:"required"`
}

// FixPayment is the handler for POST /v1/admin/fix-payment
func (h *Handlers) FixPayment(c *gin.Context) {
	var input FixPaymentInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.Payments.Fix(c.Request.Context(), input.OrderNumber); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment reset to awaiting payment"})
}
