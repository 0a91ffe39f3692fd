// Package payment reconciles Paystack card transactions with orders.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/paystack"
)

// Gateway is the payment processor.
type Gateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.Authorization, error)
	Verify(ctx context.Context, reference string) (*paystack.Transaction, error)
}

// Store updates the payment columns of an order. Both methods return
// apperr.ErrNotFound when no order has the number.
type Store interface {
	MarkOrderPaid(ctx context.Context, orderNumber string, amount float64, now time.Time) error
	ResetOrderPayment(ctx context.Context, orderNumber string, now time.Time) error
}

type Service struct {
	gateway Gateway
	store   Store
	now     func() time.Time
}

func NewService(gateway Gateway, store Store) *Service {
	return &Service{gateway: gateway, store: store, now: time.Now}
}

type InitializeInput struct {
	Email       string
	Amount      float64 // rand
	OrderNumber string
	CallbackURL string
}

// Initialize opens a hosted checkout. The order number is the reference.
func (s *Service) Initialize(ctx context.Context, in InitializeInput) (*paystack.Authorization, error) {
	// 1. Validate
	in.Email = strings.TrimSpace(in.Email)
	in.OrderNumber = strings.TrimSpace(in.OrderNumber)
	switch {
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return nil, apperr.Validation("A valid email address is required")
	case in.OrderNumber == "":
		return nil, apperr.Validation("order_number is required")
	}
	cents := paystack.ToMinorUnits(in.Amount)
	if cents <= 0 {
		return nil, apperr.Validation("amount must be greater than zero")
	}

	// 2. Ask the processor
	return s.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:       in.Email,
		Amount:      cents,
		Reference:   in.OrderNumber,
		CallbackURL: in.CallbackURL,
	})
}

// Verification is the outcome of VerifyPayment. OrderUpdated is nil when no
// order write was attempted. ReconciliationError is set when money was
// captured but the order could not be updated.
type Verification struct {
	PaymentVerified     bool
	Amount              float64
	OrderUpdated        *bool
	ReconciliationError error
}

// ReconciliationMessage is returned to the shopper when a captured payment
// could not be recorded against the order.
const ReconciliationMessage = "Payment was received but we could not update your order. Please contact support with your payment reference."

// Verify checks a transaction and, unless skipOrderUpdate is set, marks the
// order with the same number as fully paid.
func (s *Service) Verify(ctx context.Context, reference string, skipOrderUpdate bool) (*Verification, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, apperr.Validation("reference is required")
	}

	// 1. Ask the processor
	tx, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	// 2. Not captured: normal outcome, nothing is written
	if tx.Status != paystack.StatusSuccess {
		return &Verification{PaymentVerified: false}, nil
	}
	amount := paystack.FromMinorUnits(tx.Amount)
	result := &Verification{PaymentVerified: true, Amount: amount}
	if skipOrderUpdate {
		return result, nil
	}

	// 3. Record the payment against the order
	updated := true
	if err := s.store.MarkOrderPaid(ctx, reference, amount, s.now()); err != nil {
		updated = false
		log.Printf("ERROR: payment %s captured (R%.2f) but order update failed: %v", reference, amount, err)
		result.ReconciliationError = apperr.Wrap(apperr.KindReconciliationGap, ReconciliationMessage, err)
	}
	result.OrderUpdated = &updated
	return result, nil
}

// Fix resets an order's payment to awaiting. Used to unwind a bad
// reconciliation by hand.
func (s *Service) Fix(ctx context.Context, orderNumber string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return apperr.Validation("order_number is required")
	}
	if err := s.store.ResetOrderPayment(ctx, orderNumber, s.now()); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Order not found")
		}
		return fmt.Errorf("resetting payment for %s: %w", orderNumber, err)
	}
	return nil
}
