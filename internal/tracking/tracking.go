// Package tracking finds a shopper's orders by email or phone.
package tracking

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/01moynul/bales-storefront/internal/phone"
)

// OrderFinder returns orders matching q with items and history loaded.
type OrderFinder interface {
	FindOrders(ctx context.Context, q models.OrderQuery) ([]models.Order, error)
}

type Service struct {
	finders []OrderFinder
}

// NewService consults finders in order and returns the first non-empty result.
// The primary store comes first; the legacy store, if any, last.
func NewService(finders ...OrderFinder) *Service {
	return &Service{finders: finders}
}

type Input struct {
	Email       string
	Phone       string
	OrderNumber string
}

// Track returns matching orders newest first, each with its status history
// oldest first.
func (s *Service) Track(ctx context.Context, in Input) ([]models.Order, error) {
	// 1. Build the query. Exactly one of email or phone is allowed.
	email := strings.TrimSpace(in.Email)
	rawPhone := strings.TrimSpace(in.Phone)
	if (email == "") == (rawPhone == "") {
		return nil, apperr.New(apperr.KindMissingIdentity, "Provide either an email address or a phone number")
	}
	q := models.OrderQuery{Email: strings.ToLower(email), OrderNumber: strings.TrimSpace(in.OrderNumber)}
	if rawPhone != "" {
		candidates, err := phone.Candidates(rawPhone)
		if err != nil {
			return nil, err
		}
		q.Phones = candidates
	}

	// 2. Ask each store until one has results
	var orders []models.Order
	for i, f := range s.finders {
		found, err := f.FindOrders(ctx, q)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("finding orders: %w", err)
			}
			log.Printf("WARNING: secondary order lookup failed: %v", err)
			continue
		}
		if len(found) > 0 {
			orders = found
			break
		}
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("No orders found")
	}

	// 3. Orders newest first, history oldest first
	slices.SortStableFunc(orders, func(a, b models.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	for i := range orders {
		slices.SortStableFunc(orders[i].StatusHistory, func(a, b models.OrderStatusHistory) int {
			return a.ChangedAt.Compare(b.ChangedAt)
		})
	}
	return orders, nil
}
