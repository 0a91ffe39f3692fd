package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/google/uuid"
)

func (s *Store) CreateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
	}
	for i := range o.StatusHistory {
		if o.StatusHistory[i].ID == "" {
			o.StatusHistory[i].ID = uuid.NewString()
		}
		o.StatusHistory[i].OrderID = o.ID
	}
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (s *Store) byNumber(number string) *models.Order {
	for _, o := range s.orders {
		if o.OrderNumber == number {
			return o
		}
	}
	return nil
}

func (s *Store) GetOrderByNumber(_ context.Context, number string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o := s.byNumber(number)
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	return cloneOrder(o), nil
}

// FindOrders returns matching orders, newest first.
func (s *Store) FindOrders(_ context.Context, q models.OrderQuery) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Order
	for _, o := range s.orders {
		if q.Email != "" && !strings.EqualFold(o.CustomerEmail, q.Email) {
			continue
		}
		if len(q.Phones) > 0 && !slices.Contains(q.Phones, o.CustomerPhone) {
			continue
		}
		if q.OrderNumber != "" && o.OrderNumber != q.OrderNumber {
			continue
		}
		out = append(out, *cloneOrder(o))
	}
	slices.SortFunc(out, func(a, b models.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (s *Store) MarkOrderPaid(_ context.Context, number string, amount float64, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.byNumber(number)
	if o == nil {
		return apperr.ErrNotFound
	}
	o.PaymentTrackingStatus = models.PaymentFullyPaid
	o.PaymentStatus = "paid"
	o.AmountPaid = amount
	o.UpdatedAt = now
	return nil
}

func (s *Store) ResetOrderPayment(_ context.Context, number string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.byNumber(number)
	if o == nil {
		return apperr.ErrNotFound
	}
	o.AmountPaid = 0
	o.PaymentTrackingStatus = models.PaymentAwaiting
	o.UpdatedAt = now
	return nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, orderID, status string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return apperr.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = now
	return nil
}

func (s *Store) AppendOrderHistory(_ context.Context, h *models.OrderStatusHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[h.OrderID]
	if !ok {
		return apperr.ErrNotFound
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	o.StatusHistory = append(o.StatusHistory, *h)
	return nil
}

func cloneOrder(o *models.Order) *models.Order {
	c := *o
	c.Items = slices.Clone(o.Items)
	c.StatusHistory = slices.Clone(o.StatusHistory)
	return &c
}
