// Package orders places storefront orders and handles back-office updates.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/01moynul/bales-storefront/internal/phone"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrderByNumber(ctx context.Context, number string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string, now time.Time) error
	AppendOrderHistory(ctx context.Context, h *models.OrderStatusHistory) error
}

type Notifier interface {
	NotifySales(ctx context.Context, subject string, lines map[string]string) error
	SendOrderNote(ctx context.Context, order models.Order, note string) error
}

var validStatuses = []string{
	models.OrderStatusPending,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

type Service struct {
	store  Store
	notify Notifier
	now    func() time.Time
}

func NewService(store Store, notify Notifier) *Service {
	return &Service{store: store, notify: notify, now: time.Now}
}

type ItemInput struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       float64
}

type PlaceInput struct {
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	DeliveryAddress    string
	DeliveryCity       string
	DeliveryProvince   string
	DeliveryPostalCode string
	PaymentMethod      string
	Items              []ItemInput
}

// Place records a new order awaiting payment and alerts sales.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*models.Order, error) {
	// 1. --- Validate ---
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, apperr.Validation("customer_name is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.CustomerEmail))
	if !strings.Contains(email, "@") {
		return nil, apperr.Validation("A valid email address is required")
	}
	normalized, err := phone.Normalize(in.CustomerPhone)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, apperr.Validation("Order must contain at least one item")
	}

	// 2. --- Build items and total ---
	now := s.now()
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 || it.Price < 0 {
			return nil, apperr.Validation(fmt.Sprintf("Invalid quantity or price for %q", it.ProductName))
		}
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, models.OrderItem{
			ID:          uuid.NewString(),
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			CreatedAt:   now,
		})
	}

	// 3. --- Create the order ---
	orderID := uuid.NewString()
	for i := range items {
		items[i].OrderID = orderID
	}
	order := &models.Order{
		ID:                    orderID,
		OrderNumber:           NewOrderNumber(),
		CustomerName:          strings.TrimSpace(in.CustomerName),
		CustomerEmail:         email,
		CustomerPhone:         normalized,
		DeliveryAddress:       in.DeliveryAddress,
		DeliveryCity:          in.DeliveryCity,
		DeliveryProvince:      in.DeliveryProvince,
		DeliveryPostalCode:    in.DeliveryPostalCode,
		PaymentMethod:         in.PaymentMethod,
		Status:                models.OrderStatusPending,
		TotalAmount:           total.Round(2).InexactFloat64(),
		PaymentStatus:         "pending",
		PaymentTrackingStatus: models.PaymentAwaiting,
		CreatedAt:             now,
		UpdatedAt:             now,
		Items:                 items,
		StatusHistory: []models.OrderStatusHistory{{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			Status:    models.OrderStatusPending,
			Notes:     "Order placed",
			ChangedAt: now,
		}},
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	// 4. --- Alert sales (best-effort) ---
	lines := map[string]string{
		"Order":    order.OrderNumber,
		"Customer": order.CustomerName,
		"Email":    order.CustomerEmail,
		"Phone":    order.CustomerPhone,
		"Total":    "R" + total.StringFixed(2),
		"Payment":  order.PaymentMethod,
	}
	if err := s.notify.NotifySales(ctx, "New order "+order.OrderNumber, lines); err != nil {
		log.Printf("WARNING: sales alert for %s failed: %v", order.OrderNumber, err)
	}
	return order, nil
}

// NewOrderNumber returns a customer-facing number such as ORD-1A2B3C4D.
func NewOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Get returns an order with items and history oldest first.
func (s *Service) Get(ctx context.Context, number string) (*models.Order, error) {
	o, err := s.store.GetOrderByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, fmt.Errorf("loading order %s: %w", number, err)
	}
	slices.SortStableFunc(o.StatusHistory, func(a, b models.OrderStatusHistory) int { return a.ChangedAt.Compare(b.ChangedAt) })
	return o, nil
}

// SendNote records a note in the order's history and optionally emails it to
// the customer. The note stays recorded even when the email fails.
func (s *Service) SendNote(ctx context.Context, number, note string, notifyCustomer bool) (*models.OrderStatusHistory, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, apperr.Validation("note is required")
	}
	o, err := s.Get(ctx, number)
	if err != nil {
		return nil, err
	}

	entry := &models.OrderStatusHistory{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		Status:    o.Status,
		Notes:     note,
		ChangedAt: s.now(),
	}
	if err := s.store.AppendOrderHistory(ctx, entry); err != nil {
		return nil, fmt.Errorf("recording note: %w", err)
	}

	if notifyCustomer {
		if err := s.notify.SendOrderNote(ctx, *o, note); err != nil {
			return entry, err
		}
	}
	return entry, nil
}

// UpdateStatus moves an order to status and logs the change.
func (s *Service) UpdateStatus(ctx context.Context, number, status, notes string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !slices.Contains(validStatuses, status) {
		return nil, apperr.Validation(fmt.Sprintf("status must be one of %s", strings.Join(validStatuses, ", ")))
	}
	o, err := s.Get(ctx, number)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.store.UpdateOrderStatus(ctx, o.ID, status, now); err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}
	entry := models.OrderStatusHistory{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		Status:    status,
		Notes:     strings.TrimSpace(notes),
		ChangedAt: now,
	}
	if err := s.store.AppendOrderHistory(ctx, &entry); err != nil {
		return nil, fmt.Errorf("recording status change: %w", err)
	}

	o.Status = status
	o.UpdatedAt = now
	o.StatusHistory = append(o.StatusHistory, entry)
	return o, nil
}
