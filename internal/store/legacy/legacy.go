// Package legacy reads orders from the MySQL database of the previous
// storefront. It never writes.
package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/01moynul/bales-storefront/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindOrders matches legacy orders. They carry no item or history rows.
func (s *Store) FindOrders(ctx context.Context, q models.OrderQuery) ([]models.Order, error) {
	var (
		where []string
		args  []any
	)
	if q.Email != "" {
		where = append(where, "LOWER(customer_email) = ?")
		args = append(args, strings.ToLower(q.Email))
	}
	if len(q.Phones) > 0 {
		where = append(where, "customer_phone IN (?"+strings.Repeat(", ?", len(q.Phones)-1)+")")
		for _, p := range q.Phones {
			args = append(args, p)
		}
	}
	if q.OrderNumber != "" {
		where = append(where, "order_number = ?")
		args = append(args, q.OrderNumber)
	}
	if len(where) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, order_number, customer_name, customer_email, customer_phone,
			delivery_city, delivery_province, total_amount, amount_paid,
			payment_status, payment_tracking_status, status, created_at
		FROM orders
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("legacy orders: %w", err)
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		var (
			o                       models.Order
			id                      int64
			city, province          sql.NullString
			paymentStatus, tracking sql.NullString
		)
		if err := rows.Scan(&id, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
			&city, &province, &o.TotalAmount, &o.AmountPaid,
			&paymentStatus, &tracking, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan legacy order: %w", err)
		}
		o.ID = fmt.Sprintf("legacy-%d", id)
		o.DeliveryCity = city.String
		o.DeliveryProvince = province.String
		o.PaymentStatus = paymentStatus.String
		o.PaymentTrackingStatus = tracking.String
		o.UpdatedAt = o.CreatedAt
		o.Items = []models.OrderItem{}
		o.StatusHistory = []models.OrderStatusHistory{}
		out = append(out, o)
	}
	return out, rows.Err()
}
