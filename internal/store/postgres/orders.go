package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/lib/pq"
)

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone,
	delivery_address, delivery_city, delivery_province, delivery_postal_code,
	payment_method, status, total_amount, amount_paid, payment_status,
	payment_tracking_status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.DeliveryAddress, &o.DeliveryCity, &o.DeliveryProvince, &o.DeliveryPostalCode,
		&o.PaymentMethod, &o.Status, &o.TotalAmount, &o.AmountPaid, &o.PaymentStatus,
		&o.PaymentTrackingStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder inserts the order, its items and its history in one transaction.
func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() // Safety net

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.DeliveryAddress, o.DeliveryCity, o.DeliveryProvince, o.DeliveryPostalCode,
		o.PaymentMethod, o.Status, o.TotalAmount, o.AmountPaid, o.PaymentStatus,
		o.PaymentTrackingStatus, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.Quantity, it.Price, it.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	for _, h := range o.StatusHistory {
		if err := insertHistory(ctx, tx, &h); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertHistory(ctx context.Context, db execer, h *models.OrderStatusHistory) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO order_status_history (id, order_id, status, notes, changed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.OrderID, h.Status, h.Notes, h.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	return nil
}

func (s *Store) AppendOrderHistory(ctx context.Context, h *models.OrderStatusHistory) error {
	return insertHistory(ctx, s.db, h)
}

func (s *Store) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	if err := s.loadChildren(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// FindOrders matches on any combination of email, phone candidates and order
// number, newest first.
func (s *Store) FindOrders(ctx context.Context, q models.OrderQuery) ([]models.Order, error) {
	var (
		where []string
		args  []any
	)
	if q.Email != "" {
		args = append(args, strings.ToLower(q.Email))
		where = append(where, fmt.Sprintf("lower(customer_email) = $%d", len(args)))
	}
	if len(q.Phones) > 0 {
		args = append(args, pq.Array(q.Phones))
		where = append(where, fmt.Sprintf("customer_phone = ANY($%d)", len(args)))
	}
	if q.OrderNumber != "" {
		args = append(args, q.OrderNumber)
		where = append(where, fmt.Sprintf("order_number = $%d", len(args)))
	}
	if len(where) == 0 {
		return nil, errors.New("find orders: empty query")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE `+strings.Join(where, " AND ")+` ORDER BY created_at DESC`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Children are loaded one order at a time
	for i := range out {
		if err := s.loadChildren(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) loadChildren(ctx context.Context, o *models.Order) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at`, o.ID)
	if err != nil {
		return fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()
	o.Items = []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price, &it.CreatedAt); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	hrows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, status, COALESCE(notes, ''), changed_at
		FROM order_status_history WHERE order_id = $1 ORDER BY changed_at`, o.ID)
	if err != nil {
		return fmt.Errorf("select status history: %w", err)
	}
	defer hrows.Close()
	o.StatusHistory = []models.OrderStatusHistory{}
	for hrows.Next() {
		var h models.OrderStatusHistory
		if err := hrows.Scan(&h.ID, &h.OrderID, &h.Status, &h.Notes, &h.ChangedAt); err != nil {
			return fmt.Errorf("scan status history: %w", err)
		}
		o.StatusHistory = append(o.StatusHistory, h)
	}
	return hrows.Err()
}

// MarkOrderPaid is a single conditional update; no matching row is ErrNotFound.
func (s *Store) MarkOrderPaid(ctx context.Context, number string, amount float64, now time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_tracking_status = $1, amount_paid = $2, payment_status = 'paid', updated_at = $3
		WHERE order_number = $4`,
		models.PaymentFullyPaid, amount, now, number)
	return affected(res, err, "mark order paid")
}

func (s *Store) ResetOrderPayment(ctx context.Context, number string, now time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET amount_paid = 0, payment_tracking_status = $1, updated_at = $2
		WHERE order_number = $3`,
		models.PaymentAwaiting, now, number)
	return affected(res, err, "reset order payment")
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string, now time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`, status, now, orderID)
	return affected(res, err, "update order status")
}

func affected(res sql.Result, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
