package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore connects to TEST_DATABASE_URL, a database with the storefront
// schema applied. Tests skip without it.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := New(db)
	require.NoError(t, err)
	return s
}

func TestMetricUpsertIncrements(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	bale := uuid.NewString()

	m, err := s.IncrementMetric(ctx, bale, models.MetricView, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ViewCount)
	assert.Equal(t, int64(0), m.AddToCartCount)

	m, err = s.IncrementMetric(ctx, bale, models.MetricAddToCart, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ViewCount)
	assert.Equal(t, int64(1), m.AddToCartCount)
}

func TestPinConsumedOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()
	email := uuid.NewString() + "@example.com"

	require.NoError(t, s.CreatePin(ctx, &models.EmailVerification{
		ID: uuid.NewString(), Email: &email, PinCode: "123456", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute),
	}))

	_, err := s.ConsumePin(ctx, models.PinIdentity{Email: email}, "123456", now)
	require.NoError(t, err)
	_, err = s.ConsumePin(ctx, models.PinIdentity{Email: email}, "123456", now)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderPaymentUpdates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	o := &models.Order{
		ID: uuid.NewString(), OrderNumber: "ORD-" + uuid.NewString()[:8], CustomerName: "Test",
		CustomerEmail: "t@example.com", CustomerPhone: "27821234567", Status: models.OrderStatusPending,
		TotalAmount: 100, PaymentStatus: "pending", PaymentTrackingStatus: models.PaymentAwaiting,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.CreateOrder(ctx, o))

	require.NoError(t, s.MarkOrderPaid(ctx, o.OrderNumber, 100, now))
	got, err := s.GetOrderByNumber(ctx, o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFullyPaid, got.PaymentTrackingStatus)

	found, err := s.FindOrders(ctx, models.OrderQuery{Phones: []string{"+27821234567", "27821234567", "0821234567"}, OrderNumber: o.OrderNumber})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	assert.ErrorIs(t, s.MarkOrderPaid(ctx, "ORD-MISSING", 1, now), apperr.ErrNotFound)
}
