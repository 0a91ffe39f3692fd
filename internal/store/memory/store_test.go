package memory

import (
	"context"
	"testing"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestConsumePinPrefersNewest(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()
	email := "a@b.com"

	require.NoError(t, s.CreatePin(ctx, &models.EmailVerification{ID: "old", Email: &email, PinCode: "111111", CreatedAt: now.Add(-2 * time.Minute), ExpiresAt: now.Add(8 * time.Minute)}))
	require.NoError(t, s.CreatePin(ctx, &models.EmailVerification{ID: "new", Email: &email, PinCode: "111111", CreatedAt: now.Add(-time.Minute), ExpiresAt: now.Add(9 * time.Minute)}))

	v, err := s.ConsumePin(ctx, models.PinIdentity{Email: email}, "111111", now)
	require.NoError(t, err)
	assert.Equal(t, "new", v.ID)

	v, err = s.ConsumePin(ctx, models.PinIdentity{Email: email}, "111111", now)
	require.NoError(t, err)
	assert.Equal(t, "old", v.ID)

	_, err = s.ConsumePin(ctx, models.PinIdentity{Email: email}, "111111", now)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestConsumePinIgnoresExpiredAndOtherIdentity(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.CreatePin(ctx, &models.EmailVerification{ID: "1", Phone: strPtr("27821234567"), PinCode: "222222", CreatedAt: now.Add(-11 * time.Minute), ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, s.CreatePin(ctx, &models.EmailVerification{ID: "2", Phone: strPtr("27820000000"), PinCode: "222222", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)}))

	_, err := s.ConsumePin(ctx, models.PinIdentity{Phone: "27821234567"}, "222222", now)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFindOrdersByPhoneCandidates(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateOrder(ctx, &models.Order{OrderNumber: "ORD-A", CustomerPhone: "27821234567", CreatedAt: base}))
	require.NoError(t, s.CreateOrder(ctx, &models.Order{OrderNumber: "ORD-B", CustomerPhone: "0821234567", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.CreateOrder(ctx, &models.Order{OrderNumber: "ORD-C", CustomerPhone: "27829999999", CreatedAt: base}))

	got, err := s.FindOrders(ctx, models.OrderQuery{Phones: []string{"+27821234567", "27821234567", "0821234567"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ORD-B", got[0].OrderNumber)
	assert.Equal(t, "ORD-A", got[1].OrderNumber)
}

func TestMetricsLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	m, err := s.IncrementMetric(ctx, "bale-1", models.MetricView, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ViewCount)
	assert.Equal(t, int64(0), m.AddToCartCount)

	m, err = s.IncrementMetric(ctx, "bale-1", models.MetricAddToCart, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ViewCount)
	assert.Equal(t, int64(1), m.AddToCartCount)

	n, err := s.ResetMetrics(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	m, err = s.GetMetric(ctx, "bale-1")
	require.NoError(t, err)
	assert.Zero(t, m.ViewCount)
	require.NotNil(t, m.ResetDate)
}

func TestBaleItemsCarryStock(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateStockItem(ctx, &models.StockItem{ID: "s1", Name: "Denim", StockOnHand: 3}))
	require.NoError(t, s.CreateBale(ctx, &models.Bale{ID: "b1", Name: "Winter"}))
	require.NoError(t, s.ReplaceBaleItems(ctx, "b1", []models.BaleItem{{ID: "i1", StockItemID: "s1", Quantity: 2}}))

	b, err := s.GetBale(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, b.Items, 1)
	require.NotNil(t, b.Items[0].StockItem)
	assert.Equal(t, 3, b.Items[0].StockItem.StockOnHand)

	assert.ErrorIs(t, s.ReplaceBaleItems(ctx, "missing", nil), apperr.ErrNotFound)
}
