package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/01moynul/bales-storefront/internal/paystack"
	"github.com/01moynul/bales-storefront/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	initReq paystack.InitializeRequest
	initErr error
	tx      *paystack.Transaction
}

func (f *fakeGateway) Initialize(_ context.Context, req paystack.InitializeRequest) (*paystack.Authorization, error) {
	f.initReq = req
	if f.initErr != nil {
		return nil, f.initErr
	}
	return &paystack.Authorization{AuthorizationURL: "https://pay/x", AccessCode: "x", Reference: req.Reference}, nil
}

func (f *fakeGateway) Verify(context.Context, string) (*paystack.Transaction, error) {
	return f.tx, nil
}

// countingStore records writes so tests can assert none happened.
type countingStore struct {
	*memory.Store
	writes int
	fail   error
}

func (c *countingStore) MarkOrderPaid(ctx context.Context, n string, amount float64, now time.Time) error {
	c.writes++
	if c.fail != nil {
		return c.fail
	}
	return c.Store.MarkOrderPaid(ctx, n, amount, now)
}

func seed(t *testing.T) *countingStore {
	t.Helper()
	mem := memory.New()
	require.NoError(t, mem.CreateOrder(context.Background(), &models.Order{
		OrderNumber:           "ORD-1",
		TotalAmount:           1250.50,
		PaymentStatus:         "pending",
		PaymentTrackingStatus: models.PaymentAwaiting,
	}))
	return &countingStore{Store: mem}
}

func TestInitializeConvertsToCents(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, seed(t))

	auth, err := svc.Initialize(context.Background(), InitializeInput{Email: "a@b.com", Amount: 1250.505, OrderNumber: "ORD-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(125051), gw.initReq.Amount)
	assert.Equal(t, "ORD-1", gw.initReq.Reference)
	assert.Equal(t, "ORD-1", auth.Reference)
}

func TestInitializeValidation(t *testing.T) {
	svc := NewService(&fakeGateway{}, seed(t))
	ctx := context.Background()

	_, err := svc.Initialize(ctx, InitializeInput{Email: "bad", Amount: 10, OrderNumber: "ORD-1"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = svc.Initialize(ctx, InitializeInput{Email: "a@b.com", Amount: 0, OrderNumber: "ORD-1"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	rejecting := NewService(&fakeGateway{initErr: apperr.New(apperr.KindUpstreamRejected, "Invalid key")}, seed(t))
	_, err = rejecting.Initialize(ctx, InitializeInput{Email: "a@b.com", Amount: 10, OrderNumber: "ORD-1"})
	assert.True(t, apperr.Is(err, apperr.KindUpstreamRejected))
}

func TestVerifyFailedTransactionWritesNothing(t *testing.T) {
	for _, skip := range []bool{false, true} {
		store := seed(t)
		svc := NewService(&fakeGateway{tx: &paystack.Transaction{Status: "abandoned", Amount: 125050}}, store)

		v, err := svc.Verify(context.Background(), "ORD-1", skip)
		require.NoError(t, err)
		assert.False(t, v.PaymentVerified)
		assert.Nil(t, v.OrderUpdated)
		assert.Zero(t, store.writes)
	}
}

func TestVerifySkipOrderUpdate(t *testing.T) {
	store := seed(t)
	svc := NewService(&fakeGateway{tx: &paystack.Transaction{Status: "success", Amount: 125050}}, store)

	v, err := svc.Verify(context.Background(), "ORD-1", true)
	require.NoError(t, err)
	assert.True(t, v.PaymentVerified)
	assert.Equal(t, 1250.50, v.Amount)
	assert.Nil(t, v.OrderUpdated)
	assert.Zero(t, store.writes)
}

func TestVerifyMarksOrderPaid(t *testing.T) {
	store := seed(t)
	svc := NewService(&fakeGateway{tx: &paystack.Transaction{Status: "success", Amount: 125050}}, store)

	v, err := svc.Verify(context.Background(), "ORD-1", false)
	require.NoError(t, err)
	require.NotNil(t, v.OrderUpdated)
	assert.True(t, *v.OrderUpdated)
	assert.NoError(t, v.ReconciliationError)

	o, err := store.GetOrderByNumber(context.Background(), "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFullyPaid, o.PaymentTrackingStatus)
	assert.Equal(t, "paid", o.PaymentStatus)
	assert.Equal(t, 1250.50, o.AmountPaid)
}

func TestVerifyReportsReconciliationGap(t *testing.T) {
	store := seed(t)
	store.fail = errors.New("connection reset")
	svc := NewService(&fakeGateway{tx: &paystack.Transaction{Status: "success", Amount: 125050}}, store)

	v, err := svc.Verify(context.Background(), "ORD-1", false)
	require.NoError(t, err)
	assert.True(t, v.PaymentVerified)
	require.NotNil(t, v.OrderUpdated)
	assert.False(t, *v.OrderUpdated)
	assert.True(t, apperr.Is(v.ReconciliationError, apperr.KindReconciliationGap))
	assert.Equal(t, ReconciliationMessage, apperr.PublicMessage(v.ReconciliationError))
}

func TestVerifyUnknownOrderIsAGap(t *testing.T) {
	svc := NewService(&fakeGateway{tx: &paystack.Transaction{Status: "success", Amount: 100}}, seed(t))

	v, err := svc.Verify(context.Background(), "ORD-404", false)
	require.NoError(t, err)
	assert.False(t, *v.OrderUpdated)
	assert.True(t, apperr.Is(v.ReconciliationError, apperr.KindReconciliationGap))
}

func TestFix(t *testing.T) {
	store := seed(t)
	ctx := context.Background()
	require.NoError(t, store.MarkOrderPaid(ctx, "ORD-1", 1250.50, time.Now()))

	svc := NewService(&fakeGateway{}, store)
	require.NoError(t, svc.Fix(ctx, "ORD-1"))

	o, err := store.GetOrderByNumber(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Zero(t, o.AmountPaid)
	assert.Equal(t, models.PaymentAwaiting, o.PaymentTrackingStatus)

	assert.True(t, apperr.Is(svc.Fix(ctx, "ORD-404"), apperr.KindNotFound))
}
