package verification

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/01moynul/bales-storefront/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	configErr error
	sendErr   error
	salesErr  error

	method, destination, code string
	validFor                  time.Duration
	salesCalls                int
}

func (f *fakeNotifier) Configured(string) error { return f.configErr }

func (f *fakeNotifier) SendPin(_ context.Context, method, destination, code string, validFor time.Duration) error {
	f.method, f.destination, f.code, f.validFor = method, destination, code, validFor
	return f.sendErr
}

func (f *fakeNotifier) NotifySales(context.Context, string, map[string]string) error {
	f.salesCalls++
	return f.salesErr
}

func TestEmailPinRoundTrip(t *testing.T) {
	store := memory.New()
	notifier := &fakeNotifier{}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(store, notifier, 10*time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, svc.RequestPin(ctx, RequestPinInput{Email: "a@b.com", Method: models.MethodEmail}))

	pins := store.Pins()
	require.Len(t, pins, 1)
	assert.Regexp(t, regexp.MustCompile(`^[1-9][0-9]{5}$`), pins[0].PinCode)
	assert.Equal(t, now.Add(10*time.Minute), pins[0].ExpiresAt)
	assert.False(t, pins[0].Verified)
	assert.Equal(t, pins[0].PinCode, notifier.code)
	assert.Equal(t, "a@b.com", notifier.destination)
	assert.Equal(t, 10*time.Minute, notifier.validFor)

	in := VerifyPinInput{Email: "a@b.com", Pin: notifier.code, Method: models.MethodEmail}
	require.NoError(t, svc.VerifyPin(ctx, in))

	err := svc.VerifyPin(ctx, in)
	assert.True(t, apperr.Is(err, apperr.KindInvalidOrExpiredPin))
}

func TestEveryRequestInsertsANewRow(t *testing.T) {
	store := memory.New()
	svc := NewService(store, &fakeNotifier{}, 10*time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RequestPin(ctx, RequestPinInput{Email: "a@b.com", Method: models.MethodEmail}))
	}
	assert.Len(t, store.Pins(), 3)
}

func TestExpiredPinRejected(t *testing.T) {
	store := memory.New()
	notifier := &fakeNotifier{}
	now := time.Now()
	svc := NewService(store, notifier, 10*time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, svc.RequestPin(ctx, RequestPinInput{Phone: "082 123 4567", Method: models.MethodSMS}))
	assert.Equal(t, "27821234567", notifier.destination)

	now = now.Add(10 * time.Minute)
	err := svc.VerifyPin(ctx, VerifyPinInput{Phone: "+27821234567", Pin: notifier.code, Method: models.MethodSMS})
	assert.True(t, apperr.Is(err, apperr.KindInvalidOrExpiredPin))
}

func TestSMSVerifyAcceptsAnyPhoneFormat(t *testing.T) {
	store := memory.New()
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier, 10*time.Minute, WithCodeSource(func() (string, error) { return "424242", nil }))
	ctx := context.Background()

	require.NoError(t, svc.RequestPin(ctx, RequestPinInput{Phone: "0821234567", Method: models.MethodSMS}))
	require.NoError(t, svc.VerifyPin(ctx, VerifyPinInput{Phone: "+27 82 123 4567", Pin: "424242", Method: models.MethodSMS}))
}

func TestRequestPinValidation(t *testing.T) {
	svc := NewService(memory.New(), &fakeNotifier{}, 10*time.Minute)
	ctx := context.Background()

	tests := []struct {
		name string
		in   RequestPinInput
		kind apperr.Kind
	}{
		{"email without at", RequestPinInput{Email: "nope", Method: models.MethodEmail}, apperr.KindValidation},
		{"sms without phone", RequestPinInput{Method: models.MethodSMS}, apperr.KindValidation},
		{"sms bad length", RequestPinInput{Phone: "12345", Method: models.MethodSMS}, apperr.KindInvalidPhoneFormat},
		{"unknown method", RequestPinInput{Email: "a@b.com", Method: "fax"}, apperr.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.Is(svc.RequestPin(ctx, tt.in), tt.kind))
		})
	}
}

func TestProviderFailures(t *testing.T) {
	ctx := context.Background()
	in := RequestPinInput{Email: "a@b.com", Method: models.MethodEmail}

	unconfigured := NewService(memory.New(), &fakeNotifier{configErr: apperr.Configuration("RESEND_API_KEY is not set")}, time.Minute)
	assert.True(t, apperr.Is(unconfigured.RequestPin(ctx, in), apperr.KindConfiguration))

	rejected := NewService(memory.New(), &fakeNotifier{sendErr: apperr.New(apperr.KindDelivery, "Failed to send email: bounced")}, time.Minute)
	assert.True(t, apperr.Is(rejected.RequestPin(ctx, in), apperr.KindDelivery))
}

func TestSalesFailureDoesNotFailRequest(t *testing.T) {
	notifier := &fakeNotifier{salesErr: errors.New("sales inbox down")}
	svc := NewService(memory.New(), notifier, time.Minute)

	require.NoError(t, svc.RequestPin(context.Background(), RequestPinInput{Email: "a@b.com", Method: models.MethodEmail}))
	assert.Equal(t, 1, notifier.salesCalls)
}

func TestRandomCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}

func TestNonPositiveTTLFallsBackToDefault(t *testing.T) {
	store := memory.New()
	notifier := &fakeNotifier{}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(store, notifier, 0, WithClock(func() time.Time { return now }))

	require.NoError(t, svc.RequestPin(context.Background(), RequestPinInput{Email: "a@b.com", Method: models.MethodEmail}))
	assert.Equal(t, now.Add(DefaultPinTTL), store.Pins()[0].ExpiresAt)
	assert.Equal(t, DefaultPinTTL, notifier.validFor)
}
