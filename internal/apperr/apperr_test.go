package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"pin", New(KindInvalidOrExpiredPin, "Invalid or expired PIN"), http.StatusBadRequest},
		{"upstream", New(KindUpstreamRejected, "declined"), http.StatusBadRequest},
		{"forbidden", Forbidden("no"), http.StatusForbidden},
		{"not found sentinel", fmt.Errorf("get order: %w", ErrNotFound), http.StatusNotFound},
		{"delivery", New(KindDelivery, "provider said no"), http.StatusInternalServerError},
		{"config", Configuration("missing key"), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("pq: connection refused")))
	assert.Equal(t, "Service is not configured", PublicMessage(Configuration("PAYSTACK_SECRET_KEY is not set")))
	assert.Equal(t, "Invalid or expired PIN", PublicMessage(New(KindInvalidOrExpiredPin, "Invalid or expired PIN")))

	wrapped := fmt.Errorf("handler: %w", Wrap(KindDelivery, "SMS rejected", errors.New("raw body")))
	assert.Equal(t, "SMS rejected", PublicMessage(wrapped))
	assert.True(t, Is(wrapped, KindDelivery))
}
