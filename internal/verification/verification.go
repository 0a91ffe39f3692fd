// Package verification issues and checks one-time PINs that prove a shopper
// controls an email address or phone number.
package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/01moynul/bales-storefront/internal/phone"
	"github.com/google/uuid"
)

const (
	pinMin = 100000
	pinMax = 999999
)

// Store persists PIN records.
type Store interface {
	CreatePin(ctx context.Context, v *models.EmailVerification) error
	// ConsumePin flips the newest unverified, unexpired row matching id and pin
	// to verified and returns it, or apperr.ErrNotFound.
	ConsumePin(ctx context.Context, id models.PinIdentity, pin string, now time.Time) (*models.EmailVerification, error)
}

// Notifier delivers PINs and sales alerts.
type Notifier interface {
	Configured(method string) error
	SendPin(ctx context.Context, method, destination, code string, validFor time.Duration) error
	NotifySales(ctx context.Context, subject string, lines map[string]string) error
}

type Service struct {
	store  Store
	notify Notifier
	ttl    time.Duration
	now    func() time.Time
	code   func() (string, error)
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithCodeSource replaces the random PIN generator.
func WithCodeSource(code func() (string, error)) Option { return func(s *Service) { s.code = code } }

// DefaultPinTTL is used when the configured lifetime is not positive.
const DefaultPinTTL = 10 * time.Minute

func NewService(store Store, notify Notifier, ttl time.Duration, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = DefaultPinTTL
	}
	s := &Service{store: store, notify: notify, ttl: ttl, now: time.Now, code: randomCode}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestPinInput mirrors the request body.
type RequestPinInput struct {
	Email  string
	Phone  string
	Method string
}

// RequestPin creates a new PIN record and delivers the code. Every call
// inserts a fresh row; earlier PINs stay usable until they expire.
func (s *Service) RequestPin(ctx context.Context, in RequestPinInput) error {
	// 1. Validate and resolve the destination
	id, destination, err := resolve(in.Method, in.Email, in.Phone)
	if err != nil {
		return err
	}
	if err := s.notify.Configured(in.Method); err != nil {
		return err
	}

	// 2. Generate and store the PIN
	code, err := s.code()
	if err != nil {
		return fmt.Errorf("generating pin: %w", err)
	}
	now := s.now()
	record := &models.EmailVerification{
		ID:        uuid.NewString(),
		PinCode:   code,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if id.Email != "" {
		record.Email = &id.Email
	} else {
		record.Phone = &id.Phone
	}
	if err := s.store.CreatePin(ctx, record); err != nil {
		return fmt.Errorf("storing pin: %w", err)
	}

	// 3. Deliver it. This is the deliverable, so failure is the caller's failure.
	if err := s.notify.SendPin(ctx, in.Method, destination, code, s.ttl); err != nil {
		return err
	}

	// 4. Tell sales someone is checking out (best-effort)
	lines := map[string]string{"Method": in.Method, "Contact": destination}
	if err := s.notify.NotifySales(ctx, "Verification PIN requested", lines); err != nil {
		log.Printf("WARNING: sales notification for pin request failed: %v", err)
	}
	return nil
}

// VerifyPinInput mirrors the request body.
type VerifyPinInput struct {
	Email  string
	Phone  string
	Pin    string
	Method string
}

// VerifyPin consumes a matching PIN. A PIN can be consumed once.
func (s *Service) VerifyPin(ctx context.Context, in VerifyPinInput) error {
	id, _, err := resolve(in.Method, in.Email, in.Phone)
	if err != nil {
		return err
	}
	pin := strings.TrimSpace(in.Pin)
	if pin == "" {
		return apperr.Validation("PIN is required")
	}

	if _, err := s.store.ConsumePin(ctx, id, pin, s.now()); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.New(apperr.KindInvalidOrExpiredPin, "Invalid or expired PIN")
		}
		return fmt.Errorf("consuming pin: %w", err)
	}
	return nil
}

// resolve validates the identity for method and returns it with the address
// the code is sent to.
func resolve(method, email, rawPhone string) (models.PinIdentity, string, error) {
	switch method {
	case models.MethodEmail:
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || !strings.Contains(email, "@") {
			return models.PinIdentity{}, "", apperr.Validation("A valid email address is required")
		}
		return models.PinIdentity{Email: email}, email, nil
	case models.MethodSMS:
		if strings.TrimSpace(rawPhone) == "" {
			return models.PinIdentity{}, "", apperr.Validation("Phone number is required")
		}
		n, err := phone.Normalize(rawPhone)
		if err != nil {
			return models.PinIdentity{}, "", err
		}
		return models.PinIdentity{Phone: n}, n, nil
	default:
		return models.PinIdentity{}, "", apperr.Validation("method must be 'email' or 'sms'")
	}
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pinMax-pinMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+pinMin), nil
}
