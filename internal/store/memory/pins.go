package memory

import (
	"context"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
)

func (s *Store) CreatePin(_ context.Context, v *models.EmailVerification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pins = append(s.pins, *v)
	return nil
}

// ConsumePin marks the newest live match as verified.
func (s *Store) ConsumePin(_ context.Context, id models.PinIdentity, pin string, now time.Time) (*models.EmailVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	best := -1
	for i, v := range s.pins {
		if v.Verified || v.PinCode != pin || !now.Before(v.ExpiresAt) || !sameIdentity(v, id) {
			continue
		}
		if best == -1 || v.CreatedAt.After(s.pins[best].CreatedAt) {
			best = i
		}
	}
	if best == -1 {
		return nil, apperr.ErrNotFound
	}
	s.pins[best].Verified = true
	v := s.pins[best]
	return &v, nil
}

// Pins returns every stored record in insertion order.
func (s *Store) Pins() []models.EmailVerification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.EmailVerification, len(s.pins))
	copy(out, s.pins)
	return out
}

func sameIdentity(v models.EmailVerification, id models.PinIdentity) bool {
	if id.Email != "" {
		return v.Email != nil && *v.Email == id.Email
	}
	return v.Phone != nil && *v.Phone == id.Phone
}
