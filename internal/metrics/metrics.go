// Package metrics counts bale views and add-to-cart events.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
)

// Store increments counters atomically; a missing row is created with the
// other counter at zero.
type Store interface {
	IncrementMetric(ctx context.Context, baleID string, kind models.MetricKind, now time.Time) (*models.BaleMetric, error)
	ResetMetrics(ctx context.Context, now time.Time) (int64, error)
	ListMetrics(ctx context.Context) ([]models.BaleMetric, error)
	GetMetric(ctx context.Context, baleID string) (*models.BaleMetric, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Track bumps one counter for a bale.
func (s *Service) Track(ctx context.Context, baleID string, kind models.MetricKind) (*models.BaleMetric, error) {
	baleID = strings.TrimSpace(baleID)
	if baleID == "" {
		return nil, apperr.Validation("baleId is required")
	}
	if !kind.Valid() {
		return nil, apperr.Validation("metricType must be 'view' or 'add_to_cart'")
	}
	m, err := s.store.IncrementMetric(ctx, baleID, kind, s.now())
	if err != nil {
		return nil, fmt.Errorf("tracking %s for %s: %w", kind, baleID, err)
	}
	return m, nil
}

// Reset zeros every counter and stamps the reset date. Callers must already
// hold the admin role.
func (s *Service) Reset(ctx context.Context) (int64, error) {
	n, err := s.store.ResetMetrics(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("resetting metrics: %w", err)
	}
	return n, nil
}

func (s *Service) List(ctx context.Context) ([]models.BaleMetric, error) {
	out, err := s.store.ListMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing metrics: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, baleID string) (*models.BaleMetric, error) {
	m, err := s.store.GetMetric(ctx, baleID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("No metrics for this bale")
		}
		return nil, fmt.Errorf("loading metric %s: %w", baleID, err)
	}
	return m, nil
}
