package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
)

func (s *Store) IncrementMetric(_ context.Context, baleID string, kind models.MetricKind, now time.Time) (*models.BaleMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.metrics[baleID]
	if !ok {
		m = &models.BaleMetric{BaleID: baleID}
		s.metrics[baleID] = m
	}
	switch kind {
	case models.MetricView:
		m.ViewCount++
	case models.MetricAddToCart:
		m.AddToCartCount++
	}
	m.UpdatedAt = now
	c := *m
	return &c, nil
}

func (s *Store) ResetMetrics(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		m.ViewCount = 0
		m.AddToCartCount = 0
		stamp := now
		m.ResetDate = &stamp
		m.UpdatedAt = now
	}
	return int64(len(s.metrics)), nil
}

// ListMetrics returns every row, most viewed first.
func (s *Store) ListMetrics(_ context.Context) ([]models.BaleMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BaleMetric, 0, len(s.metrics))
	for _, m := range s.metrics {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b models.BaleMetric) int {
		if c := cmp.Compare(b.ViewCount, a.ViewCount); c != 0 {
			return c
		}
		return cmp.Compare(a.BaleID, b.BaleID)
	})
	return out, nil
}

func (s *Store) GetMetric(_ context.Context, baleID string) (*models.BaleMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.metrics[baleID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	c := *m
	return &c, nil
}
