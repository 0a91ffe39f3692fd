package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
)

const metricColumns = `bale_id, view_count, add_to_cart_count, reset_date, updated_at`

func scanMetric(row rowScanner) (*models.BaleMetric, error) {
	var (
		m     models.BaleMetric
		reset sql.NullTime
	)
	if err := row.Scan(&m.BaleID, &m.ViewCount, &m.AddToCartCount, &reset, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if reset.Valid {
		m.ResetDate = &reset.Time
	}
	return &m, nil
}

// IncrementMetric upserts and increments in one statement.
func (s *Store) IncrementMetric(ctx context.Context, baleID string, kind models.MetricKind, now time.Time) (*models.BaleMetric, error) {
	var views, carts int64
	switch kind {
	case models.MetricView:
		views = 1
	case models.MetricAddToCart:
		carts = 1
	default:
		return nil, fmt.Errorf("unknown metric kind %q", kind)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO bale_metrics (bale_id, view_count, add_to_cart_count, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (bale_id) DO UPDATE SET
			view_count = bale_metrics.view_count + EXCLUDED.view_count,
			add_to_cart_count = bale_metrics.add_to_cart_count + EXCLUDED.add_to_cart_count,
			updated_at = EXCLUDED.updated_at
		RETURNING `+metricColumns,
		baleID, views, carts, now)
	m, err := scanMetric(row)
	if err != nil {
		return nil, fmt.Errorf("increment metric: %w", err)
	}
	return m, nil
}

func (s *Store) ResetMetrics(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bale_metrics
		SET view_count = 0, add_to_cart_count = 0, reset_date = $1, updated_at = $1`, now)
	if err != nil {
		return 0, fmt.Errorf("reset metrics: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) ListMetrics(ctx context.Context) ([]models.BaleMetric, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+metricColumns+` FROM bale_metrics ORDER BY view_count DESC, bale_id`)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer rows.Close()

	out := []models.BaleMetric{}
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *Store) GetMetric(ctx context.Context, baleID string) (*models.BaleMetric, error) {
	m, err := scanMetric(s.db.QueryRowContext(ctx, `SELECT `+metricColumns+` FROM bale_metrics WHERE bale_id = $1`, baleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get metric: %w", err)
	}
	return m, nil
}
