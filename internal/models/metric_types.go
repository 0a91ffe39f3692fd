package models

import "time"

// MetricKind is the counter a tracking call increments.
type MetricKind string

const (
	MetricView      MetricKind = "view"
	MetricAddToCart MetricKind = "add_to_cart"
)

// Valid reports whether k is a known counter.
func (k MetricKind) Valid() bool {
	return k == MetricView || k == MetricAddToCart
}

// BaleMetric is the model for the 'bale_metrics' table (one row per bale)
type BaleMetric struct {
	BaleID         string     `json:"bale_id" db:"bale_id"`
	ViewCount      int64      `json:"view_count" db:"view_count"`
	AddToCartCount int64      `json:"add_to_cart_count" db:"add_to_cart_count"`
	ResetDate      *time.Time `json:"reset_date,omitempty" db:"reset_date"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
