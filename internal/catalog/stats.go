package catalog

import (
	"context"

	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the on-hand count below which a stock item is flagged.
const LowStockThreshold = 10

// InventoryStats are the stock KPIs shown on the admin dashboard.
type InventoryStats struct {
	TotalValuation  float64 `json:"total_valuation"` // sum of cost_price * stock_on_hand
	StockItems      int     `json:"stock_items"`
	LowStockCount   int     `json:"low_stock_count"`
	ActiveBales     int     `json:"active_bales"`
	OutOfStockBales int     `json:"out_of_stock_bales"`
}

// Stats walks stock items and bales and totals them up.
func (s *Service) Stats(ctx context.Context) (*InventoryStats, error) {
	stats := &InventoryStats{}

	// 1. Valuation and low stock
	items, err := s.ListStockItems(ctx)
	if err != nil {
		return nil, err
	}
	valuation := decimal.Zero
	for _, it := range items {
		valuation = valuation.Add(decimal.NewFromFloat(it.CostPrice).Mul(decimal.NewFromInt(int64(it.StockOnHand))))
		if it.StockOnHand < LowStockThreshold {
			stats.LowStockCount++
		}
	}
	stats.StockItems = len(items)
	stats.TotalValuation = valuation.Round(2).InexactFloat64()

	// 2. Bales on sale, and which of them cannot be fulfilled
	bales, err := s.ListBales(ctx, models.BaleFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	stats.ActiveBales = len(bales)
	for _, b := range bales {
		if !b.InStock {
			stats.OutOfStockBales++
		}
	}
	return stats, nil
}
