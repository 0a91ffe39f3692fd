package models

import "time"

// StockItem is an individual clothing line with its own on-hand quantity
type StockItem struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	CategoryID  *string   `json:"category_id,omitempty" gorm:"type:uuid"`
	Name        string    `json:"name" gorm:"not null"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	StockOnHand int       `json:"stock_on_hand"`
	CostPrice   float64   `json:"cost_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Images []ProductImage `json:"images,omitempty" gorm:"foreignKey:StockItemID"`
}

func (StockItem) TableName() string { return "stock_items" }
