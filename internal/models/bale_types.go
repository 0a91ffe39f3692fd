package models

import "time"

// Bale is a fixed bundle of stock items sold as one catalog unit
type Bale struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	CategoryID  *string   `json:"category_id,omitempty" gorm:"type:uuid"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Items []BaleItem `json:"bale_items" gorm:"foreignKey:BaleID"`

	// Computed at query time, never stored
	InStock bool `json:"in_stock" gorm:"-"`
}

func (Bale) TableName() string { return "bales" }

// BaleItem says how many of one stock item a bale needs
type BaleItem struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	BaleID      string     `json:"bale_id" gorm:"type:uuid;not null"`
	StockItemID string     `json:"stock_item_id" gorm:"type:uuid;not null"`
	Quantity    int        `json:"quantity"`
	StockItem   *StockItem `json:"stock_item,omitempty" gorm:"foreignKey:StockItemID"`
}

func (BaleItem) TableName() string { return "bale_items" }

// HasStock reports whether every constituent stock item covers the quantity
// the bale requires. Items must have StockItem loaded. An empty bale has no stock.
func (b Bale) HasStock() bool {
	if len(b.Items) == 0 {
		return false
	}
	for _, it := range b.Items {
		if it.StockItem == nil || it.StockItem.StockOnHand < it.Quantity {
			return false
		}
	}
	return true
}

// BaleFilter narrows a bale listing.
type BaleFilter struct {
	CategoryID   string
	ActiveOnly   bool
	FeaturedOnly bool
}
