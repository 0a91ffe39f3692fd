package models

import "time"

// Product is the model for the 'products' table.
type Product struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	CategoryID    *string   `json:"category_id,omitempty" gorm:"type:uuid"`
	Name          string    `json:"name" gorm:"not null"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Images []ProductImage `json:"product_images" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

// ProductImage belongs to either a product or a stock item.
type ProductImage struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	ProductID    *string   `json:"product_id,omitempty" gorm:"type:uuid"`
	StockItemID  *string   `json:"stock_item_id,omitempty" gorm:"type:uuid"`
	ImageURL     string    `json:"image_url" gorm:"not null"`
	AltText      string    `json:"alt_text"`
	DisplayOrder int       `json:"display_order"`
	IsPrimary    bool      `json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ProductImage) TableName() string { return "product_images" }

// ProductFilter narrows a product listing.
type ProductFilter struct {
	CategoryID string
	ActiveOnly bool
}
