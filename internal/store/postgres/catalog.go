package postgres

import (
	"context"
	"errors"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func gormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}

func (s *Store) tx(ctx context.Context) *gorm.DB {
	return s.gorm.WithContext(ctx)
}

func (s *Store) create(ctx context.Context, value any) error {
	return s.tx(ctx).Omit(clause.Associations).Create(value).Error
}

// update writes every column except the key and creation time.
func (s *Store) update(ctx context.Context, value any) error {
	res := s.tx(ctx).Model(value).Select("*").Omit("id", "created_at", clause.Associations).Updates(value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Store) delete(ctx context.Context, model any, id string) error {
	res := s.tx(ctx).Delete(model, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func byDisplayOrder(db *gorm.DB) *gorm.DB { return db.Order("display_order") }

// --- Product categories ---

func (s *Store) ListCategories(ctx context.Context) ([]models.ProductCategory, error) {
	var out []models.ProductCategory
	return out, s.tx(ctx).Order("name").Find(&out).Error
}

func (s *Store) GetCategory(ctx context.Context, id string) (*models.ProductCategory, error) {
	var c models.ProductCategory
	if err := s.tx(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *models.ProductCategory) error {
	return s.create(ctx, c)
}

func (s *Store) UpdateCategory(ctx context.Context, c *models.ProductCategory) error {
	return s.update(ctx, c)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return s.delete(ctx, &models.ProductCategory{}, id)
}

// --- Products and images ---

func (s *Store) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	q := s.tx(ctx).Preload("Images", byDisplayOrder).Order("name")
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	var out []models.Product
	return out, q.Find(&out).Error
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.tx(ctx).Preload("Images", byDisplayOrder).First(&p, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.create(ctx, p)
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	return s.update(ctx, p)
}

// DeleteProduct removes the product and its images.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.tx(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}

func (s *Store) AddImage(ctx context.Context, img *models.ProductImage) error {
	return s.create(ctx, img)
}

func (s *Store) DeleteImage(ctx context.Context, id string) error {
	return s.delete(ctx, &models.ProductImage{}, id)
}

// --- Stock ---

func (s *Store) ListStockCategories(ctx context.Context) ([]models.StockCategory, error) {
	var out []models.StockCategory
	return out, s.tx(ctx).Order("name").Find(&out).Error
}

func (s *Store) CreateStockCategory(ctx context.Context, c *models.StockCategory) error {
	return s.create(ctx, c)
}

func (s *Store) DeleteStockCategory(ctx context.Context, id string) error {
	return s.delete(ctx, &models.StockCategory{}, id)
}

func (s *Store) ListStockItems(ctx context.Context) ([]models.StockItem, error) {
	var out []models.StockItem
	return out, s.tx(ctx).Order("name").Find(&out).Error
}

func (s *Store) GetStockItem(ctx context.Context, id string) (*models.StockItem, error) {
	var it models.StockItem
	if err := s.tx(ctx).Preload("Images", byDisplayOrder).First(&it, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &it, nil
}

func (s *Store) CreateStockItem(ctx context.Context, it *models.StockItem) error {
	return s.create(ctx, it)
}

func (s *Store) UpdateStockItem(ctx context.Context, it *models.StockItem) error {
	return s.update(ctx, it)
}

func (s *Store) DeleteStockItem(ctx context.Context, id string) error {
	return s.delete(ctx, &models.StockItem{}, id)
}

// --- Bales ---

func (s *Store) ListBales(ctx context.Context, f models.BaleFilter) ([]models.Bale, error) {
	q := s.tx(ctx).Preload("Items.StockItem").Order("name")
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	var out []models.Bale
	return out, q.Find(&out).Error
}

func (s *Store) GetBale(ctx context.Context, id string) (*models.Bale, error) {
	var b models.Bale
	if err := s.tx(ctx).Preload("Items.StockItem").First(&b, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &b, nil
}

func (s *Store) CreateBale(ctx context.Context, b *models.Bale) error {
	return s.create(ctx, b)
}

func (s *Store) UpdateBale(ctx context.Context, b *models.Bale) error {
	return s.update(ctx, b)
}

// DeleteBale removes the bale and its item rows.
func (s *Store) DeleteBale(ctx context.Context, id string) error {
	return s.tx(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bale_id = ?", id).Delete(&models.BaleItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Bale{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}

// ReplaceBaleItems swaps the bale's item rows in one transaction.
func (s *Store) ReplaceBaleItems(ctx context.Context, baleID string, items []models.BaleItem) error {
	return s.tx(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Bale{}).Where("id = ?", baleID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.ErrNotFound
		}
		if err := tx.Where("bale_id = ?", baleID).Delete(&models.BaleItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&items).Error
	})
}
