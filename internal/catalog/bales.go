package catalog

import (
	"context"
	"strings"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// --- Stock categories ---

type StockCategoryInput struct {
	Name        string
	Description string
}

func (s *Service) ListStockCategories(ctx context.Context) ([]models.StockCategory, error) {
	out, err := s.store.ListStockCategories(ctx)
	return out, wrap(err, "Stock category")
}

func (s *Service) CreateStockCategory(ctx context.Context, in StockCategoryInput) (*models.StockCategory, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	c := &models.StockCategory{ID: uuid.NewString(), Name: name, Description: in.Description, CreatedAt: s.now()}
	if err := s.store.CreateStockCategory(ctx, c); err != nil {
		return nil, wrap(err, "Stock category")
	}
	return c, nil
}

func (s *Service) DeleteStockCategory(ctx context.Context, id string) error {
	return wrap(s.store.DeleteStockCategory(ctx, id), "Stock category")
}

// --- Stock items ---

type StockItemInput struct {
	CategoryID  *string
	Name        string
	SKU         string
	Description string
	StockOnHand int
	CostPrice   float64
}

func (in StockItemInput) validate() (string, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return "", err
	}
	if in.StockOnHand < 0 || in.CostPrice < 0 {
		return "", apperr.Validation("stock_on_hand and cost_price cannot be negative")
	}
	return name, nil
}

func (s *Service) ListStockItems(ctx context.Context) ([]models.StockItem, error) {
	out, err := s.store.ListStockItems(ctx)
	return out, wrap(err, "Stock item")
}

func (s *Service) GetStockItem(ctx context.Context, id string) (*models.StockItem, error) {
	it, err := s.store.GetStockItem(ctx, id)
	return it, wrap(err, "Stock item")
}

func (s *Service) CreateStockItem(ctx context.Context, in StockItemInput) (*models.StockItem, error) {
	name, err := in.validate()
	if err != nil {
		return nil, err
	}
	now := s.now()
	it := &models.StockItem{
		ID:          uuid.NewString(),
		CategoryID:  in.CategoryID,
		Name:        name,
		SKU:         strings.TrimSpace(in.SKU),
		Description: in.Description,
		StockOnHand: in.StockOnHand,
		CostPrice:   in.CostPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateStockItem(ctx, it); err != nil {
		return nil, wrap(err, "Stock item")
	}
	return it, nil
}

func (s *Service) UpdateStockItem(ctx context.Context, id string, in StockItemInput) (*models.StockItem, error) {
	name, err := in.validate()
	if err != nil {
		return nil, err
	}
	it, err := s.store.GetStockItem(ctx, id)
	if err != nil {
		return nil, wrap(err, "Stock item")
	}
	it.CategoryID = in.CategoryID
	it.Name = name
	it.SKU = strings.TrimSpace(in.SKU)
	it.Description = in.Description
	it.StockOnHand = in.StockOnHand
	it.CostPrice = in.CostPrice
	it.UpdatedAt = s.now()
	if err := s.store.UpdateStockItem(ctx, it); err != nil {
		return nil, wrap(err, "Stock item")
	}
	return it, nil
}

func (s *Service) DeleteStockItem(ctx context.Context, id string) error {
	return wrap(s.store.DeleteStockItem(ctx, id), "Stock item")
}

// --- Bales ---

type BaleInput struct {
	CategoryID  *string
	Name        string
	Description string
	Price       float64
	IsActive    bool
	IsFeatured  bool
}

type BaleItemInput struct {
	StockItemID string
	Quantity    int
}

// ListBales returns bales with items and a computed in_stock flag.
func (s *Service) ListBales(ctx context.Context, f models.BaleFilter) ([]models.Bale, error) {
	bales, err := s.store.ListBales(ctx, f)
	if err != nil {
		return nil, wrap(err, "Bale")
	}
	for i := range bales {
		bales[i].InStock = bales[i].HasStock()
	}
	return bales, nil
}

func (s *Service) GetBale(ctx context.Context, id string) (*models.Bale, error) {
	b, err := s.store.GetBale(ctx, id)
	if err != nil {
		return nil, wrap(err, "Bale")
	}
	b.InStock = b.HasStock()
	return b, nil
}

func (s *Service) CreateBale(ctx context.Context, in BaleInput) (*models.Bale, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, apperr.Validation("price cannot be negative")
	}
	now := s.now()
	b := &models.Bale{
		ID:          uuid.NewString(),
		CategoryID:  in.CategoryID,
		Name:        name,
		Slug:        slug.Make(name),
		Description: in.Description,
		Price:       in.Price,
		IsActive:    in.IsActive,
		IsFeatured:  in.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateBale(ctx, b); err != nil {
		return nil, wrap(err, "Bale")
	}
	return b, nil
}

func (s *Service) UpdateBale(ctx context.Context, id string, in BaleInput) (*models.Bale, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, apperr.Validation("price cannot be negative")
	}
	b, err := s.store.GetBale(ctx, id)
	if err != nil {
		return nil, wrap(err, "Bale")
	}
	b.CategoryID = in.CategoryID
	b.Name = name
	b.Slug = slug.Make(name)
	b.Description = in.Description
	b.Price = in.Price
	b.IsActive = in.IsActive
	b.IsFeatured = in.IsFeatured
	b.UpdatedAt = s.now()
	if err := s.store.UpdateBale(ctx, b); err != nil {
		return nil, wrap(err, "Bale")
	}
	b.InStock = b.HasStock()
	return b, nil
}

// SetDescription overwrites a bale's description only.
func (s *Service) SetDescription(ctx context.Context, id, description string) (*models.Bale, error) {
	b, err := s.store.GetBale(ctx, id)
	if err != nil {
		return nil, wrap(err, "Bale")
	}
	b.Description = description
	b.UpdatedAt = s.now()
	if err := s.store.UpdateBale(ctx, b); err != nil {
		return nil, wrap(err, "Bale")
	}
	b.InStock = b.HasStock()
	return b, nil
}

func (s *Service) DeleteBale(ctx context.Context, id string) error {
	return wrap(s.store.DeleteBale(ctx, id), "Bale")
}

// SetBaleItems replaces a bale's contents. Every stock item must exist and
// a stock item may appear once.
func (s *Service) SetBaleItems(ctx context.Context, baleID string, in []BaleItemInput) (*models.Bale, error) {
	seen := make(map[string]bool, len(in))
	items := make([]models.BaleItem, 0, len(in))
	for _, it := range in {
		if it.Quantity <= 0 {
			return nil, apperr.Validation("quantity must be greater than zero")
		}
		if seen[it.StockItemID] {
			return nil, apperr.Validation("stock item " + it.StockItemID + " is listed twice")
		}
		seen[it.StockItemID] = true
		if _, err := s.store.GetStockItem(ctx, it.StockItemID); err != nil {
			return nil, wrap(err, "Stock item")
		}
		items = append(items, models.BaleItem{
			ID:          uuid.NewString(),
			BaleID:      baleID,
			StockItemID: it.StockItemID,
			Quantity:    it.Quantity,
		})
	}
	if err := s.store.ReplaceBaleItems(ctx, baleID, items); err != nil {
		return nil, wrap(err, "Bale")
	}
	return s.GetBale(ctx, baleID)
}
