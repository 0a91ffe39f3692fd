// Package catalog serves the public storefront catalog and the back-office
// CRUD behind it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type Store interface {
	ListCategories(ctx context.Context) ([]models.ProductCategory, error)
	GetCategory(ctx context.Context, id string) (*models.ProductCategory, error)
	CreateCategory(ctx context.Context, c *models.ProductCategory) error
	UpdateCategory(ctx context.Context, c *models.ProductCategory) error
	DeleteCategory(ctx context.Context, id string) error

	ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	AddImage(ctx context.Context, img *models.ProductImage) error
	DeleteImage(ctx context.Context, id string) error

	ListStockCategories(ctx context.Context) ([]models.StockCategory, error)
	CreateStockCategory(ctx context.Context, c *models.StockCategory) error
	DeleteStockCategory(ctx context.Context, id string) error

	ListStockItems(ctx context.Context) ([]models.StockItem, error)
	GetStockItem(ctx context.Context, id string) (*models.StockItem, error)
	CreateStockItem(ctx context.Context, it *models.StockItem) error
	UpdateStockItem(ctx context.Context, it *models.StockItem) error
	DeleteStockItem(ctx context.Context, id string) error

	ListBales(ctx context.Context, f models.BaleFilter) ([]models.Bale, error)
	GetBale(ctx context.Context, id string) (*models.Bale, error)
	CreateBale(ctx context.Context, b *models.Bale) error
	UpdateBale(ctx context.Context, b *models.Bale) error
	DeleteBale(ctx context.Context, id string) error
	ReplaceBaleItems(ctx context.Context, baleID string, items []models.BaleItem) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// wrap turns a store miss into a 404 naming the entity.
func wrap(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound(entity + " not found")
	}
	return fmt.Errorf("%s: %w", strings.ToLower(entity), err)
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("name is required")
	}
	return name, nil
}

// --- Product categories ---

type CategoryInput struct {
	Name        string
	Description string
	ImageURL    string
}

func (s *Service) ListCategories(ctx context.Context) ([]models.ProductCategory, error) {
	out, err := s.store.ListCategories(ctx)
	return out, wrap(err, "Category")
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*models.ProductCategory, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	now := s.now()
	c := &models.ProductCategory{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, wrap(err, "Category")
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*models.ProductCategory, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, wrap(err, "Category")
	}
	c.Name = name
	c.Slug = slug.Make(name)
	c.Description = in.Description
	c.ImageURL = in.ImageURL
	c.UpdatedAt = s.now()
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, wrap(err, "Category")
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return wrap(s.store.DeleteCategory(ctx, id), "Category")
}

// --- Products ---

type ProductInput struct {
	CategoryID    *string
	Name          string
	Description   string
	Price         float64
	StockQuantity int
	IsActive      bool
}

func (in ProductInput) validate() (string, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return "", err
	}
	if in.Price < 0 || in.StockQuantity < 0 {
		return "", apperr.Validation("price and stock_quantity cannot be negative")
	}
	return name, nil
}

// ListProducts returns products with their images. Public callers pass
// ActiveOnly.
func (s *Service) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	out, err := s.store.ListProducts(ctx, f)
	return out, wrap(err, "Product")
}

func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	return p, wrap(err, "Product")
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name, err := in.validate()
	if err != nil {
		return nil, err
	}
	now := s.now()
	p := &models.Product{
		ID:            uuid.NewString(),
		CategoryID:    in.CategoryID,
		Name:          name,
		Slug:          slug.Make(name),
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		IsActive:      in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, wrap(err, "Product")
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	name, err := in.validate()
	if err != nil {
		return nil, err
	}
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, wrap(err, "Product")
	}
	p.CategoryID = in.CategoryID
	p.Name = name
	p.Slug = slug.Make(name)
	p.Description = in.Description
	p.Price = in.Price
	p.StockQuantity = in.StockQuantity
	p.IsActive = in.IsActive
	p.UpdatedAt = s.now()
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, wrap(err, "Product")
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return wrap(s.store.DeleteProduct(ctx, id), "Product")
}

// --- Images ---

// ImageInput attaches an image to exactly one product or stock item.
type ImageInput struct {
	ProductID    *string
	StockItemID  *string
	ImageURL     string
	AltText      string
	DisplayOrder int
	IsPrimary    bool
}

func (s *Service) AddImage(ctx context.Context, in ImageInput) (*models.ProductImage, error) {
	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, apperr.Validation("image_url is required")
	}
	if (in.ProductID == nil) == (in.StockItemID == nil) {
		return nil, apperr.Validation("Provide exactly one of product_id or stock_item_id")
	}
	if in.ProductID != nil {
		if _, err := s.store.GetProduct(ctx, *in.ProductID); err != nil {
			return nil, wrap(err, "Product")
		}
	} else if _, err := s.store.GetStockItem(ctx, *in.StockItemID); err != nil {
		return nil, wrap(err, "Stock item")
	}

	img := &models.ProductImage{
		ID:           uuid.NewString(),
		ProductID:    in.ProductID,
		StockItemID:  in.StockItemID,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		AltText:      in.AltText,
		DisplayOrder: in.DisplayOrder,
		IsPrimary:    in.IsPrimary,
		CreatedAt:    s.now(),
	}
	if err := s.store.AddImage(ctx, img); err != nil {
		return nil, wrap(err, "Image")
	}
	return img, nil
}

func (s *Service) DeleteImage(ctx context.Context, id string) error {
	return wrap(s.store.DeleteImage(ctx, id), "Image")
}
