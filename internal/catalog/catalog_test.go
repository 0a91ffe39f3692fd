package catalog

import (
	"context"
	"testing"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/01moynul/bales-storefront/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySlugs(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, CategoryInput{Name: "Ladies' Winter Wear"})
	require.NoError(t, err)
	assert.Equal(t, "ladies-winter-wear", c.Slug)

	c, err = svc.UpdateCategory(ctx, c.ID, CategoryInput{Name: "Kids Wear 2025"})
	require.NoError(t, err)
	assert.Equal(t, "kids-wear-2025", c.Slug)

	_, err = svc.UpdateCategory(ctx, "missing", CategoryInput{Name: "x"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "  "})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestProductsAndImages(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, CategoryInput{Name: "Men"})
	require.NoError(t, err)
	live, err := svc.CreateProduct(ctx, ProductInput{CategoryID: &cat.ID, Name: "Jackets", Price: 899, IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, ProductInput{CategoryID: &cat.ID, Name: "Hidden", Price: 10})
	require.NoError(t, err)

	_, err = svc.AddImage(ctx, ImageInput{ProductID: &live.ID, ImageURL: "https://cdn/b.jpg", DisplayOrder: 2})
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, ImageInput{ProductID: &live.ID, ImageURL: "https://cdn/a.jpg", DisplayOrder: 1, IsPrimary: true})
	require.NoError(t, err)

	public, err := svc.ListProducts(ctx, models.ProductFilter{CategoryID: cat.ID, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Len(t, public[0].Images, 2)
	assert.Equal(t, "https://cdn/a.jpg", public[0].Images[0].ImageURL)

	missing := "nope"
	_, err = svc.AddImage(ctx, ImageInput{ProductID: &missing, ImageURL: "https://cdn/c.jpg"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = svc.AddImage(ctx, ImageInput{ImageURL: "https://cdn/c.jpg"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, svc.DeleteProduct(ctx, live.ID))
	_, err = svc.GetProduct(ctx, live.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestBaleInStock(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	denim, err := svc.CreateStockItem(ctx, StockItemInput{Name: "Denim", StockOnHand: 10})
	require.NoError(t, err)
	tees, err := svc.CreateStockItem(ctx, StockItemInput{Name: "T-shirts", StockOnHand: 4})
	require.NoError(t, err)

	bale, err := svc.CreateBale(ctx, BaleInput{Name: "Mixed 25kg", Price: 2500, IsActive: true})
	require.NoError(t, err)

	got, err := svc.GetBale(ctx, bale.ID)
	require.NoError(t, err)
	assert.False(t, got.InStock, "a bale without items is not in stock")

	got, err = svc.SetBaleItems(ctx, bale.ID, []BaleItemInput{{StockItemID: denim.ID, Quantity: 5}, {StockItemID: tees.ID, Quantity: 4}})
	require.NoError(t, err)
	assert.True(t, got.InStock)

	_, err = svc.UpdateStockItem(ctx, tees.ID, StockItemInput{Name: "T-shirts", StockOnHand: 3})
	require.NoError(t, err)

	list, err := svc.ListBales(ctx, models.BaleFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].InStock)
}

func TestSetBaleItemsValidation(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	item, err := svc.CreateStockItem(ctx, StockItemInput{Name: "Denim", StockOnHand: 1})
	require.NoError(t, err)
	bale, err := svc.CreateBale(ctx, BaleInput{Name: "B"})
	require.NoError(t, err)

	_, err = svc.SetBaleItems(ctx, bale.ID, []BaleItemInput{{StockItemID: item.ID, Quantity: 0}})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.SetBaleItems(ctx, bale.ID, []BaleItemInput{{StockItemID: item.ID, Quantity: 1}, {StockItemID: item.ID, Quantity: 1}})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.SetBaleItems(ctx, bale.ID, []BaleItemInput{{StockItemID: "ghost", Quantity: 1}})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.SetBaleItems(ctx, "ghost", []BaleItemInput{{StockItemID: item.ID, Quantity: 1}})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestStats(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	denim, err := svc.CreateStockItem(ctx, StockItemInput{Name: "Denim", StockOnHand: 20, CostPrice: 12.5})
	require.NoError(t, err)
	_, err = svc.CreateStockItem(ctx, StockItemInput{Name: "Scarves", StockOnHand: 3, CostPrice: 0.1})
	require.NoError(t, err)

	full, err := svc.CreateBale(ctx, BaleInput{Name: "Denim 10", Price: 900, IsActive: true})
	require.NoError(t, err)
	_, err = svc.SetBaleItems(ctx, full.ID, []BaleItemInput{{StockItemID: denim.ID, Quantity: 10}})
	require.NoError(t, err)
	_, err = svc.CreateBale(ctx, BaleInput{Name: "Empty", Price: 100, IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateBale(ctx, BaleInput{Name: "Draft", Price: 100})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250.3, stats.TotalValuation)
	assert.Equal(t, 2, stats.StockItems)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 2, stats.ActiveBales)
	assert.Equal(t, 1, stats.OutOfStockBales)
}
