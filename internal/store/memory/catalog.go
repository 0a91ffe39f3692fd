package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
)

// --- Product categories ---

func (s *Store) ListCategories(_ context.Context) ([]models.ProductCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.categories, func(c models.ProductCategory) string { return c.Name }), nil
}

func (s *Store) GetCategory(_ context.Context, id string) (*models.ProductCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCategory(_ context.Context, c *models.ProductCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = *c
	return nil
}

func (s *Store) UpdateCategory(_ context.Context, c *models.ProductCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return apperr.ErrNotFound
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteKey(s.categories, id)
}

// --- Products and images ---

func (s *Store) ListProducts(_ context.Context, f models.ProductFilter) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Product
	for _, p := range sortedValues(s.products, func(p models.Product) string { return p.Name }) {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		p.Images = s.imagesFor(func(img models.ProductImage) bool { return img.ProductID != nil && *img.ProductID == p.ID })
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	p.Images = s.imagesFor(func(img models.ProductImage) bool { return img.ProductID != nil && *img.ProductID == id })
	return &p, nil
}

func (s *Store) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	c.Images = nil
	s.products[p.ID] = c
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return apperr.ErrNotFound
	}
	c := *p
	c.Images = nil
	s.products[p.ID] = c
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := deleteKey(s.products, id); err != nil {
		return err
	}
	for imgID, img := range s.images {
		if img.ProductID != nil && *img.ProductID == id {
			delete(s.images, imgID)
		}
	}
	return nil
}

func (s *Store) AddImage(_ context.Context, img *models.ProductImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[img.ID] = *img
	return nil
}

func (s *Store) DeleteImage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteKey(s.images, id)
}

func (s *Store) imagesFor(match func(models.ProductImage) bool) []models.ProductImage {
	var out []models.ProductImage
	for _, img := range s.images {
		if match(img) {
			out = append(out, img)
		}
	}
	slices.SortFunc(out, func(a, b models.ProductImage) int { return cmp.Compare(a.DisplayOrder, b.DisplayOrder) })
	return out
}

// --- Stock ---

func (s *Store) ListStockCategories(_ context.Context) ([]models.StockCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.stockCategories, func(c models.StockCategory) string { return c.Name }), nil
}

func (s *Store) CreateStockCategory(_ context.Context, c *models.StockCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stockCategories[c.ID] = *c
	return nil
}

func (s *Store) DeleteStockCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteKey(s.stockCategories, id)
}

func (s *Store) ListStockItems(_ context.Context) ([]models.StockItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.stockItems, func(it models.StockItem) string { return it.Name }), nil
}

func (s *Store) GetStockItem(_ context.Context, id string) (*models.StockItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.stockItems[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	it.Images = s.imagesFor(func(img models.ProductImage) bool { return img.StockItemID != nil && *img.StockItemID == id })
	return &it, nil
}

func (s *Store) CreateStockItem(_ context.Context, it *models.StockItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stockItems[it.ID] = *it
	return nil
}

func (s *Store) UpdateStockItem(_ context.Context, it *models.StockItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stockItems[it.ID]; !ok {
		return apperr.ErrNotFound
	}
	s.stockItems[it.ID] = *it
	return nil
}

func (s *Store) DeleteStockItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteKey(s.stockItems, id)
}

// --- Bales ---

func (s *Store) ListBales(_ context.Context, f models.BaleFilter) ([]models.Bale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Bale
	for _, b := range sortedValues(s.bales, func(b models.Bale) string { return b.Name }) {
		if f.ActiveOnly && !b.IsActive {
			continue
		}
		if f.FeaturedOnly && !b.IsFeatured {
			continue
		}
		if f.CategoryID != "" && (b.CategoryID == nil || *b.CategoryID != f.CategoryID) {
			continue
		}
		b.Items = s.itemsFor(b.ID)
		out = append(out, b)
	}
	return out, nil
}

func (s *Store) GetBale(_ context.Context, id string) (*models.Bale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bales[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	b.Items = s.itemsFor(id)
	return &b, nil
}

func (s *Store) CreateBale(_ context.Context, b *models.Bale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *b
	c.Items = nil
	s.bales[b.ID] = c
	return nil
}

func (s *Store) UpdateBale(_ context.Context, b *models.Bale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bales[b.ID]; !ok {
		return apperr.ErrNotFound
	}
	c := *b
	c.Items = nil
	s.bales[b.ID] = c
	return nil
}

func (s *Store) DeleteBale(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := deleteKey(s.bales, id); err != nil {
		return err
	}
	delete(s.baleItems, id)
	return nil
}

func (s *Store) ReplaceBaleItems(_ context.Context, baleID string, items []models.BaleItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bales[baleID]; !ok {
		return apperr.ErrNotFound
	}
	stored := make([]models.BaleItem, len(items))
	for i, it := range items {
		it.BaleID = baleID
		it.StockItem = nil
		stored[i] = it
	}
	s.baleItems[baleID] = stored
	return nil
}

// itemsFor returns the bale's items with their stock items attached.
func (s *Store) itemsFor(baleID string) []models.BaleItem {
	items := slices.Clone(s.baleItems[baleID])
	for i := range items {
		if it, ok := s.stockItems[items[i].StockItemID]; ok {
			items[i].StockItem = &it
		}
	}
	return items
}

func sortedValues[T any](m map[string]T, key func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
	return out
}

func deleteKey[T any](m map[string]T, id string) error {
	if _, ok := m[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m, id)
	return nil
}
