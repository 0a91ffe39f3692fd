// Package memory is a mutex-guarded in-process store. It backs tests and runs
// the API when no database is configured.
package memory

import (
	"sync"

	"github.com/01moynul/bales-storefront/internal/models"
)

type Store struct {
	mu sync.RWMutex

	orders  map[string]*models.Order // by id
	pins    []models.EmailVerification
	metrics map[string]*models.BaleMetric
	roles   map[string]map[string]bool // user id -> role set

	categories      map[string]models.ProductCategory
	products        map[string]models.Product
	images          map[string]models.ProductImage
	stockCategories map[string]models.StockCategory
	stockItems      map[string]models.StockItem
	bales           map[string]models.Bale
	baleItems       map[string][]models.BaleItem // by bale id
}

func New() *Store {
	return &Store{
		orders:          make(map[string]*models.Order),
		metrics:         make(map[string]*models.BaleMetric),
		roles:           make(map[string]map[string]bool),
		categories:      make(map[string]models.ProductCategory),
		products:        make(map[string]models.Product),
		images:          make(map[string]models.ProductImage),
		stockCategories: make(map[string]models.StockCategory),
		stockItems:      make(map[string]models.StockItem),
		bales:           make(map[string]models.Bale),
		baleItems:       make(map[string][]models.BaleItem),
	}
}
