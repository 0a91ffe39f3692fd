package handlers

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/catalog"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Inputs ---

type StockItemInput struct {
	CategoryID  *string `json:"category_id"`
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	StockOnHand int     `json:"stock_on_hand" binding:"gte=0"`
	CostPrice   float64 `json:"cost_price" binding:"gte=0"`
}

func (in StockItemInput) toService() catalog.StockItemInput {
	return catalog.StockItemInput{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		SKU:         in.SKU,
		Description: in.Description,
		StockOnHand: in.StockOnHand,
		CostPrice:   in.CostPrice,
	}
}

type BaleInput struct {
	CategoryID  *string `json:"category_id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	IsActive    bool    `json:"is_active"`
	IsFeatured  bool    `json:"is_featured"`
}

func (in BaleInput) toService() catalog.BaleInput {
	return catalog.BaleInput{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		IsActive:    in.IsActive,
		IsFeatured:  in.IsFeatured,
	}
}

type BaleItemsInput struct {
	Items []struct {
		StockItemID string `json:"stock_item_id" binding:"required"`
		Quantity    int    `json:"quantity" binding:"required,gt=0"`
	} `json:"items" binding:"dive"`
}

//
// --- Public Bale Handlers ---
//

// GetBales is the handler for GET /v1/bales
func (h *Handlers) GetBales(c *gin.Context) {
	list, err := h.Catalog.ListBales(c.Request.Context(), models.BaleFilter{
		CategoryID:   c.Query("category_id"),
		ActiveOnly:   true,
		FeaturedOnly: c.Query("featured") == "true",
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bales": list})
}

// GetBale is the handler for GET /v1/bales/:id
func (h *Handlers) GetBale(c *gin.Context) {
	b, err := h.Catalog.GetBale(c.Request.Context(), c.Param("id"))
	if err == nil && !b.IsActive {
		err = apperr.NotFound("Bale not found")
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bale": b})
}

//
// --- Admin Bale Handlers ---
//

// GetAllBales is the handler for GET /v1/admin/bales
func (h *Handlers) GetAllBales(c *gin.Context) {
	list, err := h.Catalog.ListBales(c.Request.Context(), models.BaleFilter{CategoryID: c.Query("category_id")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bales": list})
}

// CreateBale is the handler for POST /v1/admin/bales
func (h *Handlers) CreateBale(c *gin.Context) {
	var input BaleInput
	if !bindJSON(c, &input) {
		return
	}
	b, err := h.Catalog.CreateBale(c.Request.Context(), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "bale": b})
}

// UpdateBale is the handler for PUT /v1/admin/bales/:id
func (h *Handlers) UpdateBale(c *gin.Context) {
	var input BaleInput
	if !bindJSON(c, &input) {
		return
	}
	b, err := h.Catalog.UpdateBale(c.Request.Context(), c.Param("id"), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bale": b})
}

// DeleteBale is the handler for DELETE /v1/admin/bales/:id
func (h *Handlers) DeleteBale(c *gin.Context) {
	if err := h.Catalog.DeleteBale(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetBaleItems is the handler for PUT /v1/admin/bales/:id/items
func (h *Handlers) SetBaleItems(c *gin.Context) {
	var input BaleItemsInput
	if !bindJSON(c, &input) {
		return
	}
	items := make([]catalog.BaleItemInput, len(input.Items))
	for i, it := range input.Items {
		items[i] = catalog.BaleItemInput{StockItemID: it.StockItemID, Quantity: it.Quantity}
	}
	b, err := h.Catalog.SetBaleItems(c.Request.Context(), c.Param("id"), items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bale": b})
}

//
// --- Admin Stock Item Handlers ---
//

// GetStockItems is the handler for GET /v1/admin/stock-items
func (h *Handlers) GetStockItems(c *gin.Context) {
	list, err := h.Catalog.ListStockItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stock_items": list})
}

// GetStockItem is the handler for GET /v1/admin/stock-items/:id
func (h *Handlers) GetStockItem(c *gin.Context) {
	it, err := h.Catalog.GetStockItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stock_item": it})
}

// CreateStockItem is the handler for POST /v1/admin/stock-items
func (h *Handlers) CreateStockItem(c *gin.Context) {
	var input StockItemInput
	if !bindJSON(c, &input) {
		return
	}
	it, err := h.Catalog.CreateStockItem(c.Request.Context(), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "stock_item": it})
}

// UpdateStockItem is the handler for PUT /v1/admin/stock-items/:id
func (h *Handlers) UpdateStockItem(c *gin.Context) {
	var input StockItemInput
	if !bindJSON(c, &input) {
		return
	}
	it, err := h.Catalog.UpdateStockItem(c.Request.Context(), c.Param("id"), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stock_item": it})
}

// DeleteStockItem is the handler for DELETE /v1/admin/stock-items/:id
func (h *Handlers) DeleteStockItem(c *gin.Context) {
	if err := h.Catalog.DeleteStockItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
