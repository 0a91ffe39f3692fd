package handlers

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/catalog"
	"github.com/gin-gonic/gin"
)

//
// --- Category Handlers ---
//

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (in CategoryInput) toService() catalog.CategoryInput {
	return catalog.CategoryInput{Name: in.Name, Description: in.Description, ImageURL: in.ImageURL}
}

// GetAllCategories is the handler for GET /v1/categories
func (h *Handlers) GetAllCategories(c *gin.Context) {
	list, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": list})
}

// CreateCategory is the handler for POST /v1/admin/categories
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	cat, err := h.Catalog.CreateCategory(c.Request.Context(), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "category": cat})
}

// UpdateCategory is the handler for PUT /v1/admin/categories/:id
func (h *Handlers) UpdateCategory(c *gin.Context) {
	var input CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	cat, err := h.Catalog.UpdateCategory(c.Request.Context(), c.Param("id"), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "category": cat})
}

// DeleteCategory is the handler for DELETE /v1/admin/categories/:id
func (h *Handlers) DeleteCategory(c *gin.Context) {
	if err := h.Catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

//
// --- Stock Category Handlers (Admin) ---
//

type StockCategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// GetStockCategories is the handler for GET /v1/admin/stock-categories
func (h *Handlers) GetStockCategories(c *gin.Context) {
	list, err := h.Catalog.ListStockCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stock_categories": list})
}

// CreateStockCategory is the handler for POST /v1/admin/stock-categories
func (h *Handlers) CreateStockCategory(c *gin.Context) {
	var input StockCategoryInput
	if !bindJSON(c, &input) {
		return
	}
	cat, err := h.Catalog.CreateStockCategory(c.Request.Context(), catalog.StockCategoryInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "stock_category": cat})
}

// DeleteStockCategory is the handler for DELETE /v1/admin/stock-categories/:id
func (h *Handlers) DeleteStockCategory(c *gin.Context) {
	if err := h.Catalog.DeleteStockCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
