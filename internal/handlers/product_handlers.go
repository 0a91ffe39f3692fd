package handlers

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/catalog"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Inputs ---

type ProductInput struct {
	CategoryID    *string `json:"category_id"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"gte=0"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	IsActive      bool    `json:"is_active"`
}

func (in ProductInput) toService() catalog.ProductInput {
	return catalog.ProductInput{
		CategoryID:    in.CategoryID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		IsActive:      in.IsActive,
	}
}

type ImageInput struct {
	ProductID    *string `json:"product_id"`
	StockItemID  *string `json:"stock_item_id"`
	ImageURL     string  `json:"image_url" binding:"required"`
	AltText      string  `json:"alt_text"`
	DisplayOrder int     `json:"display_order"`
	IsPrimary    bool    `json:"is_primary"`
}

//
// --- Public Product Handlers ---
//

// GetProducts is the handler for GET /v1/products
func (h *Handlers) GetProducts(c *gin.Context) {
	list, err := h.Catalog.ListProducts(c.Request.Context(), models.ProductFilter{
		CategoryID: c.Query("category_id"),
		ActiveOnly: true,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": list})
}

// GetProduct is the handler for GET /v1/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	p, err := h.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err == nil && !p.IsActive {
		err = apperr.NotFound("Product not found")
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

//
// --- Admin Product Handlers ---
//

// GetAllProducts is the handler for GET /v1/admin/products (inactive included)
func (h *Handlers) GetAllProducts(c *gin.Context) {
	list, err := h.Catalog.ListProducts(c.Request.Context(), models.ProductFilter{CategoryID: c.Query("category_id")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": list})
}

// CreateProduct is the handler for POST /v1/admin/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if !bindJSON(c, &input) {
		return
	}
	p, err := h.Catalog.CreateProduct(c.Request.Context(), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": p})
}

// UpdateProduct is the handler for PUT /v1/admin/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var input ProductInput
	if !bindJSON(c, &input) {
		return
	}
	p, err := h.Catalog.UpdateProduct(c.Request.Context(), c.Param("id"), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

// DeleteProduct is the handler for DELETE /v1/admin/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddImage is the handler for POST /v1/admin/images
func (h *Handlers) AddImage(c *gin.Context) {
	var input ImageInput
	if !bindJSON(c, &input) {
		return
	}
	img, err := h.Catalog.AddImage(c.Request.Context(), catalog.ImageInput{
		ProductID:    input.ProductID,
		StockItemID:  input.StockItemID,
		ImageURL:     input.ImageURL,
		AltText:      input.AltText,
		DisplayOrder: input.DisplayOrder,
		IsPrimary:    input.IsPrimary,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "image": img})
}

// DeleteImage is the handler for DELETE /v1/admin/images/:id
func (h *Handlers) DeleteImage(c *gin.Context) {
	if err := h.Catalog.DeleteImage(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
