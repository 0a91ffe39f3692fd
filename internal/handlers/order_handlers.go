package handlers

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/orders"
	"github.com/01moynul/bales-storefront/internal/tracking"
	"github.com/gin-gonic/gin"
)

//
// --- Order Handlers ---
//

type TrackOrdersInput struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	OrderNumber string `json:"order_number"`
}

// TrackOrders is the handler for POST /v1/track-orders
func (h *Handlers) TrackOrders(c *gin.Context) {
	// 1. --- Parse Input ---
	var input TrackOrdersInput
	if !bindJSON(c, &input) {
		return
	}

	// 2. --- Look up the orders ---
	found, err := h.Tracking.Track(c.Request.Context(), tracking.Input{
		Email:       input.Email,
		Phone:       input.Phone,
		OrderNumber: input.OrderNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Send Success Response ---
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": found})
}

type OrderItemInput struct {
	ProductID   string  `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type PlaceOrderInput struct {
	CustomerName       string           `json:"customer_name" binding:"required"`
	CustomerEmail      string           `json:"customer_email" binding:"required"`
	CustomerPhone      string           `json:"customer_phone" binding:"required"`
	DeliveryAddress    string           `json:"delivery_address"`
	DeliveryCity       string           `json:"delivery_city"`
	DeliveryProvince   string           `json:"delivery_province"`
	DeliveryPostalCode string           `json:"delivery_postal_code"`
	PaymentMethod      string           `json:"payment_method" binding:"required"`
	Items              []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder is the handler for POST /v1/place-order
func (h *Handlers) PlaceOrder(c *gin.Context) {
	// 1. --- Parse Input ---
	var input PlaceOrderInput
	if !bindJSON(c, &input) {
		return
	}

	// 2. --- Create the order ---
	items := make([]orders.ItemInput, len(input.Items))
	for i, it := range input.Items {
		items[i] = orders.ItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		}
	}
	order, err := h.Orders.Place(c.Request.Context(), orders.PlaceInput{
		CustomerName:       input.CustomerName,
		CustomerEmail:      input.CustomerEmail,
		CustomerPhone:      input.CustomerPhone,
		DeliveryAddress:    input.DeliveryAddress,
		DeliveryCity:       input.DeliveryCity,
		DeliveryProvince:   input.DeliveryProvince,
		DeliveryPostalCode: input.DeliveryPostalCode,
		PaymentMethod:      input.PaymentMethod,
		Items:              items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"order_number": order.OrderNumber,
		"order":        order,
	})
}

// GetOrder is the handler for GET /v1/admin/orders/:order_number
func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.Orders.Get(c.Request.Context(), c.Param("order_number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

type OrderNoteInput struct {
	Note           string `json:"note" binding:"required"`
	NotifyCustomer bool   `json:"notify_customer"`
}

// SendOrderNote is the handler for POST /v1/admin/orders/:order_number/notes
func (h *Handlers) SendOrderNote(c *gin.Context) {
	// 1. --- Parse Input ---
	var input OrderNoteInput
	if !bindJSON(c, &input) {
		return
	}

	// 2. --- Record (and maybe email) the note ---
	entry, err := h.Orders.SendNote(c.Request.Context(), c.Param("order_number"), input.Note, input.NotifyCustomer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry})
}

type OrderStatusInput struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateOrderStatus is the handler for PATCH /v1/admin/orders/:order_number/status
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	var input OrderStatusInput
	if !bindJSON(c, &input) {
		return
	}

	order, err := h.Orders.UpdateStatus(c.Request.Context(), c.Param("order_number"), input.Status, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}
