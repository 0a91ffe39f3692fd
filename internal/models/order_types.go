package models

import "time"

// Payment tracking values shown to customers.
const (
	PaymentAwaiting  = "Awaiting payment"
	PaymentFullyPaid = "Fully Paid"
)

// Order fulfilment values.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is the model for the 'orders' table
type Order struct {
	ID                    string    `json:"id" db:"id"`
	OrderNumber           string    `json:"order_number" db:"order_number"`
	CustomerName          string    `json:"customer_name" db:"customer_name"`
	CustomerEmail         string    `json:"customer_email" db:"customer_email"`
	CustomerPhone         string    `json:"customer_phone" db:"customer_phone"`
	DeliveryAddress       string    `json:"delivery_address" db:"delivery_address"`
	DeliveryCity          string    `json:"delivery_city" db:"delivery_city"`
	DeliveryProvince      string    `json:"delivery_province" db:"delivery_province"`
	DeliveryPostalCode    string    `json:"delivery_postal_code" db:"delivery_postal_code"`
	PaymentMethod         string    `json:"payment_method" db:"payment_method"`
	Status                string    `json:"status" db:"status"`
	TotalAmount           float64   `json:"total_amount" db:"total_amount"`
	AmountPaid            float64   `json:"amount_paid" db:"amount_paid"`
	PaymentStatus         string    `json:"payment_status" db:"payment_status"`
	PaymentTrackingStatus string    `json:"payment_tracking_status" db:"payment_tracking_status"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`

	// Joins (populated manually)
	Items         []OrderItem          `json:"order_items" db:"-"`
	StatusHistory []OrderStatusHistory `json:"order_status_history" db:"-"`
}

// OrderItem is the model for the 'order_items' table
type OrderItem struct {
	ID          string    `json:"id" db:"id"`
	OrderID     string    `json:"order_id" db:"order_id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name" db:"product_name"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       float64   `json:"price" db:"price"` // Line unit price at the time of purchase
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// OrderStatusHistory is an append-only entry in 'order_status_history'
type OrderStatusHistory struct {
	ID        string    `json:"id" db:"id"`
	OrderID   string    `json:"order_id" db:"order_id"`
	Status    string    `json:"status" db:"status"`
	Notes     string    `json:"notes" db:"notes"`
	ChangedAt time.Time `json:"changed_at" db:"changed_at"`
}

// OrderQuery narrows an order lookup. Phones holds every stored format to match.
type OrderQuery struct {
	Email       string
	Phones      []string
	OrderNumber string
}
