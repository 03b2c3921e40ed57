package models

import "time"

// Product represents a catalog product as served by the upstream API.
type Product struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
	Description string  `json:"description,omitempty"`
	Active      bool    `json:"active"`
}

// Order represents a customer order. TotalAmount is the stored total, a
// cached value that can drift from the total computed from the current
// line items until explicitly reconciled.
type Order struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"id_user"`
	PaymentStatus   string    `json:"payment_status"`
	Currency        string    `json:"currency"`
	TotalAmount     float64   `json:"total_amount"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	BillingAddress  string    `json:"billing_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderItem is a single order line: a product reference and a quantity.
type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Warehouse represents a stock location.
type Warehouse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Active   bool   `json:"active"`
}

// InventoryRecord is a per-warehouse per-product stock row.
type InventoryRecord struct {
	ID                int64  `json:"id"`
	ProductID         int64  `json:"product_id"`
	WarehouseID       int64  `json:"warehouse_id"`
	QuantityAvailable int    `json:"quantity_available"`
	QuantityReserved  int    `json:"quantity_reserved"`
	LocationCode      string `json:"location_code,omitempty"`
}

// Payment represents a payment submitted for an order.
type Payment struct {
	ID      int64   `json:"id,omitempty"`
	OrderID int64   `json:"order_id"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method,omitempty"`
}

// Payment statuses as used by the upstream order records.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusSent      = "sent"
)

// Editable reports whether an order's line items may still be changed.
// Confirmed and sent orders are frozen.
func (o *Order) Editable() bool {
	return o.PaymentStatus != PaymentStatusConfirmed && o.PaymentStatus != PaymentStatusSent
}
