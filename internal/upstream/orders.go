package upstream

import (
	"context"
	"fmt"
	"net/http"

	"admin-gateway/internal/models"
)

// ListOrders fetches all orders.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, "/orders/all", nil, &orders)
	return orders, err
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrderRequest is the payload for creating an order upstream.
type CreateOrderRequest struct {
	UserID          int64  `json:"user_id"`
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
	Currency        string `json:"currency"`
}

// CreateOrder creates a new order.
func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) error {
	return c.do(ctx, http.MethodPost, "/orders", req, nil)
}

// UpdateOrder applies a partial update to an order record. Fields absent
// from the map are left untouched upstream.
func (c *Client) UpdateOrder(ctx context.Context, orderID int64, fields map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), fields, nil)
}

// UpdateOrderTotal pushes a recalculated stored total. The update carries
// no version check: a concurrent edit between the caller's read and this
// write is silently overwritten (last write wins).
func (c *Client) UpdateOrderTotal(ctx context.Context, orderID int64, total float64) error {
	return c.UpdateOrder(ctx, orderID, map[string]any{"total_amount": total})
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, orderID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", orderID), nil, nil)
}

// ListOrderItems fetches the line items of an order.
func (c *Client) ListOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/items", orderID), nil, &items)
	return items, err
}

// AddOrderItem appends a line item to an order.
func (c *Client) AddOrderItem(ctx context.Context, orderID, productID int64, quantity int) error {
	payload := map[string]any{"product_id": productID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/items", orderID), payload, nil)
}

// RemoveOrderItem removes a line item; the upstream keys item removal by
// product name rather than item id.
func (c *Client) RemoveOrderItem(ctx context.Context, orderID int64, productName string) error {
	payload := map[string]any{"name": productName}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d/items", orderID), payload, nil)
}
