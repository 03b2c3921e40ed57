package upstream

import (
	"context"
	"fmt"
	"net/http"

	"admin-gateway/internal/models"
	"admin-gateway/internal/report"
)

// ListProducts fetches the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/products/all", nil, &products)
	return products, err
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, fields map[string]any) error {
	return c.do(ctx, http.MethodPost, "/products", fields, nil)
}

// UpdateProduct applies a partial update to a product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, fields map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), fields, nil)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// ListWarehouses fetches all warehouses.
func (c *Client) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := c.do(ctx, http.MethodGet, "/warehouses/all", nil, &warehouses)
	return warehouses, err
}

// GetWarehouse fetches a single warehouse.
func (c *Client) GetWarehouse(ctx context.Context, id int64) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/warehouses/%d", id), nil, &warehouse); err != nil {
		return nil, err
	}
	return &warehouse, nil
}

// CreateWarehouse creates a warehouse.
func (c *Client) CreateWarehouse(ctx context.Context, fields map[string]any) error {
	return c.do(ctx, http.MethodPost, "/warehouses", fields, nil)
}

// UpdateWarehouse applies a partial update to a warehouse.
func (c *Client) UpdateWarehouse(ctx context.Context, id int64, fields map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/warehouses/%d", id), fields, nil)
}

// DeleteWarehouse removes a warehouse.
func (c *Client) DeleteWarehouse(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/warehouses/%d", id), nil, nil)
}

// ListInventory fetches all inventory records.
func (c *Client) ListInventory(ctx context.Context) ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	err := c.do(ctx, http.MethodGet, "/inventory/all", nil, &records)
	return records, err
}

// ListInventoryByWarehouse fetches inventory records for one warehouse.
func (c *Client) ListInventoryByWarehouse(ctx context.Context, warehouseID int64) ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/inventory/warehouse/%d", warehouseID), nil, &records)
	return records, err
}

// ListInventoryByProduct fetches inventory records for one product.
func (c *Client) ListInventoryByProduct(ctx context.Context, productID int64) ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/inventory/product/%d", productID), nil, &records)
	return records, err
}

// GetInventoryRecord fetches a single inventory record.
func (c *Client) GetInventoryRecord(ctx context.Context, id int64) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/inventory/%d", id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateInventoryRecord creates an inventory record.
func (c *Client) CreateInventoryRecord(ctx context.Context, fields map[string]any) error {
	return c.do(ctx, http.MethodPost, "/inventory", fields, nil)
}

// UpdateInventoryRecord applies a partial update to an inventory record.
func (c *Client) UpdateInventoryRecord(ctx context.Context, id int64, fields map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/inventory/%d", id), fields, nil)
}

// DeleteInventoryRecord removes an inventory record.
func (c *Client) DeleteInventoryRecord(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/inventory/%d", id), nil, nil)
}

// CreatePayment submits a payment for an order.
func (c *Client) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return c.do(ctx, http.MethodPost, "/payments", payment, nil)
}

// SalesRows fetches the flat, pre-joined sales report rows. Rows are kept
// loosely typed; field-name normalization happens in the report package.
func (c *Client) SalesRows(ctx context.Context) ([]report.Row, error) {
	var rows []report.Row
	err := c.do(ctx, http.MethodGet, "/report/sales", nil, &rows)
	return rows, err
}

// StockRows fetches the flat stock report rows.
func (c *Client) StockRows(ctx context.Context) ([]report.Row, error) {
	var rows []report.Row
	err := c.do(ctx, http.MethodGet, "/report/stock", nil, &rows)
	return rows, err
}
