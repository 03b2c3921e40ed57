package report

import (
	"fmt"
	"testing"

	"admin-gateway/internal/format"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSalesSummaryTotals(t *testing.T) {
	rows := []Row{
		{"order_id": 1.0, "total_amount": "50"},
		{"order_id": 1.0, "total_amount": "30"},
		{"order_id": 2.0, "total_amount": "20"},
	}

	summary := BuildSales(rows)

	assert.Equal(t, 2, summary.TotalOrders)
	assert.InDelta(t, 100.0, summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 50.0, summary.AvgOrderValue, 1e-9)
}

func TestBuildSalesEmpty(t *testing.T) {
	summary := BuildSales(nil)

	assert.Equal(t, 0, summary.TotalOrders)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.AvgOrderValue, "average must be 0 with no orders, not a division by zero")
	assert.Empty(t, summary.TopProducts)
}

func TestBuildSalesSynonymFields(t *testing.T) {
	rows := []Row{
		{"id_order": 9.0, "productName": "Widget", "qty": 2.0, "item_total": 40.0},
	}

	summary := BuildSales(rows)

	assert.Equal(t, 1, summary.TotalOrders)
	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, "Widget", summary.TopProducts[0].Name)
	assert.Equal(t, int64(2), summary.TopProducts[0].Quantity)
	assert.InDelta(t, 40.0, summary.TopProducts[0].Revenue, 1e-9)
	// item_total also feeds the summary revenue via its own chain
	assert.InDelta(t, 40.0, summary.TotalRevenue, 1e-9)
}

func TestBuildSalesSkipsUnnamedProducts(t *testing.T) {
	rows := []Row{
		{"order_id": 1.0, "product_name": "undefined", "quantity": 1.0, "item_total": 10.0},
		{"order_id": 2.0, "quantity": 1.0, "item_total": 5.0},
		{"order_id": 3.0, "product_name": "Real", "quantity": 1.0, "item_total": 1.0},
	}

	summary := BuildSales(rows)

	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, "Real", summary.TopProducts[0].Name)
	// skipped rows still count toward orders and revenue
	assert.Equal(t, 3, summary.TotalOrders)
	assert.InDelta(t, 16.0, summary.TotalRevenue, 1e-9)
}

func TestBuildSalesTopProductsSortedAndTruncated(t *testing.T) {
	rows := make([]Row, 0, 15)
	for i := 0; i < 15; i++ {
		rows = append(rows, Row{
			"order_id":     float64(i),
			"product_name": fmt.Sprintf("product-%02d", i),
			"quantity":     1.0,
			"item_total":   float64(i + 1),
		})
	}

	summary := BuildSales(rows)

	require.Len(t, summary.TopProducts, 10)
	for i := 1; i < len(summary.TopProducts); i++ {
		assert.GreaterOrEqual(t, summary.TopProducts[i-1].Revenue, summary.TopProducts[i].Revenue,
			"rollup must be non-increasing by revenue")
	}
	assert.Equal(t, "product-14", summary.TopProducts[0].Name)
	assert.InDelta(t, 15.0, summary.TopProducts[0].Revenue, 1e-9)
}

func TestBuildSalesGroupsAcrossRows(t *testing.T) {
	rows := []Row{
		{"order_id": 1.0, "product_name": "Widget", "quantity": 2.0, "item_total": 20.0},
		{"order_id": 2.0, "product_name": "Widget", "quantity": 3.0, "item_total": 30.0},
	}

	summary := BuildSales(rows)

	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, int64(5), summary.TopProducts[0].Quantity)
	assert.InDelta(t, 50.0, summary.TopProducts[0].Revenue, 1e-9)
}

func TestBuildSalesMalformedNumbersCoerceToZero(t *testing.T) {
	rows := []Row{
		{"order_id": 1.0, "product_name": "Widget", "quantity": "many", "total_amount": "free"},
	}

	summary := BuildSales(rows)

	assert.Zero(t, summary.TotalRevenue)
	require.Len(t, summary.TopProducts, 1)
	assert.Zero(t, summary.TopProducts[0].Quantity)
}

func TestBuildSalesDetailLines(t *testing.T) {
	rows := []Row{
		{"order_id": 4.0, "product_name": "Widget", "quantity": 2.0, "unit_price": "9.5", "item_total": 19.0, "order_date": "2024-05-01"},
	}

	summary := BuildSales(rows)

	require.Len(t, summary.Lines, 1)
	line := summary.Lines[0]
	assert.Equal(t, "4", line.OrderRef)
	assert.Equal(t, "Widget", line.ProductName)
	assert.Equal(t, int64(2), line.Quantity)
	assert.InDelta(t, 9.5, line.UnitPrice, 1e-9)
	assert.InDelta(t, 19.0, line.Total, 1e-9)
	assert.Equal(t, "2024-05-01", line.Date)
}

func TestBuildSalesRendersDisplayValues(t *testing.T) {
	rows := []Row{
		{"order_id": 1.0, "product_name": "Widget", "quantity": 2.0, "total_amount": "50", "order_date": "2024-05-01"},
		{"order_id": 2.0, "product_name": "Widget", "quantity": 1.0, "total_amount": "30"},
	}

	summary := BuildSales(rows)

	assert.Equal(t, format.Currency(80, ""), summary.TotalRevenueDisplay)
	assert.Equal(t, format.Currency(40, ""), summary.AvgOrderValueDisplay)
	assert.Contains(t, summary.TotalRevenueDisplay, "80.00")

	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, format.Currency(80, ""), summary.TopProducts[0].RevenueDisplay)

	require.Len(t, summary.Lines, 2)
	assert.NotEqual(t, "-", summary.Lines[0].DateDisplay)
	assert.Equal(t, "-", summary.Lines[1].DateDisplay, "missing date renders as a dash")
}
