package report

import (
	"sort"

	"admin-gateway/internal/format"
)

// topProductLimit caps the per-product sales rollup.
const topProductLimit = 10

// SalesSummary is the aggregated sales report. Report rows carry no
// currency code, so display strings use the default unit.
type SalesSummary struct {
	TotalOrders          int            `json:"total_orders"`
	TotalRevenue         float64        `json:"total_revenue"`
	TotalRevenueDisplay  string         `json:"total_revenue_display"`
	AvgOrderValue        float64        `json:"avg_order_value"`
	AvgOrderValueDisplay string         `json:"avg_order_value_display"`
	TopProducts          []ProductSales `json:"top_products"`
	Lines                []SalesLine    `json:"lines"`
}

// ProductSales is one per-product rollup entry.
type ProductSales struct {
	Name           string  `json:"name"`
	Quantity       int64   `json:"quantity"`
	Revenue        float64 `json:"revenue"`
	RevenueDisplay string  `json:"revenue_display"`
}

// SalesLine is one normalized detail row for display.
type SalesLine struct {
	OrderRef     string  `json:"order_ref"`
	ProductName  string  `json:"product_name"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`
	Date         string  `json:"date"`
	DateDisplay  string  `json:"date_display"`
}

// BuildSales aggregates flat sales rows into a summary. It is pure and
// never fails: rows with missing or malformed fields contribute zeroes,
// and rows without a usable product name are excluded from the rollup
// (but still counted toward orders and revenue).
func BuildSales(rows []Row) SalesSummary {
	orders := make(map[string]struct{})
	var revenue float64

	type rollup struct {
		quantity int64
		revenue  float64
	}
	perProduct := make(map[string]*rollup)
	lines := make([]SalesLine, 0, len(rows))

	for _, row := range rows {
		if ref := pickString(row, orderRefKeys); ref != "" {
			orders[ref] = struct{}{}
		}
		revenue += pickNumber(row, revenueSummaryKeys)

		line := SalesLine{
			OrderRef:    pickString(row, orderRefKeys),
			ProductName: pickString(row, productNameKeys),
			Quantity:    int64(pickNumber(row, quantityKeys)),
			UnitPrice:   pickNumber(row, unitPriceKeys),
			Total:       pickNumber(row, revenueProductKeys),
			Date:        pickString(row, dateKeys),
		}
		line.TotalDisplay = format.Currency(line.Total, "")
		line.DateDisplay = format.DateString(line.Date)
		lines = append(lines, line)

		if !validProductName(line.ProductName) {
			continue
		}
		r, ok := perProduct[line.ProductName]
		if !ok {
			r = &rollup{}
			perProduct[line.ProductName] = r
		}
		r.quantity += line.Quantity
		r.revenue += line.Total
	}

	top := make([]ProductSales, 0, len(perProduct))
	for name, r := range perProduct {
		top = append(top, ProductSales{
			Name:           name,
			Quantity:       r.quantity,
			Revenue:        r.revenue,
			RevenueDisplay: format.Currency(r.revenue, ""),
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Revenue != top[j].Revenue {
			return top[i].Revenue > top[j].Revenue
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > topProductLimit {
		top = top[:topProductLimit]
	}

	avg := 0.0
	if len(orders) > 0 {
		avg = revenue / float64(len(orders))
	}

	return SalesSummary{
		TotalOrders:          len(orders),
		TotalRevenue:         revenue,
		TotalRevenueDisplay:  format.Currency(revenue, ""),
		AvgOrderValue:        avg,
		AvgOrderValueDisplay: format.Currency(avg, ""),
		TopProducts:          top,
		Lines:                lines,
	}
}
