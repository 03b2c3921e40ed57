package report

import "sort"

// LowStockThreshold is the fixed cutoff below which an inventory row is
// flagged. The comparison is strict: 9 available is low, 10 is not.
const LowStockThreshold = 10

// StockSummary is the aggregated stock report.
type StockSummary struct {
	TotalProducts   int            `json:"total_products"`
	TotalWarehouses int            `json:"total_warehouses"`
	TotalAvailable  float64        `json:"total_available"`
	TotalReserved   float64        `json:"total_reserved"`
	LowStock        []StockLine    `json:"low_stock"`
	Products        []ProductStock `json:"products"`
	Lines           []StockLine    `json:"lines"`
}

// ProductStock is one per-product rollup entry across warehouses.
type ProductStock struct {
	Name           string  `json:"name"`
	Available      float64 `json:"available"`
	Reserved       float64 `json:"reserved"`
	WarehouseCount int     `json:"warehouse_count"`
}

// StockLine is one normalized per-warehouse detail row.
type StockLine struct {
	ProductName   string  `json:"product_name"`
	WarehouseName string  `json:"warehouse_name"`
	Available     float64 `json:"available"`
	Reserved      float64 `json:"reserved"`
	LocationCode  string  `json:"location_code"`
}

// BuildStock aggregates per-warehouse inventory rows. Grouping is by name:
// two warehouses sharing a name are indistinguishable here, which mirrors
// the upstream report contract.
func BuildStock(rows []Row) StockSummary {
	products := make(map[string]struct{})
	warehouses := make(map[string]struct{})
	var totalAvailable, totalReserved float64

	type rollup struct {
		available  float64
		reserved   float64
		warehouses map[string]struct{}
	}
	perProduct := make(map[string]*rollup)

	lines := make([]StockLine, 0, len(rows))
	lowStock := make([]StockLine, 0)

	for _, row := range rows {
		line := StockLine{
			ProductName:   pickString(row, productNameKeys),
			WarehouseName: pickString(row, warehouseNameKeys),
			Available:     pickNumber(row, availableKeys),
			Reserved:      pickNumber(row, reservedKeys),
			LocationCode:  pickString(row, locationKeys),
		}
		lines = append(lines, line)

		if line.ProductName != "" {
			products[line.ProductName] = struct{}{}
		}
		if line.WarehouseName != "" {
			warehouses[line.WarehouseName] = struct{}{}
		}
		totalAvailable += line.Available
		totalReserved += line.Reserved

		if line.Available < LowStockThreshold {
			lowStock = append(lowStock, line)
		}

		if !validProductName(line.ProductName) {
			continue
		}
		r, ok := perProduct[line.ProductName]
		if !ok {
			r = &rollup{warehouses: make(map[string]struct{})}
			perProduct[line.ProductName] = r
		}
		r.available += line.Available
		r.reserved += line.Reserved
		if line.WarehouseName != "" {
			r.warehouses[line.WarehouseName] = struct{}{}
		}
	}

	productStock := make([]ProductStock, 0, len(perProduct))
	for name, r := range perProduct {
		productStock = append(productStock, ProductStock{
			Name:           name,
			Available:      r.available,
			Reserved:       r.reserved,
			WarehouseCount: len(r.warehouses),
		})
	}
	sort.SliceStable(productStock, func(i, j int) bool {
		if productStock[i].Available != productStock[j].Available {
			return productStock[i].Available > productStock[j].Available
		}
		return productStock[i].Name < productStock[j].Name
	})

	return StockSummary{
		TotalProducts:   len(products),
		TotalWarehouses: len(warehouses),
		TotalAvailable:  totalAvailable,
		TotalReserved:   totalReserved,
		LowStock:        lowStock,
		Products:        productStock,
		Lines:           lines,
	}
}
