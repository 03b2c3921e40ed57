// Package report turns the upstream's flat, loosely-typed report rows into
// grouped summaries. The upstream has a documented history of inconsistent
// field naming, so every logical field is read through an ordered chain of
// synonym keys and every numeric value goes through permissive coercion:
// a report with a few zeroed cells beats no report at all.
package report

import (
	"encoding/json"
	"strconv"
)

// Row is one raw report row as decoded from the upstream response.
type Row map[string]any

// Synonym key chains per logical field, in preference order. The revenue
// chain used for the summary total differs from the per-product one; both
// orders are part of the upstream contract and must not be unified.
var (
	orderRefKeys       = []string{"order_id", "id_order"}
	productNameKeys    = []string{"product_name", "name", "productName"}
	quantityKeys       = []string{"quantity", "qty"}
	revenueSummaryKeys = []string{"total_amount", "item_total", "total"}
	revenueProductKeys = []string{"item_total", "total", "total_amount"}
	unitPriceKeys      = []string{"unit_price", "price"}
	dateKeys           = []string{"order_date", "created_at", "date"}
	warehouseNameKeys  = []string{"warehouse_name", "name"}
	availableKeys      = []string{"quantity_available", "available"}
	reservedKeys       = []string{"quantity_reserved", "reserved"}
	locationKeys       = []string{"location_code", "location"}
)

// coerceNumber converts an arbitrary row value to a float64, defaulting to
// 0 for anything missing or malformed. It never reports an error.
func coerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// pick returns the first non-empty value among the candidate keys.
func pick(row Row, keys []string) any {
	for _, key := range keys {
		if v, ok := row[key]; ok && v != nil && v != "" {
			return v
		}
	}
	return nil
}

// pickString returns the first present value rendered as a string. Numeric
// identifiers are formatted without an exponent so they stay usable as
// grouping keys.
func pickString(row Row, keys []string) string {
	switch v := pick(row, keys).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int64:
		return strconv.FormatInt(v, 10)
	case nil:
		return ""
	default:
		return ""
	}
}

// pickNumber coerces the first present candidate value to a number.
func pickNumber(row Row, keys []string) float64 {
	return coerceNumber(pick(row, keys))
}

// validProductName filters out rows the upstream serialized without a
// product name. The literal "undefined" leaks out of the upstream joiner
// for orphaned line items and is treated the same as missing.
func validProductName(name string) bool {
	return name != "" && name != "undefined"
}
