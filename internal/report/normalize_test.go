package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"numeric string", "50", 50},
		{"decimal string", "19.99", 19.99},
		{"json number", json.Number("42.5"), 42.5},
		{"malformed string", "abc", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"map", map[string]any{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceNumber(tt.in))
		})
	}
}

func TestPickPrefersEarlierKeys(t *testing.T) {
	row := Row{"total_amount": "50", "item_total": "99", "total": "1"}
	assert.Equal(t, 50.0, pickNumber(row, revenueSummaryKeys))
	assert.Equal(t, 99.0, pickNumber(row, revenueProductKeys))
}

func TestPickSkipsEmptyValues(t *testing.T) {
	row := Row{"product_name": "", "name": "Widget"}
	assert.Equal(t, "Widget", pickString(row, productNameKeys))

	row = Row{"total_amount": nil, "total": 30.0}
	assert.Equal(t, 30.0, pickNumber(row, revenueSummaryKeys))
}

func TestPickStringNumericRefs(t *testing.T) {
	assert.Equal(t, "17", pickString(Row{"order_id": 17.0}, orderRefKeys))
	assert.Equal(t, "17", pickString(Row{"id_order": json.Number("17")}, orderRefKeys))
	assert.Equal(t, "", pickString(Row{}, orderRefKeys))
}

func TestValidProductName(t *testing.T) {
	assert.True(t, validProductName("Widget"))
	assert.False(t, validProductName(""))
	assert.False(t, validProductName("undefined"))
}
