package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"admin-gateway/internal/format"
	"admin-gateway/internal/models"
	"admin-gateway/internal/reconcile"
	"admin-gateway/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstreamStub is a minimal in-memory rendition of the upstream API,
// enough to exercise the service orchestration end to end.
type upstreamStub struct {
	mu       sync.Mutex
	orders   map[int64]*models.Order
	items    map[int64][]models.OrderItem
	products []models.Product
	updates  []map[string]any
}

func newUpstreamStub() *upstreamStub {
	return &upstreamStub{
		orders: map[int64]*models.Order{
			1: {ID: 1, UserID: 10, PaymentStatus: models.PaymentStatusPending, Currency: "USD", TotalAmount: 5},
			2: {ID: 2, UserID: 11, PaymentStatus: models.PaymentStatusSent, Currency: "USD", TotalAmount: 60},
		},
		items: map[int64][]models.OrderItem{
			1: {{OrderID: 1, ProductID: 1, Quantity: 3}},
			2: {{OrderID: 2, ProductID: 2, Quantity: 1}},
		},
		products: []models.Product{
			{ID: 1, ProductName: "Widget", UnitPrice: 10, TaxRate: 0.1},
			{ID: 2, ProductName: "Gadget", UnitPrice: 50, TaxRate: 0.2},
		},
	}
}

func (s *upstreamStub) server(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		path := r.URL.Path
		switch {
		case path == "/products/all":
			_ = json.NewEncoder(w).Encode(s.products)
		case path == "/orders/all":
			orders := make([]models.Order, 0, len(s.orders))
			for _, o := range s.orders {
				orders = append(orders, *o)
			}
			_ = json.NewEncoder(w).Encode(orders)
		case path == "/warehouses/all":
			_ = json.NewEncoder(w).Encode([]models.Warehouse{})
		case strings.HasSuffix(path, "/items"):
			var id int64
			_, _ = fmt.Sscanf(path, "/orders/%d/items", &id)
			_ = json.NewEncoder(w).Encode(s.items[id])
		case strings.HasPrefix(path, "/orders/"):
			var id int64
			_, _ = fmt.Sscanf(path, "/orders/%d", &id)
			order, ok := s.orders[id]
			if !ok {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			switch r.Method {
			case http.MethodGet:
				_ = json.NewEncoder(w).Encode(order)
			case http.MethodPut:
				var fields map[string]any
				_ = json.NewDecoder(r.Body).Decode(&fields)
				s.updates = append(s.updates, fields)
				if total, ok := fields["total_amount"].(float64); ok {
					order.TotalAmount = total
				}
				if status, ok := fields["payment_status"].(string); ok {
					order.PaymentStatus = status
				}
			case http.MethodDelete:
				delete(s.orders, id)
			}
		default:
			http.Error(w, "unexpected path "+path, http.StatusNotFound)
		}
	}))
}

func newTestService(t *testing.T, stub *upstreamStub) *AdminService {
	t.Helper()
	server := stub.server(t)
	t.Cleanup(server.Close)

	gateway := upstream.NewClient(server.URL, 5*time.Second)
	reconciler := reconcile.NewReconciler(gateway, nil)
	return NewAdminService(gateway, nil, nil, reconciler, time.Minute)
}

func TestListOrdersComputedTotals(t *testing.T) {
	stub := newUpstreamStub()
	svc := newTestService(t, stub)

	snap, err := svc.LoadSnapshot(context.Background(), false)
	require.NoError(t, err)

	summaries, err := svc.ListOrders(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := make(map[int64]OrderSummary)
	for _, s := range summaries {
		byID[s.Order.ID] = s
	}

	// stored total 5 vs computed 10*3*1.1 = 33: the listing carries both
	assert.InDelta(t, 5.0, byID[1].Order.TotalAmount, 1e-9)
	assert.InDelta(t, 33.0, byID[1].ComputedTotal, 1e-9)
	assert.True(t, byID[1].Editable)
	assert.Equal(t, []string{"Widget"}, byID[1].ItemNames)

	assert.InDelta(t, 60.0, byID[2].ComputedTotal, 1e-9)
	assert.False(t, byID[2].Editable)
}

func TestGetOrderDetailResolvesLines(t *testing.T) {
	stub := newUpstreamStub()
	stub.items[1] = append(stub.items[1], models.OrderItem{OrderID: 1, ProductID: 999, Quantity: 5})
	svc := newTestService(t, stub)

	snap, err := svc.LoadSnapshot(context.Background(), false)
	require.NoError(t, err)

	detail, err := svc.GetOrderDetail(context.Background(), 1, snap)
	require.NoError(t, err)

	require.Len(t, detail.Lines, 2)
	assert.True(t, detail.Lines[0].Resolved)
	assert.InDelta(t, 33.0, detail.Lines[0].LineTotal, 1e-9)

	// unresolved reference renders as Unknown and contributes nothing
	assert.False(t, detail.Lines[1].Resolved)
	assert.Equal(t, "Unknown", detail.Lines[1].ProductName)
	assert.Zero(t, detail.Lines[1].LineTotal)

	assert.InDelta(t, 5.0, detail.StoredTotal, 1e-9)
	assert.InDelta(t, 33.0, detail.ComputedTotal, 1e-9)
}

func TestOrderDisplayTotalsUseOrderCurrency(t *testing.T) {
	stub := newUpstreamStub()
	svc := newTestService(t, stub)

	snap, err := svc.LoadSnapshot(context.Background(), false)
	require.NoError(t, err)

	summaries, err := svc.ListOrders(context.Background(), snap)
	require.NoError(t, err)

	byID := make(map[int64]OrderSummary)
	for _, s := range summaries {
		byID[s.Order.ID] = s
	}
	assert.Equal(t, format.Currency(33, "USD"), byID[1].TotalDisplay)
	assert.Contains(t, byID[1].TotalDisplay, "33.00", "display totals are rounded to currency digits")

	detail, err := svc.GetOrderDetail(context.Background(), 1, snap)
	require.NoError(t, err)
	assert.Equal(t, format.Currency(5, "USD"), detail.StoredTotalDisplay)
	assert.Equal(t, format.Currency(33, "USD"), detail.ComputedTotalDisplay)

	require.Len(t, detail.Lines, 1)
	assert.Equal(t, format.Currency(10, "USD"), detail.Lines[0].UnitPriceDisplay)
	assert.Equal(t, format.Percent(0.1), detail.Lines[0].TaxRateDisplay)
	assert.Equal(t, format.Currency(33, "USD"), detail.Lines[0].LineTotalDisplay)
}

func TestUnresolvedLinesCarryNoDisplayValues(t *testing.T) {
	stub := newUpstreamStub()
	stub.items[1] = append(stub.items[1], models.OrderItem{OrderID: 1, ProductID: 999, Quantity: 5})
	svc := newTestService(t, stub)

	snap, err := svc.LoadSnapshot(context.Background(), false)
	require.NoError(t, err)

	detail, err := svc.GetOrderDetail(context.Background(), 1, snap)
	require.NoError(t, err)

	require.Len(t, detail.Lines, 2)
	assert.Empty(t, detail.Lines[1].UnitPriceDisplay)
	assert.Empty(t, detail.Lines[1].LineTotalDisplay)
}

func TestRecalculateTotalPersistsUpstream(t *testing.T) {
	stub := newUpstreamStub()
	svc := newTestService(t, stub)

	total, err := svc.RecalculateTotal(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 33.0, total, 1e-9)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.InDelta(t, 33.0, stub.orders[1].TotalAmount, 1e-9)
}

func TestConfirmPaymentLifecycle(t *testing.T) {
	stub := newUpstreamStub()
	svc := newTestService(t, stub)
	ctx := context.Background()

	require.NoError(t, svc.ConfirmPayment(ctx, 1))
	stub.mu.Lock()
	assert.Equal(t, models.PaymentStatusConfirmed, stub.orders[1].PaymentStatus)
	stub.mu.Unlock()

	// confirming twice is rejected, the order is frozen
	err := svc.ConfirmPayment(ctx, 1)
	assert.ErrorIs(t, err, ErrOrderFrozen)

	// confirmed orders can be sent, sent orders cannot
	require.NoError(t, svc.SendOrder(ctx, 1))
	err = svc.SendOrder(ctx, 1)
	assert.ErrorIs(t, err, ErrOrderNotConfirmed)
}

func TestItemMutationsRejectedOnFrozenOrders(t *testing.T) {
	stub := newUpstreamStub()
	svc := newTestService(t, stub)
	ctx := context.Background()

	err := svc.AddOrderItem(ctx, 2, 1, 1)
	assert.ErrorIs(t, err, ErrOrderFrozen)

	err = svc.RemoveOrderItem(ctx, 2, "Gadget")
	assert.ErrorIs(t, err, ErrOrderFrozen)
}

func TestAddOrderItemRejectsNonPositiveQuantity(t *testing.T) {
	stub := newUpstreamStub()
	svc := newTestService(t, stub)

	err := svc.AddOrderItem(context.Background(), 1, 1, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOrderFrozen)
}
