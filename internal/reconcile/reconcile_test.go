package reconcile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"admin-gateway/internal/models"
	"admin-gateway/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOrderTotal(t *testing.T) {
	catalog := map[int64]models.Product{
		1: {ID: 1, UnitPrice: 10, TaxRate: 0.1},
	}
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 3},
	}

	total := ComputeOrderTotal(items, catalog)

	assert.InDelta(t, 33.0, total, 1e-9)
}

func TestComputeOrderTotalSkipsUnresolvedItems(t *testing.T) {
	catalog := map[int64]models.Product{
		1: {ID: 1, UnitPrice: 10, TaxRate: 0.1},
	}
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 3},
		{ProductID: 999, Quantity: 5},
	}

	total := ComputeOrderTotal(items, catalog)

	assert.InDelta(t, 33.0, total, 1e-9, "unresolved item must contribute exactly 0")
}

func TestComputeOrderTotalEmpty(t *testing.T) {
	assert.Zero(t, ComputeOrderTotal(nil, nil))
}

func TestComputeOrderTotalMultipleProducts(t *testing.T) {
	catalog := map[int64]models.Product{
		1: {ID: 1, UnitPrice: 19.99, TaxRate: 0.2},
		2: {ID: 2, UnitPrice: 5, TaxRate: 0},
	}
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 4},
	}

	want := 19.99*2*1.2 + 5*4
	assert.InDelta(t, want, ComputeOrderTotal(items, catalog), 1e-9)
}

func TestCatalogIndex(t *testing.T) {
	products := []models.Product{
		{ID: 1, ProductName: "Widget"},
		{ID: 2, ProductName: "Gadget"},
	}

	index := CatalogIndex(products)

	require.Len(t, index, 2)
	assert.Equal(t, "Gadget", index[2].ProductName)
}

type capturedUpdate struct {
	mu     sync.Mutex
	fields map[string]any
}

func newUpstreamStub(t *testing.T, update *capturedUpdate) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/orders/7", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(models.Order{
				ID: 7, UserID: 3, PaymentStatus: models.PaymentStatusPending,
				Currency: "USD", TotalAmount: 10,
			})
		case http.MethodPut:
			update.mu.Lock()
			defer update.mu.Unlock()
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&update.fields))
			w.WriteHeader(http.StatusOK)
		}
	})
	mux.HandleFunc("/orders/7/items", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.OrderItem{
			{OrderID: 7, ProductID: 1, Quantity: 3},
			{OrderID: 7, ProductID: 999, Quantity: 5},
		})
	})
	return httptest.NewServer(mux)
}

func TestRecalculateAndSave(t *testing.T) {
	var update capturedUpdate
	server := newUpstreamStub(t, &update)
	defer server.Close()

	gateway := upstream.NewClient(server.URL, 5*time.Second)
	reconciler := NewReconciler(gateway, nil)

	catalog := map[int64]models.Product{
		1: {ID: 1, UnitPrice: 10, TaxRate: 0.1},
	}

	total, err := reconciler.RecalculateAndSave(context.Background(), 7, catalog)
	require.NoError(t, err)
	assert.InDelta(t, 33.0, total, 1e-9)

	update.mu.Lock()
	defer update.mu.Unlock()
	require.Contains(t, update.fields, "total_amount", "update must be a partial payload carrying the total")
	assert.Len(t, update.fields, 1)
	assert.InDelta(t, 33.0, update.fields["total_amount"].(float64), 1e-9)
}

func TestRecalculateAndSavePropagatesTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := upstream.NewClient(server.URL, 5*time.Second)
	reconciler := NewReconciler(gateway, nil)

	_, err := reconciler.RecalculateAndSave(context.Background(), 7, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}
