// Package reconcile recomputes order totals from line items and the
// product catalog, and can push the recalculated value back upstream.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"admin-gateway/internal/models"
	"admin-gateway/internal/upstream"
	"admin-gateway/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ComputeOrderTotal derives an order total from its line items and the
// supplied catalog: Σ unit_price × quantity × (1 + tax_rate). Line items
// whose product reference is absent from the catalog contribute exactly
// zero; the computation is best effort and never fails. No rounding is
// applied, display rounding belongs to the format package.
func ComputeOrderTotal(items []models.OrderItem, catalog map[int64]models.Product) float64 {
	var total float64
	for _, item := range items {
		product, ok := catalog[item.ProductID]
		if !ok {
			util.UnresolvedLineItemsTotal.Inc()
			continue
		}
		total += product.UnitPrice * float64(item.Quantity) * (1 + product.TaxRate)
	}
	return total
}

// CatalogIndex builds a product-id lookup from a catalog snapshot.
func CatalogIndex(products []models.Product) map[int64]models.Product {
	index := make(map[int64]models.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// AuditPublisher receives reconciliation audit events.
type AuditPublisher interface {
	PublishTotalRecalculated(ctx context.Context, event *models.TotalRecalculatedEvent) error
}

// Reconciler recalculates stored order totals through the upstream API.
type Reconciler struct {
	gateway   *upstream.Client
	publisher AuditPublisher
	logger    *zap.Logger
}

// NewReconciler creates a reconciler. publisher may be nil when no audit
// trail is configured.
func NewReconciler(gateway *upstream.Client, publisher AuditPublisher) *Reconciler {
	return &Reconciler{
		gateway:   gateway,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// RecalculateAndSave fetches the order's current line items, recomputes the
// total against the given catalog snapshot and writes it back as a partial
// update. There is no optimistic-concurrency guard: the write is last-write-
// wins. The returned total is the value that was persisted.
func (r *Reconciler) RecalculateAndSave(ctx context.Context, orderID int64, catalog map[int64]models.Product) (float64, error) {
	ctx, span := util.StartSpan(ctx, "Reconciler.RecalculateAndSave")
	defer span.End()

	order, err := r.gateway.GetOrder(ctx, orderID)
	if err != nil {
		util.RecalculationsFailedTotal.WithLabelValues("fetch_order").Inc()
		return 0, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}

	items, err := r.gateway.ListOrderItems(ctx, orderID)
	if err != nil {
		util.RecalculationsFailedTotal.WithLabelValues("fetch_items").Inc()
		return 0, fmt.Errorf("failed to fetch items for order %d: %w", orderID, err)
	}

	total := ComputeOrderTotal(items, catalog)

	if err := r.gateway.UpdateOrderTotal(ctx, orderID, total); err != nil {
		util.RecalculationsFailedTotal.WithLabelValues("update").Inc()
		return 0, fmt.Errorf("failed to update total for order %d: %w", orderID, err)
	}

	util.RecalculationsTotal.Inc()
	r.logger.Info("Order total reconciled",
		zap.Int64("order_id", orderID),
		zap.Float64("previous_total", order.TotalAmount),
		zap.Float64("new_total", total))

	if r.publisher != nil {
		event := &models.TotalRecalculatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeTotalRecalculated,
				Timestamp: time.Now(),
			},
			OrderID:       orderID,
			PreviousTotal: order.TotalAmount,
			NewTotal:      total,
			Currency:      order.Currency,
		}
		if err := r.publisher.PublishTotalRecalculated(ctx, event); err != nil {
			r.logger.Error("Failed to publish TotalRecalculated event", zap.Error(err))
		}
	}

	return total, nil
}
