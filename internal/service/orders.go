package service

import (
	"context"
	"fmt"
	"time"

	"admin-gateway/internal/format"
	"admin-gateway/internal/models"
	"admin-gateway/internal/reconcile"
	"admin-gateway/internal/upstream"
	"admin-gateway/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderSummary is one row of the order listing: the stored record plus the
// total derived from its current line items. The two can differ until the
// order is reconciled; the listing shows both rather than assuming equality.
// Display strings are rounded to currency digits; the float fields keep
// full precision.
type OrderSummary struct {
	Order          models.Order `json:"order"`
	ComputedTotal  float64      `json:"computed_total"`
	TotalDisplay   string       `json:"total_display"`
	CreatedDisplay string       `json:"created_display"`
	ItemNames      []string     `json:"item_names"`
	Editable       bool         `json:"editable"`
}

// OrderLine is one detail line enriched from the catalog snapshot. The
// display fields are empty for unresolved product references.
type OrderLine struct {
	ProductID        int64   `json:"product_id"`
	ProductName      string  `json:"product_name"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	UnitPriceDisplay string  `json:"unit_price_display"`
	TaxRate          float64 `json:"tax_rate"`
	TaxRateDisplay   string  `json:"tax_rate_display"`
	LineTotal        float64 `json:"line_total"`
	LineTotalDisplay string  `json:"line_total_display"`
	Resolved         bool    `json:"resolved"`
}

// OrderDetail is the full expansion of one order.
type OrderDetail struct {
	Order                models.Order `json:"order"`
	Lines                []OrderLine  `json:"lines"`
	StoredTotal          float64      `json:"stored_total"`
	StoredTotalDisplay   string       `json:"stored_total_display"`
	ComputedTotal        float64      `json:"computed_total"`
	ComputedTotalDisplay string       `json:"computed_total_display"`
	CreatedDisplay       string       `json:"created_display"`
	Editable             bool         `json:"editable"`
}

// ListOrders returns all orders with their computed totals derived from
// the given snapshot's catalog.
func (s *AdminService) ListOrders(ctx context.Context, snap *Snapshot) ([]OrderSummary, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.ListOrders")
	defer span.End()

	catalog := snap.Catalog()
	summaries := make([]OrderSummary, 0, len(snap.Orders))

	for _, order := range snap.Orders {
		items, err := s.gateway.ListOrderItems(ctx, order.ID)
		if err != nil {
			// A listing with a gap beats no listing; the row keeps the
			// stored total and an empty preview.
			s.logger.Warn("Failed to load items for order listing",
				zap.Int64("order_id", order.ID), zap.Error(err))
			summaries = append(summaries, OrderSummary{
				Order:          order,
				TotalDisplay:   format.Currency(order.TotalAmount, order.Currency),
				CreatedDisplay: format.Date(order.CreatedAt),
				Editable:       order.Editable(),
			})
			continue
		}

		names := make([]string, 0, len(items))
		for _, item := range items {
			if product, ok := catalog[item.ProductID]; ok {
				names = append(names, product.ProductName)
			}
		}

		computed := reconcile.ComputeOrderTotal(items, catalog)
		summaries = append(summaries, OrderSummary{
			Order:          order,
			ComputedTotal:  computed,
			TotalDisplay:   format.Currency(computed, order.Currency),
			CreatedDisplay: format.Date(order.CreatedAt),
			ItemNames:      names,
			Editable:       order.Editable(),
		})
	}
	return summaries, nil
}

// GetOrderDetail returns one order with catalog-enriched lines and both
// the stored and the freshly computed total.
func (s *AdminService) GetOrderDetail(ctx context.Context, orderID int64, snap *Snapshot) (*OrderDetail, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.GetOrderDetail")
	defer span.End()

	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.gateway.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	catalog := snap.Catalog()
	lines := make([]OrderLine, 0, len(items))
	for _, item := range items {
		line := OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if product, ok := catalog[item.ProductID]; ok {
			line.ProductName = product.ProductName
			line.UnitPrice = product.UnitPrice
			line.UnitPriceDisplay = format.Currency(product.UnitPrice, order.Currency)
			line.TaxRate = product.TaxRate
			line.TaxRateDisplay = format.Percent(product.TaxRate)
			line.LineTotal = product.UnitPrice * float64(item.Quantity) * (1 + product.TaxRate)
			line.LineTotalDisplay = format.Currency(line.LineTotal, order.Currency)
			line.Resolved = true
		} else {
			line.ProductName = "Unknown"
		}
		lines = append(lines, line)
	}

	computed := reconcile.ComputeOrderTotal(items, catalog)
	return &OrderDetail{
		Order:                *order,
		Lines:                lines,
		StoredTotal:          order.TotalAmount,
		StoredTotalDisplay:   format.Currency(order.TotalAmount, order.Currency),
		ComputedTotal:        computed,
		ComputedTotalDisplay: format.Currency(computed, order.Currency),
		CreatedDisplay:       format.Date(order.CreatedAt),
		Editable:             order.Editable(),
	}, nil
}

// CreateOrder creates an order upstream and invalidates the snapshot.
func (s *AdminService) CreateOrder(ctx context.Context, req *upstream.CreateOrderRequest) error {
	if err := s.gateway.CreateOrder(ctx, req); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	return nil
}

// DeleteOrder removes an order and publishes an audit event.
func (s *AdminService) DeleteOrder(ctx context.Context, orderID int64) error {
	if err := s.gateway.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)

	if s.audit != nil {
		event := &models.OrderDeletedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderDeleted,
				Timestamp: time.Now(),
			},
			OrderID: orderID,
		}
		if err := s.audit.PublishOrderDeleted(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderDeleted event", zap.Error(err))
		}
	}
	return nil
}

// AddOrderItem appends a line item to an editable order and reconciles the
// stored total afterwards, as the admin surface always does after item
// mutations.
func (s *AdminService) AddOrderItem(ctx context.Context, orderID, productID int64, quantity int) error {
	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.Editable() {
		return ErrOrderFrozen
	}
	if quantity < 1 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	if err := s.gateway.AddOrderItem(ctx, orderID, productID, quantity); err != nil {
		return err
	}
	return s.reconcileAfterItemChange(ctx, orderID)
}

// RemoveOrderItem removes a line item (by product name, per the upstream
// contract) from an editable order and reconciles the stored total.
func (s *AdminService) RemoveOrderItem(ctx context.Context, orderID int64, productName string) error {
	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.Editable() {
		return ErrOrderFrozen
	}

	if err := s.gateway.RemoveOrderItem(ctx, orderID, productName); err != nil {
		return err
	}
	return s.reconcileAfterItemChange(ctx, orderID)
}

func (s *AdminService) reconcileAfterItemChange(ctx context.Context, orderID int64) error {
	snap, err := s.LoadSnapshot(ctx, true)
	if err != nil {
		return fmt.Errorf("item saved but snapshot refresh failed: %w", err)
	}
	if _, err := s.reconciler.RecalculateAndSave(ctx, orderID, snap.Catalog()); err != nil {
		return fmt.Errorf("item saved but total reconciliation failed: %w", err)
	}
	return nil
}

// RecalculateTotal recomputes and persists the stored total of one order
// against a fresh catalog snapshot. Last write wins; see the reconcile
// package for the concurrency caveat.
func (s *AdminService) RecalculateTotal(ctx context.Context, orderID int64) (float64, error) {
	snap, err := s.LoadSnapshot(ctx, false)
	if err != nil {
		return 0, err
	}
	total, err := s.reconciler.RecalculateAndSave(ctx, orderID, snap.Catalog())
	if err != nil {
		return 0, err
	}
	s.invalidateSnapshot(ctx)
	return total, nil
}

// ConfirmPayment moves a pending order to confirmed.
func (s *AdminService) ConfirmPayment(ctx context.Context, orderID int64) error {
	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.Editable() {
		return ErrOrderFrozen
	}

	if err := s.gateway.UpdateOrder(ctx, orderID, map[string]any{"payment_status": models.PaymentStatusConfirmed}); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)

	if s.audit != nil {
		event := &models.PaymentConfirmedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypePaymentConfirmed,
				Timestamp: time.Now(),
			},
			OrderID: orderID,
			UserID:  order.UserID,
		}
		if err := s.audit.PublishPaymentConfirmed(ctx, event); err != nil {
			s.logger.Error("Failed to publish PaymentConfirmed event", zap.Error(err))
		}
	}
	return nil
}

// SendOrder moves a confirmed order to sent.
func (s *AdminService) SendOrder(ctx context.Context, orderID int64) error {
	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.PaymentStatus != models.PaymentStatusConfirmed {
		return ErrOrderNotConfirmed
	}

	if err := s.gateway.UpdateOrder(ctx, orderID, map[string]any{"payment_status": models.PaymentStatusSent}); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)

	if s.audit != nil {
		event := &models.OrderSentEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderSent,
				Timestamp: time.Now(),
			},
			OrderID: orderID,
			UserID:  order.UserID,
		}
		if err := s.audit.PublishOrderSent(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderSent event", zap.Error(err))
		}
	}
	return nil
}

// CreatePayment submits a payment record for an order.
func (s *AdminService) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return s.gateway.CreatePayment(ctx, payment)
}
