package broker

import (
	"context"
	"fmt"

	"admin-gateway/internal/models"
	"admin-gateway/internal/util"
)

// AuditPublisher publishes admin audit events. Publishing is best effort:
// callers log failures but never fail the triggering operation on them.
type AuditPublisher struct {
	producer *Producer
}

// NewAuditPublisher creates a new audit publisher
func NewAuditPublisher(producer *Producer) *AuditPublisher {
	return &AuditPublisher{producer: producer}
}

func (ap *AuditPublisher) publish(ctx context.Context, key, eventType string, event any) error {
	if err := ap.producer.PublishEvent(ctx, key, event); err != nil {
		util.AuditEventsFailedTotal.Inc()
		return err
	}
	util.AuditEventsPublishedTotal.WithLabelValues(eventType).Inc()
	return nil
}

// PublishTotalRecalculated publishes a TotalRecalculated event
func (ap *AuditPublisher) PublishTotalRecalculated(ctx context.Context, event *models.TotalRecalculatedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ap.publish(ctx, key, event.EventType, event)
}

// PublishPaymentConfirmed publishes a PaymentConfirmed event
func (ap *AuditPublisher) PublishPaymentConfirmed(ctx context.Context, event *models.PaymentConfirmedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ap.publish(ctx, key, event.EventType, event)
}

// PublishOrderSent publishes an OrderSent event
func (ap *AuditPublisher) PublishOrderSent(ctx context.Context, event *models.OrderSentEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ap.publish(ctx, key, event.EventType, event)
}

// PublishOrderDeleted publishes an OrderDeleted event
func (ap *AuditPublisher) PublishOrderDeleted(ctx context.Context, event *models.OrderDeletedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ap.publish(ctx, key, event.EventType, event)
}

// PublishRecordDeleted publishes a RecordDeleted event
func (ap *AuditPublisher) PublishRecordDeleted(ctx context.Context, event *models.RecordDeletedEvent) error {
	key := fmt.Sprintf("%s-%d", event.Resource, event.RecordID)
	return ap.publish(ctx, key, event.EventType, event)
}
