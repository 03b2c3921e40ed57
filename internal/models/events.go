package models

import "time"

// Audit event types published by the gateway
const (
	EventTypeTotalRecalculated = "order.total_recalculated"
	EventTypePaymentConfirmed  = "order.payment_confirmed"
	EventTypeOrderSent         = "order.sent"
	EventTypeOrderDeleted      = "order.deleted"
	EventTypeRecordDeleted     = "record.deleted"
)

// BaseEvent contains common event fields
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// TotalRecalculatedEvent records a reconciliation pushing a new stored total.
// PreviousTotal is the stored total read before the update; because the
// update carries no version check, a concurrent edit between read and write
// is overwritten (last write wins) and this event is the only trace of it.
type TotalRecalculatedEvent struct {
	BaseEvent
	OrderID       int64   `json:"order_id"`
	PreviousTotal float64 `json:"previous_total"`
	NewTotal      float64 `json:"new_total"`
	Currency      string  `json:"currency"`
}

// PaymentConfirmedEvent records a pending order moving to confirmed.
type PaymentConfirmedEvent struct {
	BaseEvent
	OrderID int64 `json:"order_id"`
	UserID  int64 `json:"user_id"`
}

// OrderSentEvent records a confirmed order being marked as sent.
type OrderSentEvent struct {
	BaseEvent
	OrderID int64 `json:"order_id"`
	UserID  int64 `json:"user_id"`
}

// OrderDeletedEvent records an order removed through the admin surface.
type OrderDeletedEvent struct {
	BaseEvent
	OrderID int64 `json:"order_id"`
}

// RecordDeletedEvent records deletion of a non-order resource.
type RecordDeletedEvent struct {
	BaseEvent
	Resource string `json:"resource"`
	RecordID int64  `json:"record_id"`
}
