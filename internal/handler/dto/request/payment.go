package request

import (
	"time"

	"order-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

// PaymentWebhookRequest mirrors the gateway's callback payload. Either
// order_id or payment_reference identifies the order.
type PaymentWebhookRequest struct {
	EventID          string     `json:"event_id" binding:"required"`
	OrderID          *uuid.UUID `json:"order_id,omitempty"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	Status           string     `json:"status" binding:"required,oneof=APPROVED REJECTED PENDING UNKNOWN"`
	ObservedAt       time.Time  `json:"observed_at" binding:"required"`
}

func (r PaymentWebhookRequest) ToEvent() commands.PaymentEvent {
	event := commands.PaymentEvent{
		EventID:          r.EventID,
		PaymentReference: r.PaymentReference,
		ReportedStatus:   commands.ReportedStatus(r.Status),
		ObservedAt:       r.ObservedAt,
	}
	if r.OrderID != nil {
		event.OrderID = *r.OrderID
	}
	return event
}
