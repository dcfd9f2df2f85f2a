package response

import (
	"order-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type ExchangeResponse struct {
	ID                   uuid.UUID  `json:"id"`
	OrderID              uuid.UUID  `json:"orderId"`
	Reason               string     `json:"reason"`
	Status               string     `json:"status"`
	AdminNotes           *string    `json:"adminNotes,omitempty"`
	ReplacementVariantID *uuid.UUID `json:"replacementVariantId,omitempty"`
}

type AckResponse struct {
	OrderID  uuid.UUID `json:"orderId"`
	Applied  bool      `json:"applied"`
	Replayed bool      `json:"replayed"`
	Conflict bool      `json:"conflict"`
}

type VariantStockResponse struct {
	VariantID         uuid.UUID `json:"variantId"`
	QuantityAvailable int32     `json:"quantityAvailable"`
}

func FromExchangeView(view *commands.ExchangeRequestView) *ExchangeResponse {
	return &ExchangeResponse{
		ID:                   view.ID,
		OrderID:              view.OrderID,
		Reason:               view.Reason,
		Status:               view.Status,
		AdminNotes:           view.AdminNotes,
		ReplacementVariantID: view.ReplacementVariantID,
	}
}

func FromAck(ack *commands.Ack) *AckResponse {
	return &AckResponse{
		OrderID:  ack.OrderID,
		Applied:  ack.Applied,
		Replayed: ack.Replayed,
		Conflict: ack.Conflict,
	}
}
