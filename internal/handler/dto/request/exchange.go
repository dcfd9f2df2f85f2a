package request

import (
	"order-engine/internal/domain/exchange"
	"order-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type RequestExchangeRequest struct {
	Reason               string     `json:"reason" binding:"required"`
	ReplacementVariantID *uuid.UUID `json:"replacement_variant_id,omitempty"`
}

type ResolveExchangeRequest struct {
	Decision          string     `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	AdminNotes        *string    `json:"admin_notes,omitempty"`
	RestockReturned   bool       `json:"restock_returned"`
	ReturnedVariantID *uuid.UUID `json:"returned_variant_id,omitempty"`
}

func (r ResolveExchangeRequest) ToInput(requestID uuid.UUID) commands.ResolveExchangeInput {
	input := commands.ResolveExchangeInput{
		RequestID:       requestID,
		Decision:        exchange.Decision(r.Decision),
		AdminNotes:      r.AdminNotes,
		RestockReturned: r.RestockReturned,
	}
	if r.ReturnedVariantID != nil {
		input.ReturnedVariantID = *r.ReturnedVariantID
	}
	return input
}
