package request

import (
	"order-engine/internal/domain/order"
	"order-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutItem struct {
	VariantID      uuid.UUID `json:"variant_id" binding:"required"`
	Quantity       int32     `json:"quantity" binding:"required,gt=0"`
	UnitPriceCents int64     `json:"unit_price_cents" binding:"required,gte=0"`
}

type CheckoutRequest struct {
	AddressID     uuid.UUID      `json:"address_id" binding:"required"`
	PaymentMethod string         `json:"payment_method" binding:"required,oneof=PIX CARD BOLETO"`
	Items         []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

func (r CheckoutRequest) Method() order.PaymentMethod {
	return order.PaymentMethod(r.PaymentMethod)
}

func (r CheckoutRequest) ToItems() []commands.CheckoutItemInput {
	items := make([]commands.CheckoutItemInput, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.CheckoutItemInput{
			VariantID:      it.VariantID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		}
	}
	return items
}
