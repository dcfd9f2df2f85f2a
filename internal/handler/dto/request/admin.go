package request

import "github.com/google/uuid"

type RegisterVariantRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,gt=0"`
}

type MarkReturnedRequest struct {
	Restock bool `json:"restock"`
}
