package response

import (
	"time"

	"order-engine/internal/usecase/commands"
	"order-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	VariantID      uuid.UUID `json:"variantId"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	SubtotalCents  int64     `json:"subtotalCents"`
}

type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"userId"`
	Status           string              `json:"status"`
	PaymentMethod    string              `json:"paymentMethod"`
	PaymentReference *string             `json:"paymentReference,omitempty"`
	SubtotalCents    int64               `json:"subtotalCents"`
	FreightCents     int64               `json:"freightCents"`
	TotalCents       int64               `json:"totalCents"`
	ExpiresAt        *time.Time          `json:"expiresAt,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	Items            []OrderItemResponse `json:"items"`
}

type OrderListResponse struct {
	ID            uuid.UUID `json:"id"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	TotalCents    int64     `json:"totalCents"`
	ItemCount     int32     `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ChargeResponse struct {
	PaymentReference string `json:"paymentReference"`
	PixQRCode        string `json:"pixQrCode,omitempty"`
	PixQRCodeImage   string `json:"pixQrCodeImage,omitempty"`
	CardRedirectURL  string `json:"cardRedirectUrl,omitempty"`
	BoletoLine       string `json:"boletoLine,omitempty"`
	BoletoURL        string `json:"boletoUrl,omitempty"`
}

type CheckoutResponse struct {
	Order  *OrderResponse  `json:"order"`
	Charge *ChargeResponse `json:"charge,omitempty"`
}

func FromOrderView(view *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, len(view.Items))
	for i, it := range view.Items {
		items[i] = OrderItemResponse{
			VariantID:      it.VariantID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			SubtotalCents:  it.SubtotalCents,
		}
	}
	return &OrderResponse{
		ID:               view.ID,
		UserID:           view.UserID,
		Status:           view.Status,
		PaymentMethod:    view.PaymentMethod,
		PaymentReference: view.PaymentReference,
		SubtotalCents:    view.SubtotalCents,
		FreightCents:     view.FreightCents,
		TotalCents:       view.TotalCents,
		ExpiresAt:        view.ExpiresAt,
		CreatedAt:        view.CreatedAt,
		Items:            items,
	}
}

func FromOrderListItem(item *queries.OrderListItem) *OrderListResponse {
	return &OrderListResponse{
		ID:            item.ID,
		Status:        item.Status,
		PaymentMethod: item.PaymentMethod,
		TotalCents:    item.TotalCents,
		ItemCount:     item.ItemCount,
		CreatedAt:     item.CreatedAt,
	}
}

func FromPlaceOrderResult(result *commands.PlaceOrderResult) *CheckoutResponse {
	resp := &CheckoutResponse{
		Order: FromOrderView(result.Order),
	}
	if result.Charge != nil {
		resp.Charge = &ChargeResponse{
			PaymentReference: result.Charge.PaymentReference,
			PixQRCode:        result.Charge.PixQRCode,
			PixQRCodeImage:   result.Charge.PixQRCodeImage,
			CardRedirectURL:  result.Charge.CardRedirectURL,
			BoletoLine:       result.Charge.BoletoLine,
			BoletoURL:        result.Charge.BoletoURL,
		}
	}
	return resp
}
