//go:build unit || e2e

package builder

import (
	"time"

	domorder "order-engine/internal/domain/order"
	reqdto "order-engine/internal/handler/dto/request"
	"order-engine/internal/pkg/clock"
	"order-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	AddressID         uuid.UUID
	Status            domorder.Status
	Lines             []domorder.Line
	FreightCents      int64
	PaymentMethod     domorder.PaymentMethod
	PaymentReference  *string
	ReservationWindow time.Duration
	Now               time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		AddressID: uuid.New(),
		Status:    domorder.StatusPending,
		Lines: []domorder.Line{
			{VariantID: uuid.New(), Quantity: 2, UnitPriceCents: 4990},
		},
		FreightCents:      1500,
		PaymentMethod:     domorder.PaymentPix,
		ReservationWindow: 30 * time.Minute,
		Now:               time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) WithStatus(status domorder.Status) *OrderBuilder {
	b.Status = status
	return b
}

func (b *OrderBuilder) WithLines(lines ...domorder.Line) *OrderBuilder {
	b.Lines = lines
	return b
}

func (b *OrderBuilder) WithPaymentReference(ref string) *OrderBuilder {
	b.PaymentReference = &ref
	return b
}

// BuildDomain runs the aggregate constructor, so validation applies.
func (b *OrderBuilder) BuildDomain() (*domorder.Order, error) {
	services := &domorder.Services{Clock: clock.NewMockClock(b.Now)}
	return domorder.NewOrder(services, b.UserID, b.AddressID, b.Lines, b.FreightCents, b.PaymentMethod, b.ReservationWindow)
}

// BuildReconstructed bypasses validation to produce an order in any status,
// the way a repository load would.
func (b *OrderBuilder) BuildReconstructed() *domorder.Order {
	items := make([]domorder.Item, len(b.Lines))
	var subtotal int64
	for i, l := range b.Lines {
		items[i] = domorder.ReconstructItem(l.VariantID, l.Quantity, l.UnitPriceCents)
		subtotal += int64(l.Quantity) * l.UnitPriceCents
	}
	expiresAt := b.Now.Add(b.ReservationWindow)
	return domorder.Reconstruct(
		b.ID, b.UserID, b.AddressID,
		b.Status, items,
		subtotal, b.FreightCents, subtotal+b.FreightCents,
		b.PaymentMethod, b.PaymentReference,
		&expiresAt, b.Now, b.Now,
	)
}

func (b *OrderBuilder) BuildCheckoutRequestDTO() reqdto.CheckoutRequest {
	items := make([]reqdto.CheckoutItem, len(b.Lines))
	for i, l := range b.Lines {
		items[i] = reqdto.CheckoutItem{
			VariantID:      l.VariantID,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		}
	}
	return reqdto.CheckoutRequest{
		AddressID:     b.AddressID,
		PaymentMethod: b.PaymentMethod.String(),
		Items:         items,
	}
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	items := make([]queries.OrderItemView, len(b.Lines))
	var subtotal int64
	for i, l := range b.Lines {
		items[i] = queries.OrderItemView{
			VariantID:      l.VariantID,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
			SubtotalCents:  int64(l.Quantity) * l.UnitPriceCents,
		}
		subtotal += items[i].SubtotalCents
	}
	expiresAt := b.Now.Add(b.ReservationWindow)
	return &queries.OrderView{
		ID:               b.ID,
		UserID:           b.UserID,
		AddressID:        b.AddressID,
		Status:           b.Status.String(),
		PaymentMethod:    b.PaymentMethod.String(),
		PaymentReference: b.PaymentReference,
		SubtotalCents:    subtotal,
		FreightCents:     b.FreightCents,
		TotalCents:       subtotal + b.FreightCents,
		ExpiresAt:        &expiresAt,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
		Items:            items,
	}
}
