package order

import (
	"errors"
	"time"

	"order-engine/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrNoItems              = errors.New("order must contain at least one item")
	ErrInvalidQuantity      = errors.New("item quantity must be positive")
	ErrNegativeUnitPrice    = errors.New("item unit price cannot be negative")
	ErrDuplicateVariant     = errors.New("duplicate variant in order items")
	ErrNegativeFreight      = errors.New("freight cannot be negative")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidStatus        = errors.New("invalid order status")
)

type Services struct {
	Clock clock.Clock
}

// Line is the checkout collaborator's requested (variant, quantity) pair with
// the unit price frozen at order time.
type Line struct {
	VariantID      uuid.UUID
	Quantity       int32
	UnitPriceCents int64
}

type Item struct {
	variantID      uuid.UUID
	quantity       int32
	unitPriceCents int64
}

func (i Item) VariantID() uuid.UUID  { return i.variantID }
func (i Item) Quantity() int32       { return i.quantity }
func (i Item) UnitPriceCents() int64 { return i.unitPriceCents }
func (i Item) SubtotalCents() int64  { return int64(i.quantity) * i.unitPriceCents }

type Order struct {
	id               uuid.UUID
	userID           uuid.UUID
	addressID        uuid.UUID
	status           Status
	items            []Item
	subtotalCents    int64
	freightCents     int64
	totalCents       int64
	paymentMethod    PaymentMethod
	paymentReference *string
	expiresAt        *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewOrder builds a PENDING order with the reservation window applied.
// Totals are computed once here and immutable afterwards.
func NewOrder(
	services *Services,
	userID uuid.UUID,
	addressID uuid.UUID,
	lines []Line,
	freightCents int64,
	method PaymentMethod,
	reservationWindow time.Duration,
) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoItems
	}
	if freightCents < 0 {
		return nil, ErrNegativeFreight
	}
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	seen := make(map[uuid.UUID]bool, len(lines))
	items := make([]Item, 0, len(lines))
	var subtotal int64
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if l.UnitPriceCents < 0 {
			return nil, ErrNegativeUnitPrice
		}
		if seen[l.VariantID] {
			return nil, ErrDuplicateVariant
		}
		seen[l.VariantID] = true
		items = append(items, Item{
			variantID:      l.VariantID,
			quantity:       l.Quantity,
			unitPriceCents: l.UnitPriceCents,
		})
		subtotal += int64(l.Quantity) * l.UnitPriceCents
	}

	now := services.Clock.Now()
	expiresAt := now.Add(reservationWindow)

	return &Order{
		id:            uuid.New(),
		userID:        userID,
		addressID:     addressID,
		status:        StatusPending,
		items:         items,
		subtotalCents: subtotal,
		freightCents:  freightCents,
		totalCents:    subtotal + freightCents,
		paymentMethod: method,
		expiresAt:     &expiresAt,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func Reconstruct(
	id, userID, addressID uuid.UUID,
	status Status,
	items []Item,
	subtotalCents, freightCents, totalCents int64,
	method PaymentMethod,
	paymentReference *string,
	expiresAt *time.Time,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:               id,
		userID:           userID,
		addressID:        addressID,
		status:           status,
		items:            items,
		subtotalCents:    subtotalCents,
		freightCents:     freightCents,
		totalCents:       totalCents,
		paymentMethod:    method,
		paymentReference: paymentReference,
		expiresAt:        expiresAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func ReconstructItem(variantID uuid.UUID, quantity int32, unitPriceCents int64) Item {
	return Item{variantID: variantID, quantity: quantity, unitPriceCents: unitPriceCents}
}

func (o *Order) HasExpired(now time.Time) bool {
	return o.status == StatusPending && o.expiresAt != nil && o.expiresAt.Before(now)
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) UserID() uuid.UUID            { return o.userID }
func (o *Order) AddressID() uuid.UUID         { return o.addressID }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Items() []Item                { return o.items }
func (o *Order) SubtotalCents() int64         { return o.subtotalCents }
func (o *Order) FreightCents() int64          { return o.freightCents }
func (o *Order) TotalCents() int64            { return o.totalCents }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentReference() *string    { return o.paymentReference }
func (o *Order) ExpiresAt() *time.Time        { return o.expiresAt }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
