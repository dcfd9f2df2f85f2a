package queries

import (
	"context"
	"time"

	"order-engine/internal/infra"
	"order-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.New("order not found")

type OrderItemView struct {
	VariantID      uuid.UUID
	Quantity       int32
	UnitPriceCents int64
	SubtotalCents  int64
}

type OrderView struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	AddressID        uuid.UUID
	Status           string
	PaymentMethod    string
	PaymentReference *string
	SubtotalCents    int64
	FreightCents     int64
	TotalCents       int64
	ExpiresAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []OrderItemView
}

type OrderListItem struct {
	ID            uuid.UUID
	Status        string
	PaymentMethod string
	TotalCents    int64
	ItemCount     int32
	CreatedAt     time.Time
}

// OrderReadStore is implemented by the infra read store.
type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*OrderListItem, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error)
}

const defaultListLimit = 50

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error) {
	return q.store.ListByUser(ctx, userID, defaultListLimit)
}
