package shared

import (
	"context"
	"time"

	"order-engine/internal/domain/exchange"
	"order-engine/internal/domain/order"
	"order-engine/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Orders() OrderRepository
	Stock() StockRepository
	PaymentEvents() PaymentEventRepository
	Exchanges() ExchangeRepository
	DB() db.DBTX
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) error
	UpdateStatus(ctx context.Context, tx db.DBTX, orderID uuid.UUID, expected []order.Status, to order.Status) error
	SetPaymentReference(ctx context.Context, tx db.DBTX, orderID uuid.UUID, reference string) error
	FindByID(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (*order.Order, error)
	FindIDByPaymentReference(ctx context.Context, tx db.DBTX, reference string) (uuid.UUID, error)
	ListExpiredPending(ctx context.Context, tx db.DBTX, now time.Time, limit int32) ([]*order.Order, error)
}

type StockRepository interface {
	Reserve(ctx context.Context, tx db.DBTX, variantID uuid.UUID, quantity int32) error
	Release(ctx context.Context, tx db.DBTX, variantID uuid.UUID, quantity int32) error
	Register(ctx context.Context, tx db.DBTX, variantID uuid.UUID, quantity int32) error
	Quantity(ctx context.Context, tx db.DBTX, variantID uuid.UUID) (int32, error)
}

type PaymentEventRepository interface {
	TryInsert(ctx context.Context, tx db.DBTX, eventID string, orderID uuid.UUID, reportedStatus string, observedAt time.Time) (bool, error)
	CountForOrder(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (int64, error)
}

type ExchangeRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *exchange.Request) error
	FindByID(ctx context.Context, tx db.DBTX, requestID uuid.UUID) (*exchange.Request, error)
	Resolve(ctx context.Context, tx db.DBTX, requestID uuid.UUID, to exchange.Status, adminNotes *string) error
}
