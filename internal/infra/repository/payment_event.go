package repository

import (
	"context"
	"time"

	"order-engine/internal/infra"
	"order-engine/internal/infra/db"

	"github.com/google/uuid"
)

type PaymentEventRepository struct{}

func NewPaymentEventRepository() *PaymentEventRepository {
	return &PaymentEventRepository{}
}

// TryInsert records a gateway event for dedup. Returns false when the event
// id was already seen, which makes every redelivery a no-op for the caller.
// Committed in the same transaction as the status transition it gates.
func (r *PaymentEventRepository) TryInsert(ctx context.Context, tx db.DBTX, eventID string, orderID uuid.UUID, reportedStatus string, observedAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, `
		INSERT INTO payment_events (event_id, order_id, reported_status, observed_at, applied_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (event_id) DO NOTHING`,
		eventID, orderID, reportedStatus, observedAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert payment event", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PaymentEventRepository) CountForOrder(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (int64, error) {
	var n int64
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM payment_events WHERE order_id = $1`, orderID).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count payment events", err)
	}
	return n, nil
}
