package repository

import (
	"context"
	"errors"
	"time"

	"order-engine/internal/domain/exchange"
	"order-engine/internal/infra"
	"order-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ExchangeRepository struct{}

func NewExchangeRepository() *ExchangeRepository {
	return &ExchangeRepository{}
}

func (r *ExchangeRepository) Create(ctx context.Context, tx db.DBTX, req *exchange.Request) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO exchange_requests (
			id, order_id, reason, status, admin_notes, replacement_variant_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		req.ID(), req.OrderID(), req.Reason(), req.Status().String(),
		req.AdminNotes(), req.ReplacementVariantID(), req.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create exchange request", err)
	}
	return nil
}

func (r *ExchangeRepository) FindByID(ctx context.Context, tx db.DBTX, requestID uuid.UUID) (*exchange.Request, error) {
	var (
		id, orderID          uuid.UUID
		reason, status       string
		adminNotes           *string
		replacementVariantID *uuid.UUID
		createdAt, updatedAt time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT id, order_id, reason, status, admin_notes, replacement_variant_id, created_at, updated_at
		FROM exchange_requests WHERE id = $1`, requestID).
		Scan(&id, &orderID, &reason, &status, &adminNotes, &replacementVariantID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr("exchange request not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find exchange request", err)
	}

	return exchange.Reconstruct(
		id, orderID, reason, exchange.Status(status),
		adminNotes, replacementVariantID, createdAt, updatedAt,
	), nil
}

// Resolve moves a PENDING request to its resolved status. Compare-and-set on
// PENDING so two staff members cannot resolve the same request twice.
func (r *ExchangeRepository) Resolve(ctx context.Context, tx db.DBTX, requestID uuid.UUID, to exchange.Status, adminNotes *string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE exchange_requests
		SET status = $2, admin_notes = $3, updated_at = now()
		WHERE id = $1 AND status = $4`,
		requestID, to.String(), adminNotes, exchange.StatusPending.String())
	if err != nil {
		return infra.WrapRepoErr("failed to resolve exchange request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("exchange request already resolved", infra.KindStaleState)
	}
	return nil
}
