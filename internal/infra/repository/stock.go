package repository

import (
	"context"
	"errors"

	"order-engine/internal/infra"
	"order-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StockRepository struct{}

func NewStockRepository() *StockRepository {
	return &StockRepository{}
}

// Reserve atomically decrements availability. The WHERE guard makes concurrent
// reservations for the same variant strictly serialized: two calls can never
// both succeed when their combined quantity exceeds availability.
func (r *StockRepository) Reserve(ctx context.Context, tx db.DBTX, variantID uuid.UUID, quantity int32) error {
	tag, err := tx.Exec(ctx, `
		UPDATE variant_stock
		SET quantity_available = quantity_available - $2,
		    updated_at = now()
		WHERE variant_id = $1 AND quantity_available >= $2`,
		variantID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve stock", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM variant_stock WHERE variant_id = $1)`,
			variantID).Scan(&exists); err != nil {
			return infra.WrapRepoErr("failed to check variant existence", err)
		}
		if !exists {
			return infra.NewRepoErr("variant not found", infra.KindNotFound)
		}
		return infra.NewRepoErr("insufficient stock", infra.KindInsufficientStock)
	}
	return nil
}

// Release increments availability unconditionally. Idempotency is the
// caller's responsibility (compare-and-set guard on the order status).
func (r *StockRepository) Release(ctx context.Context, tx db.DBTX, variantID uuid.UUID, quantity int32) error {
	tag, err := tx.Exec(ctx, `
		UPDATE variant_stock
		SET quantity_available = quantity_available + $2,
		    updated_at = now()
		WHERE variant_id = $1`,
		variantID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to release stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("variant not found", infra.KindNotFound)
	}
	return nil
}

// Register creates the variant row or adds quantity to an existing one.
func (r *StockRepository) Register(ctx context.Context, tx db.DBTX, variantID uuid.UUID, quantity int32) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO variant_stock (variant_id, quantity_available, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (variant_id)
		DO UPDATE SET quantity_available = variant_stock.quantity_available + EXCLUDED.quantity_available,
		              updated_at = now()`,
		variantID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to register variant stock", err)
	}
	return nil
}

func (r *StockRepository) Quantity(ctx context.Context, tx db.DBTX, variantID uuid.UUID) (int32, error) {
	var qty int32
	err := tx.QueryRow(ctx,
		`SELECT quantity_available FROM variant_stock WHERE variant_id = $1`,
		variantID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.NewRepoErr("variant not found", infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to query variant stock", err)
	}
	return qty, nil
}
