package readstore

import (
	"context"
	"errors"
	"time"

	"order-engine/internal/infra"
	"order-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderReadStore struct {
	pool *pgxpool.Pool
}

func NewOrderReadStore(pool *pgxpool.Pool) *OrderReadStore {
	return &OrderReadStore{pool: pool}
}

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	view := &queries.OrderView{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, address_id, status, payment_method, payment_reference,
		       subtotal_cents, freight_cents, total_cents, expires_at, created_at, updated_at
		FROM orders WHERE id = $1`, id).
		Scan(&view.ID, &view.UserID, &view.AddressID, &view.Status, &view.PaymentMethod,
			&view.PaymentReference, &view.SubtotalCents, &view.FreightCents, &view.TotalCents,
			&view.ExpiresAt, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr("order not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT variant_id, quantity, unit_price_cents
		FROM order_items WHERE order_id = $1
		ORDER BY variant_id`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item queries.OrderItemView
		if err := rows.Scan(&item.VariantID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		item.SubtotalCents = int64(item.Quantity) * item.UnitPriceCents
		view.Items = append(view.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order items", err)
	}

	return view, nil
}

func (s *OrderReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT o.id, o.status, o.payment_method, o.total_cents,
		       (SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS item_count,
		       o.created_at
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user orders", err)
	}
	defer rows.Close()

	var result []*queries.OrderListItem
	for rows.Next() {
		item := &queries.OrderListItem{}
		var createdAt time.Time
		if err := rows.Scan(&item.ID, &item.Status, &item.PaymentMethod,
			&item.TotalCents, &item.ItemCount, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list item", err)
		}
		item.CreatedAt = createdAt
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate user orders", err)
	}
	return result, nil
}
