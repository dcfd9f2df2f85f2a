package repository

import (
	"context"
	"errors"
	"time"

	"order-engine/internal/domain/order"
	"order-engine/internal/infra"
	"order-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists the order header and its items. Runs in the caller's
// transaction so it commits or aborts together with the stock reservations.
func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, address_id, status, payment_method, payment_reference,
			subtotal_cents, freight_cents, total_cents, expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		o.ID(), o.UserID(), o.AddressID(), o.Status().String(), o.PaymentMethod().String(),
		o.PaymentReference(), o.SubtotalCents(), o.FreightCents(), o.TotalCents(),
		o.ExpiresAt(), o.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	for _, it := range o.Items() {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, variant_id, quantity, unit_price_cents)
			VALUES ($1, $2, $3, $4)`,
			o.ID(), it.VariantID(), it.Quantity(), it.UnitPriceCents())
		if err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}

	return nil
}

// UpdateStatus is the compare-and-set transition guard. The stored status must
// be in the expected set or the call fails with KindStaleState, so a delayed
// sweep can never cancel an order that was paid in the interim.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, orderID uuid.UUID, expected []order.Status, to order.Status) error {
	from := make([]string, len(expected))
	for i, s := range expected {
		from[i] = s.String()
	}

	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = ANY($3)`,
		orderID, to.String(), from)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
			return infra.WrapRepoErr("failed to check order existence", err)
		}
		if !exists {
			return infra.NewRepoErr("order not found", infra.KindNotFound)
		}
		return infra.NewRepoErr("order status changed concurrently", infra.KindStaleState)
	}
	return nil
}

func (r *OrderRepository) SetPaymentReference(ctx context.Context, tx db.DBTX, orderID uuid.UUID, reference string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE orders SET payment_reference = $2, updated_at = now() WHERE id = $1`,
		orderID, reference)
	if err != nil {
		return infra.WrapRepoErr("failed to set payment reference", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("order not found", infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (*order.Order, error) {
	row := tx.QueryRow(ctx, `
		SELECT id, user_id, address_id, status, payment_method, payment_reference,
		       subtotal_cents, freight_cents, total_cents, expires_at, created_at, updated_at
		FROM orders WHERE id = $1`, orderID)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr("order not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	items, err := r.findItems(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	return rebuild(o, items), nil
}

// FindIDByPaymentReference resolves gateway callbacks that carry only the
// provider's payment id.
func (r *OrderRepository) FindIDByPaymentReference(ctx context.Context, tx db.DBTX, reference string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT id FROM orders WHERE payment_reference = $1`, reference).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, infra.NewRepoErr("order not found for payment reference", infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find order by payment reference", err)
	}
	return id, nil
}

// ListExpiredPending returns sweep candidates: PENDING orders whose
// reservation window has elapsed.
func (r *OrderRepository) ListExpiredPending(ctx context.Context, tx db.DBTX, now time.Time, limit int32) ([]*order.Order, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, user_id, address_id, status, payment_method, payment_reference,
		       subtotal_cents, freight_cents, total_cents, expires_at, created_at, updated_at
		FROM orders
		WHERE status = $1 AND expires_at < $2
		ORDER BY expires_at
		LIMIT $3`,
		order.StatusPending.String(), now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired pending orders", err)
	}
	defer rows.Close()

	var result []*order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired order", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired orders", err)
	}

	for i, o := range result {
		items, err := r.findItems(ctx, tx, o.ID())
		if err != nil {
			return nil, err
		}
		result[i] = rebuild(o, items)
	}
	return result, nil
}

func (r *OrderRepository) findItems(ctx context.Context, tx db.DBTX, orderID uuid.UUID) ([]order.Item, error) {
	rows, err := tx.Query(ctx, `
		SELECT variant_id, quantity, unit_price_cents
		FROM order_items WHERE order_id = $1
		ORDER BY variant_id`, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query order items", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var variantID uuid.UUID
		var quantity int32
		var unitPrice int64
		if err := rows.Scan(&variantID, &quantity, &unitPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		items = append(items, order.ReconstructItem(variantID, quantity, unitPrice))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order items", err)
	}
	return items, nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		id, userID, addressID uuid.UUID
		status, method        string
		paymentReference      *string
		subtotal, freight     int64
		total                 int64
		expiresAt             *time.Time
		createdAt, updatedAt  time.Time
	)
	err := row.Scan(&id, &userID, &addressID, &status, &method, &paymentReference,
		&subtotal, &freight, &total, &expiresAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	return order.Reconstruct(
		id, userID, addressID,
		order.Status(status), nil,
		subtotal, freight, total,
		order.PaymentMethod(method), paymentReference,
		expiresAt, createdAt, updatedAt,
	), nil
}

func rebuild(o *order.Order, items []order.Item) *order.Order {
	return order.Reconstruct(
		o.ID(), o.UserID(), o.AddressID(),
		o.Status(), items,
		o.SubtotalCents(), o.FreightCents(), o.TotalCents(),
		o.PaymentMethod(), o.PaymentReference(),
		o.ExpiresAt(), o.CreatedAt(), o.UpdatedAt(),
	)
}
