package commands

import (
	"context"
	"fmt"

	"order-engine/internal/domain/order"
	"order-engine/internal/pkg/errs"
	"order-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound           = errs.New("order not found")
	ErrVariantNotFound         = errs.New("variant not found")
	ErrOutOfStock              = errs.New("insufficient stock")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrIllegalTransition       = errs.New("illegal status transition")
	ErrInvalidOrderState       = errs.New("order is not in a valid state for this operation")
	ErrExchangeNotFound        = errs.New("exchange request not found")
	ErrExchangeAlreadyResolved = errs.New("exchange request already resolved")
	ErrNoPaymentReference      = errs.New("order has no payment reference")
	ErrInvalidPaymentEvent     = errs.New("invalid payment event")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// transition funnels every status mutation through the central transition
// table before the store's compare-and-set update. No component can invent an
// edge the table doesn't define.
func transition(ctx context.Context, tx shared.Tx, orderID uuid.UUID, from []order.Status, to order.Status) error {
	for _, f := range from {
		if !order.CanTransition(f, to) {
			return errs.Mark(
				errs.New(fmt.Sprintf("transition %s -> %s is not in the transition table", f, to)),
				ErrIllegalTransition,
			)
		}
	}
	return tx.Orders().UpdateStatus(ctx, tx.DB(), orderID, from, to)
}
