package commands

import (
	"context"
	"log/slog"

	"order-engine/internal/domain/order"
	"order-engine/internal/infra"
	"order-engine/internal/pkg/errs"
	"order-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// FulfillmentCommands covers the staff-side lifecycle edges outside payment:
// shipping a paid order and accepting a full return.
type FulfillmentCommands interface {
	ShipOrder(ctx context.Context, orderID uuid.UUID) error
	MarkReturned(ctx context.Context, orderID uuid.UUID, restock bool) error
}

type fulfillmentUseCaseImpl struct {
	uow    shared.UnitOfWork
	logger *slog.Logger
}

func NewFulfillmentCommands(uow shared.UnitOfWork, logger *slog.Logger) FulfillmentCommands {
	return &fulfillmentUseCaseImpl{uow: uow, logger: logger}
}

func (f *fulfillmentUseCaseImpl) ShipOrder(ctx context.Context, orderID uuid.UUID) error {
	return f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := transition(ctx, tx, orderID, []order.Status{order.StatusPaid}, order.StatusShipped)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOrderNotFound)
			}
			if infra.IsKind(err, infra.KindStaleState) {
				return errs.Mark(err, ErrInvalidOrderState)
			}
		}
		return err
	})
}

func (f *fulfillmentUseCaseImpl) MarkReturned(ctx context.Context, orderID uuid.UUID, restock bool) error {
	return f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOrderNotFound)
			}
			return err
		}

		err = transition(ctx, tx, orderID,
			[]order.Status{order.StatusPaid, order.StatusShipped}, order.StatusReturned)
		if err != nil {
			if infra.IsKind(err, infra.KindStaleState) {
				return errs.Mark(err, ErrInvalidOrderState)
			}
			return err
		}

		if restock {
			return releaseItems(ctx, tx, o)
		}
		return nil
	})
}
