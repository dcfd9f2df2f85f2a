package commands

import (
	"context"

	"order-engine/internal/pkg/errs"
	"order-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidStockQuantity = errs.New("stock quantity must be positive")

// InventoryCommands is the admin surface for variant registration.
type InventoryCommands interface {
	RegisterVariant(ctx context.Context, variantID uuid.UUID, quantity int32) (int32, error)
}

type inventoryUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewInventoryCommands(uow shared.UnitOfWork) InventoryCommands {
	return &inventoryUseCaseImpl{uow: uow}
}

func (i *inventoryUseCaseImpl) RegisterVariant(ctx context.Context, variantID uuid.UUID, quantity int32) (int32, error) {
	if quantity <= 0 {
		return 0, ErrInvalidStockQuantity
	}

	var available int32
	err := i.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Stock().Register(ctx, tx.DB(), variantID, quantity); err != nil {
			return err
		}
		var err error
		available, err = tx.Stock().Quantity(ctx, tx.DB(), variantID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return available, nil
}
