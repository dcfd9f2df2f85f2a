//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"order-engine/internal/domain/order"
	"order-engine/internal/infra"
	"order-engine/internal/usecase/commands"
	"order-engine/tests/common/builder"
	"order-engine/tests/common/testutil"
	sharedmock "order-engine/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newFulfillmentFixture(t *testing.T) (*sharedmock.MockOrderRepository, *sharedmock.MockStockRepository, commands.FulfillmentCommands) {
	t.Helper()
	ctrl := gomock.NewController(t)
	tx := sharedmock.NewMockTx(ctrl)
	orders := sharedmock.NewMockOrderRepository(ctrl)
	stock := sharedmock.NewMockStockRepository(ctrl)

	tx.EXPECT().Orders().Return(orders).AnyTimes()
	tx.EXPECT().Stock().Return(stock).AnyTimes()
	tx.EXPECT().DB().Return(nil).AnyTimes()

	uow := &testutil.StubUnitOfWork{Tx: tx}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return orders, stock, commands.NewFulfillmentCommands(uow, logger)
}

func TestShipOrder(t *testing.T) {
	t.Run("ships a paid order", func(t *testing.T) {
		orders, _, fulfillment := newFulfillmentFixture(t)
		orderID := uuid.New()

		orders.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), orderID, []order.Status{order.StatusPaid}, order.StatusShipped).
			Return(nil)

		require.NoError(t, fulfillment.ShipOrder(context.Background(), orderID))
	})

	t.Run("rejects shipping an unpaid order", func(t *testing.T) {
		orders, _, fulfillment := newFulfillmentFixture(t)
		orderID := uuid.New()

		orders.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), orderID, gomock.Any(), order.StatusShipped).
			Return(infra.NewRepoErr("no rows updated", infra.KindStaleState))

		err := fulfillment.ShipOrder(context.Background(), orderID)
		require.ErrorIs(t, err, commands.ErrInvalidOrderState)
	})

	t.Run("unknown order", func(t *testing.T) {
		orders, _, fulfillment := newFulfillmentFixture(t)
		orderID := uuid.New()

		orders.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), orderID, gomock.Any(), order.StatusShipped).
			Return(infra.NewRepoErr("not found", infra.KindNotFound))

		err := fulfillment.ShipOrder(context.Background(), orderID)
		require.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}

func TestMarkReturned(t *testing.T) {
	t.Run("restocks on return when requested", func(t *testing.T) {
		orders, stock, fulfillment := newFulfillmentFixture(t)
		shipped := builder.NewOrderBuilder().WithStatus(order.StatusShipped).BuildReconstructed()
		item := shipped.Items()[0]

		orders.EXPECT().
			FindByID(gomock.Any(), gomock.Any(), shipped.ID()).
			Return(shipped, nil)
		orders.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), shipped.ID(),
				[]order.Status{order.StatusPaid, order.StatusShipped}, order.StatusReturned).
			Return(nil)
		stock.EXPECT().
			Release(gomock.Any(), gomock.Any(), item.VariantID(), item.Quantity()).
			Return(nil)

		require.NoError(t, fulfillment.MarkReturned(context.Background(), shipped.ID(), true))
	})

	t.Run("keeps stock untouched without restock", func(t *testing.T) {
		orders, _, fulfillment := newFulfillmentFixture(t)
		shipped := builder.NewOrderBuilder().WithStatus(order.StatusShipped).BuildReconstructed()

		orders.EXPECT().
			FindByID(gomock.Any(), gomock.Any(), shipped.ID()).
			Return(shipped, nil)
		orders.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), shipped.ID(), gomock.Any(), order.StatusReturned).
			Return(nil)

		require.NoError(t, fulfillment.MarkReturned(context.Background(), shipped.ID(), false))
	})
}
