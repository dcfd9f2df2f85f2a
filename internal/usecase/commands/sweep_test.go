//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"order-engine/internal/domain/order"
	"order-engine/internal/infra"
	"order-engine/internal/usecase/commands"
	"order-engine/tests/common/builder"
	"order-engine/tests/common/testutil"
	sharedmock "order-engine/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSweepFixture(t *testing.T) (*sharedmock.MockOrderRepository, *sharedmock.MockStockRepository, commands.SweepCommands) {
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
	return orders, stock, commands.NewSweepCommands(uow, 100, logger)
}

func TestSweepExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)

	t.Run("cancels expired orders and releases stock", func(t *testing.T) {
		orders, stock, sweep := newSweepFixture(t)
		expired := builder.NewOrderBuilder().BuildReconstructed()
		item := expired.Items()[0]

		orders.EXPECT().
			ListExpiredPending(gomock.Any(), gomock.Any(), now, int32(100)).
			Return([]*order.Order{expired}, nil)
		orders.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), expired.ID(), []order.Status{order.StatusPending}, order.StatusCanceled).
			Return(nil)
		stock.EXPECT().
			Release(gomock.Any(), gomock.Any(), item.VariantID(), item.Quantity()).
			Return(nil)

		report, err := sweep.SweepExpired(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Candidates)
		assert.Equal(t, 1, report.Canceled)
		assert.Equal(t, 0, report.Skipped)
		assert.Equal(t, 0, report.Failed)
	})

	t.Run("skips orders that were paid in the meantime", func(t *testing.T) {
		orders, _, sweep := newSweepFixture(t)
		racer := builder.NewOrderBuilder().BuildReconstructed()

		orders.EXPECT().
			ListExpiredPending(gomock.Any(), gomock.Any(), now, int32(100)).
			Return([]*order.Order{racer}, nil)
		orders.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), racer.ID(), []order.Status{order.StatusPending}, order.StatusCanceled).
			Return(infra.NewRepoErr("no rows updated", infra.KindStaleState))

		report, err := sweep.SweepExpired(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Candidates)
		assert.Equal(t, 0, report.Canceled)
		assert.Equal(t, 1, report.Skipped)
	})

	t.Run("one failure does not abort the batch", func(t *testing.T) {
		orders, stock, sweep := newSweepFixture(t)
		broken := builder.NewOrderBuilder().BuildReconstructed()
		healthy := builder.NewOrderBuilder().BuildReconstructed()
		item := healthy.Items()[0]

		orders.EXPECT().
			ListExpiredPending(gomock.Any(), gomock.Any(), now, int32(100)).
			Return([]*order.Order{broken, healthy}, nil)
		orders.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), broken.ID(), gomock.Any(), order.StatusCanceled).
			Return(errors.New("connection reset"))
		orders.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), healthy.ID(), gomock.Any(), order.StatusCanceled).
			Return(nil)
		stock.EXPECT().
			Release(gomock.Any(), gomock.Any(), item.VariantID(), item.Quantity()).
			Return(nil)

		report, err := sweep.SweepExpired(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Candidates)
		assert.Equal(t, 1, report.Canceled)
		assert.Equal(t, 1, report.Failed)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		orders, _, sweep := newSweepFixture(t)

		orders.EXPECT().
			ListExpiredPending(gomock.Any(), gomock.Any(), now, int32(100)).
			Return(nil, nil)

		report, err := sweep.SweepExpired(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Candidates)
	})
}
