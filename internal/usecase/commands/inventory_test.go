//go:build unit

package commands_test

import (
	"context"
	"testing"

	"order-engine/internal/usecase/commands"
	"order-engine/tests/common/testutil"
	sharedmock "order-engine/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegisterVariant(t *testing.T) {
	newFixture := func(t *testing.T) (*sharedmock.MockStockRepository, commands.InventoryCommands) {
		t.Helper()
		ctrl := gomock.NewController(t)
		tx := sharedmock.NewMockTx(ctrl)
		stock := sharedmock.NewMockStockRepository(ctrl)
		tx.EXPECT().Stock().Return(stock).AnyTimes()
		tx.EXPECT().DB().Return(nil).AnyTimes()
		return stock, commands.NewInventoryCommands(&testutil.StubUnitOfWork{Tx: tx})
	}

	t.Run("adds quantity and reports the new level", func(t *testing.T) {
		stock, inventory := newFixture(t)
		variantID := uuid.New()

		stock.EXPECT().
			Register(gomock.Any(), gomock.Any(), variantID, int32(10)).
			Return(nil)
		stock.EXPECT().
			Quantity(gomock.Any(), gomock.Any(), variantID).
			Return(int32(25), nil)

		available, err := inventory.RegisterVariant(context.Background(), variantID, 10)
		require.NoError(t, err)
		assert.Equal(t, int32(25), available)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, inventory := newFixture(t)

		_, err := inventory.RegisterVariant(context.Background(), uuid.New(), 0)
		require.ErrorIs(t, err, commands.ErrInvalidStockQuantity)

		_, err = inventory.RegisterVariant(context.Background(), uuid.New(), -5)
		require.ErrorIs(t, err, commands.ErrInvalidStockQuantity)
	})
}
