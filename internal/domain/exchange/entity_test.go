//go:build unit

package exchange_test

import (
	"strings"
	"testing"

	"order-engine/internal/domain/exchange"
	"order-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewExchangeBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.OrderID, actual.OrderID())
		assert.Equal(t, exchange.StatusPending, actual.Status())
		assert.Equal(t, "Wrong size delivered", actual.Reason())
		assert.Nil(t, actual.ReplacementVariantID())
	})

	t.Run("reason validation", func(t *testing.T) {
		cases := []struct {
			name   string
			reason string
			errIs  error
		}{
			{name: "empty reason", reason: "", errIs: exchange.ErrEmptyReason},
			{name: "whitespace only", reason: "   \t", errIs: exchange.ErrEmptyReason},
			{name: "maximum length", reason: strings.Repeat("a", exchange.MaxReasonLength)},
			{name: "over maximum length", reason: strings.Repeat("a", exchange.MaxReasonLength+1), errIs: exchange.ErrReasonTooLong},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				b := builder.NewExchangeBuilder()
				b.Reason = tc.reason
				actual, err := b.BuildDomain()
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					assert.Nil(t, actual)
					return
				}
				require.NoError(t, err)
			})
		}
	})

	t.Run("reason is trimmed", func(t *testing.T) {
		b := builder.NewExchangeBuilder()
		b.Reason = "  defective zipper  "
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "defective zipper", actual.Reason())
	})

	t.Run("replacement variant is carried", func(t *testing.T) {
		replacement := uuid.New()
		actual, err := builder.NewExchangeBuilder().WithReplacement(replacement).BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual.ReplacementVariantID())
		assert.Equal(t, replacement, *actual.ReplacementVariantID())
	})
}

func TestStatusIsResolved(t *testing.T) {
	assert.False(t, exchange.StatusPending.IsResolved())
	assert.False(t, exchange.StatusApproved.IsResolved())
	assert.True(t, exchange.StatusRejected.IsResolved())
	assert.True(t, exchange.StatusCompleted.IsResolved())
}

func TestDecisionIsValid(t *testing.T) {
	assert.True(t, exchange.DecisionApproved.IsValid())
	assert.True(t, exchange.DecisionRejected.IsValid())
	assert.False(t, exchange.Decision("MAYBE").IsValid())
}
