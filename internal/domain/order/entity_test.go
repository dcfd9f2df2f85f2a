//go:build unit

package order_test

import (
	"testing"
	"time"

	"order-engine/internal/domain/order"
	"order-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.OrderBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewOrderBuilder().With(tc.mutate)
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewOrderBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, order.StatusPending, actual.Status())
		assert.Equal(t, int64(9980), actual.SubtotalCents())
		assert.Equal(t, int64(1500), actual.FreightCents())
		assert.Equal(t, int64(11480), actual.TotalCents())
		require.NotNil(t, actual.ExpiresAt())
		assert.Equal(t, b.Now.Add(30*time.Minute), *actual.ExpiresAt())
		assert.Equal(t, b.Now, actual.CreatedAt())
	})

	t.Run("line validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no items",
				mutate: func(b *builder.OrderBuilder) { b.WithLines() },
				errIs:  order.ErrNoItems,
			},
			{
				name: "zero quantity",
				mutate: func(b *builder.OrderBuilder) {
					b.WithLines(order.Line{VariantID: uuid.New(), Quantity: 0, UnitPriceCents: 100})
				},
				errIs: order.ErrInvalidQuantity,
			},
			{
				name: "negative quantity",
				mutate: func(b *builder.OrderBuilder) {
					b.WithLines(order.Line{VariantID: uuid.New(), Quantity: -1, UnitPriceCents: 100})
				},
				errIs: order.ErrInvalidQuantity,
			},
			{
				name: "negative unit price",
				mutate: func(b *builder.OrderBuilder) {
					b.WithLines(order.Line{VariantID: uuid.New(), Quantity: 1, UnitPriceCents: -1})
				},
				errIs: order.ErrNegativeUnitPrice,
			},
			{
				name: "zero unit price is allowed",
				mutate: func(b *builder.OrderBuilder) {
					b.WithLines(order.Line{VariantID: uuid.New(), Quantity: 1, UnitPriceCents: 0})
				},
			},
			{
				name: "duplicate variant",
				mutate: func(b *builder.OrderBuilder) {
					id := uuid.New()
					b.WithLines(
						order.Line{VariantID: id, Quantity: 1, UnitPriceCents: 100},
						order.Line{VariantID: id, Quantity: 2, UnitPriceCents: 100},
					)
				},
				errIs: order.ErrDuplicateVariant,
			},
		})
	})

	t.Run("order validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "negative freight",
				mutate: func(b *builder.OrderBuilder) { b.FreightCents = -1 },
				errIs:  order.ErrNegativeFreight,
			},
			{
				name:   "zero freight is allowed",
				mutate: func(b *builder.OrderBuilder) { b.FreightCents = 0 },
			},
			{
				name:   "invalid payment method",
				mutate: func(b *builder.OrderBuilder) { b.PaymentMethod = "CASH" },
				errIs:  order.ErrInvalidPaymentMethod,
			},
		})
	})

	t.Run("subtotal sums all lines", func(t *testing.T) {
		actual, err := builder.NewOrderBuilder().WithLines(
			order.Line{VariantID: uuid.New(), Quantity: 3, UnitPriceCents: 1000},
			order.Line{VariantID: uuid.New(), Quantity: 1, UnitPriceCents: 250},
		).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, int64(3250), actual.SubtotalCents())
		assert.Equal(t, int64(3250+1500), actual.TotalCents())
		assert.Equal(t, int64(3000), actual.Items()[0].SubtotalCents())
	})
}

func TestHasExpired(t *testing.T) {
	b := builder.NewOrderBuilder()
	o, err := b.BuildDomain()
	require.NoError(t, err)

	assert.False(t, o.HasExpired(b.Now))
	assert.False(t, o.HasExpired(b.Now.Add(30*time.Minute)))
	assert.True(t, o.HasExpired(b.Now.Add(30*time.Minute+time.Second)))

	paid := builder.NewOrderBuilder().WithStatus(order.StatusPaid).BuildReconstructed()
	assert.False(t, paid.HasExpired(b.Now.Add(24*time.Hour)))
}
