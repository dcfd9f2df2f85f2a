package commands

import (
	"context"
	"log/slog"

	"order-engine/internal/domain/order"
	"order-engine/internal/infra"
	"order-engine/internal/pkg/clock"
	"order-engine/internal/pkg/config"
	"order-engine/internal/pkg/errs"
	"order-engine/internal/usecase/queries"
	"order-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CheckoutItemInput struct {
	VariantID      uuid.UUID
	Quantity       int32
	UnitPriceCents int64
}

type PlaceOrderResult struct {
	Order  *queries.OrderView
	Charge *ChargeResult
}

type CheckoutCommands interface {
	PlaceOrder(ctx context.Context, userID, addressID uuid.UUID, items []CheckoutItemInput, method order.PaymentMethod) (*PlaceOrderResult, error)
}

type checkoutUseCaseImpl struct {
	uow           shared.UnitOfWork
	gateway       PaymentGateway
	freight       FreightQuoter
	payments      PaymentCommands
	orderQueries  queries.OrderQueries
	orderServices *order.Services
	clock         clock.Clock
	cfg           config.OrdersConfig
	logger        *slog.Logger
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	freight FreightQuoter,
	payments PaymentCommands,
	orderQueries queries.OrderQueries,
	orderServices *order.Services,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:           uow,
		gateway:       gateway,
		freight:       freight,
		payments:      payments,
		orderQueries:  orderQueries,
		orderServices: orderServices,
		clock:         clk,
		cfg:           cfg.Orders,
		logger:        logger,
	}
}

// PlaceOrder reserves stock for every line and persists the PENDING order in
// a single transaction. Any line failing its reservation aborts the whole
// transaction, so no partial order is ever left behind.
func (c *checkoutUseCaseImpl) PlaceOrder(
	ctx context.Context,
	userID, addressID uuid.UUID,
	items []CheckoutItemInput,
	method order.PaymentMethod,
) (*PlaceOrderResult, error) {
	lines := make([]order.Line, len(items))
	for i, it := range items {
		lines[i] = order.Line{
			VariantID:      it.VariantID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		}
	}

	freightCents, err := c.freight.QuoteCents(ctx, addressID, lines)
	if err != nil {
		return nil, errs.Wrap(err, "failed to quote freight")
	}

	o, err := order.NewOrder(c.orderServices, userID, addressID, lines, freightCents, method, c.cfg.ReservationWindow)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, it := range o.Items() {
			if err := tx.Stock().Reserve(ctx, tx.DB(), it.VariantID(), it.Quantity()); err != nil {
				if infra.IsKind(err, infra.KindInsufficientStock) {
					return errs.Mark(err, ErrOutOfStock)
				}
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrVariantNotFound)
				}
				return err
			}
		}
		return tx.Orders().Create(ctx, tx.DB(), o)
	})
	if err != nil {
		return nil, err
	}

	charge := c.createCharge(ctx, o)

	view, err := c.orderQueries.GetByID(ctx, o.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &PlaceOrderResult{Order: view, Charge: charge}, nil
}

// createCharge runs after the order transaction committed. A gateway failure
// here leaves the order PENDING; the sweeper reclaims its stock when the
// reservation window lapses.
func (c *checkoutUseCaseImpl) createCharge(ctx context.Context, o *order.Order) *ChargeResult {
	charge, err := c.gateway.CreateCharge(ctx, o)
	if err != nil {
		c.logger.Warn("charge creation failed, order left pending for sweeper",
			"order_id", o.ID(), "error", err.Error())
		return nil
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().SetPaymentReference(ctx, tx.DB(), o.ID(), charge.PaymentReference)
	})
	if err != nil {
		c.logger.Error("failed to persist payment reference",
			"order_id", o.ID(), "payment_reference", charge.PaymentReference, "error", err.Error())
	}

	// Card authorizations can settle in the same request cycle; route the
	// result through the reconciler for identical idempotency semantics.
	if o.PaymentMethod().IsSynchronous() && charge.EventID != "" && charge.ReportedStatus.IsValid() {
		event := PaymentEvent{
			EventID:          charge.EventID,
			OrderID:          o.ID(),
			PaymentReference: charge.PaymentReference,
			ReportedStatus:   charge.ReportedStatus,
			ObservedAt:       charge.ObservedAt,
		}
		if _, err := c.payments.ApplyPaymentEvent(ctx, event); err != nil {
			c.logger.Warn("synchronous payment result could not be applied",
				"order_id", o.ID(), "event_id", charge.EventID, "error", err.Error())
		}
	}

	return charge
}
