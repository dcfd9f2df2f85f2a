package commands

import (
	"context"
	"log/slog"

	"order-engine/internal/domain/exchange"
	"order-engine/internal/domain/order"
	"order-engine/internal/infra"
	"order-engine/internal/pkg/clock"
	"order-engine/internal/pkg/errs"
	"order-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExchangeRequestView struct {
	ID                   uuid.UUID
	OrderID              uuid.UUID
	Reason               string
	Status               string
	AdminNotes           *string
	ReplacementVariantID *uuid.UUID
}

type ResolveExchangeInput struct {
	RequestID  uuid.UUID
	Decision   exchange.Decision
	AdminNotes *string
	// RestockReturned releases the returned variant's quantity back to the
	// ledger when the request is approved.
	RestockReturned   bool
	ReturnedVariantID uuid.UUID
}

type ExchangeCommands interface {
	RequestExchange(ctx context.Context, orderID uuid.UUID, reason string, replacementVariantID *uuid.UUID) (*ExchangeRequestView, error)
	Resolve(ctx context.Context, input ResolveExchangeInput) (*ExchangeRequestView, error)
}

type exchangeUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewExchangeCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) ExchangeCommands {
	return &exchangeUseCaseImpl{
		uow:    uow,
		clock:  clk,
		logger: logger,
	}
}

// RequestExchange is valid only for PAID or shipped orders; it moves the
// order to EXCHANGE_REQUESTED and records the customer's request.
func (e *exchangeUseCaseImpl) RequestExchange(ctx context.Context, orderID uuid.UUID, reason string, replacementVariantID *uuid.UUID) (*ExchangeRequestView, error) {
	req, err := exchange.NewRequest(e.clock, orderID, reason, replacementVariantID)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := transition(ctx, tx, orderID,
			[]order.Status{order.StatusPaid, order.StatusShipped}, order.StatusExchangeRequested)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOrderNotFound)
			}
			if infra.IsKind(err, infra.KindStaleState) {
				return errs.Mark(err, ErrInvalidOrderState)
			}
			return err
		}
		return tx.Exchanges().Create(ctx, tx.DB(), req)
	})
	if err != nil {
		return nil, err
	}

	return toExchangeView(req), nil
}

// Resolve applies a staff decision. Approval completes the exchange and may
// restock the returned variant and reserve the replacement as two independent
// atomic ledger calls; cross-variant atomicity is deliberately not promised.
func (e *exchangeUseCaseImpl) Resolve(ctx context.Context, input ResolveExchangeInput) (*ExchangeRequestView, error) {
	if !input.Decision.IsValid() {
		return nil, errs.Mark(exchange.ErrInvalidDecision, ErrDomainValidation)
	}

	var req *exchange.Request
	var returnedQty int32

	err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		req, err = tx.Exchanges().FindByID(ctx, tx.DB(), input.RequestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrExchangeNotFound)
			}
			return err
		}
		if req.Status().IsResolved() {
			return ErrExchangeAlreadyResolved
		}

		o, err := tx.Orders().FindByID(ctx, tx.DB(), req.OrderID())
		if err != nil {
			return err
		}

		switch input.Decision {
		case exchange.DecisionRejected:
			if err := transition(ctx, tx, req.OrderID(),
				[]order.Status{order.StatusExchangeRequested}, order.StatusPaid); err != nil {
				return err
			}
			return tx.Exchanges().Resolve(ctx, tx.DB(), req.ID(), exchange.StatusRejected, input.AdminNotes)

		case exchange.DecisionApproved:
			if err := transition(ctx, tx, req.OrderID(),
				[]order.Status{order.StatusExchangeRequested}, order.StatusExchanged); err != nil {
				return err
			}
			if input.RestockReturned {
				returnedQty = itemQuantity(o, input.ReturnedVariantID)
			}
			return tx.Exchanges().Resolve(ctx, tx.DB(), req.ID(), exchange.StatusCompleted, input.AdminNotes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Decision == exchange.DecisionApproved {
		e.adjustLedger(ctx, req, input, returnedQty)
	}

	resolved := exchange.Reconstruct(
		req.ID(), req.OrderID(), req.Reason(),
		resolvedStatus(input.Decision), input.AdminNotes,
		req.ReplacementVariantID(), req.CreatedAt(), e.clock.Now(),
	)
	return toExchangeView(resolved), nil
}

// adjustLedger performs the post-approval stock moves. Each call is atomic on
// its own; a failed replacement reservation is reported, not rolled back.
func (e *exchangeUseCaseImpl) adjustLedger(ctx context.Context, req *exchange.Request, input ResolveExchangeInput, returnedQty int32) {
	if input.RestockReturned && returnedQty > 0 {
		err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Stock().Release(ctx, tx.DB(), input.ReturnedVariantID, returnedQty)
		})
		if err != nil {
			e.logger.Error("failed to restock returned variant",
				"request_id", req.ID(), "variant_id", input.ReturnedVariantID, "error", err.Error())
		}
	}

	if replacement := req.ReplacementVariantID(); replacement != nil && returnedQty > 0 {
		err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Stock().Reserve(ctx, tx.DB(), *replacement, returnedQty)
		})
		if err != nil {
			e.logger.Error("failed to reserve replacement variant",
				"request_id", req.ID(), "variant_id", *replacement, "error", err.Error())
		}
	}
}

func itemQuantity(o *order.Order, variantID uuid.UUID) int32 {
	for _, it := range o.Items() {
		if it.VariantID() == variantID {
			return it.Quantity()
		}
	}
	return 0
}

func resolvedStatus(d exchange.Decision) exchange.Status {
	if d == exchange.DecisionApproved {
		return exchange.StatusCompleted
	}
	return exchange.StatusRejected
}

func toExchangeView(req *exchange.Request) *ExchangeRequestView {
	return &ExchangeRequestView{
		ID:                   req.ID(),
		OrderID:              req.OrderID(),
		Reason:               req.Reason(),
		Status:               req.Status().String(),
		AdminNotes:           req.AdminNotes(),
		ReplacementVariantID: req.ReplacementVariantID(),
	}
}
