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

// Ack reports how an event was absorbed. The webhook always gets a success
// response for any of these outcomes so the gateway stops redelivering.
type Ack struct {
	OrderID uuid.UUID
	// Replayed: the event id was already applied (at-least-once redelivery).
	Replayed bool
	// Applied: this delivery performed a status transition.
	Applied bool
	// Conflict: payment approved after the order was already canceled and its
	// stock released. Flagged for manual operator review, never auto-resolved.
	Conflict bool
}

type PaymentCommands interface {
	ApplyPaymentEvent(ctx context.Context, event PaymentEvent) (*Ack, error)
	// VerifyNow is the customer-initiated poll: asks the gateway for the
	// current status and routes it through ApplyPaymentEvent.
	VerifyNow(ctx context.Context, orderID uuid.UUID) (*Ack, error)
}

type paymentUseCaseImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	logger  *slog.Logger
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway PaymentGateway, logger *slog.Logger) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:     uow,
		gateway: gateway,
		logger:  logger,
	}
}

// ApplyPaymentEvent applies one gateway notification exactly once. The dedup
// insert and the status transition commit in the same transaction, so a crash
// between them cannot strand a half-applied event.
func (p *paymentUseCaseImpl) ApplyPaymentEvent(ctx context.Context, event PaymentEvent) (*Ack, error) {
	if event.EventID == "" || !event.ReportedStatus.IsValid() {
		return nil, ErrInvalidPaymentEvent
	}

	ack := &Ack{}

	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		orderID := event.OrderID
		if orderID == uuid.Nil {
			id, err := tx.Orders().FindIDByPaymentReference(ctx, tx.DB(), event.PaymentReference)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrOrderNotFound)
				}
				return err
			}
			orderID = id
		}
		ack.OrderID = orderID

		applied, err := tx.PaymentEvents().TryInsert(
			ctx, tx.DB(), event.EventID, orderID, string(event.ReportedStatus), event.ObservedAt)
		if err != nil {
			return err
		}
		if !applied {
			ack.Replayed = true
			return nil
		}

		switch event.ReportedStatus {
		case ReportedApproved:
			return p.applyApproved(ctx, tx, orderID, event, ack)
		case ReportedRejected:
			return p.applyRejected(ctx, tx, orderID, ack)
		default:
			// PENDING/UNKNOWN carry no transition; the dedup row doubles as
			// the audit record for polling back-off.
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return ack, nil
}

func (p *paymentUseCaseImpl) applyApproved(ctx context.Context, tx shared.Tx, orderID uuid.UUID, event PaymentEvent, ack *Ack) error {
	err := transition(ctx, tx, orderID, []order.Status{order.StatusPending}, order.StatusPaid)
	if err == nil {
		ack.Applied = true
		return nil
	}
	if !infra.IsKind(err, infra.KindStaleState) {
		return err
	}

	// Lost the compare-and-set. Whether this is benign depends on who won.
	o, findErr := tx.Orders().FindByID(ctx, tx.DB(), orderID)
	if findErr != nil {
		return findErr
	}

	if o.Status() == order.StatusCanceled {
		// The sweeper canceled the order and released its stock before the
		// approval landed; the stock may already be resold. Re-decrementing
		// here could oversell, so the case goes to a human instead.
		ack.Conflict = true
		p.logger.Error("reconciliation conflict: payment approved for canceled order",
			"order_id", orderID,
			"event_id", event.EventID,
			"payment_reference", event.PaymentReference,
			"observed_at", event.ObservedAt,
			"order_status", o.Status().String(),
			"total_cents", o.TotalCents(),
		)
		return nil
	}

	// Already PAID (or further along): another delivery path won the same
	// outcome. Nothing to compensate.
	ack.Replayed = true
	return nil
}

func (p *paymentUseCaseImpl) applyRejected(ctx context.Context, tx shared.Tx, orderID uuid.UUID, ack *Ack) error {
	err := transition(ctx, tx, orderID, []order.Status{order.StatusPending}, order.StatusCanceled)
	if err != nil {
		if infra.IsKind(err, infra.KindStaleState) {
			// Order already left PENDING (paid or expired); the winner's
			// stock bookkeeping stands.
			ack.Replayed = true
			return nil
		}
		return err
	}

	// Symmetric with expiration: the rejection releases what checkout
	// reserved. The compare-and-set above guarantees this runs once.
	o, err := tx.Orders().FindByID(ctx, tx.DB(), orderID)
	if err != nil {
		return err
	}
	for _, it := range o.Items() {
		if err := tx.Stock().Release(ctx, tx.DB(), it.VariantID(), it.Quantity()); err != nil {
			return err
		}
	}
	ack.Applied = true
	return nil
}

func (p *paymentUseCaseImpl) VerifyNow(ctx context.Context, orderID uuid.UUID) (*Ack, error) {
	var reference string
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOrderNotFound)
			}
			return err
		}
		if o.PaymentReference() == nil {
			return ErrNoPaymentReference
		}
		reference = *o.PaymentReference()
		return nil
	})
	if err != nil {
		return nil, err
	}

	status, err := p.gateway.FetchStatus(ctx, reference)
	if err != nil {
		return nil, err
	}

	return p.ApplyPaymentEvent(ctx, PaymentEvent{
		EventID:          status.EventID,
		OrderID:          orderID,
		PaymentReference: reference,
		ReportedStatus:   status.ReportedStatus,
		ObservedAt:       status.ObservedAt,
	})
}
