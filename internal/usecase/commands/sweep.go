package commands

import (
	"context"
	"log/slog"
	"time"

	"order-engine/internal/domain/order"
	"order-engine/internal/infra"
	"order-engine/internal/usecase/shared"
)

type SweepReport struct {
	Candidates int
	Canceled   int
	Skipped    int
	Failed     int
}

type SweepCommands interface {
	// SweepExpired cancels PENDING orders whose reservation window lapsed and
	// restores their stock. Each candidate is processed independently; one
	// failure never aborts the batch.
	SweepExpired(ctx context.Context, now time.Time) (*SweepReport, error)
}

type sweepUseCaseImpl struct {
	uow       shared.UnitOfWork
	batchSize int32
	logger    *slog.Logger
}

func NewSweepCommands(uow shared.UnitOfWork, batchSize int32, logger *slog.Logger) SweepCommands {
	return &sweepUseCaseImpl{
		uow:       uow,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (s *sweepUseCaseImpl) SweepExpired(ctx context.Context, now time.Time) (*SweepReport, error) {
	var candidates []*order.Order
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		candidates, err = tx.Orders().ListExpiredPending(ctx, tx.DB(), now, s.batchSize)
		return err
	})
	if err != nil {
		return nil, err
	}

	report := &SweepReport{Candidates: len(candidates)}
	for _, o := range candidates {
		switch err := s.cancelOne(ctx, o); {
		case err == nil:
			report.Canceled++
		case infra.IsKind(err, infra.KindStaleState):
			// Paid in the same instant; the reconciler's success already left
			// stock correctly decremented.
			report.Skipped++
		default:
			// Logged and retried on the next tick; the compare-and-set guard
			// makes the retry safe.
			report.Failed++
			s.logger.Error("failed to cancel expired order",
				"order_id", o.ID(), "error", err.Error())
		}
	}

	return report, nil
}

func (s *sweepUseCaseImpl) cancelOne(ctx context.Context, o *order.Order) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := transition(ctx, tx, o.ID(), []order.Status{order.StatusPending}, order.StatusCanceled)
		if err != nil {
			return err
		}
		return releaseItems(ctx, tx, o)
	})
}

func releaseItems(ctx context.Context, tx shared.Tx, o *order.Order) error {
	for _, it := range o.Items() {
		if err := tx.Stock().Release(ctx, tx.DB(), it.VariantID(), it.Quantity()); err != nil {
			return err
		}
	}
	return nil
}
