package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"order-engine/internal/pkg/clock"
	"order-engine/internal/usecase/commands"
)

// ExpirationSweeper owns the periodic cancellation of unpaid PENDING orders.
// The loop is started and stopped explicitly so shutdown is clean and tests
// can drive RunOnce with a mock clock instead of waiting on a live ticker.
type ExpirationSweeper struct {
	sweep    commands.SweepCommands
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewExpirationSweeper(sweep commands.SweepCommands, clk clock.Clock, interval time.Duration, logger *slog.Logger) *ExpirationSweeper {
	return &ExpirationSweeper{
		sweep:    sweep,
		clock:    clk,
		interval: interval,
		logger:   logger,
	}
}

func (s *ExpirationSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
	s.logger.Info("expiration sweeper started", "interval", s.interval.String())
}

func (s *ExpirationSweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("expiration sweeper stopped")
}

func (s *ExpirationSweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single sweep pass at the clock's current time.
func (s *ExpirationSweeper) RunOnce(ctx context.Context) {
	report, err := s.sweep.SweepExpired(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("sweep pass failed", "error", err.Error())
		return
	}
	if report.Candidates > 0 {
		s.logger.Info("sweep pass completed",
			"candidates", report.Candidates,
			"canceled", report.Canceled,
			"skipped", report.Skipped,
			"failed", report.Failed,
		)
	}
}
