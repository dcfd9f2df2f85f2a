package bootstrap

import (
	"context"
	"log/slog"

	"order-engine/internal/pkg/clock"
	"order-engine/internal/pkg/config"
	"order-engine/internal/usecase/commands"
	"order-engine/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewExpirationSweeper,
	),
	fx.Invoke(
		registerSweeperLifecycle,
	),
)

func NewExpirationSweeper(sweep commands.SweepCommands, clk clock.Clock, cfg config.Config, logger *slog.Logger) *worker.ExpirationSweeper {
	return worker.NewExpirationSweeper(sweep, clk, cfg.Orders.SweepInterval, logger)
}

func registerSweeperLifecycle(lc fx.Lifecycle, sweeper *worker.ExpirationSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
