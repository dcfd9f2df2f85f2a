package components

import (
	"log/slog"

	"order-engine/internal/domain/order"
	"order-engine/internal/pkg/clock"
	"order-engine/internal/pkg/config"
	"order-engine/internal/usecase/commands"
	"order-engine/internal/usecase/queries"
	"order-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clk clock.Clock) *order.Services {
		return &order.Services{
			Clock: clk,
		}
	},
	fx.Annotate(
		func(cfg config.Config) *commands.FlatRateFreightQuoter {
			return commands.NewFlatRateFreightQuoter(cfg.Orders.FlatFreightCents)
		},
		fx.As(new(commands.FreightQuoter)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutCommands,
		commands.NewPaymentCommands,
		commands.NewExchangeCommands,
		commands.NewFulfillmentCommands,
		commands.NewInventoryCommands,
		NewSweepCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

func NewSweepCommands(uow shared.UnitOfWork, cfg config.Config, logger *slog.Logger) commands.SweepCommands {
	return commands.NewSweepCommands(uow, cfg.Orders.SweepBatchSize, logger)
}
