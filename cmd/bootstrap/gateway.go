package bootstrap

import (
	"order-engine/internal/infra/gateway"
	"order-engine/internal/pkg/config"
	"order-engine/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewPaymentGateway(cfg config.Config) *gateway.RestyPaymentGateway {
	return gateway.NewRestyPaymentGateway(cfg.Payment)
}
