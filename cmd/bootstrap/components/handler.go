package components

import (
	"order-engine/internal/handler"
	"order-engine/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewWebhookHandler,
		api.NewExchangeHandler,
		api.NewAdminHandler,
	),
	fx.Invoke(handler.NewRouter),
)
