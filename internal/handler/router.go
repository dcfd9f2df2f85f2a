package handler

import (
	"log/slog"
	"net/http"

	"order-engine/internal/handler/api"
	"order-engine/internal/handler/middleware"
	"order-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	orderHandler *api.OrderHandler,
	webhookHandler *api.WebhookHandler,
	exchangeHandler *api.ExchangeHandler,
	adminHandler *api.AdminHandler,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, orderHandler, webhookHandler, exchangeHandler, adminHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	orderHandler *api.OrderHandler,
	webhookHandler *api.WebhookHandler,
	exchangeHandler *api.ExchangeHandler,
	adminHandler *api.AdminHandler,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/webhooks/payment", Handler: webhookHandler.PaymentWebhook,
				Mw: []gin.HandlerFunc{middleware.WebhookSignature(cfg.Payment.WebhookSecret)}},
		})

		orders := apiGroup.Group("/orders")
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: orderHandler.ListOrders,
					Mw: []gin.HandlerFunc{middleware.RequireUserID()}},
				{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.GetOrder},
				{Method: http.MethodPost, Path: "/:id/verify-payment", Handler: orderHandler.VerifyPayment},
				{Method: http.MethodPost, Path: "/:id/exchange", Handler: exchangeHandler.RequestExchange},
				{Method: http.MethodPost, Path: "/:id/ship", Handler: adminHandler.ShipOrder},
				{Method: http.MethodPost, Path: "/:id/return", Handler: adminHandler.MarkReturned},
			})
		}

		checkout := apiGroup.Group("/checkout")
		checkout.Use(middleware.RequireUserID())
		{
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "", Handler: orderHandler.Checkout},
			})
		}

		exchanges := apiGroup.Group("/exchanges")
		{
			addRoutes(exchanges, []route{
				{Method: http.MethodPost, Path: "/:id/resolve", Handler: exchangeHandler.ResolveExchange},
			})
		}

		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/variants", Handler: adminHandler.RegisterVariant},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
