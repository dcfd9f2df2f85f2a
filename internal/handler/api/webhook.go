package api

import (
	"errors"
	"net/http"

	reqdto "order-engine/internal/handler/dto/request"
	resdto "order-engine/internal/handler/dto/response"
	"order-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	payments commands.PaymentCommands
}

func NewWebhookHandler(payments commands.PaymentCommands) *WebhookHandler {
	return &WebhookHandler{payments: payments}
}

// PaymentWebhook absorbs gateway notifications. Every absorbed outcome,
// including replays and conflicts, answers 200 so the gateway stops
// redelivering; only transport or storage failures answer 5xx and trigger a
// retry on the gateway side.
func (h *WebhookHandler) PaymentWebhook(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid webhook payload",
		})
		return
	}

	if req.OrderID == nil && req.PaymentReference == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Either order_id or payment_reference is required",
		})
		return
	}

	ack, err := h.payments.ApplyPaymentEvent(c.Request.Context(), req.ToEvent())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrInvalidPaymentEvent):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid payment event",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAck(ack))
}
