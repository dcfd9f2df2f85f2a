package api

import (
	"errors"
	"net/http"

	reqdto "order-engine/internal/handler/dto/request"
	resdto "order-engine/internal/handler/dto/response"
	"order-engine/internal/handler/middleware"
	"order-engine/internal/usecase/commands"
	"order-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	checkout     commands.CheckoutCommands
	payments     commands.PaymentCommands
	orderQueries queries.OrderQueries
}

func NewOrderHandler(
	checkout commands.CheckoutCommands,
	payments commands.PaymentCommands,
	orderQueries queries.OrderQueries,
) *OrderHandler {
	return &OrderHandler{
		checkout:     checkout,
		payments:     payments,
		orderQueries: orderQueries,
	}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), userID, req.AddressID, req.ToItems(), req.Method())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVariantNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Variant not found",
			})
		case errors.Is(err, commands.ErrOutOfStock):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Insufficient stock for one or more items",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPlaceOrderResult(result))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.orderQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.OrderListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromOrderListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	ack, err := h.payments.VerifyNow(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrNoPaymentReference):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order has no payment reference to verify",
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment verification failed",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAck(ack))
}
