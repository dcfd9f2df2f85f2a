package api

import (
	"errors"
	"net/http"

	reqdto "order-engine/internal/handler/dto/request"
	resdto "order-engine/internal/handler/dto/response"
	"order-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExchangeHandler struct {
	exchanges commands.ExchangeCommands
}

func NewExchangeHandler(exchanges commands.ExchangeCommands) *ExchangeHandler {
	return &ExchangeHandler{exchanges: exchanges}
}

func (h *ExchangeHandler) RequestExchange(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	var req reqdto.RequestExchangeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.exchanges.RequestExchange(c.Request.Context(), orderID, req.Reason, req.ReplacementVariantID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrInvalidOrderState):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order is not eligible for an exchange",
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

	c.JSON(http.StatusCreated, resdto.FromExchangeView(view))
}

func (h *ExchangeHandler) ResolveExchange(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid exchange request ID format",
		})
		return
	}

	var req reqdto.ResolveExchangeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.exchanges.Resolve(c.Request.Context(), req.ToInput(requestID))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrExchangeNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Exchange request not found",
			})
		case errors.Is(err, commands.ErrExchangeAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Exchange request already resolved",
			})
		case errors.Is(err, commands.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order status no longer allows this resolution",
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

	c.JSON(http.StatusOK, resdto.FromExchangeView(view))
}
