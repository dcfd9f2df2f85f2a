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

type AdminHandler struct {
	fulfillment commands.FulfillmentCommands
	inventory   commands.InventoryCommands
}

func NewAdminHandler(fulfillment commands.FulfillmentCommands, inventory commands.InventoryCommands) *AdminHandler {
	return &AdminHandler{
		fulfillment: fulfillment,
		inventory:   inventory,
	}
}

func (h *AdminHandler) ShipOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	if err := h.fulfillment.ShipOrder(c.Request.Context(), orderID); err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrInvalidOrderState):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Only paid orders can be shipped",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) MarkReturned(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	var req reqdto.MarkReturnedRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.fulfillment.MarkReturned(c.Request.Context(), orderID, req.Restock); err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrInvalidOrderState):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order cannot be returned from its current status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) RegisterVariant(c *gin.Context) {
	var req reqdto.RegisterVariantRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	available, err := h.inventory.RegisterVariant(c.Request.Context(), req.VariantID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStockQuantity):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Stock quantity must be positive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.VariantStockResponse{
		VariantID:         req.VariantID,
		QuantityAvailable: available,
	})
}
