package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/orders"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc *orders.Service
}

func NewOrderHandler(svc *orders.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type CreateOrderRequest struct {
	AddressID           uint                 `json:"address_id" binding:"required"`
	PaymentMethod       models.PaymentMethod `json:"payment_method" binding:"required,oneof=cash card upi wallet"`
	SpecialInstructions string               `json:"special_instructions"`
}

// Create places an order from the caller's cart
func (h *OrderHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	placed, err := h.svc.Create(userID, req.AddressID, req.PaymentMethod, req.SpecialInstructions)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":                 "Order placed successfully",
		"order_id":                placed.OrderID,
		"total_amount":            placed.TotalAmount,
		"estimated_delivery_time": placed.EstimatedDeliveryTime,
		"status":                  placed.Status,
	})
}

// List returns the caller's order history
func (h *OrderHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := c.Query("status")

	summaries, pagination, err := h.svc.List(userID, status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": summaries, "pagination": pagination})
}

// Get returns a single order's full detail with tracking
func (h *OrderHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	detail, err := h.svc.Get(userID, c.Param("orderId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": detail})
}

// Cancel cancels a placed or confirmed order
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.svc.Cancel(userID, c.Param("orderId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully"})
}

func (h *OrderHandler) fail(c *gin.Context, err error) {
	var unavailable *orders.ItemUnavailableError
	var minOrder *orders.MinimumOrderError
	switch {
	case errors.Is(err, orders.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrRestaurantClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &unavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Item is currently unavailable",
			"unavailable_items": unavailable.Names,
		})
	case errors.Is(err, orders.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &minOrder):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":            "Order amount is below minimum requirement",
			"min_order_amount": minOrder.Required,
		})
	case errors.Is(err, orders.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrOrderCannotBeCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
