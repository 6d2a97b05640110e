package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/cart"
	"food-ordering-api/middleware"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	svc *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type AddToCartRequest struct {
	RestaurantID        uint   `json:"restaurant_id" binding:"required"`
	ItemID              uint   `json:"item_id" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"special_instructions"`
}

type UpdateCartItemRequest struct {
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

func (h *CartHandler) Add(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	totals, err := h.svc.AddItem(userID, req.RestaurantID, req.ItemID, req.Quantity, req.SpecialInstructions)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Item added to cart",
		"cart_total": totals.Total,
		"item_count": totals.ItemCount,
	})
}

func (h *CartHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	snap, err := h.svc.Get(userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if snap.Empty() {
		c.JSON(http.StatusOK, gin.H{"message": "Cart is empty", "cart": snap})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": snap})
}

func (h *CartHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	lineID, err := paramUint(c, "itemId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	totals, err := h.svc.UpdateItem(userID, lineID, req.Quantity, req.SpecialInstructions)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Item updated in cart",
		"cart_total": totals.Total,
		"item_count": totals.ItemCount,
	})
}

func (h *CartHandler) Remove(c *gin.Context) {
	userID := middleware.GetUserID(c)
	lineID, err := paramUint(c, "itemId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
		return
	}
	totals, err := h.svc.RemoveItem(userID, lineID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Item removed from cart",
		"cart_total": totals.Total,
		"item_count": totals.ItemCount,
	})
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.svc.Clear(userID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully", "cart_total": 0, "item_count": 0})
}

func (h *CartHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrItemNotFound), errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrItemUnavailable),
		errors.Is(err, cart.ErrRestaurantClosed),
		errors.Is(err, cart.ErrRestaurantMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
