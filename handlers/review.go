package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-ordering-api/middleware"
	"food-ordering-api/reviews"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc *reviews.Service
}

func NewReviewHandler(svc *reviews.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type CreateReviewRequest struct {
	RestaurantID   uint   `json:"restaurant_id" binding:"required"`
	OrderID        string `json:"order_id" binding:"required"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	FoodRating     int    `json:"food_rating" binding:"omitempty,min=1,max=5"`
	DeliveryRating int    `json:"delivery_rating" binding:"omitempty,min=1,max=5"`
	Comment        string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating         *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	FoodRating     *int    `json:"food_rating" binding:"omitempty,min=1,max=5"`
	DeliveryRating *int    `json:"delivery_rating" binding:"omitempty,min=1,max=5"`
	Comment        *string `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.svc.Create(userID, reviews.Input{
		RestaurantID:   req.RestaurantID,
		OrderID:        req.OrderID,
		Rating:         req.Rating,
		FoodRating:     req.FoodRating,
		DeliveryRating: req.DeliveryRating,
		Comment:        req.Comment,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully", "review": review})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.svc.Edit(userID, c.Param("reviewId"), reviews.Update{
		Rating:         req.Rating,
		FoodRating:     req.FoodRating,
		DeliveryRating: req.DeliveryRating,
		Comment:        req.Comment,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully"})
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.svc.Delete(userID, c.Param("reviewId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

func (h *ReviewHandler) ListForRestaurant(c *gin.Context) {
	restaurantID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	sort := c.DefaultQuery("sort", "newest")

	list, pagination, summary, err := h.svc.ListForRestaurant(restaurantID, page, limit, sort)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":    list,
		"pagination": pagination,
		"summary":    summary,
	})
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	list, pagination, err := h.svc.ListForUser(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list, "pagination": pagination})
}

func (h *ReviewHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reviews.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, reviews.ErrOrderNotEligible),
		errors.Is(err, reviews.ErrAlreadyReviewed),
		errors.Is(err, reviews.ErrWindowExpired),
		errors.Is(err, reviews.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
