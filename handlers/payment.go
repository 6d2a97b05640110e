package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/payments"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc *payments.Service
}

func NewPaymentHandler(svc *payments.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type ProcessPaymentRequest struct {
	OrderID       string               `json:"order_id" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required,oneof=cash card upi wallet"`
	CardDetails   *struct {
		CardNumber string `json:"card_number"`
		CardType   string `json:"card_type"`
	} `json:"card_details"`
}

type RefundRequest struct {
	Reason string `json:"reason"`
}

func (h *PaymentHandler) Process(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var card *payments.CardDetails
	if req.CardDetails != nil {
		card = &payments.CardDetails{CardType: req.CardDetails.CardType}
		if n := req.CardDetails.CardNumber; len(n) >= 4 {
			card.LastFour = n[len(n)-4:]
		}
	}

	receipt, err := h.svc.Process(userID, req.OrderID, req.PaymentMethod, card)
	if err != nil {
		h.fail(c, err)
		return
	}

	message := "Payment processed successfully"
	if receipt.Status == models.PaymentFailed {
		message = "Payment failed"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "payment": receipt})
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Refund(userID, c.Param("paymentId"), req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}

	message := "Refund processed successfully"
	if result.Status != models.PaymentRefunded {
		message = "Refund processing failed"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "refund": result})
}

func (h *PaymentHandler) History(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, pagination, err := h.svc.History(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": entries, "pagination": pagination})
}

func (h *PaymentHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	payment, err := h.svc.Get(userID, c.Param("paymentId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

func (h *PaymentHandler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"payment_methods": payments.Methods(),
		"default_method":  models.PaymentCard,
	})
}

func (h *PaymentHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payments.ErrOrderNotFound), errors.Is(err, payments.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, payments.ErrAlreadyPaid),
		errors.Is(err, payments.ErrNotRefundable),
		errors.Is(err, payments.ErrRefundWindowExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
