package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-ordering-api/addresses"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	svc *addresses.Service
}

func NewAddressHandler(svc *addresses.Service) *AddressHandler {
	return &AddressHandler{svc: svc}
}

type AddressRequest struct {
	Type         models.AddressType `json:"type" binding:"omitempty,oneof=home work other"`
	AddressLine1 string             `json:"address_line1" binding:"required"`
	AddressLine2 string             `json:"address_line2"`
	City         string             `json:"city" binding:"required"`
	State        string             `json:"state"`
	Pincode      string             `json:"pincode"`
	Latitude     float64            `json:"latitude" binding:"min=-90,max=90"`
	Longitude    float64            `json:"longitude" binding:"min=-180,max=180"`
}

func (r AddressRequest) input() addresses.Input {
	t := r.Type
	if t == "" {
		t = models.AddressHome
	}
	return addresses.Input{
		Type:         t,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}
}

func (h *AddressHandler) Add(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address, err := h.svc.Add(userID, req.input())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add address"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address added successfully", "address": address})
}

func (h *AddressHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.svc.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "addresses": list})
}

func (h *AddressHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}
	address, err := h.svc.Get(userID, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}

func (h *AddressHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address, err := h.svc.Update(userID, id, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully", "address": address})
}

func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}
	if err := h.svc.SetDefault(userID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Default address updated successfully"})
}

func (h *AddressHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}
	if err := h.svc.Delete(userID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}

func (h *AddressHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, addresses.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, addresses.ErrLastAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

func paramUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(v), err
}
