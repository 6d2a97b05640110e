package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/pricing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PublicHandler serves the unauthenticated restaurant/menu browse
// endpoints.
type PublicHandler struct {
	db            *gorm.DB
	maxDistanceKm float64
}

func NewPublicHandler(db *gorm.DB, maxDistanceKm float64) *PublicHandler {
	return &PublicHandler{db: db, maxDistanceKm: maxDistanceKm}
}

type restaurantSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Cuisine     string  `json:"cuisine"`
	Rating      float64 `json:"rating"`
	MinOrder    float64 `json:"min_order"`
	DeliveryFee float64 `json:"delivery_fee"`
	Image       string  `json:"image"`
	IsOpen      bool    `json:"is_open"`
	Distance    string  `json:"distance,omitempty"`
	ETARange    string  `json:"avg_delivery_time,omitempty"`

	distanceKm float64
}

// ListRestaurants returns open restaurants matching the filters,
// sorted by distance when client coordinates are supplied.
func (h *PublicHandler) ListRestaurants(c *gin.Context) {
	query := h.db.Where("is_open = ?", true)

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if c.Query("veg_only") == "true" {
		query = query.Where("is_veg_only = ?", true)
	}
	if rating := c.Query("rating"); rating != "" {
		query = query.Where("rating >= ?", rating)
	}

	var restaurants []models.Restaurant
	if err := query.Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	hasCoords := latErr == nil && lngErr == nil
	radius := h.maxDistanceKm
	if r, err := strconv.ParseFloat(c.Query("radius"), 64); err == nil {
		radius = r
	}

	summaries := make([]restaurantSummary, 0, len(restaurants))
	now := time.Now()
	for _, r := range restaurants {
		s := restaurantSummary{
			ID:          r.ID,
			Name:        r.Name,
			Cuisine:     r.Cuisine,
			Rating:      r.Rating,
			MinOrder:    r.MinOrderAmount,
			DeliveryFee: r.DeliveryFee,
			Image:       r.ImageURL,
			IsOpen:      pricing.OpenNow(r.OpeningTime, r.ClosingTime, now),
		}
		if hasCoords {
			s.distanceKm = pricing.Distance(lat, lng, r.Latitude, r.Longitude)
			if s.distanceKm > radius {
				continue
			}
			s.Distance = fmt.Sprintf("%.1f km", s.distanceKm)
			eta := pricing.EstimatedDelivery(r.AvgPreparationTime, s.distanceKm, now)
			s.ETARange = eta.TimeRange
		}
		summaries = append(summaries, s)
	}
	if hasCoords {
		sort.Slice(summaries, func(i, j int) bool {
			return summaries[i].distanceKm < summaries[j].distanceKm
		})
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	p := pricing.Paginate(page, limit, len(summaries))
	start := p.Offset
	if start > len(summaries) {
		start = len(summaries)
	}
	end := start + p.Limit
	if end > len(summaries) {
		end = len(summaries)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       end - start,
		"total":       len(summaries),
		"pagination":  p,
		"restaurants": summaries[start:end],
	})
}

// GetRestaurant returns a restaurant's detail with its menu grouped by
// category.
func (h *PublicHandler) GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.db.Preload("MenuItems").First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	grouped := map[string][]models.MenuItem{}
	var categories []string
	for _, item := range restaurant.MenuItems {
		category := item.Category
		if category == "" {
			category = "Others"
		}
		if _, seen := grouped[category]; !seen {
			categories = append(categories, category)
		}
		grouped[category] = append(grouped[category], item)
	}
	sort.Strings(categories)

	menu := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		menu = append(menu, gin.H{"category": category, "items": grouped[category]})
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": gin.H{
			"id":                   restaurant.ID,
			"name":                 restaurant.Name,
			"description":          restaurant.Description,
			"cuisine":              restaurant.Cuisine,
			"rating":               restaurant.Rating,
			"total_reviews":        restaurant.TotalReviews,
			"address":              restaurant.AddressLine1 + ", " + restaurant.City,
			"operating_hours":      gin.H{"opening": restaurant.OpeningTime, "closing": restaurant.ClosingTime},
			"min_order":            restaurant.MinOrderAmount,
			"delivery_fee":         restaurant.DeliveryFee,
			"avg_preparation_time": restaurant.AvgPreparationTime,
			"is_open":              pricing.OpenNow(restaurant.OpeningTime, restaurant.ClosingTime, time.Now()),
			"phone":                restaurant.Phone,
			"email":                restaurant.Email,
		},
		"menu": menu,
	})
}

// GetMenu returns the menu for a specific restaurant
func (h *PublicHandler) GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := h.db.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	query := h.db.Where("restaurant_id = ?", restaurantID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("is_veg") == "true" {
		query = query.Where("is_veg = ?", true)
	}

	var items []models.MenuItem
	query.Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}
