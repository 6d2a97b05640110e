package main

import (
	"log"
	"net/http"
	"os"

	"food-ordering-api/addresses"
	"food-ordering-api/cart"
	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/orders"
	"food-ordering-api/payments"
	"food-ordering-api/reviews"
	"food-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	cfg := config.Load()

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.RequestID())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Ordering API",
			"version": "1.0.0",
		})
	})

	// Wire services and register all routes
	routes.SetupRoutes(r, routes.Handlers{
		Auth:      handlers.NewAuthHandler(db, cfg.JWTSecret, cfg.JWTExpiry),
		Public:    handlers.NewPublicHandler(db, cfg.MaxDistanceKm),
		Address:   handlers.NewAddressHandler(addresses.NewService(db)),
		Cart:      handlers.NewCartHandler(cart.NewService(db)),
		Order:     handlers.NewOrderHandler(orders.NewService(db, cfg.TaxRatePct, cfg.PerKmFee)),
		Payment:   handlers.NewPaymentHandler(payments.NewService(db, payments.RandomGateway{}, cfg.RefundWindow)),
		Review:    handlers.NewReviewHandler(reviews.NewService(db, cfg.ReviewWindow)),
		JWTSecret: cfg.JWTSecret,
	})

	// Start server
	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
