package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes wires into the engine.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Public    *handlers.PublicHandler
	Address   *handlers.AddressHandler
	Cart      *handlers.CartHandler
	Order     *handlers.OrderHandler
	Payment   *handlers.PaymentHandler
	Review    *handlers.ReviewHandler
	JWTSecret []byte
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)

		public.GET("/restaurants", h.Public.ListRestaurants)
		public.GET("/restaurants/:id", h.Public.GetRestaurant)
		public.GET("/restaurants/:id/menu", h.Public.GetMenu)
		public.GET("/restaurants/:id/reviews", h.Review.ListForRestaurant)

		public.GET("/payments/methods", h.Payment.Methods)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(h.JWTSecret))
	{
		auth.GET("/profile", h.Auth.GetProfile)

		auth.POST("/addresses", h.Address.Add)
		auth.GET("/addresses", h.Address.List)
		auth.GET("/addresses/:id", h.Address.Get)
		auth.PUT("/addresses/:id", h.Address.Update)
		auth.PUT("/addresses/:id/default", h.Address.SetDefault)
		auth.DELETE("/addresses/:id", h.Address.Delete)

		auth.POST("/cart", h.Cart.Add)
		auth.GET("/cart", h.Cart.Get)
		auth.PUT("/cart/:itemId", h.Cart.Update)
		auth.DELETE("/cart/:itemId", h.Cart.Remove)
		auth.DELETE("/cart", h.Cart.Clear)

		auth.POST("/orders", h.Order.Create)
		auth.GET("/orders", h.Order.List)
		auth.GET("/orders/:orderId", h.Order.Get)
		auth.PUT("/orders/:orderId/cancel", h.Order.Cancel)

		auth.POST("/payments", h.Payment.Process)
		auth.GET("/payments", h.Payment.History)
		auth.GET("/payments/:paymentId", h.Payment.Get)
		auth.POST("/payments/:paymentId/refund", h.Payment.Refund)

		auth.POST("/reviews", h.Review.Create)
		auth.GET("/reviews", h.Review.ListMine)
		auth.PUT("/reviews/:reviewId", h.Review.Update)
		auth.DELETE("/reviews/:reviewId", h.Review.Delete)
	}
}
