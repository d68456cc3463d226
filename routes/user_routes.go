package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/controllers"
	"github.com/luxstore/backend/middleware"
)

// initUserRoutes initializes all customer-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)

	// Coupon check during cart review
	router.POST("/coupons/apply", controllers.ApplyCoupon)

	// Product reviews
	router.GET("/products/:slug/reviews", controllers.ListReviews)

	// Gateway callbacks are unauthenticated form posts from the payment
	// provider, never from the storefront
	payment := router.Group("/payment")
	{
		payment.POST("/success", controllers.PaymentSuccess)
		payment.POST("/fail", controllers.PaymentFail)
		payment.POST("/cancel", controllers.PaymentCancel)
	}

	// Checkout accepts guests; the optional middleware attaches the user
	// when a valid token is present
	orders := router.Group("/orders")
	orders.Use(middleware.OptionalAuthMiddleware())
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("", controllers.ListOrders)
		orders.GET("/:id", controllers.GetOrder)
	}
	router.POST("/payment/init", controllers.InitPayment)

	// Protected routes (require authentication)
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		protected.POST("/returns", controllers.CreateReturnRequest)
		protected.GET("/returns", controllers.ListReturnRequests)
		protected.GET("/returns/:id", controllers.GetReturnRequest)

		protected.POST("/products/:slug/reviews", controllers.CreateReview)

		protected.GET("/addresses", controllers.ListAddresses)
		protected.POST("/addresses", controllers.CreateAddress)
		protected.DELETE("/addresses/:id", controllers.DeleteAddress)
	}
}
