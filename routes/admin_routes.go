package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/controllers"
	"github.com/luxstore/backend/middleware"
)

// initAdminRoutes initializes all staff-only routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.StaffMiddleware())
	{
		// Order lifecycle
		admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)

		// Return review
		admin.PUT("/returns/:id", controllers.ReviewReturnRequest)

		// Coupon management
		admin.POST("/coupons", controllers.CreateCoupon)
		admin.GET("/coupons", controllers.ListCoupons)
		admin.PUT("/coupons/:id", controllers.UpdateCoupon)
		admin.DELETE("/coupons/:id", controllers.DeleteCoupon)

		// Reward rule management
		admin.POST("/coupon-rules", controllers.CreateCouponRule)
		admin.GET("/coupon-rules", controllers.ListCouponRules)
		admin.PUT("/coupon-rules/:id", controllers.UpdateCouponRule)
		admin.DELETE("/coupon-rules/:id", controllers.DeleteCouponRule)

		// Site settings
		admin.GET("/settings", controllers.GetSettings)
		admin.PUT("/settings", controllers.UpdateSettings)

		// Reports
		admin.GET("/reports/sales/export", controllers.DownloadSalesReportExcel)
	}
}
