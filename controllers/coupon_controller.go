package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

// ApplyCouponRequest carries the code and the cart amount it is applied to
type ApplyCouponRequest struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount"`
}

// ApplyCoupon checks a coupon against a cart amount and returns the
// discount terms. The discount itself is applied client-side and passed
// back as discount_amount at checkout, matching the storefront flow.
// POST /v1/coupons/apply
func ApplyCoupon(c *gin.Context) {
	utils.LogInfo("ApplyCoupon called")

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var coupon models.Coupon
	if err := config.DB.Where("code = ? AND is_active = ?", req.Code, true).First(&coupon).Error; err != nil {
		utils.LogError("Invalid or inactive coupon code: %s", req.Code)
		utils.NotFound(c, "Invalid coupon code")
		return
	}

	if coupon.ExpiryDate.Before(time.Now()) {
		utils.BadRequest(c, "Coupon has expired", nil)
		return
	}

	if req.Amount < coupon.MinPurchase {
		utils.BadRequest(c, fmt.Sprintf("Minimum purchase of %.2f required", coupon.MinPurchase), gin.H{
			"min_purchase": coupon.MinPurchase,
			"amount":       req.Amount,
		})
		return
	}

	utils.LogInfo("Coupon %s applied to amount %.2f", coupon.Code, req.Amount)
	utils.Success(c, "Coupon applied successfully", gin.H{
		"code":           coupon.Code,
		"discount_type":  coupon.DiscountType,
		"discount_value": coupon.DiscountValue,
	})
}

// CreateCoupon adds a coupon (staff only)
func CreateCoupon(c *gin.Context) {
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if coupon.Code == "" {
		utils.BadRequest(c, "Coupon code is required", nil)
		return
	}

	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.LogError("Failed to create coupon %s: %v", coupon.Code, err)
		utils.Conflict(c, "Failed to create coupon", err.Error())
		return
	}
	utils.Created(c, "Coupon created successfully", gin.H{"coupon": coupon})
}

// ListCoupons returns all coupons (staff only)
func ListCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := config.DB.Order("created_at desc").Find(&coupons).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch coupons", err.Error())
		return
	}
	utils.Success(c, "Coupons retrieved successfully", gin.H{"coupons": coupons})
}

// UpdateCoupon edits an existing coupon (staff only)
func UpdateCoupon(c *gin.Context) {
	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, couponID).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	delete(updates, "id")

	if err := config.DB.Model(&coupon).Updates(updates).Error; err != nil {
		utils.InternalServerError(c, "Failed to update coupon", err.Error())
		return
	}
	utils.Success(c, "Coupon updated successfully", gin.H{"coupon": coupon})
}

// DeleteCoupon removes a coupon (staff only)
func DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	if err := config.DB.Delete(&models.Coupon{}, couponID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete coupon", err.Error())
		return
	}
	utils.Success(c, "Coupon deleted successfully", nil)
}
