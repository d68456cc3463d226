package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

// CouponRuleRequest is the staff payload for creating or updating a rule
type CouponRuleRequest struct {
	Name         string  `json:"name" binding:"required"`
	TriggerEvent string  `json:"trigger_event" binding:"required,oneof=LOGIN ORDER_OVER_AMOUNT"`
	MinAmount    float64 `json:"min_amount"`
	CouponID     uint    `json:"coupon_id" binding:"required"`
	StartDate    string  `json:"start_date" binding:"required"`
	EndDate      string  `json:"end_date" binding:"required"`
	IsActive     *bool   `json:"is_active"`
}

// CreateCouponRule adds a reward rule (staff only). The engine only ever
// reads these rows.
func CreateCouponRule(c *gin.Context) {
	utils.LogInfo("CreateCouponRule called")

	var req CouponRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	start, err := utils.ParseDateTime(req.StartDate)
	if err != nil {
		utils.BadRequest(c, "Invalid start_date", err.Error())
		return
	}
	end, err := utils.ParseDateTime(req.EndDate)
	if err != nil {
		utils.BadRequest(c, "Invalid end_date", err.Error())
		return
	}
	if end.Before(start) {
		utils.BadRequest(c, "end_date must be after start_date", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, req.CouponID).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	rule := models.CouponRule{
		Name:         req.Name,
		TriggerEvent: req.TriggerEvent,
		MinAmount:    req.MinAmount,
		CouponID:     req.CouponID,
		StartDate:    start,
		EndDate:      end,
		IsActive:     true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := config.DB.Create(&rule).Error; err != nil {
		utils.LogError("Failed to create coupon rule: %v", err)
		utils.InternalServerError(c, "Failed to create coupon rule", err.Error())
		return
	}
	utils.Created(c, "Coupon rule created successfully", gin.H{"rule": rule})
}

// ListCouponRules returns all rules (staff only)
func ListCouponRules(c *gin.Context) {
	var rules []models.CouponRule
	if err := config.DB.Preload("Coupon").Order("created_at desc").Find(&rules).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch coupon rules", err.Error())
		return
	}
	utils.Success(c, "Coupon rules retrieved successfully", gin.H{"rules": rules})
}

// UpdateCouponRule edits a rule (staff only)
func UpdateCouponRule(c *gin.Context) {
	ruleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid rule ID", nil)
		return
	}

	var rule models.CouponRule
	if err := config.DB.First(&rule, ruleID).Error; err != nil {
		utils.NotFound(c, "Coupon rule not found")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	delete(updates, "id")

	if err := config.DB.Model(&rule).Updates(updates).Error; err != nil {
		utils.InternalServerError(c, "Failed to update coupon rule", err.Error())
		return
	}
	utils.Success(c, "Coupon rule updated successfully", gin.H{"rule": rule})
}

// DeleteCouponRule removes a rule (staff only)
func DeleteCouponRule(c *gin.Context) {
	ruleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid rule ID", nil)
		return
	}

	if err := config.DB.Delete(&models.CouponRule{}, ruleID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete coupon rule", err.Error())
		return
	}
	utils.Success(c, "Coupon rule deleted successfully", nil)
}
