package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

// CreateReturnRequestPayload is the customer-facing return form
type CreateReturnRequestPayload struct {
	OrderID  uint   `json:"order_id" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	ImageURL string `json:"image_url"`
}

// CreateReturnRequest opens a return for a delivered order. Eligibility
// is checked against the configured return window before anything is
// written; an ineligible order gets a typed rejection and no row.
// POST /v1/returns
func CreateReturnRequest(c *gin.Context) {
	utils.LogInfo("CreateReturnRequest called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	user := userVal.(models.User)

	var req CreateReturnRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	settings, err := utils.GetSiteSettings(config.DB)
	if err != nil {
		utils.LogError("Failed to load site settings: %v", err)
		utils.InternalServerError(c, "Failed to process return request", err.Error())
		return
	}

	if err := utils.CheckReturnEligibility(&order, user.ID, settings.ReturnWindowDays, time.Now()); err != nil {
		utils.LogError("Return rejected for order %d (user %d): %v", order.ID, user.ID, err)
		utils.RespondWithError(c, err)
		return
	}

	var existing models.ReturnRequest
	if err := config.DB.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
		utils.Conflict(c, "A return request already exists for this order", gin.H{
			"return_id": existing.ID,
			"status":    existing.Status,
		})
		return
	}

	ret := models.ReturnRequest{
		OrderID:  order.ID,
		UserID:   user.ID,
		Reason:   req.Reason,
		ImageURL: req.ImageURL,
		Status:   models.ReturnStatusPending,
	}
	if err := config.DB.Create(&ret).Error; err != nil {
		utils.LogError("Failed to create return request for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to create return request", err.Error())
		return
	}

	utils.LogInfo("Return request %d created for order %d", ret.ID, order.ID)
	utils.Created(c, "Return request submitted successfully", gin.H{"return_request": ret})
}

// ListReturnRequests shows the caller's returns; staff see all of them
// GET /v1/returns
func ListReturnRequests(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	user := userVal.(models.User)

	query := config.DB.Preload("Order").Order("created_at desc")
	if !user.IsStaff {
		query = query.Where("user_id = ?", user.ID)
	}

	var returns []models.ReturnRequest
	if err := query.Find(&returns).Error; err != nil {
		utils.LogError("Failed to fetch return requests for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch return requests", err.Error())
		return
	}
	utils.Success(c, "Return requests retrieved successfully", gin.H{"return_requests": returns})
}

// GetReturnRequest fetches one return; owners and staff only
// GET /v1/returns/:id
func GetReturnRequest(c *gin.Context) {
	returnID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid return request ID", nil)
		return
	}

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	user := userVal.(models.User)

	var ret models.ReturnRequest
	if err := config.DB.Preload("Order").First(&ret, returnID).Error; err != nil {
		utils.NotFound(c, "Return request not found")
		return
	}
	if !user.IsStaff && ret.UserID != user.ID {
		utils.Forbidden(c, "You can only view your own return requests")
		return
	}
	utils.Success(c, "Return request retrieved successfully", gin.H{"return_request": ret})
}
