package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

// AddressRequest is the address book payload
type AddressRequest struct {
	StreetAddress string `json:"street_address" binding:"required"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" binding:"required"`
	Country       string `json:"country" binding:"required"`
	IsDefault     bool   `json:"is_default"`
}

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return models.User{}, false
	}
	return userVal.(models.User), true
}

// ListAddresses returns the caller's saved addresses
// GET /v1/addresses
func ListAddresses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("is_default desc, created_at desc").Find(&addresses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch addresses", err.Error())
		return
	}
	utils.Success(c, "Addresses retrieved successfully", gin.H{"addresses": addresses})
}

// CreateAddress saves a new address; marking it default demotes the old one
// POST /v1/addresses
func CreateAddress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	addr := models.Address{
		UserID:        user.ID,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		IsDefault:     req.IsDefault,
	}

	if req.IsDefault {
		if err := config.DB.Model(&models.Address{}).
			Where("user_id = ? AND is_default = ?", user.ID, true).
			Update("is_default", false).Error; err != nil {
			utils.InternalServerError(c, "Failed to save address", err.Error())
			return
		}
	}

	if err := config.DB.Create(&addr).Error; err != nil {
		utils.LogError("Failed to create address for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save address", err.Error())
		return
	}
	utils.Created(c, "Address saved successfully", gin.H{"address": addr})
}

// DeleteAddress removes one of the caller's addresses
// DELETE /v1/addresses/:id
func DeleteAddress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	res := config.DB.Where("id = ? AND user_id = ?", addressID, user.ID).Delete(&models.Address{})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to delete address", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Address not found")
		return
	}
	utils.Success(c, "Address deleted successfully", nil)
}
