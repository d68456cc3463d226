package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

// GetSettings returns the singleton site settings row
// GET /v1/admin/settings
func GetSettings(c *gin.Context) {
	settings, err := utils.GetSiteSettings(config.DB)
	if err != nil {
		utils.LogError("Failed to load site settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch settings", err.Error())
		return
	}
	utils.Success(c, "Settings retrieved successfully", gin.H{"settings": settings})
}

// UpdateSettings edits the singleton settings row and drops the cached
// copy so the next read sees the new values
// PUT /v1/admin/settings
func UpdateSettings(c *gin.Context) {
	utils.LogInfo("UpdateSettings called")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	delete(updates, "id")

	if v, ok := updates["return_window_days"]; ok {
		if days, ok := v.(float64); !ok || days < 0 {
			utils.BadRequest(c, "return_window_days must be a non-negative number", nil)
			return
		}
	}

	// Ensure the singleton row exists before updating it
	if _, err := utils.GetSiteSettings(config.DB); err != nil {
		utils.InternalServerError(c, "Failed to fetch settings", err.Error())
		return
	}

	if err := config.DB.Model(&models.SiteSettings{}).
		Where("id = ?", models.SiteSettingsID).
		Updates(updates).Error; err != nil {
		utils.LogError("Failed to update site settings: %v", err)
		utils.InternalServerError(c, "Failed to update settings", err.Error())
		return
	}
	utils.InvalidateSiteSettingsCache()

	settings, err := utils.GetSiteSettings(config.DB)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch settings", err.Error())
		return
	}
	utils.LogInfo("Site settings updated")
	utils.Success(c, "Settings updated successfully", gin.H{"settings": settings})
}
