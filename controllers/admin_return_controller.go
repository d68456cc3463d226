package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

// ReviewReturnRequest approves or rejects a pending return and notifies
// the customer. Decisions are final; a decided return cannot be re-reviewed.
// PUT /v1/admin/returns/:id
func ReviewReturnRequest(c *gin.Context) {
	utils.LogInfo("ReviewReturnRequest called")

	returnID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid return request ID", nil)
		return
	}

	var req struct {
		Status    string `json:"status" binding:"required,oneof=Approved Rejected"`
		AdminNote string `json:"admin_note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. status must be Approved or Rejected", err.Error())
		return
	}

	var ret models.ReturnRequest
	if err := config.DB.Preload("Order").First(&ret, returnID).Error; err != nil {
		utils.NotFound(c, "Return request not found")
		return
	}
	if ret.Status != models.ReturnStatusPending {
		utils.BadRequest(c, "Return request has already been reviewed", gin.H{"status": ret.Status})
		return
	}

	ret.Status = req.Status
	ret.AdminNote = req.AdminNote
	if err := config.DB.Model(&ret).Updates(map[string]interface{}{
		"status":     req.Status,
		"admin_note": req.AdminNote,
	}).Error; err != nil {
		utils.LogError("Failed to update return request %d: %v", ret.ID, err)
		utils.InternalServerError(c, "Failed to update return request", err.Error())
		return
	}
	utils.LogInfo("Return request %d marked %s", ret.ID, req.Status)

	var user models.User
	if err := config.DB.First(&user, ret.UserID).Error; err != nil {
		utils.LogError("Failed to load user %d for return notification: %v", ret.UserID, err)
	} else {
		utils.SendReturnStatusUpdate(&ret, &user)
	}

	utils.Success(c, "Return request updated successfully", gin.H{"return_request": ret})
}
