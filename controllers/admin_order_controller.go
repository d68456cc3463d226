package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// UpdateOrderStatus lets staff move an order through its lifecycle.
// DeliveredAt is stamped exactly once, on the first transition to
// Delivered; later edits to the order no longer reset the return clock.
// PUT /v1/admin/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if !validOrderStatuses[req.Status] {
		utils.BadRequest(c, "Invalid order status", gin.H{"status": req.Status})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	order.Status = req.Status
	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.OrderStatusDelivered && order.DeliveredAt == nil {
		now := time.Now()
		updates["delivered_at"] = &now
		order.DeliveredAt = &now
	}

	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update order %d status: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order status", err.Error())
		return
	}
	utils.LogInfo("Order %d status updated to %s", order.ID, req.Status)

	utils.SendOrderStatusUpdate(&order)

	utils.Success(c, "Order status updated successfully", gin.H{
		"order_id":     order.ID,
		"status":       order.Status,
		"delivered_at": order.DeliveredAt,
	})
}
