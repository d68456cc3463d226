package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

const gatewayName = "SSLCommerz"

// Gateway is the payment client used by the handlers; tests point it at a
// local httptest server.
var Gateway = utils.NewGatewayClient()

// InitPayment creates a hosted-payment session for an order and returns
// the gateway page URL
// POST /v1/payment/init
func InitPayment(c *gin.Context) {
	utils.LogInfo("InitPayment called")

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. order_id is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.IsPaid {
		utils.BadRequest(c, "Payment for this order has already been completed", nil)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.InternalServerError(c, "Failed to load configuration", err.Error())
		return
	}

	tranID := utils.BuildTransactionID(order.ID)

	gatewayURL, err := Gateway.InitiateSession(&order, tranID, cfg.BackendURL)
	if err != nil {
		var initErr *utils.PaymentInitError
		if errors.As(err, &initErr) {
			utils.LogError("Payment init failed for order ID: %d: %v", order.ID, initErr)
			utils.BadRequest(c, "Failed to initiate payment", gin.H{
				"reason":  initErr.Reason,
				"details": initErr.Details,
			})
			return
		}
		utils.InternalServerError(c, "Failed to initiate payment", err.Error())
		return
	}

	utils.LogInfo("Created gateway session for order ID: %d, tran_id: %s", order.ID, tranID)
	utils.Success(c, "Payment session created", gin.H{"gateway_url": gatewayURL})
}

// PaymentSuccess is the gateway's success callback. It is unauthenticated
// and must never leak a raw error to the gateway client: every failure
// path collapses to the error redirect. The paid transition is idempotent;
// a replayed callback for an already-paid order changes nothing.
// POST /v1/payment/success
func PaymentSuccess(c *gin.Context) {
	utils.LogInfo("PaymentSuccess callback received")

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Failed to load configuration: %v", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	tranID := c.PostForm("tran_id")
	valID := c.PostForm("val_id")

	orderID, err := utils.ParseOrderIDFromTransaction(tranID)
	if err != nil {
		utils.LogError("Failed to parse transaction id %q: %v", tranID, err)
		redirectToStatus(c, cfg.FrontendURL, "error")
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.LogError("Order %d from transaction %q not found: %v", orderID, tranID, err)
		redirectToStatus(c, cfg.FrontendURL, "error")
		return
	}

	if order.IsPaid {
		utils.LogInfo("Order %d already paid, callback is a no-op", order.ID)
		redirectToStatus(c, cfg.FrontendURL, "success")
		return
	}

	// Server-to-server confirmation before the callback is trusted
	if cfg.SSLValidate {
		valid, err := Gateway.ValidateTransaction(valID)
		if err != nil || !valid {
			utils.LogError("Gateway validation failed for order %d (val_id %q): valid=%v err=%v",
				order.ID, valID, valid, err)
			redirectToStatus(c, cfg.FrontendURL, "error")
			return
		}
	}

	// Guarded update keeps a concurrent replay from double-advancing
	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND is_paid = ?", order.ID, false).
		Updates(map[string]interface{}{
			"is_paid":        true,
			"payment_method": gatewayName,
			"status":         models.OrderStatusProcessing,
		})
	if res.Error != nil {
		utils.LogError("Failed to mark order %d paid: %v", order.ID, res.Error)
		redirectToStatus(c, cfg.FrontendURL, "error")
		return
	}
	if res.RowsAffected > 0 {
		utils.LogInfo("Order %d marked paid via %s", order.ID, gatewayName)
	}

	redirectToStatus(c, cfg.FrontendURL, "success")
}

// PaymentFail redirects with the failure indicator; no state changes
// POST /v1/payment/fail
func PaymentFail(c *gin.Context) {
	utils.LogInfo("PaymentFail callback received for tran_id: %s", c.PostForm("tran_id"))
	cfg, _ := config.LoadConfig()
	redirectToStatus(c, cfg.FrontendURL, "fail")
}

// PaymentCancel redirects with the cancel indicator; no state changes
// POST /v1/payment/cancel
func PaymentCancel(c *gin.Context) {
	utils.LogInfo("PaymentCancel callback received for tran_id: %s", c.PostForm("tran_id"))
	cfg, _ := config.LoadConfig()
	redirectToStatus(c, cfg.FrontendURL, "cancel")
}

func redirectToStatus(c *gin.Context, frontendURL, status string) {
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/payment/status?status=%s", frontendURL, status))
}
