package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

// CreateOrderRequest is the checkout payload. Buyer identity comes from
// the token when present; the shipping block stands on its own so guests
// can order too.
type CreateOrderRequest struct {
	FullName       string               `json:"full_name" binding:"required"`
	Email          string               `json:"email" binding:"required,email"`
	Phone          string               `json:"phone" binding:"required"`
	AddressLine1   string               `json:"address_line_1" binding:"required"`
	AddressLine2   string               `json:"address_line_2"`
	City           string               `json:"city" binding:"required"`
	State          string               `json:"state"`
	PostalCode     string               `json:"postal_code" binding:"required"`
	Country        string               `json:"country" binding:"required"`
	ShippingPrice  float64              `json:"shipping_price"`
	DiscountAmount float64              `json:"discount_amount"`
	CouponCode     string               `json:"coupon_code"`
	Items          []utils.CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder validates the cart, decrements stock and persists the order
// atomically, then runs the post-create hooks for authenticated buyers.
// Hook failures are logged and swallowed: once the transaction commits,
// order creation is reported as successful no matter what the hooks do.
func CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	checkout := utils.CheckoutRequest{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		State:          req.State,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
		ShippingPrice:  req.ShippingPrice,
		DiscountAmount: req.DiscountAmount,
		CouponCode:     req.CouponCode,
		Items:          req.Items,
	}

	var buyer *models.User
	if userVal, exists := c.Get("user"); exists {
		if user, ok := userVal.(models.User); ok {
			buyer = &user
			checkout.UserID = &user.ID
		}
	}

	order, err := utils.PlaceOrder(config.DB, checkout)
	if err != nil {
		var stockErr *utils.InsufficientStockError
		if errors.As(err, &stockErr) {
			utils.LogError("Insufficient stock for '%s': available %d, requested %d",
				stockErr.Product, stockErr.Available, stockErr.Requested)
			utils.BadRequest(c, stockErr.Error(), gin.H{
				"product":   stockErr.Product,
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			})
			return
		}
		var notFoundErr *utils.ProductNotFoundError
		if errors.As(err, &notFoundErr) {
			utils.NotFound(c, notFoundErr.Error())
			return
		}
		utils.LogError("Failed to place order: %v", err)
		utils.RespondWithError(c, err)
		return
	}
	utils.LogInfo("Created order ID: %d, total: %.2f", order.ID, order.TotalPrice)

	if buyer != nil {
		utils.FireCouponEvent(config.DB, buyer, models.TriggerEventOrderOverAmount, order.TotalPrice)

		if err := utils.AutoSaveOrderAddress(config.DB, buyer.ID, order); err != nil {
			utils.LogError("Failed to auto-save address for user ID: %d: %v", buyer.ID, err)
		}

		utils.SendOrderConfirmation(order)
	}

	utils.Created(c, "Order placed successfully", gin.H{"order": order})
}

// ListOrders returns the caller's orders; staff see every order. Guests
// cannot list.
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	user := userVal.(models.User)

	query := config.DB.Preload("Items").Order("created_at desc")
	if !user.IsStaff {
		query = query.Where("user_id = ?", user.ID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": orders})
}

// GetOrder fetches one order. Owners and staff may always read; an
// anonymous caller may fetch by id so the guest payment flow can work.
func GetOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if userVal, exists := c.Get("user"); exists {
		user := userVal.(models.User)
		if !user.IsStaff && order.UserID != nil && *order.UserID != user.ID {
			utils.Forbidden(c, "You can only view your own orders")
			return
		}
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": order})
}
