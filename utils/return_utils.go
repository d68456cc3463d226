package utils

import (
	"time"

	"github.com/luxstore/backend/models"
)

// ReturnClockStart picks the timestamp the return window counts from.
// DeliveredAt is set exactly once on the Delivered transition; orders
// persisted before that field existed fall back to UpdatedAt.
func ReturnClockStart(order *models.Order) time.Time {
	if order.DeliveredAt != nil {
		return *order.DeliveredAt
	}
	return order.UpdatedAt
}

// CheckReturnEligibility enforces ownership, delivery status and the
// return window, in that order. The window is inclusive: a request made
// exactly windowDays after delivery is still accepted.
func CheckReturnEligibility(order *models.Order, userID uint, windowDays int, now time.Time) error {
	if order.UserID == nil || *order.UserID != userID {
		return ForbiddenError("You can only request returns for your own orders", ErrForbidden)
	}
	if order.Status != models.OrderStatusDelivered {
		return BadRequestError("Order must be delivered before requesting a return", ErrNotEligible)
	}

	elapsed := now.Sub(ReturnClockStart(order))
	window := time.Duration(windowDays) * 24 * time.Hour
	if elapsed > window {
		return BadRequestError("Return window has expired", ErrReturnWindowExpired)
	}
	return nil
}
