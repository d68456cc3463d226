package models

import (
	"time"
)

// Coupon discount types
const (
	DiscountTypeFlat       = "FLAT"
	DiscountTypePercentage = "PERCENTAGE"
)

// Coupon rule trigger events
const (
	TriggerEventLogin           = "LOGIN"
	TriggerEventOrderOverAmount = "ORDER_OVER_AMOUNT"
)

type Coupon struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Code          string    `gorm:"uniqueIndex" json:"code"`
	DiscountType  string    `json:"discount_type" gorm:"default:FLAT"`
	DiscountValue float64   `json:"discount_value"`
	MinPurchase   float64   `json:"min_purchase"`
	ExpiryDate    time.Time `json:"expiry_date"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
}

// CouponRule issues its linked coupon once per user when the trigger
// condition is first met inside the validity window. Read-only to the
// reward engine, managed by staff.
type CouponRule struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	TriggerEvent string    `json:"trigger_event"`
	MinAmount    float64   `json:"min_amount"`
	CouponID     uint      `json:"coupon_id"`
	Coupon       Coupon    `json:"coupon" gorm:"foreignKey:CouponID"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserCouponHistory is the at-most-once claim record for a (user, rule)
// pair. The composite unique index is the authoritative guard against
// double rewards, not the existence check that precedes the insert.
type UserCouponHistory struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `json:"user_id" gorm:"uniqueIndex:idx_user_rule"`
	RuleID uint      `json:"rule_id" gorm:"uniqueIndex:idx_user_rule"`
	SentAt time.Time `json:"sent_at" gorm:"autoCreateTime"`
}
