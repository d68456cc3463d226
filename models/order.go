package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Return request status constants
const (
	ReturnStatusPending  = "Pending"
	ReturnStatusApproved = "Approved"
	ReturnStatusRejected = "Rejected"
)

// Order is the persisted checkout result. Price fields are immutable
// snapshots taken at creation time and are never recomputed from the
// catalog. UserID is nil for guest checkouts.
type Order struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `json:"user_id"`
	User   *User `json:"-" gorm:"foreignKey:UserID"`

	// Shipping/contact snapshot (supports guest checkout)
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`

	TotalPrice     float64 `json:"total_price"`
	ShippingPrice  float64 `json:"shipping_price"`
	DiscountAmount float64 `json:"discount_amount"`
	CouponCode     string  `json:"coupon_code,omitempty"`

	Status        string     `json:"status" gorm:"default:Pending"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	IsPaid        bool       `json:"is_paid" gorm:"default:false"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem captures one line of an order. ProductID is nullable so the
// historical record survives product deletion.
type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `json:"order_id"`
	ProductID *uint    `json:"product_id"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	Size      string   `json:"size,omitempty"`
	Color     string   `json:"color,omitempty"`
}

// ReturnRequest is created only for delivered orders inside the return window
type ReturnRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `json:"order_id"`
	Order     Order     `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Reason    string    `json:"reason"`
	ImageURL  string    `json:"image_url,omitempty"`
	Status    string    `json:"status" gorm:"default:Pending"`
	AdminNote string    `json:"admin_note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
