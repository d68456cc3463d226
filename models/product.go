package models

import (
	"time"
)

// Category represents a product category (catalog CRUD lives elsewhere,
// the checkout core only reads these rows)
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`
}

// Product is the catalog entity consulted by the checkout processor.
// Stock is only ever written through the guarded decrement in the
// order transaction.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `json:"category_id"`
	Category    Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name        string    `json:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// Review is a post-purchase product review
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `json:"product_id"`
	UserID    uint      `json:"user_id"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
