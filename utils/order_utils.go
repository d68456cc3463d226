package utils

import (
	"github.com/luxstore/backend/models"
	"gorm.io/gorm"
)

// CheckoutItem is one requested line of a checkout
type CheckoutItem struct {
	ProductSlug string `json:"product_slug" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	Size        string `json:"size"`
	Color       string `json:"color"`
}

// CheckoutRequest carries everything needed to place an order. UserID is
// nil for guest checkout.
type CheckoutRequest struct {
	UserID         *uint
	FullName       string
	Email          string
	Phone          string
	AddressLine1   string
	AddressLine2   string
	City           string
	State          string
	PostalCode     string
	Country        string
	ShippingPrice  float64
	DiscountAmount float64
	CouponCode     string
	Items          []CheckoutItem
}

// PlaceOrder converts a cart into a persisted order inside a single
// transaction: resolve products, validate stock for every item before any
// mutation, snapshot prices, create the order and its items, and decrement
// stock with a guarded conditional update. Any failure rolls the whole
// transaction back, so partial stock decrements never persist.
func PlaceOrder(db *gorm.DB, req CheckoutRequest) (*models.Order, error) {
	var order *models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		type resolvedItem struct {
			product  models.Product
			quantity int
			size     string
			color    string
		}

		// Resolve and validate every item before touching anything
		resolved := make([]resolvedItem, 0, len(req.Items))
		for _, item := range req.Items {
			var product models.Product
			if err := tx.Where("slug = ?", item.ProductSlug).First(&product).Error; err != nil {
				return NotFoundError("Product not found", &ProductNotFoundError{Slug: item.ProductSlug})
			}
			if product.Stock < item.Quantity {
				return BadRequestError("Insufficient stock", &InsufficientStockError{
					Product:   product.Name,
					Available: product.Stock,
					Requested: item.Quantity,
				})
			}
			resolved = append(resolved, resolvedItem{
				product:  product,
				quantity: item.Quantity,
				size:     item.Size,
				color:    item.Color,
			})
		}

		newOrder := models.Order{
			UserID:         req.UserID,
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
			Status:         models.OrderStatusPending,
		}
		if err := tx.Create(&newOrder).Error; err != nil {
			return err
		}

		var itemsTotal float64
		for _, ri := range resolved {
			productID := ri.product.ID
			orderItem := models.OrderItem{
				OrderID:   newOrder.ID,
				ProductID: &productID,
				Price:     ri.product.Price, // snapshot, never re-read
				Quantity:  ri.quantity,
				Size:      ri.size,
				Color:     ri.color,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			newOrder.Items = append(newOrder.Items, orderItem)

			// Guarded decrement closes the race between the validation
			// read above and the write here: a concurrent checkout that
			// drained the stock leaves RowsAffected at zero.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", ri.product.ID, ri.quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", ri.quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var current models.Product
				tx.First(&current, ri.product.ID)
				return BadRequestError("Insufficient stock", &InsufficientStockError{
					Product:   ri.product.Name,
					Available: current.Stock,
					Requested: ri.quantity,
				})
			}

			itemsTotal += ri.product.Price * float64(ri.quantity)
		}

		newOrder.TotalPrice = itemsTotal + req.ShippingPrice - req.DiscountAmount
		if err := tx.Model(&models.Order{}).Where("id = ?", newOrder.ID).
			UpdateColumn("total_price", newOrder.TotalPrice).Error; err != nil {
			return err
		}

		order = &newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AutoSaveOrderAddress stores the order's shipping address on the buyer's
// address book if an identical address is not already on file. The new
// address becomes the default only when the user has no default yet.
// Called as a post-create hook, so failures are returned for logging but
// must never fail the order.
func AutoSaveOrderAddress(db *gorm.DB, userID uint, order *models.Order) error {
	var count int64
	if err := db.Model(&models.Address{}).
		Where("user_id = ? AND street_address = ? AND city = ? AND postal_code = ? AND country = ?",
			userID, order.AddressLine1, order.City, order.PostalCode, order.Country).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var defaults int64
	if err := db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&defaults).Error; err != nil {
		return err
	}

	address := models.Address{
		UserID:        userID,
		StreetAddress: order.AddressLine1,
		City:          order.City,
		State:         order.State,
		PostalCode:    order.PostalCode,
		Country:       order.Country,
		IsDefault:     defaults == 0,
	}
	return db.Create(&address).Error
}
