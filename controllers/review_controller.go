package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

// CreateReviewRequest is the review form payload
type CreateReviewRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"required"`
	ImageURL string `json:"image_url"`
}

// CreateReview posts a review for a product. One review per user per
// product; a second submission replaces the first.
// POST /v1/products/:slug/reviews
func CreateReview(c *gin.Context) {
	utils.LogInfo("CreateReview called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	user := userVal.(models.User)

	var product models.Product
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. rating must be 1-5 and comment is required", err.Error())
		return
	}

	var review models.Review
	err := config.DB.Where("product_id = ? AND user_id = ?", product.ID, user.ID).First(&review).Error
	if err == nil {
		review.Rating = req.Rating
		review.Comment = req.Comment
		review.ImageURL = req.ImageURL
		if err := config.DB.Save(&review).Error; err != nil {
			utils.InternalServerError(c, "Failed to update review", err.Error())
			return
		}
		utils.Success(c, "Review updated successfully", gin.H{"review": review})
		return
	}

	review = models.Review{
		ProductID: product.ID,
		UserID:    user.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		ImageURL:  req.ImageURL,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		utils.LogError("Failed to create review for product %s: %v", product.Slug, err)
		utils.InternalServerError(c, "Failed to create review", err.Error())
		return
	}
	utils.Created(c, "Review submitted successfully", gin.H{"review": review})
}

// ListReviews returns all reviews for a product
// GET /v1/products/:slug/reviews
func ListReviews(c *gin.Context) {
	var product models.Product
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var reviews []models.Review
	if err := config.DB.Where("product_id = ?", product.ID).
		Preload("User").Order("created_at desc").Find(&reviews).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reviews", err.Error())
		return
	}
	utils.Success(c, "Reviews retrieved successfully", gin.H{"reviews": reviews})
}
