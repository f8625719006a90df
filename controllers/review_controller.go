package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daniel-minto/minto-portfolio-api/config"
	"github.com/daniel-minto/minto-portfolio-api/middleware"
	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/daniel-minto/minto-portfolio-api/services"
)

// CreateReviewRequest represents the request body for posting a review
type CreateReviewRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// BulkDeleteReviewsRequest represents the request body for bulk deletion
type BulkDeleteReviewsRequest struct {
	ReviewIDs []uint `json:"review_ids" binding:"required,min=1"`
}

// reviewAuthor is the public shape of a review's author
type reviewAuthor struct {
	FullName        string  `json:"full_name"`
	ProfilePhotoURL *string `json:"profile_photo_url,omitempty"`
}

// enrichedReview is a review joined with its author for public listing
type enrichedReview struct {
	models.Review
	Author reviewAuthor `json:"user"`
}

func enrichReview(review models.Review) enrichedReview {
	author := reviewAuthor{FullName: "Anonymous"}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, review.UserID).Error; err == nil {
		author.FullName = user.FullName
		if user.ProfilePhotoKey != nil {
			if imageService := services.GetImageService(); imageService != nil {
				if url, err := imageService.GetImageURL(*user.ProfilePhotoKey); err == nil && url != "" {
					author.ProfilePhotoURL = &url
				} else if err != nil {
					log.Printf("Failed to presign profile photo for user %d: %v", user.ID, err)
				}
			}
		}
	}

	return enrichedReview{Review: review, Author: author}
}

// ListReviews handles GET /api/v1/reviews - public, newest first,
// enriched with author details
func ListReviews(c *gin.Context) {
	db := config.GetDB()

	var reviews []models.Review
	if err := db.Order("created_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch reviews",
			},
		})
		return
	}

	enriched := make([]enrichedReview, 0, len(reviews))
	for _, review := range reviews {
		enriched = append(enriched, enrichReview(review))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    enriched,
	})
}

// CreateReview handles POST /api/v1/reviews - one review per (order,
// user). The pre-insert check produces the friendly error; the unique
// index on (order_id, user_id) closes the race between concurrent
// submissions.
func CreateReview(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Rating must be between 1 and 5",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	var existing models.Review
	if err := db.Where("order_id = ? AND user_id = ?", req.OrderID, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ALREADY_REVIEWED",
				"message": "You have already reviewed this order",
			},
		})
		return
	}

	review := models.Review{
		OrderID: req.OrderID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ALREADY_REVIEWED",
					"message": "You have already reviewed this order",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create review",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    enrichReview(review),
	})
}

// DeleteReview handles DELETE /api/v1/reviews/:id - admin only
func DeleteReview(c *gin.Context) {
	db := config.GetDB()

	var review models.Review
	if err := db.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REVIEW_NOT_FOUND",
				"message": "Review not found",
			},
		})
		return
	}

	if err := db.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete review",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Review deleted successfully",
		},
	})
}

// BulkDeleteReviews handles POST /api/v1/reviews/bulk-delete - admin only
func BulkDeleteReviews(c *gin.Context) {
	var req BulkDeleteReviewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid review IDs",
			},
		})
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Review{}, req.ReviewIDs)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete reviews",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message":       strconv.FormatInt(result.RowsAffected, 10) + " review(s) deleted successfully",
			"deleted_count": result.RowsAffected,
		},
	})
}

// DeleteAllReviews handles DELETE /api/v1/reviews - admin only, requires
// confirm=true
func DeleteAllReviews(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFIRMATION_REQUIRED",
				"message": "Deleting all reviews requires confirm=true",
			},
		})
		return
	}

	db := config.GetDB()
	result := db.Where("1 = 1").Delete(&models.Review{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete reviews",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message":       "All " + strconv.FormatInt(result.RowsAffected, 10) + " reviews deleted successfully",
			"deleted_count": result.RowsAffected,
		},
	})
}
