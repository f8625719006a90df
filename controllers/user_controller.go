package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniel-minto/minto-portfolio-api/config"
	"github.com/daniel-minto/minto-portfolio-api/middleware"
	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/daniel-minto/minto-portfolio-api/services"
)

// UpdateProfileRequest represents the request body for updating a profile
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty"`
	Phone    *string `json:"phone" binding:"omitempty"`
	Address  *string `json:"address" binding:"omitempty"`
}

// currentUser loads the authenticated caller's profile, writing the
// error response itself when that fails
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found",
			},
		})
		return nil, false
	}

	return &user, true
}

// GetProfile handles GET /api/v1/users/me - returns the caller's profile
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	// Attach a presigned URL when a profile photo is stored
	if user.ProfilePhotoKey != nil {
		if imageService := services.GetImageService(); imageService != nil {
			if url, err := imageService.GetImageURL(*user.ProfilePhotoKey); err == nil && url != "" {
				user.ProfilePhotoURL = &url
			} else if err != nil {
				log.Printf("Failed to presign profile photo for user %d: %v", user.ID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// UpdateProfile handles PUT /api/v1/users/me - updates profile fields
func UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
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

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Address != nil {
		user.Address = req.Address
	}

	db := config.GetDB()
	if err := db.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// UploadProfilePhoto handles POST /api/v1/users/me/photo - stores a PNG
// profile photo
func UploadProfilePhoto(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "A 'photo' file is required",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}
	s3Key, err := imageService.UploadProfilePhoto(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Replace any previous photo; deletion failures only get logged
	if user.ProfilePhotoKey != nil {
		if err := imageService.DeleteImage(*user.ProfilePhotoKey); err != nil {
			log.Printf("Failed to delete previous profile photo %s: %v", *user.ProfilePhotoKey, err)
		}
	}

	user.ProfilePhotoKey = &s3Key
	db := config.GetDB()
	if err := db.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save profile photo",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"profile_photo_key": s3Key,
		},
	})
}

// DeleteAccount handles DELETE /api/v1/users/me - removes the caller's
// account. Orders and reviews are left in place for the admin record.
func DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if user.ProfilePhotoKey != nil {
		if imageService := services.GetImageService(); imageService != nil {
			if err := imageService.DeleteImage(*user.ProfilePhotoKey); err != nil {
				log.Printf("Failed to delete profile photo %s: %v", *user.ProfilePhotoKey, err)
			}
		}
	}

	db := config.GetDB()
	if err := db.Delete(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete account",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Account deleted",
		},
	})
}
