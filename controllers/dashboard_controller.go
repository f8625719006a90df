package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daniel-minto/minto-portfolio-api/config"
	"github.com/daniel-minto/minto-portfolio-api/dashboard"
	"github.com/daniel-minto/minto-portfolio-api/models"
)

// GetDashboardStats handles GET /api/v1/admin/dashboard - admin summary
// statistics, recomputed from scratch on every call
func GetDashboardStats(c *gin.Context) {
	db := config.GetDB()

	var orders []models.Order
	if err := db.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	var reviews []models.Review
	if err := db.Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch reviews",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dashboard.ComputeStats(orders, reviews, time.Now()),
	})
}

// GetNotifications handles GET /api/v1/admin/notifications - derived
// admin alerts; nothing is stored or deduplicated across sessions
func GetNotifications(c *gin.Context) {
	db := config.GetDB()

	var orders []models.Order
	if err := db.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dashboard.DeriveNotifications(orders, time.Now()),
	})
}
