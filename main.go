package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/daniel-minto/minto-portfolio-api/config"
	"github.com/daniel-minto/minto-portfolio-api/controllers"
	"github.com/daniel-minto/minto-portfolio-api/middleware"
	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/daniel-minto/minto-portfolio-api/services"
)

func main() {
	log.Println("Starting Minto Portfolio API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.Review{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed image storage. Signatures and profile photos
	// degrade gracefully when S3 is not configured.
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Printf("S3 service unavailable, image uploads disabled: %v", err)
		} else {
			services.InitImageService(s3Service)
			log.Println("S3 image storage initialized")
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, image uploads disabled")
	}

	// Initialize email notifications
	if cfg.SMTPHost != "" {
		services.InitEmailService(cfg)
		log.Println("Email service initialized")
	} else {
		log.Println("SMTP_HOST not set, email notifications disabled")
	}

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with middleware and all routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://mintosportfolio.com"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		// Public endpoints
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)
		v1.POST("/auth/register", controllers.Register)
		v1.POST("/auth/login", controllers.Login)
		v1.GET("/reviews", controllers.ListReviews)

		// Authenticated endpoints
		auth := v1.Group("")
		auth.Use(middleware.RequireAuth(cfg))
		{
			auth.GET("/users/me", controllers.GetProfile)
			auth.PUT("/users/me", controllers.UpdateProfile)
			auth.POST("/users/me/photo", controllers.UploadProfilePhoto)
			auth.DELETE("/users/me", controllers.DeleteAccount)

			auth.POST("/orders", controllers.CreateOrder)
			auth.GET("/orders", controllers.ListOrders)
			auth.GET("/orders/:id", controllers.GetOrder)
			auth.POST("/orders/:id/sign", controllers.SignOrder)
			auth.GET("/orders/:id/proposal", controllers.GetProposal)
			auth.GET("/orders/:id/proposal/download", controllers.DownloadProposal)

			auth.POST("/intake", controllers.StartIntake)
			auth.GET("/intake/:token", controllers.GetIntake)
			auth.PUT("/intake/:token", controllers.UpdateIntake)
			auth.POST("/intake/:token/advance", controllers.AdvanceIntake)
			auth.POST("/intake/:token/back", controllers.BackIntake)
			auth.POST("/intake/:token/submit", controllers.SubmitIntake)

			auth.POST("/reviews", controllers.CreateReview)
		}

		// Admin endpoints
		admin := v1.Group("")
		admin.Use(middleware.RequireAuth(cfg), middleware.RequireAdmin())
		{
			admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
			admin.DELETE("/orders/:id", controllers.DeleteOrder)
			admin.POST("/orders/bulk-delete", controllers.BulkDeleteOrders)
			admin.DELETE("/orders", controllers.DeleteAllOrders)

			admin.DELETE("/reviews/:id", controllers.DeleteReview)
			admin.POST("/reviews/bulk-delete", controllers.BulkDeleteReviews)
			admin.DELETE("/reviews", controllers.DeleteAllReviews)

			admin.GET("/admin/dashboard", controllers.GetDashboardStats)
			admin.GET("/admin/notifications", controllers.GetNotifications)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Minto Portfolio API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
