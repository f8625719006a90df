package controllers

import (
	"encoding/base64"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daniel-minto/minto-portfolio-api/config"
	"github.com/daniel-minto/minto-portfolio-api/middleware"
	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/daniel-minto/minto-portfolio-api/pricing"
	"github.com/daniel-minto/minto-portfolio-api/services"
	"github.com/daniel-minto/minto-portfolio-api/signature"
	"github.com/daniel-minto/minto-portfolio-api/utils"
)

// CreateOrderRequest represents the request body for creating an order.
// The total is always recomputed server-side from the price table; any
// client-supplied amount is ignored.
type CreateOrderRequest struct {
	ClientName     string   `json:"client_name" binding:"required"`
	ClientEmail    string   `json:"client_email" binding:"required,email"`
	ClientPhone    string   `json:"client_phone" binding:"required"`
	CompanyName    *string  `json:"company_name"`
	PackageType    string   `json:"package_type" binding:"required"`
	WebsiteType    *string  `json:"website_type"`
	NumPages       *string  `json:"num_pages"`
	Description    *string  `json:"description"`
	ColorScheme    *string  `json:"color_scheme"`
	Features       []string `json:"features"`
	PageTypes      []string `json:"page_types"`
	CompletionDate *string  `json:"completion_date"`
	BudgetRange    *string  `json:"budget_range"`
	Currency       string   `json:"currency" binding:"required"`
	PaymentMethod  string   `json:"payment_method" binding:"required"`
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SignOrderRequest represents the request body for signing a proposal.
// Either a pre-rendered data-URL or raw strokes must be supplied.
type SignOrderRequest struct {
	SignatureData string             `json:"signature_data"`
	Strokes       []signature.Stroke `json:"strokes"`
	Width         int                `json:"width"`
	Height        int                `json:"height"`
}

// BulkDeleteOrdersRequest represents the request body for bulk deletion
type BulkDeleteOrdersRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required,min=1"`
}

// findOrder looks up an order by record id or order number
func findOrder(db *gorm.DB, idOrNumber string) (*models.Order, error) {
	var order models.Order
	if id, err := strconv.ParseUint(idOrNumber, 10, 64); err == nil {
		if err := db.First(&order, uint(id)).Error; err == nil {
			return &order, nil
		}
	}
	if err := db.Where("order_number = ?", idOrNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder handles POST /api/v1/orders - creates a new order and
// fires the best-effort notification emails
func CreateOrder(c *gin.Context) {
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

	var req CreateOrderRequest
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

	if !models.ValidPackageType(req.PackageType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown package type",
			},
		})
		return
	}
	if !models.ValidCurrency(req.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown currency",
			},
		})
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown payment method",
			},
		})
		return
	}
	// Card payments are disabled; the data-entry path exists client-side
	// but nothing is ever charged
	if req.PaymentMethod == models.PaymentCard {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PAYMENT_METHOD_DISABLED",
				"message": "Card payment is currently unavailable. Please choose Bank Transfer or Cash.",
			},
		})
		return
	}

	total, err := pricing.PriceFor(req.PackageType, req.Currency)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	order := models.Order{
		OrderNumber:    utils.GenerateOrderNumber(),
		UserID:         userID,
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		CompanyName:    req.CompanyName,
		PackageType:    req.PackageType,
		WebsiteType:    req.WebsiteType,
		NumPages:       req.NumPages,
		Description:    req.Description,
		ColorScheme:    req.ColorScheme,
		Features:       req.Features,
		PageTypes:      req.PageTypes,
		CompletionDate: req.CompletionDate,
		BudgetRange:    req.BudgetRange,
		TotalAmount:    total,
		Currency:       req.Currency,
		PaymentMethod:  req.PaymentMethod,
		Status:         models.StatusPending,
	}

	db := config.GetDB()
	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// Notification emails are best-effort; failures are logged and the
	// order still reports success
	if emailService := services.GetEmailService(); emailService != nil {
		emailData := services.OrderEmailData{
			OrderNumber: order.OrderNumber,
			ClientName:  order.ClientName,
			ClientEmail: order.ClientEmail,
			PackageType: order.PackageType,
			TotalAmount: order.TotalAmount,
			Currency:    order.Currency,
		}
		if err := emailService.SendOrderConfirmation(emailData); err != nil {
			log.Printf("Order confirmation email failed for %s: %v", order.OrderNumber, err)
		}
		if err := emailService.SendAdminNotification(emailData); err != nil {
			log.Printf("Admin notification email failed for %s: %v", order.OrderNumber, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - admins see every order,
// everyone else sees only their own
func ListOrders(c *gin.Context) {
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

	db := config.GetDB()
	query := db.Order("created_at DESC")
	if !middleware.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
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
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetch by record id or order
// number; admin or owner only
func GetOrder(c *gin.Context) {
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

	db := config.GetDB()
	order, err := findOrder(db, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	email, _ := middleware.GetUserEmail(c)
	if !middleware.IsAdmin(c) && !order.OwnedBy(userID, email) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view this order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - admin only.
// Transitions are deliberately unconstrained: any of the three statuses
// may be set in any direction.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
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

	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status must be one of Pending, In Progress, Completed",
			},
		})
		return
	}

	db := config.GetDB()
	order, err := findOrder(db, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	order.Status = req.Status
	if err := db.Save(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// SignOrder handles POST /api/v1/orders/:id/sign - owner only (by user id
// or client email). Accepts either a pre-rendered data-URL or raw
// strokes, which the server rasterizes and stores.
func SignOrder(c *gin.Context) {
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

	db := config.GetDB()
	order, err := findOrder(db, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	email, _ := middleware.GetUserEmail(c)
	if !order.OwnedBy(userID, email) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only the order's owner can sign the proposal",
			},
		})
		return
	}

	var req SignOrderRequest
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

	signatureData := req.SignatureData
	if len(req.Strokes) > 0 {
		width, height := req.Width, req.Height
		if width <= 0 || height <= 0 {
			width, height = 600, 200
		}
		pad := signature.Replay(width, height, req.Strokes)
		if pad.IsEmpty() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMPTY_SIGNATURE",
					"message": "Please provide a signature before submitting",
				},
			})
			return
		}

		png, err := pad.ImagePNG()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RENDER_ERROR",
					"message": "Failed to render signature",
				},
			})
			return
		}

		signatureData = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

		// Best-effort copy to object storage
		if imageService := services.GetImageService(); imageService != nil {
			if key, err := imageService.UploadSignature(png, order.OrderNumber); err != nil {
				log.Printf("Signature upload failed for %s: %v", order.OrderNumber, err)
			} else {
				order.SignatureS3Key = &key
			}
		}
	}

	if signatureData == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_SIGNATURE",
				"message": "Please provide a signature before submitting",
			},
		})
		return
	}

	now := time.Now()
	order.ProposalSigned = true
	order.SignatureData = &signatureData
	order.SignedAt = &now

	if err := db.Save(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to sign proposal",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Proposal signed successfully",
		},
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - admin only
func DeleteOrder(c *gin.Context) {
	db := config.GetDB()
	order, err := findOrder(db, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if err := db.Delete(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Order deleted successfully",
		},
	})
}

// BulkDeleteOrders handles POST /api/v1/orders/bulk-delete - admin only.
// The reported count may be lower than the requested list when some ids
// did not exist.
func BulkDeleteOrders(c *gin.Context) {
	var req BulkDeleteOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order IDs",
			},
		})
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Order{}, req.OrderIDs)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message":       strconv.FormatInt(result.RowsAffected, 10) + " order(s) deleted successfully",
			"deleted_count": result.RowsAffected,
		},
	})
}

// DeleteAllOrders handles DELETE /api/v1/orders - admin only, requires
// confirm=true. Deleting everything is irreversible, so the safety gate
// lives server-side rather than in a dismissible dialog.
func DeleteAllOrders(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFIRMATION_REQUIRED",
				"message": "Deleting all orders requires confirm=true",
			},
		})
		return
	}

	db := config.GetDB()
	result := db.Where("1 = 1").Delete(&models.Order{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message":       "All " + strconv.FormatInt(result.RowsAffected, 10) + " orders deleted successfully",
			"deleted_count": result.RowsAffected,
		},
	})
}
