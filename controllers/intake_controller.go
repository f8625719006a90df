package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniel-minto/minto-portfolio-api/config"
	"github.com/daniel-minto/minto-portfolio-api/middleware"
	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/daniel-minto/minto-portfolio-api/services"
	"github.com/daniel-minto/minto-portfolio-api/utils"
	"github.com/daniel-minto/minto-portfolio-api/wizard"
)

var intakeStore = wizard.NewStore()

// SetIntakeStore replaces the wizard session store (primarily for testing)
func SetIntakeStore(store *wizard.Store) {
	intakeStore = store
}

// UpdateIntakeRequest carries partial form updates; only supplied fields
// are applied
type UpdateIntakeRequest struct {
	ClientName     *string   `json:"client_name"`
	ClientEmail    *string   `json:"client_email"`
	ClientPhone    *string   `json:"client_phone"`
	CompanyName    *string   `json:"company_name"`
	PackageType    *string   `json:"package_type"`
	WebsiteType    *string   `json:"website_type"`
	NumPages       *string   `json:"num_pages"`
	Description    *string   `json:"description"`
	ColorScheme    *string   `json:"color_scheme"`
	Features       *[]string `json:"features"`
	PageTypes      *[]string `json:"page_types"`
	CompletionDate *string   `json:"completion_date"`
	BudgetRange    *string   `json:"budget_range"`
	PaymentMethod  *string   `json:"payment_method"`
	Currency       *string   `json:"currency"`
}

// intakeSession resolves the caller's wizard session, writing the error
// response itself when that fails
func intakeSession(c *gin.Context) (*wizard.Session, bool) {
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

	session := intakeStore.Get(c.Param("token"))
	if session == nil || session.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_NOT_FOUND",
				"message": "Intake session not found",
			},
		})
		return nil, false
	}

	return session, true
}

func intakeState(session *wizard.Session) gin.H {
	return gin.H{
		"token": session.Token,
		"step":  session.Wizard.Step(),
		"form":  session.Wizard.Form,
	}
}

// StartIntake handles POST /api/v1/intake - begins a wizard session
func StartIntake(c *gin.Context) {
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

	session := intakeStore.Start(userID)

	// Prefill contact details from the caller's profile, as the order
	// form has always done
	db := config.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err == nil {
		session.Wizard.Form.ClientName = user.FullName
		session.Wizard.Form.ClientEmail = user.Email
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    intakeState(session),
	})
}

// GetIntake handles GET /api/v1/intake/:token - current step and form
func GetIntake(c *gin.Context) {
	session, ok := intakeSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    intakeState(session),
	})
}

// UpdateIntake handles PUT /api/v1/intake/:token - merges form fields.
// Editing never changes the step; only advance/back do.
func UpdateIntake(c *gin.Context) {
	session, ok := intakeSession(c)
	if !ok {
		return
	}

	var req UpdateIntakeRequest
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

	form := &session.Wizard.Form
	if req.ClientName != nil {
		form.ClientName = *req.ClientName
	}
	if req.ClientEmail != nil {
		form.ClientEmail = *req.ClientEmail
	}
	if req.ClientPhone != nil {
		form.ClientPhone = *req.ClientPhone
	}
	if req.CompanyName != nil {
		form.CompanyName = *req.CompanyName
	}
	if req.PackageType != nil {
		form.PackageType = *req.PackageType
	}
	if req.WebsiteType != nil {
		form.WebsiteType = *req.WebsiteType
	}
	if req.NumPages != nil {
		form.NumPages = *req.NumPages
	}
	if req.Description != nil {
		form.Description = *req.Description
	}
	if req.ColorScheme != nil {
		form.ColorScheme = *req.ColorScheme
	}
	if req.Features != nil {
		form.Features = *req.Features
	}
	if req.PageTypes != nil {
		form.PageTypes = *req.PageTypes
	}
	if req.CompletionDate != nil {
		form.CompletionDate = *req.CompletionDate
	}
	if req.BudgetRange != nil {
		form.BudgetRange = *req.BudgetRange
	}
	if req.PaymentMethod != nil {
		form.PaymentMethod = *req.PaymentMethod
	}
	if req.Currency != nil {
		form.Currency = *req.Currency
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    intakeState(session),
	})
}

// AdvanceIntake handles POST /api/v1/intake/:token/advance - validates
// the active step and moves forward one step
func AdvanceIntake(c *gin.Context) {
	session, ok := intakeSession(c)
	if !ok {
		return
	}

	if err := session.Wizard.Advance(); err != nil {
		var vErr *wizard.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": vErr.Message,
					"step":    vErr.Step,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    intakeState(session),
	})
}

// BackIntake handles POST /api/v1/intake/:token/back - moves back a step
func BackIntake(c *gin.Context) {
	session, ok := intakeSession(c)
	if !ok {
		return
	}

	session.Wizard.Retreat()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    intakeState(session),
	})
}

// SubmitIntake handles POST /api/v1/intake/:token/submit - creates the
// order from the accumulated form. A failed submit leaves the session
// untouched so the user can resubmit.
func SubmitIntake(c *gin.Context) {
	session, ok := intakeSession(c)
	if !ok {
		return
	}

	submission, err := session.Wizard.Submit()
	if err != nil {
		var vErr *wizard.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": vErr.Message,
					"step":    vErr.Step,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	order := models.Order{
		OrderNumber:    utils.GenerateOrderNumber(),
		UserID:         session.UserID,
		ClientName:     submission.ClientName,
		ClientEmail:    submission.ClientEmail,
		ClientPhone:    submission.ClientPhone,
		CompanyName:    optString(submission.CompanyName),
		PackageType:    submission.PackageType,
		WebsiteType:    optString(submission.WebsiteType),
		NumPages:       optString(submission.NumPages),
		Description:    optString(submission.Description),
		ColorScheme:    optString(submission.ColorScheme),
		Features:       submission.Features,
		PageTypes:      submission.PageTypes,
		CompletionDate: optString(submission.CompletionDate),
		BudgetRange:    optString(submission.BudgetRange),
		TotalAmount:    submission.TotalAmount,
		Currency:       submission.Currency,
		PaymentMethod:  submission.PaymentMethod,
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

	// Submit succeeded; the session is done
	intakeStore.Remove(session.Token)

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

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
