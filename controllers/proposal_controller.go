package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daniel-minto/minto-portfolio-api/config"
	"github.com/daniel-minto/minto-portfolio-api/middleware"
	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/daniel-minto/minto-portfolio-api/proposal"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// proposalData maps an order onto the proposal template input
func proposalData(order *models.Order, generatedAt time.Time) proposal.Data {
	return proposal.Data{
		OrderNumber:    order.OrderNumber,
		ClientName:     order.ClientName,
		ClientEmail:    order.ClientEmail,
		PackageType:    order.PackageType,
		TotalAmount:    order.TotalAmount,
		Currency:       order.Currency,
		Description:    deref(order.Description),
		CreatedDate:    order.CreatedAt,
		GeneratedAt:    generatedAt,
		WebsiteType:    deref(order.WebsiteType),
		NumPages:       deref(order.NumPages),
		Features:       order.Features,
		ColorScheme:    deref(order.ColorScheme),
		PageTypes:      order.PageTypes,
		CompletionDate: deref(order.CompletionDate),
		BudgetRange:    deref(order.BudgetRange),
	}
}

// renderProposal loads the order, checks admin-or-owner access, and
// renders the PDF. Proposals are generated on demand and never stored.
func renderProposal(c *gin.Context) ([]byte, *models.Order, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, nil, false
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
		return nil, nil, false
	}

	email, _ := middleware.GetUserEmail(c)
	if !middleware.IsAdmin(c) && !order.OwnedBy(userID, email) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view this proposal",
			},
		})
		return nil, nil, false
	}

	content, err := proposal.Generate(proposalData(order, time.Now()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RENDER_ERROR",
				"message": "Failed to generate proposal",
			},
		})
		return nil, nil, false
	}

	return content, order, true
}

// GetProposal handles GET /api/v1/orders/:id/proposal - renders the
// proposal PDF inline
func GetProposal(c *gin.Context) {
	content, _, ok := renderProposal(c)
	if !ok {
		return
	}

	c.Data(http.StatusOK, "application/pdf", content)
}

// DownloadProposal handles GET /api/v1/orders/:id/proposal/download -
// renders the proposal PDF as an attachment
func DownloadProposal(c *gin.Context) {
	content, order, ok := renderProposal(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", proposal.Filename(order.OrderNumber)))
	c.Data(http.StatusOK, "application/pdf", content)
}
