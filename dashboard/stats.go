// Package dashboard derives the admin summary statistics and
// notifications. Everything is recomputed from the current order list on
// each call; nothing is stored or maintained incrementally.
package dashboard

import (
	"fmt"
	"time"

	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Stats is the admin dashboard summary
type Stats struct {
	TotalOrders      int             `json:"total_orders"`
	Pending          int             `json:"pending"`
	InProgress       int             `json:"in_progress"`
	Completed        int             `json:"completed"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	ThisMonthRevenue decimal.Decimal `json:"this_month_revenue"`
	PendingPayments  decimal.Decimal `json:"pending_payments"` // 50% of each pending order's total
	TotalReviews     int             `json:"total_reviews"`
	AverageRating    float64         `json:"average_rating"`
}

// Notification is a derived, unstored admin alert
type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

func sumTotals(orders []models.Order) decimal.Decimal {
	return lo.Reduce(orders, func(sum decimal.Decimal, o models.Order, _ int) decimal.Decimal {
		return sum.Add(o.TotalAmount)
	}, decimal.Zero)
}

func withStatus(orders []models.Order, status string) []models.Order {
	return lo.Filter(orders, func(o models.Order, _ int) bool {
		return o.Status == status
	})
}

// ComputeStats derives the dashboard summary from the full order and
// review lists. "This month" means the same calendar month and year as
// now; pending payments count the outstanding 50% deposit on each
// pending order.
func ComputeStats(orders []models.Order, reviews []models.Review, now time.Time) Stats {
	pending := withStatus(orders, models.StatusPending)

	thisMonth := lo.Filter(orders, func(o models.Order, _ int) bool {
		return o.CreatedAt.Month() == now.Month() && o.CreatedAt.Year() == now.Year()
	})

	half := decimal.NewFromInt(2)
	pendingPayments := lo.Reduce(pending, func(sum decimal.Decimal, o models.Order, _ int) decimal.Decimal {
		return sum.Add(o.TotalAmount.Div(half))
	}, decimal.Zero)

	avgRating := 0.0
	if len(reviews) > 0 {
		total := lo.SumBy(reviews, func(r models.Review) int { return r.Rating })
		avgRating = float64(total) / float64(len(reviews))
	}

	return Stats{
		TotalOrders:      len(orders),
		Pending:          len(pending),
		InProgress:       len(withStatus(orders, models.StatusInProgress)),
		Completed:        len(withStatus(orders, models.StatusCompleted)),
		TotalRevenue:     sumTotals(orders),
		ThisMonthRevenue: sumTotals(thisMonth),
		PendingPayments:  pendingPayments,
		TotalReviews:     len(reviews),
		AverageRating:    avgRating,
	}
}

// DeriveNotifications recomputes the admin notification list from the
// current orders. Notifications are not persisted or deduplicated
// across sessions.
func DeriveNotifications(orders []models.Order, now time.Time) []Notification {
	notifications := []Notification{}

	pending := len(withStatus(orders, models.StatusPending))
	if pending > 0 {
		plural := ""
		if pending > 1 {
			plural = "s"
		}
		notifications = append(notifications, Notification{
			ID:      "pending",
			Message: fmt.Sprintf("You have %d pending order%s awaiting review", pending, plural),
			Time:    "Now",
		})
	}

	inProgress := len(withStatus(orders, models.StatusInProgress))
	if inProgress > 0 {
		verb := " is"
		if inProgress > 1 {
			verb = "s are"
		}
		notifications = append(notifications, Notification{
			ID:      "inprogress",
			Message: fmt.Sprintf("%d order%s currently in progress", inProgress, verb),
			Time:    "5 min ago",
		})
	}

	today := lo.CountBy(orders, func(o models.Order) bool {
		y1, m1, d1 := o.CreatedAt.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	})
	if today > 0 {
		plural := ""
		if today > 1 {
			plural = "s"
		}
		notifications = append(notifications, Notification{
			ID:      "today",
			Message: fmt.Sprintf("%d new order%s received today", today, plural),
			Time:    "1 hour ago",
		})
	}

	return notifications
}
