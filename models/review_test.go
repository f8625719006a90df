package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReview_UniquePerOrderAndUser(t *testing.T) {
	db := setupModelTestDB(t)

	user := User{Email: "client@example.com", PasswordHash: "h", FullName: "Test User", Role: RoleUser}
	assert.NoError(t, db.Create(&user).Error)

	order := Order{
		OrderNumber:   "ORD-1700000000000-REVIEW000",
		UserID:        user.ID,
		ClientName:    "Daniel Client",
		ClientEmail:   user.Email,
		ClientPhone:   "876-555-0100",
		PackageType:   PackageBasic,
		TotalAmount:   decimal.NewFromInt(50000),
		Currency:      CurrencyJMD,
		PaymentMethod: PaymentCash,
		Status:        StatusCompleted,
	}
	assert.NoError(t, db.Create(&order).Error)

	first := Review{OrderID: order.ID, UserID: user.ID, Rating: 5, Comment: "Great"}
	assert.NoError(t, db.Create(&first).Error)

	// Same (order, user) pair is refused by the composite index
	dup := Review{OrderID: order.ID, UserID: user.ID, Rating: 3, Comment: "Changed my mind"}
	assert.Error(t, db.Create(&dup).Error)

	// A different user may review the same order
	other := User{Email: "other@example.com", PasswordHash: "h", FullName: "Other", Role: RoleUser}
	assert.NoError(t, db.Create(&other).Error)

	second := Review{OrderID: order.ID, UserID: other.ID, Rating: 4}
	assert.NoError(t, db.Create(&second).Error)
}

func TestReview_RatingCheckConstraint(t *testing.T) {
	db := setupModelTestDB(t)

	review := Review{OrderID: 1, UserID: 1, Rating: 6}
	assert.Error(t, db.Create(&review).Error)

	review = Review{OrderID: 1, UserID: 1, Rating: 0}
	assert.Error(t, db.Create(&review).Error)
}
