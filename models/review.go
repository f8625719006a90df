package models

import (
	"time"
)

// Review represents a client's post-project rating of an order.
// The composite unique index backs up the pre-insert existence check so
// concurrent double-submits cannot produce duplicates.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index;uniqueIndex:idx_reviews_order_user" json:"order_id"`
	Order     Order     `gorm:"foreignKey:OrderID" json:"-"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_reviews_order_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
